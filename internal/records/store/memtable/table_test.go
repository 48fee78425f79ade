package memtable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type row struct {
	ID   int64
	Name string
}

func cloneRow(r *row) *row {
	c := *r
	return &c
}

func TestTable(t *testing.T) {
	t.Run("assigns sequential ids and lists in order", func(t *testing.T) {
		tbl := New[int64](cloneRow)
		for _, name := range []string{"a", "b", "c"} {
			tbl.Insert(func(id int64) *row { return &row{ID: id, Name: name} })
		}

		rows := tbl.List(nil)
		require.Len(t, rows, 3)
		assert.Equal(t, []int64{1, 2, 3}, []int64{rows[0].ID, rows[1].ID, rows[2].ID})
	})

	t.Run("ids are not reused after removal", func(t *testing.T) {
		tbl := New[int64](cloneRow)
		first := tbl.Insert(func(id int64) *row { return &row{ID: id} })
		_, ok := tbl.Remove(first.ID)
		require.True(t, ok)

		second := tbl.Insert(func(id int64) *row { return &row{ID: id} })
		assert.Equal(t, int64(2), second.ID)
		assert.Equal(t, 1, tbl.Len())
	})

	t.Run("returned rows do not alias storage", func(t *testing.T) {
		tbl := New[int64](cloneRow)
		inserted := tbl.Insert(func(id int64) *row { return &row{ID: id, Name: "kept"} })
		inserted.Name = "changed"

		got, ok := tbl.Get(inserted.ID)
		require.True(t, ok)
		got.Name = "changed again"

		again, _ := tbl.Get(inserted.ID)
		assert.Equal(t, "kept", again.Name)
	})

	t.Run("mutate reports missing rows", func(t *testing.T) {
		tbl := New[int64](cloneRow)
		assert.False(t, tbl.Mutate(9, func(r *row) *row { return r }))

		r := tbl.Insert(func(id int64) *row { return &row{ID: id} })
		assert.True(t, tbl.Mutate(r.ID, func(r *row) *row { r.Name = "x"; return r }))
		got, _ := tbl.Get(r.ID)
		assert.Equal(t, "x", got.Name)
	})

	t.Run("list filters", func(t *testing.T) {
		tbl := New[int64](cloneRow)
		tbl.Insert(func(id int64) *row { return &row{ID: id, Name: "keep"} })
		tbl.Insert(func(id int64) *row { return &row{ID: id, Name: "drop"} })

		rows := tbl.List(func(r *row) bool { return r.Name == "keep" })
		require.Len(t, rows, 1)
		assert.Equal(t, "keep", rows[0].Name)
	})
}
