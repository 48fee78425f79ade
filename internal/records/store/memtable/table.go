// Package memtable is the map-backed row storage behind the in-memory
// record stores. Rows are cloned on the way in and out so callers never
// share memory with the table.
package memtable

import (
	"slices"
	"sync"
)

// Table holds rows of type V keyed by a sequential int64-based id.
type Table[K ~int64, V any] struct {
	mu     sync.RWMutex
	rows   map[K]V
	lastID K
	clone  func(V) V
}

func New[K ~int64, V any](clone func(V) V) *Table[K, V] {
	return &Table[K, V]{
		rows:  make(map[K]V),
		clone: clone,
	}
}

// Insert assigns the next id and stores the row built for it.
func (t *Table[K, V]) Insert(build func(id K) V) V {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.lastID++
	row := build(t.lastID)
	t.rows[t.lastID] = t.clone(row)
	return row
}

func (t *Table[K, V]) Get(id K) (V, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	row, ok := t.rows[id]
	if !ok {
		var zero V
		return zero, false
	}
	return t.clone(row), true
}

// List returns rows accepted by keep, ordered by id. A nil keep accepts all.
func (t *Table[K, V]) List(keep func(V) bool) []V {
	t.mu.RLock()
	defer t.mu.RUnlock()
	ids := make([]K, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]V, 0, len(ids))
	for _, id := range ids {
		row := t.rows[id]
		if keep == nil || keep(row) {
			out = append(out, t.clone(row))
		}
	}
	return out
}

// Mutate applies fn to a private copy of the row and stores the result.
// It returns false when the row does not exist.
func (t *Table[K, V]) Mutate(id K, fn func(V) V) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		return false
	}
	t.rows[id] = t.clone(fn(t.clone(row)))
	return true
}

// Remove deletes the row and returns it.
func (t *Table[K, V]) Remove(id K) (V, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	row, ok := t.rows[id]
	if !ok {
		var zero V
		return zero, false
	}
	delete(t.rows, id)
	return row, true
}

// Len reports the number of stored rows.
func (t *Table[K, V]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
