package medicine_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"nhplus/internal/records/models"
	"nhplus/internal/records/store/medicine"
	id "nhplus/pkg/domain"
	"nhplus/pkg/platform/sentinel"
	"nhplus/pkg/testutil"
)

type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) medicine.Store
	store    medicine.Store
	ctx      context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) medicine.Store { return medicine.NewInMemory() }})
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) medicine.Store {
		return medicine.NewSQL(testutil.OpenSQLite(t))
	}})
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func (s *StoreSuite) TestLifecycle() {
	created, err := s.store.Create(s.ctx, models.MedicineCreation{
		Name:            "Amoxicillin 500mg",
		StorageLocation: "Shelf A",
		ExpirationDate:  testutil.Date(s.T(), "2026-03-15"),
	})
	s.Require().NoError(err)

	found, err := s.store.FindByID(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal("Amoxicillin 500mg", found.Name)
	s.Equal("Shelf A", found.StorageLocation)
	s.True(found.ExpirationDate.Equal(testutil.Date(s.T(), "2026-03-15")))

	all, err := s.store.ListAll(s.ctx)
	s.Require().NoError(err)
	s.Len(all, 1)

	deleted, err := s.store.Delete(s.ctx, created.ID)
	s.Require().NoError(err)
	s.Equal(created.ID, deleted.ID)

	_, err = s.store.FindByID(s.ctx, created.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
	_, err = s.store.Delete(s.ctx, id.MedicineID(9999))
	s.ErrorIs(err, sentinel.ErrNotFound)
}
