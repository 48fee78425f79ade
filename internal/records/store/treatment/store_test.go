package treatment_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"nhplus/internal/records/models"
	"nhplus/internal/records/store/treatment"
	id "nhplus/pkg/domain"
	"nhplus/pkg/platform/sentinel"
	"nhplus/pkg/testutil"
)

type StoreSuite struct {
	suite.Suite
	newStore func(t *testing.T) treatment.Store
	store    treatment.Store
	ctx      context.Context
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(*testing.T) treatment.Store { return treatment.NewInMemory() }})
}

func TestSQLiteStoreSuite(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func(t *testing.T) treatment.Store {
		return treatment.NewSQL(testutil.OpenSQLite(t))
	}})
}

func (s *StoreSuite) SetupTest() {
	s.store = s.newStore(s.T())
	s.ctx = context.Background()
}

func (s *StoreSuite) create(patientID id.PatientID, caregiverID id.CaregiverID, archivedOn *time.Time) *models.Treatment {
	t, err := s.store.Create(s.ctx, models.TreatmentCreation{
		PatientID:   patientID,
		Date:        testutil.Date(s.T(), "2023-06-03"),
		Begin:       "11:00",
		End:         "12:00",
		Description: "Gespräch",
		Remarks:     "Der Patient hat enorme Angstgefühle",
		CaregiverID: caregiverID,
		ArchivedOn:  archivedOn,
	})
	s.Require().NoError(err)
	return t
}

// TestCreationAndLookups verifies optional references survive as zero values.
func (s *StoreSuite) TestCreationAndLookups() {
	s.Run("round-trips every field", func() {
		created := s.create(1, 5, nil)

		found, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.Equal(id.PatientID(1), found.PatientID)
		s.Equal(id.CaregiverID(5), found.CaregiverID)
		s.True(found.MedicineID.IsZero())
		s.True(found.Date.Equal(testutil.Date(s.T(), "2023-06-03")))
		s.Equal("11:00", found.Begin)
		s.Equal("12:00", found.End)
		s.Equal("Gespräch", found.Description)
		s.Equal("Der Patient hat enorme Angstgefühle", found.Remarks)
	})

	s.Run("caregiver zero means none", func() {
		created := s.create(1, 0, nil)
		found, err := s.store.FindByID(s.ctx, created.ID)
		s.Require().NoError(err)
		s.True(found.CaregiverID.IsZero())
	})

	s.Run("returns ErrNotFound for unknown ID", func() {
		_, err := s.store.FindByID(s.ctx, id.TreatmentID(9999))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *StoreSuite) TestListByPatient() {
	first := s.create(1, 0, nil)
	s.create(2, 0, nil)
	third := s.create(1, 0, testutil.DatePtr(s.T(), "2013-06-03"))

	list, err := s.store.ListByPatient(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(list, 2)
	s.Equal(first.ID, list[0].ID)
	s.Equal(third.ID, list[1].ID)

	none, err := s.store.ListByPatient(s.ctx, 42)
	s.Require().NoError(err)
	s.Empty(none)
}

func (s *StoreSuite) TestArchiveLifecycle() {
	t := s.create(1, 0, nil)

	s.Require().NoError(s.store.Archive(s.ctx, t.ID, testutil.Date(s.T(), "2026-06-03")))
	archived, err := s.store.ListArchived(s.ctx)
	s.Require().NoError(err)
	s.Len(archived, 1)

	s.Require().NoError(s.store.Restore(s.ctx, t.ID))
	active, err := s.store.ListActive(s.ctx)
	s.Require().NoError(err)
	s.Len(active, 1)

	s.ErrorIs(s.store.Restore(s.ctx, id.TreatmentID(9999)), sentinel.ErrNotFound)
}

func (s *StoreSuite) TestUpdateAndDelete() {
	t := s.create(1, 0, nil)

	t.CaregiverID = 3
	t.MedicineID = 2
	t.End = "12:30"
	s.Require().NoError(s.store.Update(s.ctx, t))

	found, err := s.store.FindByID(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(id.CaregiverID(3), found.CaregiverID)
	s.Equal(id.MedicineID(2), found.MedicineID)
	s.Equal("12:30", found.End)

	deleted, err := s.store.Delete(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal(t.ID, deleted.ID)

	_, err = s.store.FindByID(s.ctx, t.ID)
	s.ErrorIs(err, sentinel.ErrNotFound)
}
