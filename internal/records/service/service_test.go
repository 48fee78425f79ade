package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"nhplus/internal/auth/password"
	"nhplus/internal/platform/logger"
	"nhplus/internal/records/models"
	"nhplus/internal/records/store/caregiver"
	"nhplus/internal/records/store/medicine"
	"nhplus/internal/records/store/patient"
	"nhplus/internal/records/store/treatment"
	"nhplus/internal/records/store/user"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
)

// =============================================================================
// Records Service Test Suite
// =============================================================================
// Justification for unit tests: the service is the only gate between user
// input and the stores. Tests cover validation, the read-only rule for
// archived records and reference checks on treatments.

type RecordsSuite struct {
	suite.Suite
	patients   *patient.InMemory
	caregivers *caregiver.InMemory
	treatments *treatment.InMemory
	medicines  *medicine.InMemory
	users      *user.InMemory
	service    *Service
	ctx        context.Context
}

func TestRecordsSuite(t *testing.T) {
	suite.Run(t, new(RecordsSuite))
}

func (s *RecordsSuite) SetupTest() {
	s.patients = patient.NewInMemory()
	s.caregivers = caregiver.NewInMemory()
	s.treatments = treatment.NewInMemory()
	s.medicines = medicine.NewInMemory()
	s.users = user.NewInMemory()
	var err error
	s.service, err = New(Stores{
		Patients:   s.patients,
		Caregivers: s.caregivers,
		Treatments: s.treatments,
		Medicines:  s.medicines,
		Users:      s.users,
	}, WithLogger(logger.Discard()), WithHashCost(bcrypt.MinCost))
	s.Require().NoError(err)
	s.ctx = context.Background()
}

func (s *RecordsSuite) patientInput() PatientInput {
	return PatientInput{
		FirstName: "Seppl", Surname: "Herberger", DateOfBirth: "1945-12-01", CareLevel: "4", RoomNumber: "202",
	}
}

func (s *RecordsSuite) createPatient() *models.Patient {
	p, err := s.service.CreatePatient(s.ctx, s.patientInput())
	s.Require().NoError(err)
	return p
}

func (s *RecordsSuite) createCaregiver() *models.Caregiver {
	c, err := s.service.CreateCaregiver(s.ctx, CaregiverInput{
		FirstName: "Hans", Surname: "Müller", PhoneNumber: "+49 176 12345678",
	})
	s.Require().NoError(err)
	return c
}

func (s *RecordsSuite) createMedicine() *models.Medicine {
	m, err := s.service.CreateMedicine(s.ctx, MedicineInput{
		Name: "Amoxicillin 500mg", StorageLocation: "Shelf A", ExpirationDate: "2026-03-15",
	})
	s.Require().NoError(err)
	return m
}

func (s *RecordsSuite) treatmentInput(pid id.PatientID) TreatmentInput {
	return TreatmentInput{
		PatientID: pid, Date: "2026-06-03", Begin: "11:00", End: "11:45", Description: "Gespräch",
	}
}

func (s *RecordsSuite) archive(on string) *time.Time {
	d, err := time.ParseInLocation(time.DateOnly, on, time.UTC)
	s.Require().NoError(err)
	return &d
}

func (s *RecordsSuite) TestNew() {
	s.Run("requires every store", func() {
		_, err := New(Stores{Patients: s.patients})
		s.Require().Error(err)
		s.Contains(err.Error(), "caregiver store is required")
	})
}

func (s *RecordsSuite) TestPatients() {
	s.Run("create parses the date of birth", func() {
		p := s.createPatient()
		s.Equal(time.Date(1945, time.December, 1, 0, 0, 0, 0, time.UTC), p.DateOfBirth)
		s.False(p.IsArchived())
	})

	s.Run("invalid input never reaches the store", func() {
		before, _ := s.patients.ListAll(s.ctx)
		_, err := s.service.CreatePatient(s.ctx, PatientInput{FirstName: "Ana"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		after, _ := s.patients.ListAll(s.ctx)
		s.Len(after, len(before))
	})

	s.Run("update rewrites the editable fields", func() {
		p := s.createPatient()
		in := s.patientInput()
		in.RoomNumber = "104"
		updated, err := s.service.UpdatePatient(s.ctx, p.ID, in)
		s.Require().NoError(err)
		s.Equal("104", updated.RoomNumber)

		stored, err := s.service.GetPatient(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("104", stored.RoomNumber)
	})

	s.Run("archived patients are read-only", func() {
		p := s.createPatient()
		s.Require().NoError(s.patients.Archive(s.ctx, p.ID, *s.archive("2024-01-10")))

		_, err := s.service.UpdatePatient(s.ctx, p.ID, s.patientInput())
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		s.Contains(err.Error(), "2024-01-10")
	})

	s.Run("unknown ids are not found", func() {
		_, err := s.service.GetPatient(s.ctx, 999)
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
		_, err = s.service.UpdatePatient(s.ctx, 999, s.patientInput())
		s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
	})
}

func (s *RecordsSuite) TestListFilters() {
	active := s.createPatient()
	archived := s.createPatient()
	s.Require().NoError(s.patients.Archive(s.ctx, archived.ID, *s.archive("2020-05-05")))

	got, err := s.service.ListPatients(s.ctx, FilterActive)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(active.ID, got[0].ID)

	got, err = s.service.ListPatients(s.ctx, FilterArchived)
	s.Require().NoError(err)
	s.Require().Len(got, 1)
	s.Equal(archived.ID, got[0].ID)

	got, err = s.service.ListPatients(s.ctx, FilterAll)
	s.Require().NoError(err)
	s.Len(got, 2)
}

func (s *RecordsSuite) TestCaregivers() {
	s.Run("phone numbers are validated", func() {
		_, err := s.service.CreateCaregiver(s.ctx, CaregiverInput{
			FirstName: "Hans", Surname: "Müller", PhoneNumber: "0176-12345678",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("archived caregivers are read-only", func() {
		c := s.createCaregiver()
		s.Require().NoError(s.caregivers.Archive(s.ctx, c.ID, *s.archive("2023-02-01")))
		_, err := s.service.UpdateCaregiver(s.ctx, c.ID, CaregiverInput{
			FirstName: "Hans", Surname: "Meier", PhoneNumber: "+49 176 12345678",
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("list and update", func() {
		c := s.createCaregiver()
		updated, err := s.service.UpdateCaregiver(s.ctx, c.ID, CaregiverInput{
			FirstName: "Hans", Surname: "Meier", PhoneNumber: "+49 176 87654321",
		})
		s.Require().NoError(err)
		s.Equal("Meier, Hans", updated.FullName())

		all, err := s.service.ListCaregivers(s.ctx, FilterAll)
		s.Require().NoError(err)
		s.Len(all, 2)
	})
}

func (s *RecordsSuite) TestTreatmentReferences() {
	p := s.createPatient()

	s.Run("patient must exist", func() {
		_, err := s.service.CreateTreatment(s.ctx, s.treatmentInput(999))
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("patient must be active", func() {
		gone := s.createPatient()
		s.Require().NoError(s.patients.Archive(s.ctx, gone.ID, *s.archive("2025-01-01")))
		_, err := s.service.CreateTreatment(s.ctx, s.treatmentInput(gone.ID))
		s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))
	})

	s.Run("caregiver and medicine must exist when set", func() {
		in := s.treatmentInput(p.ID)
		in.CaregiverID = 42
		_, err := s.service.CreateTreatment(s.ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

		in = s.treatmentInput(p.ID)
		in.MedicineID = 42
		_, err = s.service.CreateTreatment(s.ctx, in)
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	s.Run("references are optional", func() {
		t, err := s.service.CreateTreatment(s.ctx, s.treatmentInput(p.ID))
		s.Require().NoError(err)
		s.True(t.CaregiverID.IsZero())
		s.True(t.MedicineID.IsZero())
	})
}

func (s *RecordsSuite) TestTreatmentUpdate() {
	p := s.createPatient()
	t, err := s.service.CreateTreatment(s.ctx, s.treatmentInput(p.ID))
	s.Require().NoError(err)

	in := s.treatmentInput(p.ID)
	in.Remarks = "Patient war gut gelaunt"
	updated, err := s.service.UpdateTreatment(s.ctx, t.ID, in)
	s.Require().NoError(err)
	s.Equal("Patient war gut gelaunt", updated.Remarks)

	s.Require().NoError(s.treatments.Archive(s.ctx, t.ID, *s.archive("2026-06-04")))
	_, err = s.service.UpdateTreatment(s.ctx, t.ID, in)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation))

	byPatient, err := s.service.ListTreatmentsByPatient(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Len(byPatient, 1, "archived treatments stay listed for their patient")
}

func (s *RecordsSuite) TestTreatmentDetails() {
	p := s.createPatient()
	c := s.createCaregiver()
	m := s.createMedicine()

	in := s.treatmentInput(p.ID)
	in.CaregiverID = c.ID
	in.MedicineID = m.ID
	t, err := s.service.CreateTreatment(s.ctx, in)
	s.Require().NoError(err)

	d, err := s.service.TreatmentDetails(s.ctx, t.ID)
	s.Require().NoError(err)
	s.Equal("Herberger, Seppl", d.PatientName)
	s.Equal("Müller, Hans", d.CaregiverName)
	s.Equal("Amoxicillin 500mg", d.MedicineName)

	s.Run("missing references render as placeholders", func() {
		_, err := s.service.DeleteMedicine(s.ctx, m.ID)
		s.Require().NoError(err)
		_, err = s.caregivers.Delete(s.ctx, c.ID)
		s.Require().NoError(err)
		_, err = s.patients.Delete(s.ctx, p.ID)
		s.Require().NoError(err)

		all, err := s.service.ListTreatmentDetails(s.ctx, FilterAll)
		s.Require().NoError(err)
		s.Require().Len(all, 1)
		s.Equal(models.Placeholder, all[0].PatientName)
		s.Equal(models.Placeholder, all[0].CaregiverName)
		s.Equal(models.Placeholder, all[0].MedicineName)
	})
}

func (s *RecordsSuite) TestMedicines() {
	m := s.createMedicine()

	got, err := s.service.GetMedicine(s.ctx, m.ID)
	s.Require().NoError(err)
	s.Equal("Shelf A", got.StorageLocation)

	list, err := s.service.ListMedicines(s.ctx)
	s.Require().NoError(err)
	s.Len(list, 1)

	_, err = s.service.DeleteMedicine(s.ctx, m.ID)
	s.Require().NoError(err)
	_, err = s.service.DeleteMedicine(s.ctx, m.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *RecordsSuite) TestUsers() {
	u, err := s.service.CreateUser(s.ctx, UserInput{Username: "admin", Password: "secret"})
	s.Require().NoError(err)
	s.NotEqual("secret", u.PasswordHash)

	ok, err := password.Matches("secret", u.PasswordHash)
	s.Require().NoError(err)
	s.True(ok)

	_, err = s.service.CreateUser(s.ctx, UserInput{Username: "admin", Password: "other"})
	s.True(dErrors.HasCode(err, dErrors.CodeInvalidInput))

	_, err = s.service.CreateUser(s.ctx, UserInput{Username: "nurse"})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))

	users, err := s.service.ListUsers(s.ctx)
	s.Require().NoError(err)
	s.Len(users, 1)
}
