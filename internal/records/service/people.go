package service

import (
	"context"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
)

func (s *Service) CreatePatient(ctx context.Context, in PatientInput) (*models.Patient, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p, err := s.patients.Create(ctx, models.PatientCreation{
		FirstName:   in.FirstName,
		Surname:     in.Surname,
		DateOfBirth: parseDate(in.DateOfBirth),
		CareLevel:   in.CareLevel,
		RoomNumber:  in.RoomNumber,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCreateFailed, "create patient")
	}
	s.logAudit(ctx, audit.EventRecordCreated, "kind", string(models.KindPatient), "id", int64(p.ID))
	return p, nil
}

// UpdatePatient replaces the editable fields of an active patient.
func (s *Service) UpdatePatient(ctx context.Context, patientID id.PatientID, in PatientInput) (*models.Patient, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	p, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, s.lookupError(ctx, "patient", int64(patientID), err)
	}
	if p.IsArchived() {
		return nil, readOnly(models.KindPatient, int64(patientID), p.ArchivedOn)
	}

	p.FirstName = in.FirstName
	p.Surname = in.Surname
	p.DateOfBirth = parseDate(in.DateOfBirth)
	p.CareLevel = in.CareLevel
	p.RoomNumber = in.RoomNumber
	if err := s.patients.Update(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpdateFailed, "update patient")
	}
	s.logAudit(ctx, audit.EventRecordUpdated, "kind", string(models.KindPatient), "id", int64(p.ID))
	return p, nil
}

func (s *Service) GetPatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	p, err := s.patients.FindByID(ctx, patientID)
	if err != nil {
		return nil, s.lookupError(ctx, "patient", int64(patientID), err)
	}
	return p, nil
}

func (s *Service) ListPatients(ctx context.Context, f Filter) ([]*models.Patient, error) {
	return listBy(ctx, f, s.patients.ListActive, s.patients.ListArchived, s.patients.ListAll)
}

func (s *Service) CreateCaregiver(ctx context.Context, in CaregiverInput) (*models.Caregiver, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c, err := s.caregivers.Create(ctx, models.CaregiverCreation{
		FirstName:   in.FirstName,
		Surname:     in.Surname,
		PhoneNumber: in.PhoneNumber,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCreateFailed, "create caregiver")
	}
	s.logAudit(ctx, audit.EventRecordCreated, "kind", string(models.KindCaregiver), "id", int64(c.ID))
	return c, nil
}

func (s *Service) UpdateCaregiver(ctx context.Context, caregiverID id.CaregiverID, in CaregiverInput) (*models.Caregiver, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	c, err := s.caregivers.FindByID(ctx, caregiverID)
	if err != nil {
		return nil, s.lookupError(ctx, "caregiver", int64(caregiverID), err)
	}
	if c.IsArchived() {
		return nil, readOnly(models.KindCaregiver, int64(caregiverID), c.ArchivedOn)
	}

	c.FirstName = in.FirstName
	c.Surname = in.Surname
	c.PhoneNumber = in.PhoneNumber
	if err := s.caregivers.Update(ctx, c); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpdateFailed, "update caregiver")
	}
	s.logAudit(ctx, audit.EventRecordUpdated, "kind", string(models.KindCaregiver), "id", int64(c.ID))
	return c, nil
}

func (s *Service) GetCaregiver(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error) {
	c, err := s.caregivers.FindByID(ctx, caregiverID)
	if err != nil {
		return nil, s.lookupError(ctx, "caregiver", int64(caregiverID), err)
	}
	return c, nil
}

func (s *Service) ListCaregivers(ctx context.Context, f Filter) ([]*models.Caregiver, error) {
	return listBy(ctx, f, s.caregivers.ListActive, s.caregivers.ListArchived, s.caregivers.ListAll)
}
