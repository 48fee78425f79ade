package service

import (
	"context"
	"errors"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
	"nhplus/pkg/platform/sentinel"
)

func (s *Service) CreateTreatment(ctx context.Context, in TreatmentInput) (*models.Treatment, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}
	t, err := s.treatments.Create(ctx, models.TreatmentCreation{
		PatientID:   in.PatientID,
		Date:        parseDate(in.Date),
		Begin:       in.Begin,
		End:         in.End,
		Description: in.Description,
		Remarks:     in.Remarks,
		CaregiverID: in.CaregiverID,
		MedicineID:  in.MedicineID,
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCreateFailed, "create treatment")
	}
	s.logAudit(ctx, audit.EventRecordCreated, "kind", string(models.KindTreatment), "id", int64(t.ID),
		"patient_id", int64(t.PatientID))
	return t, nil
}

func (s *Service) UpdateTreatment(ctx context.Context, treatmentID id.TreatmentID, in TreatmentInput) (*models.Treatment, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	t, err := s.treatments.FindByID(ctx, treatmentID)
	if err != nil {
		return nil, s.lookupError(ctx, "treatment", int64(treatmentID), err)
	}
	if t.IsArchived() {
		return nil, readOnly(models.KindTreatment, int64(treatmentID), t.ArchivedOn)
	}
	if err := s.checkReferences(ctx, in); err != nil {
		return nil, err
	}

	t.PatientID = in.PatientID
	t.Date = parseDate(in.Date)
	t.Begin = in.Begin
	t.End = in.End
	t.Description = in.Description
	t.Remarks = in.Remarks
	t.CaregiverID = in.CaregiverID
	t.MedicineID = in.MedicineID
	if err := s.treatments.Update(ctx, t); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUpdateFailed, "update treatment")
	}
	s.logAudit(ctx, audit.EventRecordUpdated, "kind", string(models.KindTreatment), "id", int64(t.ID))
	return t, nil
}

func (s *Service) GetTreatment(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	t, err := s.treatments.FindByID(ctx, treatmentID)
	if err != nil {
		return nil, s.lookupError(ctx, "treatment", int64(treatmentID), err)
	}
	return t, nil
}

func (s *Service) ListTreatments(ctx context.Context, f Filter) ([]*models.Treatment, error) {
	return listBy(ctx, f, s.treatments.ListActive, s.treatments.ListArchived, s.treatments.ListAll)
}

// ListTreatmentsByPatient returns every treatment of the patient, archived
// ones included. An unknown patient yields an empty list.
func (s *Service) ListTreatmentsByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Treatment, error) {
	out, err := s.treatments.ListByPatient(ctx, patientID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list treatments by patient")
	}
	return out, nil
}

// TreatmentDetails resolves the names behind a treatment's references.
// References that no longer resolve render as models.Placeholder.
func (s *Service) TreatmentDetails(ctx context.Context, treatmentID id.TreatmentID) (*models.TreatmentDetails, error) {
	t, err := s.GetTreatment(ctx, treatmentID)
	if err != nil {
		return nil, err
	}
	return s.resolve(ctx, t)
}

// ListTreatmentDetails resolves every treatment matching the filter.
func (s *Service) ListTreatmentDetails(ctx context.Context, f Filter) ([]*models.TreatmentDetails, error) {
	ts, err := s.ListTreatments(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]*models.TreatmentDetails, 0, len(ts))
	for _, t := range ts {
		d, err := s.resolve(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, nil
}

func (s *Service) resolve(ctx context.Context, t *models.Treatment) (*models.TreatmentDetails, error) {
	d := &models.TreatmentDetails{
		Treatment:     t,
		PatientName:   models.Placeholder,
		CaregiverName: models.Placeholder,
		MedicineName:  models.Placeholder,
	}

	p, err := s.patients.FindByID(ctx, t.PatientID)
	switch {
	case err == nil:
		d.PatientName = p.FullName()
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, s.lookupError(ctx, "patient", int64(t.PatientID), err)
	}

	if !t.CaregiverID.IsZero() {
		c, err := s.caregivers.FindByID(ctx, t.CaregiverID)
		switch {
		case err == nil:
			d.CaregiverName = c.FullName()
		case !errors.Is(err, sentinel.ErrNotFound):
			return nil, s.lookupError(ctx, "caregiver", int64(t.CaregiverID), err)
		}
	}

	if !t.MedicineID.IsZero() {
		m, err := s.medicines.FindByID(ctx, t.MedicineID)
		switch {
		case err == nil:
			d.MedicineName = m.Name
		case !errors.Is(err, sentinel.ErrNotFound):
			return nil, s.lookupError(ctx, "medicine", int64(t.MedicineID), err)
		}
	}
	return d, nil
}

// checkReferences requires an active patient and, when set, an existing
// caregiver and medicine.
func (s *Service) checkReferences(ctx context.Context, in TreatmentInput) error {
	p, err := s.patients.FindByID(ctx, in.PatientID)
	if err != nil {
		return s.referenceError(ctx, "patient", int64(in.PatientID), err)
	}
	if p.IsArchived() {
		return dErrors.Newf(dErrors.CodeInvariantViolation,
			"patient %d is archived; treatments can only be recorded for active patients", in.PatientID)
	}
	if !in.CaregiverID.IsZero() {
		if _, err := s.caregivers.FindByID(ctx, in.CaregiverID); err != nil {
			return s.referenceError(ctx, "caregiver", int64(in.CaregiverID), err)
		}
	}
	if !in.MedicineID.IsZero() {
		if _, err := s.medicines.FindByID(ctx, in.MedicineID); err != nil {
			return s.referenceError(ctx, "medicine", int64(in.MedicineID), err)
		}
	}
	return nil
}

func (s *Service) referenceError(ctx context.Context, kind string, refID int64, err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeInvalidInput, "%s %d does not exist", kind, refID)
	}
	return s.lookupError(ctx, kind, refID, err)
}
