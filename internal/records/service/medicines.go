package service

import (
	"context"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
)

func (s *Service) CreateMedicine(ctx context.Context, in MedicineInput) (*models.Medicine, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	m, err := s.medicines.Create(ctx, models.MedicineCreation{
		Name:            in.Name,
		StorageLocation: in.StorageLocation,
		ExpirationDate:  parseDate(in.ExpirationDate),
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeCreateFailed, "create medicine")
	}
	s.logAudit(ctx, audit.EventRecordCreated, "kind", "medicine", "id", int64(m.ID))
	return m, nil
}

func (s *Service) GetMedicine(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error) {
	m, err := s.medicines.FindByID(ctx, medicineID)
	if err != nil {
		return nil, s.lookupError(ctx, "medicine", int64(medicineID), err)
	}
	return m, nil
}

func (s *Service) ListMedicines(ctx context.Context) ([]*models.Medicine, error) {
	out, err := s.medicines.ListAll(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list medicines")
	}
	return out, nil
}

// DeleteMedicine removes a medicine. Treatments keep their reference and
// show it as missing.
func (s *Service) DeleteMedicine(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error) {
	m, err := s.medicines.Delete(ctx, medicineID)
	if err != nil {
		return nil, s.lookupError(ctx, "medicine", int64(medicineID), err)
	}
	s.logAudit(ctx, audit.EventRecordDeleted, "kind", "medicine", "id", int64(m.ID))
	return m, nil
}
