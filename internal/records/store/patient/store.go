package patient

import (
	"context"
	"time"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

// Store is the persistence contract for patients. Lookups of absent rows
// return an error wrapping sentinel.ErrNotFound.
type Store interface {
	Create(ctx context.Context, c models.PatientCreation) (*models.Patient, error)
	FindByID(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	ListAll(ctx context.Context) ([]*models.Patient, error)
	ListArchived(ctx context.Context) ([]*models.Patient, error)
	ListActive(ctx context.Context) ([]*models.Patient, error)
	Update(ctx context.Context, p *models.Patient) error
	Delete(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	Archive(ctx context.Context, patientID id.PatientID, on time.Time) error
	Restore(ctx context.Context, patientID id.PatientID) error
}

var (
	_ Store = (*InMemory)(nil)
	_ Store = (*SQLStore)(nil)
)

func clone(p *models.Patient) *models.Patient {
	c := *p
	if p.ArchivedOn != nil {
		d := *p.ArchivedOn
		c.ArchivedOn = &d
	}
	return &c
}
