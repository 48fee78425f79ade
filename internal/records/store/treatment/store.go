package treatment

import (
	"context"
	"time"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

// Store is the persistence contract for treatments. References to patients,
// caregivers and medicines are stored as plain ids; nothing cascades.
type Store interface {
	Create(ctx context.Context, c models.TreatmentCreation) (*models.Treatment, error)
	FindByID(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error)
	ListAll(ctx context.Context) ([]*models.Treatment, error)
	ListArchived(ctx context.Context) ([]*models.Treatment, error)
	ListActive(ctx context.Context) ([]*models.Treatment, error)
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Treatment, error)
	Update(ctx context.Context, t *models.Treatment) error
	Delete(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error)
	Archive(ctx context.Context, treatmentID id.TreatmentID, on time.Time) error
	Restore(ctx context.Context, treatmentID id.TreatmentID) error
}

var (
	_ Store = (*InMemory)(nil)
	_ Store = (*SQLStore)(nil)
)

func clone(t *models.Treatment) *models.Treatment {
	out := *t
	if t.ArchivedOn != nil {
		d := *t.ArchivedOn
		out.ArchivedOn = &d
	}
	return &out
}
