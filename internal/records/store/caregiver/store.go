package caregiver

import (
	"context"
	"time"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

// Store is the persistence contract for caregivers.
type Store interface {
	Create(ctx context.Context, c models.CaregiverCreation) (*models.Caregiver, error)
	FindByID(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error)
	ListAll(ctx context.Context) ([]*models.Caregiver, error)
	ListArchived(ctx context.Context) ([]*models.Caregiver, error)
	ListActive(ctx context.Context) ([]*models.Caregiver, error)
	Update(ctx context.Context, c *models.Caregiver) error
	Delete(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error)
	Archive(ctx context.Context, caregiverID id.CaregiverID, on time.Time) error
	Restore(ctx context.Context, caregiverID id.CaregiverID) error
}

var (
	_ Store = (*InMemory)(nil)
	_ Store = (*SQLStore)(nil)
)

func clone(c *models.Caregiver) *models.Caregiver {
	out := *c
	if c.ArchivedOn != nil {
		d := *c.ArchivedOn
		out.ArchivedOn = &d
	}
	return &out
}
