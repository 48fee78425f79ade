package medicine

import (
	"context"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

// Store is the persistence contract for medicines.
type Store interface {
	Create(ctx context.Context, c models.MedicineCreation) (*models.Medicine, error)
	FindByID(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error)
	ListAll(ctx context.Context) ([]*models.Medicine, error)
	Delete(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error)
}

var (
	_ Store = (*InMemory)(nil)
	_ Store = (*SQLStore)(nil)
)

func clone(m *models.Medicine) *models.Medicine {
	out := *m
	return &out
}
