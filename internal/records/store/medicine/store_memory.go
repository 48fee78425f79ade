package medicine

import (
	"context"
	"fmt"

	"nhplus/internal/records/models"
	"nhplus/internal/records/store/memtable"
	id "nhplus/pkg/domain"
	"nhplus/pkg/platform/sentinel"
)

type InMemory struct {
	rows *memtable.Table[id.MedicineID, *models.Medicine]
}

func NewInMemory() *InMemory {
	return &InMemory{rows: memtable.New[id.MedicineID](clone)}
}

func (s *InMemory) Create(_ context.Context, c models.MedicineCreation) (*models.Medicine, error) {
	return s.rows.Insert(func(mid id.MedicineID) *models.Medicine {
		return models.NewMedicine(mid, c)
	}), nil
}

func (s *InMemory) FindByID(_ context.Context, medicineID id.MedicineID) (*models.Medicine, error) {
	m, ok := s.rows.Get(medicineID)
	if !ok {
		return nil, fmt.Errorf("find medicine %s: %w", medicineID, sentinel.ErrNotFound)
	}
	return m, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Medicine, error) {
	return s.rows.List(nil), nil
}

func (s *InMemory) Delete(_ context.Context, medicineID id.MedicineID) (*models.Medicine, error) {
	m, ok := s.rows.Remove(medicineID)
	if !ok {
		return nil, fmt.Errorf("delete medicine %s: %w", medicineID, sentinel.ErrNotFound)
	}
	return m, nil
}
