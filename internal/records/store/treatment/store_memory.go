package treatment

import (
	"context"
	"fmt"
	"time"

	"nhplus/internal/records/models"
	"nhplus/internal/records/store/memtable"
	id "nhplus/pkg/domain"
	"nhplus/pkg/platform/sentinel"
)

type InMemory struct {
	rows *memtable.Table[id.TreatmentID, *models.Treatment]
}

func NewInMemory() *InMemory {
	return &InMemory{rows: memtable.New[id.TreatmentID](clone)}
}

func (s *InMemory) Create(_ context.Context, c models.TreatmentCreation) (*models.Treatment, error) {
	return s.rows.Insert(func(tid id.TreatmentID) *models.Treatment {
		return models.NewTreatment(tid, c)
	}), nil
}

func (s *InMemory) FindByID(_ context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	t, ok := s.rows.Get(treatmentID)
	if !ok {
		return nil, fmt.Errorf("find treatment %s: %w", treatmentID, sentinel.ErrNotFound)
	}
	return t, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Treatment, error) {
	return s.rows.List(nil), nil
}

func (s *InMemory) ListArchived(_ context.Context) ([]*models.Treatment, error) {
	return s.rows.List(func(t *models.Treatment) bool { return t.IsArchived() }), nil
}

func (s *InMemory) ListActive(_ context.Context) ([]*models.Treatment, error) {
	return s.rows.List(func(t *models.Treatment) bool { return !t.IsArchived() }), nil
}

func (s *InMemory) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Treatment, error) {
	return s.rows.List(func(t *models.Treatment) bool { return t.PatientID == patientID }), nil
}

func (s *InMemory) Update(_ context.Context, t *models.Treatment) error {
	ok := s.rows.Mutate(t.ID, func(cur *models.Treatment) *models.Treatment {
		next := clone(t)
		next.ArchivedOn = cur.ArchivedOn
		return next
	})
	if !ok {
		return fmt.Errorf("update treatment %s: %w", t.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	t, ok := s.rows.Remove(treatmentID)
	if !ok {
		return nil, fmt.Errorf("delete treatment %s: %w", treatmentID, sentinel.ErrNotFound)
	}
	return t, nil
}

func (s *InMemory) Archive(_ context.Context, treatmentID id.TreatmentID, on time.Time) error {
	day := models.DateOf(on)
	ok := s.rows.Mutate(treatmentID, func(t *models.Treatment) *models.Treatment {
		t.ArchivedOn = &day
		return t
	})
	if !ok {
		return fmt.Errorf("archive treatment %s: %w", treatmentID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *InMemory) Restore(_ context.Context, treatmentID id.TreatmentID) error {
	ok := s.rows.Mutate(treatmentID, func(t *models.Treatment) *models.Treatment {
		t.ClearArchived()
		return t
	})
	if !ok {
		return fmt.Errorf("restore treatment %s: %w", treatmentID, sentinel.ErrNotFound)
	}
	return nil
}
