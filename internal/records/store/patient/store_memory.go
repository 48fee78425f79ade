package patient

import (
	"context"
	"fmt"
	"time"

	"nhplus/internal/records/models"
	"nhplus/internal/records/store/memtable"
	id "nhplus/pkg/domain"
	"nhplus/pkg/platform/sentinel"
)

// InMemory keeps patients in process memory. Used by the memory driver
// and by service tests.
type InMemory struct {
	rows *memtable.Table[id.PatientID, *models.Patient]
}

func NewInMemory() *InMemory {
	return &InMemory{rows: memtable.New[id.PatientID](clone)}
}

func (s *InMemory) Create(_ context.Context, c models.PatientCreation) (*models.Patient, error) {
	return s.rows.Insert(func(pid id.PatientID) *models.Patient {
		return models.NewPatient(pid, c)
	}), nil
}

func (s *InMemory) FindByID(_ context.Context, patientID id.PatientID) (*models.Patient, error) {
	p, ok := s.rows.Get(patientID)
	if !ok {
		return nil, fmt.Errorf("find patient %s: %w", patientID, sentinel.ErrNotFound)
	}
	return p, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Patient, error) {
	return s.rows.List(nil), nil
}

func (s *InMemory) ListArchived(_ context.Context) ([]*models.Patient, error) {
	return s.rows.List(func(p *models.Patient) bool { return p.IsArchived() }), nil
}

func (s *InMemory) ListActive(_ context.Context) ([]*models.Patient, error) {
	return s.rows.List(func(p *models.Patient) bool { return !p.IsArchived() }), nil
}

// Update replaces the data fields. The archive date is owned by
// Archive and Restore and is left untouched.
func (s *InMemory) Update(_ context.Context, p *models.Patient) error {
	ok := s.rows.Mutate(p.ID, func(cur *models.Patient) *models.Patient {
		next := clone(p)
		next.ArchivedOn = cur.ArchivedOn
		return next
	})
	if !ok {
		return fmt.Errorf("update patient %s: %w", p.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, patientID id.PatientID) (*models.Patient, error) {
	p, ok := s.rows.Remove(patientID)
	if !ok {
		return nil, fmt.Errorf("delete patient %s: %w", patientID, sentinel.ErrNotFound)
	}
	return p, nil
}

func (s *InMemory) Archive(_ context.Context, patientID id.PatientID, on time.Time) error {
	day := models.DateOf(on)
	ok := s.rows.Mutate(patientID, func(p *models.Patient) *models.Patient {
		p.ArchivedOn = &day
		return p
	})
	if !ok {
		return fmt.Errorf("archive patient %s: %w", patientID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *InMemory) Restore(_ context.Context, patientID id.PatientID) error {
	ok := s.rows.Mutate(patientID, func(p *models.Patient) *models.Patient {
		p.ClearArchived()
		return p
	})
	if !ok {
		return fmt.Errorf("restore patient %s: %w", patientID, sentinel.ErrNotFound)
	}
	return nil
}
