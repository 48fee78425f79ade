package caregiver

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
	rows *memtable.Table[id.CaregiverID, *models.Caregiver]
}

func NewInMemory() *InMemory {
	return &InMemory{rows: memtable.New[id.CaregiverID](clone)}
}

func (s *InMemory) Create(_ context.Context, c models.CaregiverCreation) (*models.Caregiver, error) {
	return s.rows.Insert(func(cid id.CaregiverID) *models.Caregiver {
		return models.NewCaregiver(cid, c)
	}), nil
}

func (s *InMemory) FindByID(_ context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error) {
	c, ok := s.rows.Get(caregiverID)
	if !ok {
		return nil, fmt.Errorf("find caregiver %s: %w", caregiverID, sentinel.ErrNotFound)
	}
	return c, nil
}

func (s *InMemory) ListAll(_ context.Context) ([]*models.Caregiver, error) {
	return s.rows.List(nil), nil
}

func (s *InMemory) ListArchived(_ context.Context) ([]*models.Caregiver, error) {
	return s.rows.List(func(c *models.Caregiver) bool { return c.IsArchived() }), nil
}

func (s *InMemory) ListActive(_ context.Context) ([]*models.Caregiver, error) {
	return s.rows.List(func(c *models.Caregiver) bool { return !c.IsArchived() }), nil
}

func (s *InMemory) Update(_ context.Context, c *models.Caregiver) error {
	ok := s.rows.Mutate(c.ID, func(cur *models.Caregiver) *models.Caregiver {
		next := clone(c)
		next.ArchivedOn = cur.ArchivedOn
		return next
	})
	if !ok {
		return fmt.Errorf("update caregiver %s: %w", c.ID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *InMemory) Delete(_ context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error) {
	c, ok := s.rows.Remove(caregiverID)
	if !ok {
		return nil, fmt.Errorf("delete caregiver %s: %w", caregiverID, sentinel.ErrNotFound)
	}
	return c, nil
}

func (s *InMemory) Archive(_ context.Context, caregiverID id.CaregiverID, on time.Time) error {
	day := models.DateOf(on)
	ok := s.rows.Mutate(caregiverID, func(c *models.Caregiver) *models.Caregiver {
		c.ArchivedOn = &day
		return c
	})
	if !ok {
		return fmt.Errorf("archive caregiver %s: %w", caregiverID, sentinel.ErrNotFound)
	}
	return nil
}

func (s *InMemory) Restore(_ context.Context, caregiverID id.CaregiverID) error {
	ok := s.rows.Mutate(caregiverID, func(c *models.Caregiver) *models.Caregiver {
		c.ClearArchived()
		return c
	})
	if !ok {
		return fmt.Errorf("restore caregiver %s: %w", caregiverID, sentinel.ErrNotFound)
	}
	return nil
}
