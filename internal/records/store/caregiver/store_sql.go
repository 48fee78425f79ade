package caregiver

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nhplus/internal/platform/database"
	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

const selectCaregivers = `SELECT id, first_name, surname, phone_number, archived_on FROM caregivers`

type SQLStore struct {
	db *database.DB
}

func NewSQL(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, c models.CaregiverCreation) (*models.Caregiver, error) {
	var cid int64
	err := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(
		`INSERT INTO caregivers (first_name, surname, phone_number, archived_on) VALUES (?, ?, ?, ?) RETURNING id`),
		c.FirstName, c.Surname, c.PhoneNumber, database.NullDate(c.ArchivedOn),
	).Scan(&cid)
	if err != nil {
		return nil, fmt.Errorf("insert caregiver: %w", err)
	}
	return models.NewCaregiver(id.CaregiverID(cid), c), nil
}

func (s *SQLStore) FindByID(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error) {
	row := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(selectCaregivers+` WHERE id = ?`), int64(caregiverID))
	c, err := scanCaregiver(row)
	if err != nil {
		return nil, database.NotFound(fmt.Sprintf("find caregiver %s", caregiverID), err)
	}
	return c, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]*models.Caregiver, error) {
	return s.list(ctx, "list caregivers", selectCaregivers+` ORDER BY id`)
}

func (s *SQLStore) ListArchived(ctx context.Context) ([]*models.Caregiver, error) {
	return s.list(ctx, "list archived caregivers", selectCaregivers+` WHERE archived_on IS NOT NULL ORDER BY id`)
}

func (s *SQLStore) ListActive(ctx context.Context) ([]*models.Caregiver, error) {
	return s.list(ctx, "list active caregivers", selectCaregivers+` WHERE archived_on IS NULL ORDER BY id`)
}

func (s *SQLStore) Update(ctx context.Context, c *models.Caregiver) error {
	op := fmt.Sprintf("update caregiver %s", c.ID)
	res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(
		`UPDATE caregivers SET first_name = ?, surname = ?, phone_number = ? WHERE id = ?`),
		c.FirstName, c.Surname, c.PhoneNumber, int64(c.ID),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return database.ExpectAffected(op, res)
}

func (s *SQLStore) Delete(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error) {
	var deleted *models.Caregiver
	err := s.db.InTx(ctx, func(ctx context.Context) error {
		c, err := s.FindByID(ctx, caregiverID)
		if err != nil {
			return err
		}
		op := fmt.Sprintf("delete caregiver %s", caregiverID)
		res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`DELETE FROM caregivers WHERE id = ?`), int64(caregiverID))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := database.ExpectAffected(op, res); err != nil {
			return err
		}
		deleted = c
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *SQLStore) Archive(ctx context.Context, caregiverID id.CaregiverID, on time.Time) error {
	day := models.DateOf(on)
	return s.setArchivedOn(ctx, "archive", caregiverID, database.NullDate(&day))
}

func (s *SQLStore) Restore(ctx context.Context, caregiverID id.CaregiverID) error {
	return s.setArchivedOn(ctx, "restore", caregiverID, database.NullDate(nil))
}

func (s *SQLStore) setArchivedOn(ctx context.Context, verb string, caregiverID id.CaregiverID, on sql.NullString) error {
	op := fmt.Sprintf("%s caregiver %s", verb, caregiverID)
	res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`UPDATE caregivers SET archived_on = ? WHERE id = ?`), on, int64(caregiverID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return database.ExpectAffected(op, res)
}

func (s *SQLStore) list(ctx context.Context, op, query string, args ...any) ([]*models.Caregiver, error) {
	rows, err := s.db.Executor(ctx).QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return database.CollectRows(op, rows, scanCaregiver)
}

func scanCaregiver(row database.Scanner) (*models.Caregiver, error) {
	var (
		c          models.Caregiver
		cid        int64
		archivedOn sql.NullString
	)
	if err := row.Scan(&cid, &c.FirstName, &c.Surname, &c.PhoneNumber, &archivedOn); err != nil {
		return nil, err
	}
	c.ID = id.CaregiverID(cid)
	var err error
	if c.ArchivedOn, err = database.DateFromNull(archivedOn); err != nil {
		return nil, err
	}
	return &c, nil
}
