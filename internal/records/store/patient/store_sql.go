package patient

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nhplus/internal/platform/database"
	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

const selectPatients = `SELECT id, first_name, surname, date_of_birth, care_level, room_number, archived_on FROM patients`

// SQLStore persists patients through database/sql. Queries are written
// with '?' and rebound for the connected dialect.
type SQLStore struct {
	db *database.DB
}

func NewSQL(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, c models.PatientCreation) (*models.Patient, error) {
	var pid int64
	err := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(
		`INSERT INTO patients (first_name, surname, date_of_birth, care_level, room_number, archived_on)
		 VALUES (?, ?, ?, ?, ?, ?) RETURNING id`),
		c.FirstName, c.Surname, database.FormatDate(c.DateOfBirth), c.CareLevel, c.RoomNumber,
		database.NullDate(c.ArchivedOn),
	).Scan(&pid)
	if err != nil {
		return nil, fmt.Errorf("insert patient: %w", err)
	}
	return models.NewPatient(id.PatientID(pid), c), nil
}

func (s *SQLStore) FindByID(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	row := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(selectPatients+` WHERE id = ?`), int64(patientID))
	p, err := scanPatient(row)
	if err != nil {
		return nil, database.NotFound(fmt.Sprintf("find patient %s", patientID), err)
	}
	return p, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]*models.Patient, error) {
	return s.list(ctx, "list patients", selectPatients+` ORDER BY id`)
}

func (s *SQLStore) ListArchived(ctx context.Context) ([]*models.Patient, error) {
	return s.list(ctx, "list archived patients", selectPatients+` WHERE archived_on IS NOT NULL ORDER BY id`)
}

func (s *SQLStore) ListActive(ctx context.Context) ([]*models.Patient, error) {
	return s.list(ctx, "list active patients", selectPatients+` WHERE archived_on IS NULL ORDER BY id`)
}

func (s *SQLStore) Update(ctx context.Context, p *models.Patient) error {
	res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(
		`UPDATE patients SET first_name = ?, surname = ?, date_of_birth = ?, care_level = ?, room_number = ?
		 WHERE id = ?`),
		p.FirstName, p.Surname, database.FormatDate(p.DateOfBirth), p.CareLevel, p.RoomNumber, int64(p.ID),
	)
	if err != nil {
		return fmt.Errorf("update patient %s: %w", p.ID, err)
	}
	return database.ExpectAffected(fmt.Sprintf("update patient %s", p.ID), res)
}

// Delete reads the row and removes it in one transaction so the caller
// gets back exactly what was deleted.
func (s *SQLStore) Delete(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	var deleted *models.Patient
	err := s.db.InTx(ctx, func(ctx context.Context) error {
		p, err := s.FindByID(ctx, patientID)
		if err != nil {
			return err
		}
		res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`DELETE FROM patients WHERE id = ?`), int64(patientID))
		if err != nil {
			return fmt.Errorf("delete patient %s: %w", patientID, err)
		}
		if err := database.ExpectAffected(fmt.Sprintf("delete patient %s", patientID), res); err != nil {
			return err
		}
		deleted = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *SQLStore) Archive(ctx context.Context, patientID id.PatientID, on time.Time) error {
	day := models.DateOf(on)
	return s.setArchivedOn(ctx, "archive", patientID, database.NullDate(&day))
}

func (s *SQLStore) Restore(ctx context.Context, patientID id.PatientID) error {
	return s.setArchivedOn(ctx, "restore", patientID, database.NullDate(nil))
}

func (s *SQLStore) setArchivedOn(ctx context.Context, verb string, patientID id.PatientID, on sql.NullString) error {
	op := fmt.Sprintf("%s patient %s", verb, patientID)
	res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`UPDATE patients SET archived_on = ? WHERE id = ?`), on, int64(patientID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return database.ExpectAffected(op, res)
}

func (s *SQLStore) list(ctx context.Context, op, query string, args ...any) ([]*models.Patient, error) {
	rows, err := s.db.Executor(ctx).QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return database.CollectRows(op, rows, scanPatient)
}

func scanPatient(row database.Scanner) (*models.Patient, error) {
	var (
		p          models.Patient
		pid        int64
		birth      string
		archivedOn sql.NullString
	)
	if err := row.Scan(&pid, &p.FirstName, &p.Surname, &birth, &p.CareLevel, &p.RoomNumber, &archivedOn); err != nil {
		return nil, err
	}
	p.ID = id.PatientID(pid)

	dob, err := database.ParseDate(birth)
	if err != nil {
		return nil, err
	}
	p.DateOfBirth = dob
	if p.ArchivedOn, err = database.DateFromNull(archivedOn); err != nil {
		return nil, err
	}
	return &p, nil
}
