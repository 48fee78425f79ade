package treatment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"nhplus/internal/platform/database"
	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

const selectTreatments = `SELECT id, patient_id, treatment_date, begin_time, end_time, description, remarks,
	caregiver_id, medicine_id, archived_on FROM treatments`

type SQLStore struct {
	db *database.DB
}

func NewSQL(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, c models.TreatmentCreation) (*models.Treatment, error) {
	var tid int64
	err := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(
		`INSERT INTO treatments (patient_id, treatment_date, begin_time, end_time, description, remarks,
		 caregiver_id, medicine_id, archived_on)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) RETURNING id`),
		int64(c.PatientID), database.FormatDate(c.Date), c.Begin, c.End, c.Description, c.Remarks,
		database.NullID(int64(c.CaregiverID)), database.NullID(int64(c.MedicineID)), database.NullDate(c.ArchivedOn),
	).Scan(&tid)
	if err != nil {
		return nil, fmt.Errorf("insert treatment: %w", err)
	}
	return models.NewTreatment(id.TreatmentID(tid), c), nil
}

func (s *SQLStore) FindByID(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	row := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(selectTreatments+` WHERE id = ?`), int64(treatmentID))
	t, err := scanTreatment(row)
	if err != nil {
		return nil, database.NotFound(fmt.Sprintf("find treatment %s", treatmentID), err)
	}
	return t, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]*models.Treatment, error) {
	return s.list(ctx, "list treatments", selectTreatments+` ORDER BY id`)
}

func (s *SQLStore) ListArchived(ctx context.Context) ([]*models.Treatment, error) {
	return s.list(ctx, "list archived treatments", selectTreatments+` WHERE archived_on IS NOT NULL ORDER BY id`)
}

func (s *SQLStore) ListActive(ctx context.Context) ([]*models.Treatment, error) {
	return s.list(ctx, "list active treatments", selectTreatments+` WHERE archived_on IS NULL ORDER BY id`)
}

func (s *SQLStore) ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Treatment, error) {
	return s.list(ctx, fmt.Sprintf("list treatments of patient %s", patientID),
		selectTreatments+` WHERE patient_id = ? ORDER BY id`, int64(patientID))
}

func (s *SQLStore) Update(ctx context.Context, t *models.Treatment) error {
	op := fmt.Sprintf("update treatment %s", t.ID)
	res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(
		`UPDATE treatments SET patient_id = ?, treatment_date = ?, begin_time = ?, end_time = ?, description = ?,
		 remarks = ?, caregiver_id = ?, medicine_id = ? WHERE id = ?`),
		int64(t.PatientID), database.FormatDate(t.Date), t.Begin, t.End, t.Description, t.Remarks,
		database.NullID(int64(t.CaregiverID)), database.NullID(int64(t.MedicineID)), int64(t.ID),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return database.ExpectAffected(op, res)
}

func (s *SQLStore) Delete(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	var deleted *models.Treatment
	err := s.db.InTx(ctx, func(ctx context.Context) error {
		t, err := s.FindByID(ctx, treatmentID)
		if err != nil {
			return err
		}
		op := fmt.Sprintf("delete treatment %s", treatmentID)
		res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`DELETE FROM treatments WHERE id = ?`), int64(treatmentID))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := database.ExpectAffected(op, res); err != nil {
			return err
		}
		deleted = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (s *SQLStore) Archive(ctx context.Context, treatmentID id.TreatmentID, on time.Time) error {
	day := models.DateOf(on)
	return s.setArchivedOn(ctx, "archive", treatmentID, database.NullDate(&day))
}

func (s *SQLStore) Restore(ctx context.Context, treatmentID id.TreatmentID) error {
	return s.setArchivedOn(ctx, "restore", treatmentID, database.NullDate(nil))
}

func (s *SQLStore) setArchivedOn(ctx context.Context, verb string, treatmentID id.TreatmentID, on sql.NullString) error {
	op := fmt.Sprintf("%s treatment %s", verb, treatmentID)
	res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`UPDATE treatments SET archived_on = ? WHERE id = ?`), on, int64(treatmentID))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return database.ExpectAffected(op, res)
}

func (s *SQLStore) list(ctx context.Context, op, query string, args ...any) ([]*models.Treatment, error) {
	rows, err := s.db.Executor(ctx).QueryContext(ctx, s.db.Rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return database.CollectRows(op, rows, scanTreatment)
}

func scanTreatment(row database.Scanner) (*models.Treatment, error) {
	var (
		t           models.Treatment
		tid, pid    int64
		day         string
		caregiverID sql.NullInt64
		medicineID  sql.NullInt64
		archivedOn  sql.NullString
	)
	if err := row.Scan(&tid, &pid, &day, &t.Begin, &t.End, &t.Description, &t.Remarks,
		&caregiverID, &medicineID, &archivedOn); err != nil {
		return nil, err
	}
	t.ID = id.TreatmentID(tid)
	t.PatientID = id.PatientID(pid)
	t.CaregiverID = id.CaregiverID(caregiverID.Int64)
	t.MedicineID = id.MedicineID(medicineID.Int64)

	date, err := database.ParseDate(day)
	if err != nil {
		return nil, err
	}
	t.Date = date
	if t.ArchivedOn, err = database.DateFromNull(archivedOn); err != nil {
		return nil, err
	}
	return &t, nil
}
