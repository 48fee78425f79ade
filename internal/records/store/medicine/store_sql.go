package medicine

import (
	"context"
	"fmt"

	"nhplus/internal/platform/database"
	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
)

const selectMedicines = `SELECT id, name, storage_location, expiration_date FROM medicines`

type SQLStore struct {
	db *database.DB
}

func NewSQL(db *database.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, c models.MedicineCreation) (*models.Medicine, error) {
	var mid int64
	err := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(
		`INSERT INTO medicines (name, storage_location, expiration_date) VALUES (?, ?, ?) RETURNING id`),
		c.Name, c.StorageLocation, database.FormatDate(c.ExpirationDate),
	).Scan(&mid)
	if err != nil {
		return nil, fmt.Errorf("insert medicine: %w", err)
	}
	return models.NewMedicine(id.MedicineID(mid), c), nil
}

func (s *SQLStore) FindByID(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error) {
	row := s.db.Executor(ctx).QueryRowContext(ctx, s.db.Rebind(selectMedicines+` WHERE id = ?`), int64(medicineID))
	m, err := scanMedicine(row)
	if err != nil {
		return nil, database.NotFound(fmt.Sprintf("find medicine %s", medicineID), err)
	}
	return m, nil
}

func (s *SQLStore) ListAll(ctx context.Context) ([]*models.Medicine, error) {
	const op = "list medicines"
	rows, err := s.db.Executor(ctx).QueryContext(ctx, selectMedicines+` ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return database.CollectRows(op, rows, scanMedicine)
}

func (s *SQLStore) Delete(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error) {
	var deleted *models.Medicine
	err := s.db.InTx(ctx, func(ctx context.Context) error {
		m, err := s.FindByID(ctx, medicineID)
		if err != nil {
			return err
		}
		op := fmt.Sprintf("delete medicine %s", medicineID)
		res, err := s.db.Executor(ctx).ExecContext(ctx, s.db.Rebind(`DELETE FROM medicines WHERE id = ?`), int64(medicineID))
		if err != nil {
			return fmt.Errorf("%s: %w", op, err)
		}
		if err := database.ExpectAffected(op, res); err != nil {
			return err
		}
		deleted = m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func scanMedicine(row database.Scanner) (*models.Medicine, error) {
	var (
		m       models.Medicine
		mid     int64
		expires string
	)
	if err := row.Scan(&mid, &m.Name, &m.StorageLocation, &expires); err != nil {
		return nil, err
	}
	m.ID = id.MedicineID(mid)
	d, err := database.ParseDate(expires)
	if err != nil {
		return nil, err
	}
	m.ExpirationDate = d
	return &m, nil
}
