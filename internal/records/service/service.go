// Package service implements record keeping for patients, caregivers,
// treatments, medicines and user accounts. Inputs are validated here and
// never reach the stores malformed. Archiving lives in internal/archive;
// this package only refuses to edit archived records.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
	"nhplus/pkg/platform/sentinel"
)

type PatientStore interface {
	Create(ctx context.Context, c models.PatientCreation) (*models.Patient, error)
	FindByID(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	ListAll(ctx context.Context) ([]*models.Patient, error)
	ListArchived(ctx context.Context) ([]*models.Patient, error)
	ListActive(ctx context.Context) ([]*models.Patient, error)
	Update(ctx context.Context, p *models.Patient) error
}

type CaregiverStore interface {
	Create(ctx context.Context, c models.CaregiverCreation) (*models.Caregiver, error)
	FindByID(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error)
	ListAll(ctx context.Context) ([]*models.Caregiver, error)
	ListArchived(ctx context.Context) ([]*models.Caregiver, error)
	ListActive(ctx context.Context) ([]*models.Caregiver, error)
	Update(ctx context.Context, c *models.Caregiver) error
}

type TreatmentStore interface {
	Create(ctx context.Context, c models.TreatmentCreation) (*models.Treatment, error)
	FindByID(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error)
	ListAll(ctx context.Context) ([]*models.Treatment, error)
	ListArchived(ctx context.Context) ([]*models.Treatment, error)
	ListActive(ctx context.Context) ([]*models.Treatment, error)
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Treatment, error)
	Update(ctx context.Context, t *models.Treatment) error
}

type MedicineStore interface {
	Create(ctx context.Context, c models.MedicineCreation) (*models.Medicine, error)
	FindByID(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error)
	ListAll(ctx context.Context) ([]*models.Medicine, error)
	Delete(ctx context.Context, medicineID id.MedicineID) (*models.Medicine, error)
}

type UserStore interface {
	Create(ctx context.Context, c models.UserCreation) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
}

// Filter selects records by archive state.
type Filter int

const (
	FilterActive Filter = iota
	FilterArchived
	FilterAll
)

// Stores groups the persistence dependencies of the service.
type Stores struct {
	Patients   PatientStore
	Caregivers CaregiverStore
	Treatments TreatmentStore
	Medicines  MedicineStore
	Users      UserStore
}

type Service struct {
	patients   PatientStore
	caregivers CaregiverStore
	treatments TreatmentStore
	medicines  MedicineStore
	users      UserStore
	hashCost   int
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithHashCost sets the bcrypt work factor for new passwords.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.hashCost = cost
	}
}

func New(stores Stores, opts ...Option) (*Service, error) {
	switch {
	case stores.Patients == nil:
		return nil, errors.New("patient store is required")
	case stores.Caregivers == nil:
		return nil, errors.New("caregiver store is required")
	case stores.Treatments == nil:
		return nil, errors.New("treatment store is required")
	case stores.Medicines == nil:
		return nil, errors.New("medicine store is required")
	case stores.Users == nil:
		return nil, errors.New("user store is required")
	}
	s := &Service{
		patients:   stores.Patients,
		caregivers: stores.Caregivers,
		treatments: stores.Treatments,
		medicines:  stores.Medicines,
		users:      stores.Users,
		hashCost:   bcrypt.DefaultCost,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// listBy dispatches a filter to the matching store listing.
func listBy[T any](ctx context.Context, f Filter, active, archived, all func(context.Context) ([]T, error)) ([]T, error) {
	var (
		out []T
		err error
	)
	switch f {
	case FilterArchived:
		out, err = archived(ctx)
	case FilterAll:
		out, err = all(ctx)
	default:
		out, err = active(ctx)
	}
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "list records")
	}
	return out, nil
}

// lookupError maps a store lookup failure to a coded error.
func (s *Service) lookupError(ctx context.Context, kind string, recordID int64, err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "%s %d not found", kind, recordID)
	}
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "record lookup failed", "kind", kind, "id", recordID, "error", err)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, fmt.Sprintf("load %s %d", kind, recordID))
}

func readOnly(kind models.Kind, recordID int64, on *time.Time) error {
	return dErrors.Newf(dErrors.CodeInvariantViolation,
		"%s %d was archived on %s and is read-only", kind, recordID, on.Format(time.DateOnly))
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, attrs ...any) {
	audit.Log(ctx, s.logger, event, attrs...)
}
