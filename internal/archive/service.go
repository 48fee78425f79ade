// Package archive implements the archive lifecycle of care records:
// archiving and restoring patients, caregivers and treatments, and the
// retention sweep that permanently deletes records whose retention period
// has run out.
package archive

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"

	"nhplus/internal/platform/metrics"
	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
	"nhplus/pkg/platform/sentinel"
	"nhplus/pkg/requestcontext"
)

var tracer = otel.Tracer("nhplus/archive")

type PatientStore interface {
	FindByID(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	ListArchived(ctx context.Context) ([]*models.Patient, error)
	Delete(ctx context.Context, patientID id.PatientID) (*models.Patient, error)
	Archive(ctx context.Context, patientID id.PatientID, on time.Time) error
	Restore(ctx context.Context, patientID id.PatientID) error
}

type CaregiverStore interface {
	FindByID(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error)
	ListArchived(ctx context.Context) ([]*models.Caregiver, error)
	Delete(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error)
	Archive(ctx context.Context, caregiverID id.CaregiverID, on time.Time) error
	Restore(ctx context.Context, caregiverID id.CaregiverID) error
}

type TreatmentStore interface {
	FindByID(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error)
	ListAll(ctx context.Context) ([]*models.Treatment, error)
	ListArchived(ctx context.Context) ([]*models.Treatment, error)
	Delete(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error)
	Archive(ctx context.Context, treatmentID id.TreatmentID, on time.Time) error
	Restore(ctx context.Context, treatmentID id.TreatmentID) error
}

// Service orchestrates archive, restore and retention for care records.
type Service struct {
	patients       PatientStore
	caregivers     CaregiverStore
	treatments     TreatmentStore
	retentionYears int
	logger         *slog.Logger
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRetentionYears overrides the retention period. Non-positive values
// are ignored.
func WithRetentionYears(years int) Option {
	return func(s *Service) {
		if years > 0 {
			s.retentionYears = years
		}
	}
}

func New(patients PatientStore, caregivers CaregiverStore, treatments TreatmentStore, opts ...Option) (*Service, error) {
	if patients == nil {
		return nil, errors.New("patient store is required")
	}
	if caregivers == nil {
		return nil, errors.New("caregiver store is required")
	}
	if treatments == nil {
		return nil, errors.New("treatment store is required")
	}
	s := &Service{
		patients:       patients,
		caregivers:     caregivers,
		treatments:     treatments,
		retentionYears: models.DefaultRetentionYears,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// RetentionYears reports the configured retention period.
func (s *Service) RetentionYears() int {
	return s.retentionYears
}

// lifecycle binds one record kind's store calls so archive and restore are
// written once for all three kinds.
type lifecycle[K ~int64, T any] struct {
	kind     models.Kind
	find     func(context.Context, K) (T, error)
	archive  func(context.Context, K, time.Time) error
	restore  func(context.Context, K) error
	archival func(T) *models.Archival
}

func (s *Service) ArchivePatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	return archiveRecord(ctx, s, s.patientLifecycle(), patientID)
}

func (s *Service) RestorePatient(ctx context.Context, patientID id.PatientID) (*models.Patient, error) {
	return restoreRecord(ctx, s, s.patientLifecycle(), patientID)
}

func (s *Service) ArchiveCaregiver(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error) {
	return archiveRecord(ctx, s, s.caregiverLifecycle(), caregiverID)
}

func (s *Service) RestoreCaregiver(ctx context.Context, caregiverID id.CaregiverID) (*models.Caregiver, error) {
	return restoreRecord(ctx, s, s.caregiverLifecycle(), caregiverID)
}

func (s *Service) ArchiveTreatment(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	return archiveRecord(ctx, s, s.treatmentLifecycle(), treatmentID)
}

func (s *Service) RestoreTreatment(ctx context.Context, treatmentID id.TreatmentID) (*models.Treatment, error) {
	return restoreRecord(ctx, s, s.treatmentLifecycle(), treatmentID)
}

func (s *Service) patientLifecycle() lifecycle[id.PatientID, *models.Patient] {
	return lifecycle[id.PatientID, *models.Patient]{
		kind:     models.KindPatient,
		find:     s.patients.FindByID,
		archive:  s.patients.Archive,
		restore:  s.patients.Restore,
		archival: func(p *models.Patient) *models.Archival { return &p.Archival },
	}
}

func (s *Service) caregiverLifecycle() lifecycle[id.CaregiverID, *models.Caregiver] {
	return lifecycle[id.CaregiverID, *models.Caregiver]{
		kind:     models.KindCaregiver,
		find:     s.caregivers.FindByID,
		archive:  s.caregivers.Archive,
		restore:  s.caregivers.Restore,
		archival: func(c *models.Caregiver) *models.Archival { return &c.Archival },
	}
}

func (s *Service) treatmentLifecycle() lifecycle[id.TreatmentID, *models.Treatment] {
	return lifecycle[id.TreatmentID, *models.Treatment]{
		kind:     models.KindTreatment,
		find:     s.treatments.FindByID,
		archive:  s.treatments.Archive,
		restore:  s.treatments.Restore,
		archival: func(t *models.Treatment) *models.Archival { return &t.Archival },
	}
}

// archiveRecord stamps today's date on an active record. Archiving an
// already archived record is a no-op that keeps the original date.
func archiveRecord[K ~int64, T any](ctx context.Context, s *Service, lc lifecycle[K, T], recordID K) (T, error) {
	var zero T
	rec, err := lc.find(ctx, recordID)
	if err != nil {
		return zero, s.translateLookup(ctx, lc.kind, int64(recordID), "archive", err)
	}
	a := lc.archival(rec)
	if a.IsArchived() {
		return rec, nil
	}

	today := models.DateOf(requestcontext.Now(ctx))
	if err := lc.archive(ctx, recordID, today); err != nil {
		return zero, s.translateLookup(ctx, lc.kind, int64(recordID), "archive", err)
	}
	a.ArchivedOn = &today

	s.logAudit(ctx, audit.EventRecordArchived, "kind", string(lc.kind), "id", int64(recordID),
		"archived_on", today.Format(time.DateOnly))
	if s.metrics != nil {
		s.metrics.IncrementArchived(string(lc.kind))
	}
	return rec, nil
}

// restoreRecord clears the archive date. Restoring an active record still
// performs the write; it is idempotent.
func restoreRecord[K ~int64, T any](ctx context.Context, s *Service, lc lifecycle[K, T], recordID K) (T, error) {
	var zero T
	rec, err := lc.find(ctx, recordID)
	if err != nil {
		return zero, s.translateLookup(ctx, lc.kind, int64(recordID), "restore", err)
	}
	if err := lc.restore(ctx, recordID); err != nil {
		return zero, s.translateLookup(ctx, lc.kind, int64(recordID), "restore", err)
	}
	lc.archival(rec).ClearArchived()

	s.logAudit(ctx, audit.EventRecordRestored, "kind", string(lc.kind), "id", int64(recordID))
	if s.metrics != nil {
		s.metrics.IncrementRestored(string(lc.kind))
	}
	return rec, nil
}

func (s *Service) translateLookup(ctx context.Context, kind models.Kind, recordID int64, verb string, err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.Newf(dErrors.CodeNotFound, "%s %d not found", kind, recordID)
	}
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "archive lifecycle write failed",
			"verb", verb, "kind", string(kind), "id", recordID, "error", err)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to "+verb+" "+string(kind))
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, attrs ...any) {
	audit.Log(ctx, s.logger, event, attrs...)
}
