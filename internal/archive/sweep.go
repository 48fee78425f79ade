package archive

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"nhplus/internal/records/models"
	id "nhplus/pkg/domain"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
	"nhplus/pkg/platform/sentinel"
	"nhplus/pkg/requestcontext"
)

// SweepResult counts the rows deleted per kind.
type SweepResult struct {
	Patients   int
	Caregivers int
	Treatments int
}

func (r SweepResult) Total() int {
	return r.Patients + r.Caregivers + r.Treatments
}

// Sweep deletes expired patients, caregivers and treatments in that order.
// All three phases judge against the same "now". On failure the counts of
// rows already deleted are returned together with the error.
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	start := time.Now()
	ctx = requestcontext.WithTime(ctx, requestcontext.Now(ctx))
	ctx, span := tracer.Start(ctx, "archive.Sweep",
		trace.WithAttributes(attribute.Int("retention_years", s.retentionYears)))
	defer span.End()
	if s.metrics != nil {
		defer s.metrics.ObserveSweep(start)
	}

	var result SweepResult
	var err error
	if result.Patients, err = s.DeleteOldPatients(ctx); err != nil {
		return result, s.abortSweep(ctx, span, result, err)
	}
	if result.Caregivers, err = s.DeleteOldCaregivers(ctx); err != nil {
		return result, s.abortSweep(ctx, span, result, err)
	}
	if result.Treatments, err = s.DeleteOldTreatments(ctx); err != nil {
		return result, s.abortSweep(ctx, span, result, err)
	}

	span.SetAttributes(attribute.Int("deleted_total", result.Total()))
	span.SetStatus(codes.Ok, "")
	s.logAudit(ctx, audit.EventSweepCompleted,
		"patients", result.Patients, "caregivers", result.Caregivers, "treatments", result.Treatments,
		"duration", time.Since(start))
	return result, nil
}

func (s *Service) abortSweep(ctx context.Context, span trace.Span, result SweepResult, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	s.logAudit(ctx, audit.EventSweepAborted,
		"patients", result.Patients, "caregivers", result.Caregivers, "treatments", result.Treatments,
		"error", err.Error())
	return err
}

// DeleteOldPatients deletes archived patients past retention that no
// surviving treatment references. A treatment survives when it is not
// itself deletable.
func (s *Service) DeleteOldPatients(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "archive.DeleteOldPatients")
	defer span.End()
	now := requestcontext.Now(ctx)

	var (
		patients   []*models.Patient
		treatments []*models.Treatment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		patients, err = s.patients.ListArchived(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		treatments, err = s.treatments.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, s.sweepFailure(ctx, span, models.KindPatient, 0, "load retention snapshot", err)
	}

	pinned := pinnedPatients(treatments, now, s.retentionYears)
	deleted := 0
	for _, p := range patients {
		if !p.CanBeDeletedAt(now, s.retentionYears) || pinned[p.ID] {
			continue
		}
		ok, err := s.purge(ctx, models.KindPatient, int64(p.ID), func() error {
			_, err := s.patients.Delete(ctx, p.ID)
			return err
		})
		if err != nil {
			return deleted, s.sweepFailure(ctx, span, models.KindPatient, deleted, "delete patient", err)
		}
		if ok {
			deleted++
		}
	}
	s.finishPhase(span, models.KindPatient, deleted)
	return deleted, nil
}

// DeleteOldCaregivers applies the patient rule keyed on caregiver ids.
// Treatments without a caregiver pin nobody.
func (s *Service) DeleteOldCaregivers(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "archive.DeleteOldCaregivers")
	defer span.End()
	now := requestcontext.Now(ctx)

	var (
		caregivers []*models.Caregiver
		treatments []*models.Treatment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		caregivers, err = s.caregivers.ListArchived(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		treatments, err = s.treatments.ListAll(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return 0, s.sweepFailure(ctx, span, models.KindCaregiver, 0, "load retention snapshot", err)
	}

	pinned := pinnedCaregivers(treatments, now, s.retentionYears)
	deleted := 0
	for _, c := range caregivers {
		if !c.CanBeDeletedAt(now, s.retentionYears) || pinned[c.ID] {
			continue
		}
		ok, err := s.purge(ctx, models.KindCaregiver, int64(c.ID), func() error {
			_, err := s.caregivers.Delete(ctx, c.ID)
			return err
		})
		if err != nil {
			return deleted, s.sweepFailure(ctx, span, models.KindCaregiver, deleted, "delete caregiver", err)
		}
		if ok {
			deleted++
		}
	}
	s.finishPhase(span, models.KindCaregiver, deleted)
	return deleted, nil
}

// DeleteOldTreatments deletes every treatment past retention. Nothing pins
// a treatment.
func (s *Service) DeleteOldTreatments(ctx context.Context) (int, error) {
	ctx, span := tracer.Start(ctx, "archive.DeleteOldTreatments")
	defer span.End()
	now := requestcontext.Now(ctx)

	treatments, err := s.treatments.ListArchived(ctx)
	if err != nil {
		return 0, s.sweepFailure(ctx, span, models.KindTreatment, 0, "load retention snapshot", err)
	}

	deleted := 0
	for _, t := range treatments {
		if !t.CanBeDeletedAt(now, s.retentionYears) {
			continue
		}
		ok, err := s.purge(ctx, models.KindTreatment, int64(t.ID), func() error {
			_, err := s.treatments.Delete(ctx, t.ID)
			return err
		})
		if err != nil {
			return deleted, s.sweepFailure(ctx, span, models.KindTreatment, deleted, "delete treatment", err)
		}
		if ok {
			deleted++
		}
	}
	s.finishPhase(span, models.KindTreatment, deleted)
	return deleted, nil
}

// purge runs one delete. A row that vanished since the snapshot was taken
// reports false without an error.
func (s *Service) purge(ctx context.Context, kind models.Kind, recordID int64, del func() error) (bool, error) {
	if err := del(); err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			if s.logger != nil {
				s.logger.DebugContext(ctx, "record vanished before purge", "kind", string(kind), "id", recordID)
			}
			return false, nil
		}
		return false, err
	}
	s.logAudit(ctx, audit.EventRecordPurged, "kind", string(kind), "id", recordID)
	if s.metrics != nil {
		s.metrics.AddPurged(string(kind), 1)
	}
	return true, nil
}

func (s *Service) finishPhase(span trace.Span, kind models.Kind, deleted int) {
	span.SetAttributes(attribute.String("kind", string(kind)), attribute.Int("deleted", deleted))
	span.SetStatus(codes.Ok, "")
}

func (s *Service) sweepFailure(ctx context.Context, span trace.Span, kind models.Kind, deleted int, step string, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, step)
	if s.logger != nil {
		s.logger.ErrorContext(ctx, "retention sweep failed",
			"kind", string(kind), "step", step, "deleted_before_failure", deleted, "error", err)
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "retention sweep failed: "+step)
}

// pinnedPatients collects the patients referenced by treatments that are
// not deletable themselves.
func pinnedPatients(treatments []*models.Treatment, now time.Time, years int) map[id.PatientID]bool {
	pinned := make(map[id.PatientID]bool)
	for _, t := range treatments {
		if !t.CanBeDeletedAt(now, years) {
			pinned[t.PatientID] = true
		}
	}
	return pinned
}

func pinnedCaregivers(treatments []*models.Treatment, now time.Time, years int) map[id.CaregiverID]bool {
	pinned := make(map[id.CaregiverID]bool)
	for _, t := range treatments {
		if t.CaregiverID.IsZero() {
			continue
		}
		if !t.CanBeDeletedAt(now, years) {
			pinned[t.CaregiverID] = true
		}
	}
	return pinned
}
