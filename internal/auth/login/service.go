// Package login authenticates users against the user store and applies the
// lockout policy to every attempt.
package login

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"nhplus/internal/auth/lockout"
	"nhplus/internal/platform/metrics"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/platform/audit"
	"nhplus/pkg/requestcontext"
)

// UserStore is the credential lookup the service needs.
type UserStore interface {
	Exists(ctx context.Context, username string) (bool, error)
	IsPasswordCorrect(ctx context.Context, username, plaintext string) (bool, error)
}

const (
	MessageInvalidUsername = "Invalid username"
	MessageWrongPassword   = "Wrong password"
	MessageLockedOut       = "Too many wrong passwords! Please wait"
)

// Message returns the user-facing text for a rejected attempt, or "" for an
// accepted one.
func Message(outcome lockout.Outcome) string {
	switch outcome {
	case lockout.OutcomeUnknownUser:
		return MessageInvalidUsername
	case lockout.OutcomeWrongPassword:
		return MessageWrongPassword
	case lockout.OutcomeLockedOut:
		return MessageLockedOut
	default:
		return ""
	}
}

type Service struct {
	users     UserStore
	lockout   lockout.Config
	scheduler lockout.Scheduler
	machine   *lockout.Machine
	logger    *slog.Logger
	metrics   *metrics.Metrics
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

func WithLockoutConfig(cfg lockout.Config) Option {
	return func(s *Service) {
		s.lockout = cfg
	}
}

// WithScheduler replaces the timer source of the lockout machine.
func WithScheduler(sch lockout.Scheduler) Option {
	return func(s *Service) {
		s.scheduler = sch
	}
}

func New(users UserStore, opts ...Option) (*Service, error) {
	if users == nil {
		return nil, errors.New("user store is required")
	}
	s := &Service{
		users:   users,
		lockout: lockout.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.machine = lockout.New(
		lockout.WithConfig(s.lockout),
		lockout.WithScheduler(s.scheduler),
		lockout.WithOnUnlock(func() {
			s.logAudit(context.Background(), audit.EventAuthLockoutCleared)
		}),
	)
	return s, nil
}

// Login evaluates one attempt. Rejections are reported through the result's
// outcome; an error means the credential store failed and the attempt was
// not counted.
func (s *Service) Login(ctx context.Context, username, password string) (lockout.Result, error) {
	now := requestcontext.Now(ctx)

	res, err := s.machine.Attempt(now, func() (lockout.Verdict, error) {
		return s.verify(ctx, username, password)
	})
	if err != nil {
		if s.logger != nil {
			s.logger.ErrorContext(ctx, "credential check failed", "username", username, "error", err)
		}
		return lockout.Result{}, dErrors.Wrap(err, dErrors.CodeInternal, "credential check failed")
	}

	if s.metrics != nil {
		s.metrics.IncrementLoginAttempt(res.Outcome.String())
		if res.Triggered {
			s.metrics.IncrementLockouts()
		}
	}

	switch {
	case res.Outcome == lockout.OutcomeAccepted:
		s.logAudit(requestcontext.WithActor(ctx, username), audit.EventLoginSucceeded, "username", username)
	case res.Triggered:
		s.logAudit(ctx, audit.EventAuthLockoutTriggered,
			"username", username, "failures", res.Failures, "retry_after", res.RetryAfter.String())
	case res.Outcome == lockout.OutcomeLockedOut:
		s.logAudit(ctx, audit.EventAuthLockoutRejected,
			"username", username, "retry_after", res.RetryAfter.Round(time.Second).String())
	default:
		s.logAudit(ctx, audit.EventAuthFailed,
			"username", username, "reason", res.Outcome.String(), "failures", res.Failures)
	}
	return res, nil
}

// Status exposes the lockout machine's current state.
func (s *Service) Status() lockout.Status {
	return s.machine.Status()
}

// Close cancels a pending unlock timer.
func (s *Service) Close() {
	s.machine.Close()
}

// verify treats an empty username as unknown and an empty password as wrong
// without consulting the store for the password.
func (s *Service) verify(ctx context.Context, username, password string) (lockout.Verdict, error) {
	if username == "" {
		return lockout.VerdictUnknownUser, nil
	}
	exists, err := s.users.Exists(ctx, username)
	if err != nil {
		return 0, err
	}
	if !exists {
		return lockout.VerdictUnknownUser, nil
	}
	if password == "" {
		return lockout.VerdictWrongPassword, nil
	}
	ok, err := s.users.IsPasswordCorrect(ctx, username, password)
	if err != nil {
		return 0, err
	}
	if !ok {
		return lockout.VerdictWrongPassword, nil
	}
	return lockout.VerdictCorrect, nil
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, attrs ...any) {
	audit.Log(ctx, s.logger, event, attrs...)
}
