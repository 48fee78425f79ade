package login

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"nhplus/internal/auth/lockout"
	"nhplus/internal/auth/password"
	"nhplus/internal/platform/config"
	"nhplus/internal/platform/logger"
	"nhplus/internal/platform/metrics"
	"nhplus/internal/records/models"
	"nhplus/internal/records/store/user"
	dErrors "nhplus/pkg/domain-errors"
	"nhplus/pkg/requestcontext"
)

// =============================================================================
// Login Service Test Suite
// =============================================================================
// Justification for unit tests: the service decides which verdict the lockout
// machine sees, so the empty-input rules and the audit trail of each outcome
// are verified here. The unlock timer is driven by hand.

type manualScheduler struct {
	pending []func()
}

type manualTimer struct{}

func (manualTimer) Stop() bool { return true }

func (m *manualScheduler) AfterFunc(_ time.Duration, f func()) lockout.Timer {
	m.pending = append(m.pending, f)
	return manualTimer{}
}

func (m *manualScheduler) fireLast() {
	m.pending[len(m.pending)-1]()
}

type LoginSuite struct {
	suite.Suite
	users     *user.InMemory
	scheduler *manualScheduler
	metrics   *metrics.Metrics
	logs      *bytes.Buffer
	service   *Service
	now       time.Time
}

func TestLoginSuite(t *testing.T) {
	suite.Run(t, new(LoginSuite))
}

func (s *LoginSuite) SetupTest() {
	s.users = user.NewInMemory()
	hash, err := password.HashWithCost("secret", bcrypt.MinCost)
	s.Require().NoError(err)
	_, err = s.users.Create(context.Background(), models.UserCreation{Username: "admin", PasswordHash: hash})
	s.Require().NoError(err)

	s.scheduler = &manualScheduler{}
	s.metrics = metrics.New()
	s.logs = &bytes.Buffer{}
	s.service, err = New(s.users,
		WithLogger(logger.NewWithWriter(s.logs, config.LogConfig{Level: "info", Format: "json"})),
		WithMetrics(s.metrics),
		WithScheduler(s.scheduler),
		WithLockoutConfig(lockout.Config{MaxAttempts: 3, Duration: 2 * time.Minute, ResetOnSuccess: true}),
	)
	s.Require().NoError(err)
	s.now = time.Date(2026, time.October, 19, 8, 0, 0, 0, time.UTC)
}

func (s *LoginSuite) login(offset time.Duration, username, pw string) lockout.Result {
	ctx := requestcontext.WithTime(context.Background(), s.now.Add(offset))
	res, err := s.service.Login(ctx, username, pw)
	s.Require().NoError(err)
	return res
}

func (s *LoginSuite) TestNew() {
	s.Run("requires a user store", func() {
		_, err := New(nil)
		s.Require().Error(err)
	})
}

func (s *LoginSuite) TestAccepted() {
	res := s.login(0, "admin", "secret")
	s.Equal(lockout.OutcomeAccepted, res.Outcome)
	s.Empty(Message(res.Outcome))
	s.Contains(s.logs.String(), `"event":"login_succeeded"`)
	s.Contains(s.logs.String(), `"actor":"admin"`)
	s.Equal(1.0, testutil.ToFloat64(s.metrics.LoginAttempts.WithLabelValues("accepted")))
}

func (s *LoginSuite) TestUnknownAndEmptyUsernames() {
	for _, name := range []string{"", "nobody"} {
		res := s.login(0, name, "secret")
		s.Equal(lockout.OutcomeUnknownUser, res.Outcome)
		s.Equal(MessageInvalidUsername, Message(res.Outcome))
	}
	s.Zero(s.service.Status().Failures)
	s.Contains(s.logs.String(), `"reason":"unknown_user"`)
}

func (s *LoginSuite) TestEmptyPasswordCountsAsWrong() {
	res := s.login(0, "admin", "")
	s.Equal(lockout.OutcomeWrongPassword, res.Outcome)
	s.Equal(MessageWrongPassword, Message(res.Outcome))
	s.Equal(1, s.service.Status().Failures)
}

func (s *LoginSuite) TestLockoutScenario() {
	s.login(0, "admin", "wrong")
	s.login(time.Second, "admin", "wrong")
	third := s.login(2*time.Second, "admin", "wrong")

	s.Equal(lockout.OutcomeLockedOut, third.Outcome)
	s.True(third.Triggered)
	s.Equal(MessageLockedOut, Message(third.Outcome))
	s.Equal(1.0, testutil.ToFloat64(s.metrics.Lockouts))
	s.Contains(s.logs.String(), `"event":"auth_lockout_triggered"`)

	s.Run("correct credentials are rejected while locked out", func() {
		res := s.login(time.Minute, "admin", "secret")
		s.Equal(lockout.OutcomeLockedOut, res.Outcome)
		s.False(res.Triggered)
		s.Contains(s.logs.String(), `"event":"auth_lockout_rejected"`)
	})

	s.Run("after the window a correct login succeeds and clears the counter", func() {
		res := s.login(2*time.Minute+2*time.Second, "admin", "secret")
		s.Equal(lockout.OutcomeAccepted, res.Outcome)
		s.Zero(res.Failures)
	})
}

func (s *LoginSuite) TestTimerClearsLockout() {
	for i := 0; i < 3; i++ {
		s.login(0, "admin", "wrong")
	}
	s.Equal(lockout.StateLockedOut, s.service.Status().State)

	s.scheduler.fireLast()

	s.Equal(lockout.StateNormal, s.service.Status().State)
	s.Contains(s.logs.String(), `"event":"auth_lockout_cleared"`)
}

type failingUsers struct{ err error }

func (f failingUsers) Exists(context.Context, string) (bool, error) { return false, f.err }
func (f failingUsers) IsPasswordCorrect(context.Context, string, string) (bool, error) {
	return false, f.err
}

func TestLoginStoreFailure(t *testing.T) {
	boom := errors.New("database is locked")
	svc, err := New(failingUsers{err: boom})
	require.NoError(t, err)
	defer svc.Close()

	_, err = svc.Login(context.Background(), "admin", "secret")
	require.ErrorIs(t, err, boom)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
	assert.Zero(t, svc.Status().Failures)
}
