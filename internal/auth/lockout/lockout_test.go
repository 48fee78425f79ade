package lockout

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nhplus/pkg/testutil"
)

// fakeScheduler records armed timers so tests decide when they fire.
type fakeScheduler struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	fn      func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	wasActive := !t.stopped
	t.stopped = true
	return wasActive
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &fakeTimer{d: d, fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *fakeScheduler) last() *fakeTimer {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.timers) == 0 {
		return nil
	}
	return s.timers[len(s.timers)-1]
}

// fire runs a timer callback even if it was stopped, the way a real timer
// can race with Stop.
func (t *fakeTimer) fire() { t.fn() }

func verdict(v Verdict) func() (Verdict, error) {
	return func() (Verdict, error) { return v, nil }
}

var t0 = time.Date(2026, time.October, 19, 9, 0, 0, 0, time.UTC)

func newMachine(s *fakeScheduler, opts ...Option) *Machine {
	return New(append([]Option{WithScheduler(s)}, opts...)...)
}

func TestLockoutStateMachine(t *testing.T) {
	testutil.Given(t, "a machine with the default configuration", func(t *testing.T) {
		testutil.When(t, "a known user enters a wrong password three times", func(t *testing.T) {
			s := &fakeScheduler{}
			m := newMachine(s)

			r1, err := m.Attempt(t0, verdict(VerdictWrongPassword))
			require.NoError(t, err)
			r2, err := m.Attempt(t0.Add(time.Second), verdict(VerdictWrongPassword))
			require.NoError(t, err)
			r3, err := m.Attempt(t0.Add(2*time.Second), verdict(VerdictWrongPassword))
			require.NoError(t, err)

			testutil.Then(t, "the first two attempts report a wrong password", func(t *testing.T) {
				assert.Equal(t, OutcomeWrongPassword, r1.Outcome)
				assert.Equal(t, 1, r1.Failures)
				assert.Equal(t, OutcomeWrongPassword, r2.Outcome)
				assert.Equal(t, 2, r2.Failures)
			})
			testutil.Then(t, "the third attempt triggers the lockout", func(t *testing.T) {
				assert.Equal(t, OutcomeLockedOut, r3.Outcome)
				assert.True(t, r3.Triggered)
				assert.Equal(t, 2*time.Minute, r3.RetryAfter)

				st := m.Status()
				assert.Equal(t, StateLockedOut, st.State)
				assert.Equal(t, t0.Add(2*time.Second), st.LockoutStart)
			})
			testutil.Then(t, "an unlock timer is armed for the lockout duration", func(t *testing.T) {
				require.NotNil(t, s.last())
				assert.Equal(t, 2*time.Minute, s.last().d)
			})
		})

		testutil.When(t, "unknown usernames are entered", func(t *testing.T) {
			m := newMachine(&fakeScheduler{})
			for i := 0; i < 5; i++ {
				r, err := m.Attempt(t0, verdict(VerdictUnknownUser))
				require.NoError(t, err)
				assert.Equal(t, OutcomeUnknownUser, r.Outcome)
			}

			testutil.Then(t, "they never count toward the lockout", func(t *testing.T) {
				st := m.Status()
				assert.Equal(t, StateNormal, st.State)
				assert.Zero(t, st.Failures)
			})
		})
	})
}

func TestLockedOutAttempts(t *testing.T) {
	s := &fakeScheduler{}
	m := newMachine(s)
	for i := 0; i < 3; i++ {
		_, err := m.Attempt(t0, verdict(VerdictWrongPassword))
		require.NoError(t, err)
	}

	t.Run("credentials are not checked while locked out", func(t *testing.T) {
		called := false
		r, err := m.Attempt(t0.Add(30*time.Second), func() (Verdict, error) {
			called = true
			return VerdictCorrect, nil
		})
		require.NoError(t, err)
		assert.False(t, called)
		assert.Equal(t, OutcomeLockedOut, r.Outcome)
		assert.False(t, r.Triggered)
		assert.Equal(t, 90*time.Second, r.RetryAfter)
	})

	t.Run("timer expiry returns the machine to normal", func(t *testing.T) {
		unlocked := 0
		m := newMachine(s, WithOnUnlock(func() { unlocked++ }))
		for i := 0; i < 3; i++ {
			_, _ = m.Attempt(t0, verdict(VerdictWrongPassword))
		}
		s.last().fire()

		st := m.Status()
		assert.Equal(t, StateNormal, st.State)
		assert.Zero(t, st.Failures)
		assert.True(t, st.LockoutStart.IsZero())
		assert.Equal(t, 1, unlocked)

		r, err := m.Attempt(t0.Add(time.Second), verdict(VerdictCorrect))
		require.NoError(t, err)
		assert.Equal(t, OutcomeAccepted, r.Outcome)
	})

	t.Run("an elapsed lockout ends on the next attempt even without the timer", func(t *testing.T) {
		s := &fakeScheduler{}
		m := newMachine(s)
		for i := 0; i < 3; i++ {
			_, _ = m.Attempt(t0, verdict(VerdictWrongPassword))
		}
		armed := s.last()

		r, err := m.Attempt(t0.Add(2*time.Minute), verdict(VerdictCorrect))
		require.NoError(t, err)
		assert.Equal(t, OutcomeAccepted, r.Outcome)
		assert.True(t, armed.stopped, "the pending timer is cancelled")
	})
}

func TestSupersededTimerIsIgnored(t *testing.T) {
	s := &fakeScheduler{}
	m := newMachine(s)

	for i := 0; i < 3; i++ {
		_, _ = m.Attempt(t0, verdict(VerdictWrongPassword))
	}
	first := s.last()

	// Lockout elapses and a new one starts before the first callback runs.
	after := t0.Add(3 * time.Minute)
	for i := 0; i < 3; i++ {
		_, _ = m.Attempt(after, verdict(VerdictWrongPassword))
	}
	second := s.last()
	require.NotSame(t, first, second)

	first.fire()
	assert.Equal(t, StateLockedOut, m.Status().State, "stale timer must not end the new lockout")

	second.fire()
	assert.Equal(t, StateNormal, m.Status().State)
}

func TestResetOnSuccess(t *testing.T) {
	cases := []struct {
		name           string
		resetOnSuccess bool
		wantOutcome    Outcome
	}{
		{name: "reset enabled", resetOnSuccess: true, wantOutcome: OutcomeWrongPassword},
		{name: "reset disabled", resetOnSuccess: false, wantOutcome: OutcomeLockedOut},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := newMachine(&fakeScheduler{}, WithConfig(Config{
				MaxAttempts:    3,
				Duration:       time.Minute,
				ResetOnSuccess: tc.resetOnSuccess,
			}))

			_, _ = m.Attempt(t0, verdict(VerdictWrongPassword))
			_, _ = m.Attempt(t0, verdict(VerdictWrongPassword))
			ok, err := m.Attempt(t0, verdict(VerdictCorrect))
			require.NoError(t, err)
			assert.Equal(t, OutcomeAccepted, ok.Outcome)

			r, err := m.Attempt(t0, verdict(VerdictWrongPassword))
			require.NoError(t, err)
			assert.Equal(t, tc.wantOutcome, r.Outcome)
		})
	}
}

func TestVerifyErrorLeavesStateUnchanged(t *testing.T) {
	m := newMachine(&fakeScheduler{})
	_, _ = m.Attempt(t0, verdict(VerdictWrongPassword))

	boom := errors.New("database unavailable")
	_, err := m.Attempt(t0, func() (Verdict, error) { return 0, boom })
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, m.Status().Failures)
}

func TestConfigOption(t *testing.T) {
	m := New(WithConfig(Config{MaxAttempts: 0, Duration: 0, ResetOnSuccess: false}))
	assert.Equal(t, 3, m.cfg.MaxAttempts, "non-positive values keep the default")
	assert.Equal(t, 2*time.Minute, m.cfg.Duration)
	assert.False(t, m.cfg.ResetOnSuccess)
}

func TestRealScheduler(t *testing.T) {
	fired := make(chan struct{})
	timer := RealScheduler{}.AfterFunc(time.Millisecond, func() { close(fired) })
	select {
	case <-fired:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
	assert.False(t, timer.Stop())
}

func TestMachineCloseStopsTimer(t *testing.T) {
	s := &fakeScheduler{}
	m := newMachine(s)
	for i := 0; i < 3; i++ {
		_, _ = m.Attempt(t0, verdict(VerdictWrongPassword))
	}
	m.Close()
	assert.True(t, s.last().stopped)

	s.last().fire()
	assert.Equal(t, StateLockedOut, m.Status().State, "a closed machine ignores its old timer")
}

func TestStrings(t *testing.T) {
	assert.Equal(t, "normal", StateNormal.String())
	assert.Equal(t, "locked_out", StateLockedOut.String())
	assert.Equal(t, "wrong_password", OutcomeWrongPassword.String())
	assert.Equal(t, "unknown_user", OutcomeUnknownUser.String())
}
