// Package lockout implements the login attempt state machine.
//
// The machine counts wrong passwords for known users. Once the count
// reaches the threshold it locks every login out for a fixed duration; a
// one-shot timer returns it to normal afterwards. Credentials are checked
// through a callback, so the machine itself performs no I/O.
package lockout

import (
	"sync"
	"time"
)

// State is the machine's mode.
type State int

const (
	StateNormal State = iota
	StateLockedOut
)

func (s State) String() string {
	if s == StateLockedOut {
		return "locked_out"
	}
	return "normal"
}

// Verdict is what the credential check concluded.
type Verdict int

const (
	VerdictCorrect Verdict = iota
	VerdictWrongPassword
	VerdictUnknownUser
)

// Outcome is the result of one login attempt.
type Outcome int

const (
	OutcomeAccepted Outcome = iota
	OutcomeWrongPassword
	OutcomeUnknownUser
	OutcomeLockedOut
)

func (o Outcome) String() string {
	switch o {
	case OutcomeAccepted:
		return "accepted"
	case OutcomeWrongPassword:
		return "wrong_password"
	case OutcomeUnknownUser:
		return "unknown_user"
	case OutcomeLockedOut:
		return "locked_out"
	default:
		return "unknown"
	}
}

// Result describes one evaluated attempt.
type Result struct {
	Outcome Outcome
	// Failures is the wrong-password count after the attempt.
	Failures int
	// Triggered is set on the attempt that started the lockout.
	Triggered bool
	// RetryAfter is the remaining lockout time when Outcome is OutcomeLockedOut.
	RetryAfter time.Duration
}

// Config parameterises the machine.
type Config struct {
	MaxAttempts int
	Duration    time.Duration
	// ResetOnSuccess clears the failure count after an accepted login.
	ResetOnSuccess bool
}

func DefaultConfig() Config {
	return Config{
		MaxAttempts:    3,
		Duration:       2 * time.Minute,
		ResetOnSuccess: true,
	}
}

// Status is a point-in-time copy of the machine's state.
type Status struct {
	State        State
	Failures     int
	LockoutStart time.Time
}

// Machine is safe for concurrent use; the unlock timer fires on its own
// goroutine.
type Machine struct {
	mu        sync.Mutex
	cfg       Config
	scheduler Scheduler
	onUnlock  func()

	state        State
	failures     int
	lockoutStart time.Time
	timer        Timer
	// generation identifies the armed timer. A callback carrying an older
	// generation was superseded and must not touch state.
	generation uint64
}

type Option func(*Machine)

func WithConfig(cfg Config) Option {
	return func(m *Machine) {
		if cfg.MaxAttempts > 0 {
			m.cfg.MaxAttempts = cfg.MaxAttempts
		}
		if cfg.Duration > 0 {
			m.cfg.Duration = cfg.Duration
		}
		m.cfg.ResetOnSuccess = cfg.ResetOnSuccess
	}
}

func WithScheduler(s Scheduler) Option {
	return func(m *Machine) {
		if s != nil {
			m.scheduler = s
		}
	}
}

// WithOnUnlock registers a hook run after the timer ends a lockout. It is
// called without the machine's lock held.
func WithOnUnlock(fn func()) Option {
	return func(m *Machine) {
		m.onUnlock = fn
	}
}

func New(opts ...Option) *Machine {
	m := &Machine{
		cfg:       DefaultConfig(),
		scheduler: RealScheduler{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Attempt evaluates one login attempt at now. verify is only called when
// credentials must be checked, never while the lockout is in force. An
// error from verify leaves the machine unchanged.
//
// verify runs under the machine's lock so that concurrent attempts are
// counted one at a time.
func (m *Machine) Attempt(now time.Time, verify func() (Verdict, error)) (Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateLockedOut {
		elapsed := now.Sub(m.lockoutStart)
		if elapsed < m.cfg.Duration {
			return Result{
				Outcome:    OutcomeLockedOut,
				Failures:   m.failures,
				RetryAfter: m.cfg.Duration - elapsed,
			}, nil
		}
		m.resetLocked()
	}

	verdict, err := verify()
	if err != nil {
		return Result{}, err
	}

	switch verdict {
	case VerdictUnknownUser:
		return Result{Outcome: OutcomeUnknownUser, Failures: m.failures}, nil
	case VerdictWrongPassword:
		m.failures++
		if m.failures >= m.cfg.MaxAttempts {
			m.lockLocked(now)
			return Result{
				Outcome:    OutcomeLockedOut,
				Failures:   m.failures,
				Triggered:  true,
				RetryAfter: m.cfg.Duration,
			}, nil
		}
		return Result{Outcome: OutcomeWrongPassword, Failures: m.failures}, nil
	default:
		if m.cfg.ResetOnSuccess {
			m.failures = 0
		}
		return Result{Outcome: OutcomeAccepted, Failures: m.failures}, nil
	}
}

// Status returns a snapshot of the machine.
func (m *Machine) Status() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Status{State: m.state, Failures: m.failures, LockoutStart: m.lockoutStart}
}

// Close stops a pending unlock timer.
func (m *Machine) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopTimerLocked()
}

func (m *Machine) lockLocked(now time.Time) {
	m.state = StateLockedOut
	m.lockoutStart = now
	m.stopTimerLocked()
	gen := m.generation
	m.timer = m.scheduler.AfterFunc(m.cfg.Duration, func() { m.expire(gen) })
}

func (m *Machine) expire(gen uint64) {
	m.mu.Lock()
	if gen != m.generation || m.state != StateLockedOut {
		m.mu.Unlock()
		return
	}
	m.timer = nil
	m.resetLocked()
	hook := m.onUnlock
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
}

func (m *Machine) resetLocked() {
	m.stopTimerLocked()
	m.state = StateNormal
	m.failures = 0
	m.lockoutStart = time.Time{}
}

// stopTimerLocked cancels the armed timer and retires its generation.
func (m *Machine) stopTimerLocked() {
	if m.timer != nil {
		m.timer.Stop()
		m.timer = nil
	}
	m.generation++
}
