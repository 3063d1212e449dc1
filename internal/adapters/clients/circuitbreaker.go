package clients

import (
	"sync"
	"time"

	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

// State represents the current state of the circuit breaker.
type State int

const (
	// StateClosed lets every request through.
	StateClosed State = iota

	// StateOpen blocks requests until the open timeout elapses.
	StateOpen

	// StateHalfOpen lets a limited number of probe requests through.
	StateHalfOpen
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// CircuitBreaker trips after consecutive upstream failures so a dead quote
// provider fails fast instead of tying up request goroutines.
//
// State transitions:
//   - Closed -> Open: after MaxFailures consecutive failures
//   - Open -> HalfOpen: once Timeout has passed since the last failure
//   - HalfOpen -> Closed: after HalfOpenLimit consecutive successes
//   - HalfOpen -> Open: on any failure
type CircuitBreaker struct {
	mu          sync.Mutex
	cfg         config.CircuitBreakerConfig
	state       State
	failures    int
	successes   int
	probes      int
	lastFailure time.Time

	onStateChange func(from, to State)
	now           func() time.Time
}

// NewCircuitBreaker creates a closed circuit breaker.
func NewCircuitBreaker(cfg config.CircuitBreakerConfig) *CircuitBreaker {
	return &CircuitBreaker{
		cfg:   cfg,
		state: StateClosed,
		now:   time.Now,
	}
}

// OnStateChange registers a callback invoked synchronously, outside the
// breaker's lock, after each state transition.
func (cb *CircuitBreaker) OnStateChange(fn func(from, to State)) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	cb.onStateChange = fn
}

// Allow reports whether a request may proceed. Every allowed request must be
// followed by exactly one RecordSuccess or RecordFailure.
func (cb *CircuitBreaker) Allow() bool {
	cb.mu.Lock()
	allowed, from, to := cb.allowLocked()
	notify := cb.onStateChange
	cb.mu.Unlock()

	if from != to && notify != nil {
		notify(from, to)
	}

	return allowed
}

func (cb *CircuitBreaker) allowLocked() (allowed bool, from, to State) {
	from = cb.state

	switch cb.state {
	case StateClosed:
		return true, from, from

	case StateOpen:
		if cb.now().Sub(cb.lastFailure) < cb.cfg.Timeout {
			return false, from, from
		}

		cb.setState(StateHalfOpen)
		cb.probes = 1

		return true, from, StateHalfOpen

	case StateHalfOpen:
		if cb.probes >= cb.cfg.HalfOpenLimit {
			return false, from, from
		}

		cb.probes++

		return true, from, from
	}

	return false, from, from
}

// RecordSuccess records a successful request.
func (cb *CircuitBreaker) RecordSuccess() {
	cb.mu.Lock()
	from := cb.state

	switch cb.state {
	case StateClosed:
		cb.failures = 0
	case StateHalfOpen:
		cb.probes--
		cb.successes++
		if cb.successes >= cb.cfg.HalfOpenLimit {
			cb.setState(StateClosed)
		}
	}

	to := cb.state
	notify := cb.onStateChange
	cb.mu.Unlock()

	if from != to && notify != nil {
		notify(from, to)
	}
}

// RecordFailure records a failed request.
func (cb *CircuitBreaker) RecordFailure() {
	cb.mu.Lock()
	from := cb.state
	cb.lastFailure = cb.now()

	switch cb.state {
	case StateClosed:
		cb.failures++
		if cb.failures >= cb.cfg.MaxFailures {
			cb.setState(StateOpen)
		}
	case StateHalfOpen:
		cb.probes--
		cb.setState(StateOpen)
	}

	to := cb.state
	notify := cb.onStateChange
	cb.mu.Unlock()

	if from != to && notify != nil {
		notify(from, to)
	}
}

// State returns the current state of the circuit breaker.
func (cb *CircuitBreaker) State() State {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	return cb.state
}

// setState resets the counters on a transition. Caller holds the lock.
func (cb *CircuitBreaker) setState(s State) {
	cb.state = s
	cb.failures = 0
	cb.successes = 0
}
