package api

import (
	"errors"
	"sync"
	"time"

	"github.com/andrescamacho/cardarb-go/internal/domain/shared"
)

// CircuitState represents the state of the circuit breaker
type CircuitState int

const (
	// CircuitClosed allows all requests
	CircuitClosed CircuitState = iota
	// CircuitOpen blocks all requests
	CircuitOpen
	// CircuitHalfOpen lets one probe through to test recovery
	CircuitHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case CircuitOpen:
		return "open"
	case CircuitHalfOpen:
		return "half_open"
	default:
		return "closed"
	}
}

// ErrCircuitOpen is returned without contacting the service while the circuit is open
var ErrCircuitOpen = errors.New("circuit breaker open")

// CircuitBreaker stops calling a marketplace API after repeated failures and
// probes it again once the cooldown has passed.
type CircuitBreaker struct {
	maxFailures     int
	cooldown        time.Duration
	state           CircuitState
	failureCount    int
	lastFailureTime time.Time
	mu              sync.RWMutex
	clock           shared.Clock

	// trips reports whether an error counts as a failure. Client errors such
	// as an unknown card id say nothing about the service's health.
	trips func(error) bool
}

// NewCircuitBreaker creates a circuit breaker. If clock is nil, uses RealClock.
func NewCircuitBreaker(maxFailures int, cooldown time.Duration, clock shared.Clock) *CircuitBreaker {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	if maxFailures < 1 {
		maxFailures = 1
	}
	return &CircuitBreaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		state:       CircuitClosed,
		clock:       clock,
		trips:       func(err error) bool { return err != nil },
	}
}

// Call executes fn with circuit breaker protection
func (cb *CircuitBreaker) Call(fn func() error) error {
	cb.mu.Lock()
	if cb.state == CircuitOpen {
		if cb.clock.Now().Sub(cb.lastFailureTime) < cb.cooldown {
			cb.mu.Unlock()
			return ErrCircuitOpen
		}
		cb.state = CircuitHalfOpen
	}
	cb.mu.Unlock()

	// fn may retry and sleep, so it runs without the lock
	err := fn()

	cb.mu.Lock()
	defer cb.mu.Unlock()
	if err != nil && cb.trips(err) {
		cb.onFailure()
		return err
	}
	cb.onSuccess()
	return err
}

func (cb *CircuitBreaker) onFailure() {
	cb.failureCount++
	cb.lastFailureTime = cb.clock.Now()

	if cb.state == CircuitHalfOpen || cb.failureCount >= cb.maxFailures {
		cb.state = CircuitOpen
	}
}

func (cb *CircuitBreaker) onSuccess() {
	cb.failureCount = 0
	cb.state = CircuitClosed
}

// State returns the current circuit breaker state
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.state
}

// FailureCount returns the current consecutive failure count
func (cb *CircuitBreaker) FailureCount() int {
	cb.mu.RLock()
	defer cb.mu.RUnlock()
	return cb.failureCount
}

// Reset closes the circuit
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.state = CircuitClosed
	cb.failureCount = 0
}
