package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// ErrOpen is returned when the breaker rejects a call without running it.
var ErrOpen = errors.New("circuit breaker is open")

type state int

const (
	stateClosed state = iota
	stateOpen
	stateHalfOpen
)

// Config tunes a Breaker. Zero values fall back to the defaults below.
type Config struct {
	Name             string
	FailureThreshold int
	Cooldown         time.Duration
}

// Breaker guards calls to a flaky downstream. After FailureThreshold
// consecutive failures it opens and rejects calls until Cooldown has
// passed, then lets a single probe through.
type Breaker struct {
	name      string
	threshold int
	cooldown  time.Duration

	mu       sync.Mutex
	state    state
	failures int
	openedAt time.Time
}

func New(cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{
		name:      cfg.Name,
		threshold: cfg.FailureThreshold,
		cooldown:  cfg.Cooldown,
		state:     stateClosed,
	}
}

func (b *Breaker) Name() string { return b.name }

// Execute runs fn unless the breaker is open. The probe that closes a
// half-open breaker is whichever call happens to arrive first after the
// cooldown.
func (b *Breaker) Execute(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}
	err := fn()
	b.after(err)
	return err
}

func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == stateOpen {
		if time.Since(b.openedAt) < b.cooldown {
			return ErrOpen
		}
		b.state = stateHalfOpen
	}
	return nil
}

func (b *Breaker) after(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if err == nil {
		b.state = stateClosed
		b.failures = 0
		return
	}

	b.failures++
	if b.state == stateHalfOpen || b.failures >= b.threshold {
		b.state = stateOpen
		b.openedAt = time.Now()
	}
}
