package dispatcher

import (
	"math/rand"
	"time"
)

type Rand interface {
	Intn(n int) int
}

type BackoffConfig struct {
	Backoff1 time.Duration // default: 200ms
	Backoff2 time.Duration // default: 1s
	Backoff3 time.Duration // default: 5s

	// Jitter adds up to this much random delay on top of each step.
	Jitter time.Duration // default: 0
}

func DefaultBackoffConfig() BackoffConfig {
	return BackoffConfig{
		Backoff1: 200 * time.Millisecond,
		Backoff2: 1 * time.Second,
		Backoff3: 5 * time.Second,
	}
}

type Backoff struct {
	cfg BackoffConfig
	r   Rand
}

func NewBackoff(cfg BackoffConfig, r Rand) *Backoff {
	def := DefaultBackoffConfig()
	if cfg.Backoff1 <= 0 {
		cfg.Backoff1 = def.Backoff1
	}
	if cfg.Backoff2 <= 0 {
		cfg.Backoff2 = def.Backoff2
	}
	if cfg.Backoff3 <= 0 {
		cfg.Backoff3 = def.Backoff3
	}
	if cfg.Jitter < 0 {
		cfg.Jitter = 0
	}
	if r == nil {
		r = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Backoff{cfg: cfg, r: r}
}

// Delay returns the pause before retry number attempt (1-based).
func (b *Backoff) Delay(attempt int) time.Duration {
	var d time.Duration
	switch {
	case attempt <= 1:
		d = b.cfg.Backoff1
	case attempt == 2:
		d = b.cfg.Backoff2
	default:
		d = b.cfg.Backoff3
	}
	if b.cfg.Jitter > 0 {
		d += time.Duration(b.r.Intn(int(b.cfg.Jitter/time.Millisecond)+1)) * time.Millisecond
	}
	return d
}
