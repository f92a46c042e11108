package dispatch

import (
	"context"
	"log/slog"
	"math/rand"
	"time"

	"github.com/smsforge/campaign-service/internal/models"
)

// StatusWriter resolves a message to a terminal status in the ledger
type StatusWriter interface {
	ResolveStatus(ctx context.Context, messageID, status string) error
}

// SimulatorConfig tunes the simulated carrier. Zero delays fall back to
// the defaults, delay uniform in [1s, 6s). A FailureRate of 0 is a valid
// setting meaning every delivery succeeds; only out-of-range values fall
// back to the default 10%.
type SimulatorConfig struct {
	MinDelay    time.Duration
	MaxDelay    time.Duration
	FailureRate float64
}

// Simulator produces a delayed, probabilistic terminal outcome for each
// dispatched message. Scheduling returns immediately; many resolutions may
// be outstanding at once with no ordering guarantee. The timer and random
// source are injectable so tests run without wall-clock waits.
type Simulator struct {
	ledger      StatusWriter
	logger      *slog.Logger
	minDelay    time.Duration
	maxDelay    time.Duration
	failureRate float64

	randFloat func() float64
	afterFunc func(d time.Duration, f func()) *time.Timer
}

// NewSimulator creates a delivery simulator writing outcomes through the
// given status writer.
func NewSimulator(ledger StatusWriter, cfg SimulatorConfig, logger *slog.Logger) *Simulator {
	if cfg.MinDelay <= 0 {
		cfg.MinDelay = 1 * time.Second
	}
	if cfg.MaxDelay <= cfg.MinDelay {
		cfg.MaxDelay = 6 * time.Second
	}
	if cfg.FailureRate < 0 || cfg.FailureRate > 1 {
		cfg.FailureRate = 0.1
	}

	return &Simulator{
		ledger:      ledger,
		logger:      logger,
		minDelay:    cfg.MinDelay,
		maxDelay:    cfg.MaxDelay,
		failureRate: cfg.FailureRate,
		randFloat:   rand.Float64,
		afterFunc:   time.AfterFunc,
	}
}

// Schedule arranges exactly one status update for the message after a
// random delay and returns immediately.
func (s *Simulator) Schedule(messageID string) {
	delay := s.minDelay + time.Duration(s.randFloat()*float64(s.maxDelay-s.minDelay))

	s.afterFunc(delay, func() {
		s.resolve(messageID)
	})
}

// resolve picks the terminal outcome and writes it to the ledger. A message
// that cannot be located is reported and abandoned; nothing retries it.
func (s *Simulator) resolve(messageID string) {
	status := models.MessageStatusSuccess
	if s.randFloat() < s.failureRate {
		status = models.MessageStatusUndeliverable
	}

	if err := s.ledger.ResolveStatus(context.Background(), messageID, status); err != nil {
		s.logger.Error("failed to resolve message delivery",
			slog.String("message_id", messageID),
			slog.String("status", status),
			slog.String("error", err.Error()),
		)
	}
}
