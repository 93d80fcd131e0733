package simulation

import (
	"context"
	"log/slog"
	"sync"

	"github.com/arychagov/w40k/internal/entities/combat"
	"github.com/arychagov/w40k/internal/entities/rules"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/profiles"
	"github.com/arychagov/w40k/internal/publishers"
	"github.com/arychagov/w40k/internal/stats"
)

// SessionConfig holds the dependencies for a session
type SessionConfig struct {
	Service   Service
	Publisher publishers.Publisher
	Attacker  combat.Attacker
	Defender  combat.Defender
	// Ordering is applied to attackers built from fields
	Ordering rules.Ordering
	// Trials per batch; zero uses the service default
	Trials int
}

// Validate ensures all required dependencies are provided
func (c *SessionConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Service == nil {
		vb.RequiredField("Service")
	}
	if c.Publisher == nil {
		vb.RequiredField("Publisher")
	}
	if err := c.Attacker.Validate(); err != nil {
		vb.InvalidField("Attacker", errors.GetMessage(err))
	}
	if err := c.Defender.Validate(); err != nil {
		vb.InvalidField("Defender", errors.GetMessage(err))
	}

	return vb.Build()
}

// Session keeps the latest summary for a pair of profiles. Every profile
// change cancels the running batch and starts a new one; batches run one at
// a time and only the newest batch's result is stored and published.
type Session struct {
	service   Service
	publisher publishers.Publisher
	ordering  rules.Ordering
	trials    int
	base      context.Context

	// lane serializes batches
	lane sync.Mutex
	wg   sync.WaitGroup

	mu         sync.Mutex
	attacker   combat.Attacker
	defender   combat.Defender
	generation uint64
	cancel     context.CancelFunc
	summary    *stats.Summary
	closed     bool
}

// NewSession creates a session and starts the first batch. Batches stop
// when ctx is done or the session is closed.
func NewSession(ctx context.Context, cfg *SessionConfig) (*Session, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid session config")
	}

	s := &Session{
		service:   cfg.Service,
		publisher: cfg.Publisher,
		ordering:  cfg.Ordering,
		trials:    cfg.Trials,
		base:      ctx,
		attacker:  cfg.Attacker,
		defender:  cfg.Defender,
	}

	s.mu.Lock()
	s.restartLocked()
	s.mu.Unlock()

	return s, nil
}

// SetAttacker replaces the attacker and restarts the simulation
func (s *Session) SetAttacker(attacker combat.Attacker) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.attacker = attacker
	s.restartLocked()
}

// SetDefender replaces the defender and restarts the simulation
func (s *Session) SetDefender(defender combat.Defender) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.defender = defender
	s.restartLocked()
}

// UpdateAttacker builds an attacker from raw fields. On failure the previous
// attacker is kept, nothing is restarted and the error is only logged and
// returned.
func (s *Session) UpdateAttacker(fields profiles.AttackerFields) error {
	attacker, err := profiles.BuildAttacker(fields, profiles.WithOrdering(s.ordering))
	if err != nil {
		slog.Warn("Keeping previous attacker", "error", err)
		return err
	}
	s.SetAttacker(attacker)
	return nil
}

// UpdateDefender builds a defender from raw fields, keeping the previous
// defender on failure
func (s *Session) UpdateDefender(fields profiles.DefenderFields) error {
	defender, err := profiles.BuildDefender(fields)
	if err != nil {
		slog.Warn("Keeping previous defender", "error", err)
		return err
	}
	s.SetDefender(defender)
	return nil
}

// Summary returns the latest published summary, if any
func (s *Session) Summary() (stats.Summary, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.summary == nil {
		return stats.Summary{}, false
	}
	return *s.summary, true
}

// Generation counts the batches started so far
func (s *Session) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// Wait blocks until every started batch has finished or been discarded
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the running batch and waits for it to stop. Later profile
// changes are ignored.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
}

// restartLocked must be called with mu held
func (s *Session) restartLocked() {
	if s.closed {
		return
	}
	if s.cancel != nil {
		s.cancel()
	}

	s.generation++
	ctx, cancel := context.WithCancel(s.base)
	s.cancel = cancel

	input := &SimulateInput{
		Attacker: s.attacker,
		Defender: s.defender,
		Trials:   s.trials,
	}

	s.wg.Add(1)
	go s.run(ctx, s.generation, input)
}

func (s *Session) current(ctx context.Context, generation uint64) bool {
	return ctx.Err() == nil && generation == s.generation
}

func (s *Session) run(ctx context.Context, generation uint64, input *SimulateInput) {
	defer s.wg.Done()

	s.lane.Lock()
	defer s.lane.Unlock()

	if ctx.Err() != nil {
		slog.Debug("Batch superseded before start", "generation", generation)
		return
	}

	out, err := s.service.Simulate(ctx, input)
	if err != nil {
		if errors.IsCanceled(err) {
			slog.Debug("Batch cancelled", "generation", generation)
			return
		}
		slog.Error("Batch failed", "generation", generation, "error", err)
		return
	}

	s.mu.Lock()
	if !s.current(ctx, generation) {
		s.mu.Unlock()
		slog.Debug("Discarding stale batch", "batch_id", out.Summary.BatchID, "generation", generation)
		return
	}
	summary := out.Summary
	s.summary = &summary
	s.mu.Unlock()

	if err := s.publisher.Publish(ctx, summary); err != nil {
		if ctx.Err() != nil {
			slog.Debug("Summary superseded while publishing", "batch_id", summary.BatchID, "generation", generation)
			return
		}
		slog.Error("Failed to publish summary",
			"batch_id", summary.BatchID,
			"generation", generation,
			"error", err,
		)
		return
	}

	slog.Info("Published summary",
		"batch_id", summary.BatchID,
		"generation", generation,
		"trials", summary.Trials,
		"summary", summary.String(),
	)
}
