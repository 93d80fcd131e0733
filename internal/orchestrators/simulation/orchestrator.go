// Package simulation implements the Monte Carlo driver: single cancellable
// batches and long-lived sessions that restart on every profile change.
package simulation

//go:generate mockgen -destination=mock/mock_service.go -package=simulationmock github.com/arychagov/w40k/internal/orchestrators/simulation Service

import (
	"context"
	"log/slog"

	"github.com/arychagov/w40k/internal/engine"
	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/pkg/clock"
	"github.com/arychagov/w40k/internal/pkg/idgen"
	"github.com/arychagov/w40k/internal/pkg/random"
	"github.com/arychagov/w40k/internal/stats"
)

// DefaultTrials is the batch size used when none is configured
const DefaultTrials = 10000

// MaxTrials bounds a single batch
const MaxTrials = 1_000_000

// Service defines the interface for running simulations
type Service interface {
	Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error)
}

// EngineFactory builds an engine rolling from seed
type EngineFactory func(seed uint64) (engine.Engine, error)

// Config holds the dependencies for the simulation orchestrator
type Config struct {
	IDGenerator idgen.Generator
	Clock       clock.Clock
	// NewEngine defaults to engine.NewSeeded
	NewEngine EngineFactory
	// Trials defaults to DefaultTrials
	Trials int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}
	if c.Clock == nil {
		vb.RequiredField("Clock")
	}
	if c.Trials < 0 || c.Trials > MaxTrials {
		vb.Fieldf("Trials", "must be between 0 and %d", MaxTrials)
	}

	return vb.Build()
}

type orchestrator struct {
	idGen     idgen.Generator
	clock     clock.Clock
	newEngine EngineFactory
	trials    int
}

// NewOrchestrator creates a new simulation orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		idGen:     cfg.IDGenerator,
		clock:     cfg.Clock,
		newEngine: cfg.NewEngine,
		trials:    cfg.Trials,
	}
	if o.newEngine == nil {
		o.newEngine = engine.NewSeeded
	}
	if o.trials == 0 {
		o.trials = DefaultTrials
	}

	return o, nil
}

// Simulate runs one batch. Cancellation is checked between trials; a
// cancelled batch returns a CANCELED error and no partial summary.
func (o *orchestrator) Simulate(ctx context.Context, input *SimulateInput) (*SimulateOutput, error) {
	if input == nil {
		return nil, errors.InvalidArgument("input is required")
	}
	if err := input.Attacker.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid attacker")
	}
	if err := input.Defender.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid defender")
	}

	trials := input.Trials
	if trials == 0 {
		trials = o.trials
	}
	if trials < 0 || trials > MaxTrials {
		return nil, errors.InvalidArgumentf("trials must be between 1 and %d", MaxTrials)
	}

	seed := random.NewSeed()
	if input.Seed != nil {
		seed = *input.Seed
	}

	eng, err := o.newEngine(seed)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create engine")
	}

	batchID := o.idGen.Generate()
	started := o.clock.Now()
	slog.Debug("Batch started", "batch_id", batchID, "trials", trials, "seed", seed)

	wounds := make([]int, 0, trials)
	for i := 0; i < trials; i++ {
		if err := ctx.Err(); err != nil {
			slog.Debug("Batch cancelled", "batch_id", batchID, "completed", i, "trials", trials)
			return nil, errors.WrapWithCode(err, errors.CodeCanceled, "batch cancelled")
		}
		wounds = append(wounds, eng.Sequence(&input.Attacker, &input.Defender))
	}

	completed := o.clock.Now()
	summary := stats.Summarize(batchID, wounds, completed)

	slog.Debug("Batch completed",
		"batch_id", batchID,
		"trials", trials,
		"elapsed", completed.Sub(started),
		"summary", summary.String(),
	)

	return &SimulateOutput{Summary: summary, Seed: seed}, nil
}
