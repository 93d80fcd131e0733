// Package publishers delivers completed simulation summaries
package publishers

//go:generate mockgen -destination=mock/mock_publisher.go -package=publishermock github.com/arychagov/w40k/internal/publishers Publisher

import (
	"context"
	"log/slog"

	"github.com/arychagov/w40k/internal/stats"
)

// Publisher receives the summary of every batch that completed without
// being superseded
type Publisher interface {
	Publish(ctx context.Context, summary stats.Summary) error
}

// Func adapts a function to a Publisher
type Func func(ctx context.Context, summary stats.Summary) error

// Publish calls f
func (f Func) Publish(ctx context.Context, summary stats.Summary) error {
	return f(ctx, summary)
}

// Log writes summaries to a structured logger
type Log struct {
	logger *slog.Logger
}

// NewLog creates a publisher logging at info level. A nil logger uses slog.Default.
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

// Publish logs the summary
func (l *Log) Publish(ctx context.Context, summary stats.Summary) error {
	l.logger.InfoContext(ctx, "simulation summary",
		"batch_id", summary.BatchID,
		"summary", summary.String(),
		"mean", summary.Mean,
		"p50", summary.P50,
		"p95", summary.P95,
		"trials", summary.Trials,
	)
	return nil
}

// Multi fans a summary out to every publisher, in order. Every publisher is
// tried; the first error is returned.
type Multi []Publisher

// Publish delivers to all publishers
func (m Multi) Publish(ctx context.Context, summary stats.Summary) error {
	var first error
	for _, p := range m {
		if err := p.Publish(ctx, summary); err != nil && first == nil {
			first = err
		}
	}
	return first
}
