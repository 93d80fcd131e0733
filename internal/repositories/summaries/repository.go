// Package summaries stores completed batch summaries so they can be looked
// up by batch ID after they were published
package summaries

import (
	"context"
	"time"

	"github.com/arychagov/w40k/internal/stats"
)

//go:generate mockgen -destination=mock/mock_repository.go -package=summariesmock github.com/arychagov/w40k/internal/repositories/summaries Repository

// DefaultTTL is how long a summary is kept when SaveInput.TTL is zero
const DefaultTTL = time.Hour

// DefaultListLimit bounds List when ListInput.Limit is zero
const DefaultListLimit = 20

// SaveInput contains parameters for storing a summary
type SaveInput struct {
	Summary stats.Summary
	TTL     time.Duration
}

// SaveOutput contains the result of storing a summary
type SaveOutput struct {
	ExpiresAt time.Time
}

// GetInput contains parameters for retrieving a summary
type GetInput struct {
	BatchID string
}

// GetOutput contains the result of retrieving a summary
type GetOutput struct {
	Summary stats.Summary
}

// ListInput contains parameters for listing recent summaries
type ListInput struct {
	Limit int
}

// ListOutput holds summaries, newest first
type ListOutput struct {
	Summaries []stats.Summary
}

// Repository defines the interface for summary storage
type Repository interface {
	// Save stores a summary under its batch ID
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Get retrieves a summary by batch ID
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// List returns the most recently saved summaries that have not expired
	List(ctx context.Context, input ListInput) (*ListOutput, error)
}
