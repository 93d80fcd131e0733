package publishers

import (
	"context"
	"time"

	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/repositories/summaries"
	"github.com/arychagov/w40k/internal/stats"
)

// Store keeps every published summary in a repository
type Store struct {
	repo summaries.Repository
	ttl  time.Duration
}

// NewStore creates a publisher saving into repo. A zero ttl uses the
// repository default.
func NewStore(repo summaries.Repository, ttl time.Duration) (*Store, error) {
	if repo == nil {
		return nil, errors.InvalidArgument("summary repository is required")
	}
	return &Store{repo: repo, ttl: ttl}, nil
}

// Publish saves the summary
func (s *Store) Publish(ctx context.Context, summary stats.Summary) error {
	if _, err := s.repo.Save(ctx, summaries.SaveInput{Summary: summary, TTL: s.ttl}); err != nil {
		return errors.Wrapf(err, "failed to store summary %s", summary.BatchID)
	}
	return nil
}
