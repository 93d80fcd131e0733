package summaries

import (
	"context"
	"sync"
	"time"

	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/pkg/clock"
	"github.com/arychagov/w40k/internal/stats"
)

type entry struct {
	summary   stats.Summary
	expiresAt time.Time
}

// InMemoryRepository implements Repository using in-memory storage. Expired
// summaries are dropped lazily.
type InMemoryRepository struct {
	clock clock.Clock

	mu     sync.RWMutex
	store  map[string]entry
	recent []string
}

// NewInMemory creates a new in-memory repository. A nil clock uses real time.
func NewInMemory(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{
		clock: c,
		store: make(map[string]entry),
	}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Save stores a summary
func (r *InMemoryRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if input.Summary.BatchID == "" {
		return nil, errors.InvalidArgument(errBatchIDEmpty)
	}

	ttl := input.TTL
	if ttl == 0 {
		ttl = DefaultTTL
	}
	if ttl < 0 {
		return nil, errors.InvalidArgument("ttl must not be negative")
	}

	expiresAt := r.clock.Now().Add(ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.store[input.Summary.BatchID]; !exists {
		r.recent = append(r.recent, input.Summary.BatchID)
		if len(r.recent) > recentCap {
			evicted := r.recent[0]
			r.recent = r.recent[1:]
			delete(r.store, evicted)
		}
	}
	r.store[input.Summary.BatchID] = entry{summary: input.Summary, expiresAt: expiresAt}

	return &SaveOutput{ExpiresAt: expiresAt}, nil
}

// Get retrieves a summary by batch ID
func (r *InMemoryRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.BatchID == "" {
		return nil, errors.InvalidArgument(errBatchIDEmpty)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.store[input.BatchID]
	if !exists || !r.clock.Now().Before(e.expiresAt) {
		return nil, errors.NotFound("summary not found").WithMeta("batch_id", input.BatchID)
	}

	return &GetOutput{Summary: e.summary}, nil
}

// List returns the newest unexpired summaries
func (r *InMemoryRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	now := r.clock.Now()
	out := &ListOutput{}
	for i := len(r.recent) - 1; i >= 0 && len(out.Summaries) < limit; i-- {
		e := r.store[r.recent[i]]
		if !now.Before(e.expiresAt) {
			continue
		}
		out.Summaries = append(out.Summaries, e.summary)
	}

	return out, nil
}
