package summaries

import (
	"context"
	"encoding/json"
	"fmt"

	redis "github.com/redis/go-redis/v9"

	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/pkg/clock"
	redisclient "github.com/arychagov/w40k/internal/redis"
	"github.com/arychagov/w40k/internal/stats"
)

const (
	// Key pattern: summary:{batch_id}
	summaryKeyPrefix = "summary:"
	// recentKey holds batch IDs, newest first
	recentKey = "summaries:recent"
	// recentCap bounds the recent list
	recentCap = 100

	errBatchIDEmpty = "batch ID cannot be empty"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		return errors.InvalidArgument("clock is required")
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for summaries
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores the summary with a TTL and records it in the recent list
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
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

	summaryJSON, err := json.Marshal(input.Summary)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal summary")
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, r.buildKey(input.Summary.BatchID), summaryJSON, ttl)
	pipe.LPush(ctx, recentKey, input.Summary.BatchID)
	pipe.LTrim(ctx, recentKey, 0, recentCap-1)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to store summary in Redis")
	}

	return &SaveOutput{
		ExpiresAt: r.clock.Now().Add(ttl),
	}, nil
}

// Get retrieves a summary by batch ID
func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.BatchID == "" {
		return nil, errors.InvalidArgument(errBatchIDEmpty)
	}

	summaryJSON, err := r.client.Get(ctx, r.buildKey(input.BatchID)).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFound("summary not found").WithMeta("batch_id", input.BatchID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get summary from Redis")
	}

	var summary stats.Summary
	if err := json.Unmarshal([]byte(summaryJSON), &summary); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal summary")
	}

	return &GetOutput{Summary: summary}, nil
}

// List walks the recent list and skips summaries that have expired
func (r *redisRepository) List(ctx context.Context, input ListInput) (*ListOutput, error) {
	limit := input.Limit
	if limit == 0 {
		limit = DefaultListLimit
	}
	if limit < 0 {
		return nil, errors.InvalidArgument("limit must not be negative")
	}

	ids, err := r.client.LRange(ctx, recentKey, 0, recentCap-1).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to list summaries from Redis")
	}

	seen := make(map[string]bool, len(ids))
	keys := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		keys = append(keys, r.buildKey(id))
	}
	if len(keys) == 0 {
		return &ListOutput{}, nil
	}

	values, err := r.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to load summaries from Redis")
	}

	out := &ListOutput{}
	for _, v := range values {
		raw, ok := v.(string)
		if !ok {
			continue
		}
		var summary stats.Summary
		if err := json.Unmarshal([]byte(raw), &summary); err != nil {
			return nil, errors.Wrapf(err, "failed to unmarshal summary")
		}
		out.Summaries = append(out.Summaries, summary)
		if len(out.Summaries) == limit {
			break
		}
	}

	return out, nil
}

// buildKey creates the Redis key for a summary
func (r *redisRepository) buildKey(batchID string) string {
	return fmt.Sprintf("%s%s", summaryKeyPrefix, batchID)
}
