package publishers

import (
	"context"
	"encoding/json"

	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/redis"
	"github.com/arychagov/w40k/internal/stats"
)

// RedisConfig holds the dependencies for the Redis publisher
type RedisConfig struct {
	Client  redis.Client
	Channel string
}

// Validate ensures all required dependencies are provided
func (c *RedisConfig) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.Client == nil {
		vb.RequiredField("Client")
	}
	errors.ValidateRequired("Channel", c.Channel, vb)

	return vb.Build()
}

// Redis broadcasts summaries as JSON on a pub/sub channel
type Redis struct {
	client  redis.Client
	channel string
}

// NewRedis creates a Redis publisher
func NewRedis(cfg *RedisConfig) (*Redis, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Redis{client: cfg.Client, channel: cfg.Channel}, nil
}

// Publish sends the summary to the channel
func (r *Redis) Publish(ctx context.Context, summary stats.Summary) error {
	payload, err := json.Marshal(summaryMessage{Summary: summary, Display: summary.String()})
	if err != nil {
		return errors.Wrap(err, "failed to encode summary")
	}

	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to publish summary")
	}
	return nil
}

// summaryMessage is the JSON shape on the channel
type summaryMessage struct {
	stats.Summary
	Display string `json:"display"`
}
