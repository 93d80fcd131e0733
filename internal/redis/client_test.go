package redis_test

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arychagov/w40k/internal/errors"
	"github.com/arychagov/w40k/internal/redis"
)

func TestNewClient_RequiresEndpoint(t *testing.T) {
	client, err := redis.NewClient("", nil)
	require.Error(t, err)
	assert.Nil(t, client)
	assert.True(t, errors.IsInvalidConfiguration(err))
}

func TestPing(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)

	client, err := redis.NewClient(mr.Addr(), &redis.Options{MaxRetries: -1})
	require.NoError(t, err)
	defer func() { _ = client.Close() }()

	require.NoError(t, redis.Ping(context.Background(), client))

	mr.Close()

	err = redis.Ping(context.Background(), client)
	require.Error(t, err)
	assert.Equal(t, errors.CodeUnavailable, errors.GetCode(err))
}
