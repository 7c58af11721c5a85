package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *Client) {
	mr := miniredis.RunT(t)

	client, err := NewClient("redis://"+mr.Addr(), "test", nil)
	require.NoError(t, err)
	t.Cleanup(func() { client.Close() })

	return mr, client
}

func TestNewClient(t *testing.T) {
	mr := miniredis.RunT(t)

	tests := []struct {
		name        string
		url         string
		expectError bool
	}{
		{
			name:        "Valid Redis URL",
			url:         "redis://" + mr.Addr(),
			expectError: false,
		},
		{
			name:        "Invalid URL",
			url:         "invalid://url",
			expectError: true,
		},
		{
			name:        "Empty URL",
			url:         "",
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := NewClient(tt.url, "test", nil)

			if tt.expectError {
				assert.Error(t, err)
				assert.Nil(t, client)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, client.KeyBuilder)
				client.Close()
			}
		})
	}
}

func TestClient_Get(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	mr.Set("test:key1", "value1")

	val, err := client.Get(ctx, "test:key1")
	require.NoError(t, err)
	assert.Equal(t, "value1", val)

	_, err = client.Get(ctx, "test:missing")
	assert.True(t, errors.Is(err, Nil))
}

func TestClient_Set(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	tests := []struct {
		name  string
		key   string
		value interface{}
		ttl   time.Duration
	}{
		{name: "Set string value", key: "test:key1", value: "value1", ttl: time.Minute},
		{name: "Set integer value", key: "test:key2", value: 42, ttl: time.Hour},
		{name: "Set with no expiration", key: "test:key3", value: "permanent", ttl: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.NoError(t, client.Set(ctx, tt.key, tt.value, tt.ttl))

			val, err := mr.Get(tt.key)
			require.NoError(t, err)
			assert.NotEmpty(t, val)

			if tt.ttl > 0 {
				assert.Equal(t, tt.ttl, mr.TTL(tt.key))
			} else {
				assert.Zero(t, mr.TTL(tt.key))
			}
		})
	}
}

func TestClient_Delete(t *testing.T) {
	mr, client := setupTestRedis(t)
	ctx := context.Background()

	mr.Set("test:key1", "value1")
	mr.Set("test:key2", "value2")

	require.NoError(t, client.Delete(ctx, "test:key1", "test:key2", "test:missing"))
	assert.False(t, mr.Exists("test:key1"))
	assert.False(t, mr.Exists("test:key2"))
}

func TestClient_Health(t *testing.T) {
	mr, client := setupTestRedis(t)

	assert.NoError(t, client.Health(context.Background()))

	mr.Close()
	assert.Error(t, client.Health(context.Background()))
}

func TestPrefixForLog(t *testing.T) {
	assert.Equal(t, "prod:short", prefixForLog("prod:short"))
	assert.Equal(t, "prod:github:projects:abc…", prefixForLog("prod:github:projects:abcdefghijkl"))
}
