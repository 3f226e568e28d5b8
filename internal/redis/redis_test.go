package redis

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestConnect(t *testing.T) {
	mr := miniredis.RunT(t)
	host, port, err := net.SplitHostPort(mr.Addr())
	require.NoError(t, err)

	client, err := Connect(context.Background(), Config{Host: host, Port: port})
	require.NoError(t, err)
	defer client.Close()

	mr.Close()
	_, err = Connect(context.Background(), Config{Host: host, Port: port})
	assert.Error(t, err)
}

func TestRateLimiter_AllowUntilLimit(t *testing.T) {
	_, client := newTestClient(t)
	limiter := NewRateLimiter(client, RateLimitConfig{ContactLimit: 2, ContactWindow: time.Minute})
	ctx := context.Background()

	first, err := limiter.Allow(ctx, ScopeContact, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, 1, first.Remaining)
	assert.Equal(t, 2, first.Limit)

	second, err := limiter.Allow(ctx, ScopeContact, "10.0.0.1")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, 0, second.Remaining)

	third, err := limiter.Allow(ctx, ScopeContact, "10.0.0.1")
	require.NoError(t, err)
	assert.False(t, third.Allowed)
	assert.Equal(t, 0, third.Remaining)

	other, err := limiter.Allow(ctx, ScopeContact, "10.0.0.2")
	require.NoError(t, err)
	assert.True(t, other.Allowed, "buckets are per ip")
}

func TestRateLimiter_ScopesAreIndependent(t *testing.T) {
	_, client := newTestClient(t)
	limiter := NewRateLimiter(client, RateLimitConfig{AuthLimit: 1, ContactLimit: 1})
	ctx := context.Background()

	res, err := limiter.Allow(ctx, ScopeAuth, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)

	res, err = limiter.Allow(ctx, ScopeAuth, "ip")
	require.NoError(t, err)
	assert.False(t, res.Allowed)

	res, err = limiter.Allow(ctx, ScopeContact, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRateLimiter_WindowExpires(t *testing.T) {
	mr, client := newTestClient(t)
	limiter := NewRateLimiter(client, RateLimitConfig{AuthLimit: 1, AuthWindow: time.Minute})
	ctx := context.Background()

	_, err := limiter.Allow(ctx, ScopeAuth, "ip")
	require.NoError(t, err)
	res, err := limiter.Allow(ctx, ScopeAuth, "ip")
	require.NoError(t, err)
	require.False(t, res.Allowed)

	mr.FastForward(61 * time.Second)

	res, err = limiter.Allow(ctx, ScopeAuth, "ip")
	require.NoError(t, err)
	assert.True(t, res.Allowed)
}

func TestRateLimiter_UnknownScope(t *testing.T) {
	_, client := newTestClient(t)
	limiter := NewRateLimiter(client, RateLimitConfig{})

	_, err := limiter.Allow(context.Background(), Scope("calls"), "ip")
	assert.Error(t, err)
}

func TestRateLimiter_ServerDown(t *testing.T) {
	mr, client := newTestClient(t)
	limiter := NewRateLimiter(client, DefaultRateLimitConfig())
	mr.Close()

	_, err := limiter.Allow(context.Background(), ScopeAuth, "ip")
	assert.Error(t, err)
}

func TestPublishSubscribe(t *testing.T) {
	_, client := newTestClient(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		mu       sync.Mutex
		received []string
	)
	done := make(chan error, 1)
	go func() {
		done <- NewSubscriber(client).Subscribe(ctx, []string{"contact:*"}, func(channel string, payload []byte) {
			mu.Lock()
			defer mu.Unlock()
			received = append(received, channel+"="+string(payload))
		})
	}()

	pub := NewPublisher(client)
	assert.Eventually(t, func() bool {
		_ = pub.Publish(ctx, "contact:messages", []byte(`{"id":1}`))
		mu.Lock()
		defer mu.Unlock()
		return len(received) > 0
	}, 2*time.Second, 20*time.Millisecond)

	mu.Lock()
	assert.Equal(t, `contact:messages={"id":1}`, received[0])
	mu.Unlock()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("subscriber did not stop after cancel")
	}
}
