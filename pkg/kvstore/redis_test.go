package kvstore

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	data   map[string][]byte
	setErr error
	ttls   map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := f.data[key]
	if !ok {
		return nil, goredis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) Ping(context.Context) error { return nil }

func (f *fakeRedis) Key(parts ...string) string {
	return "eq:" + strings.Join(parts, ":")
}

func TestRedisStoresUnderNamespacedKey(t *testing.T) {
	ctx := context.Background()
	fake := newFakeRedis()
	store, err := NewRedis(fake)
	require.NoError(t, err)

	_, err = store.Get(ctx, "electro_quick_cart")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, store.Set(ctx, "electro_quick_cart", []byte("payload")))
	require.Equal(t, []byte("payload"), fake.data["eq:kv:electro_quick_cart"])
	require.Zero(t, fake.ttls["eq:kv:electro_quick_cart"])

	got, err := store.Get(ctx, "electro_quick_cart")
	require.NoError(t, err)
	require.Equal(t, "payload", string(got))
}

func TestRedisWrapsWriteErrors(t *testing.T) {
	fake := newFakeRedis()
	fake.setErr = errors.New("connection refused")
	store, err := NewRedis(fake)
	require.NoError(t, err)

	err = store.Set(context.Background(), "k", []byte("v"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "connection refused")
	require.NotErrorIs(t, err, ErrNotFound)
}

func TestNewRedisRequiresClient(t *testing.T) {
	_, err := NewRedis(nil)
	require.Error(t, err)
}
