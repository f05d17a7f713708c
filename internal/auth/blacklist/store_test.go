package blacklist

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeKV struct {
	mu   sync.Mutex
	data map[string]int // key -> ttlSeconds
}

func newFakeKV() *fakeKV { return &fakeKV{data: make(map[string]int)} }

func (f *fakeKV) SetNX(_ context.Context, key string, _ []byte, ttlSeconds int) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.data[key]; ok {
		return false, nil
	}
	f.data[key] = ttlSeconds
	return true, nil
}

func (f *fakeKV) Exists(_ context.Context, key string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.data[key]
	return ok, nil
}

func TestRevokeAndIsRevoked(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	s := NewStore(kv)

	revoked, err := s.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, s.Revoke(context.Background(), "jti-1", time.Now().Add(time.Hour)))

	revoked, err = s.IsRevoked(context.Background(), "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	// ключ в общем пространстве jti:
	assert.Contains(t, kv.data, "jti:jti-1")
}

func TestRevokeTTLMatchesRemainingLife(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	s := NewStore(kv)

	require.NoError(t, s.Revoke(context.Background(), "jti-live", time.Now().Add(10*time.Minute)))
	assert.InDelta(t, 600, kv.data["jti:jti-live"], 2)
}

func TestRevokePastExpiryUsesFloor(t *testing.T) {
	t.Parallel()
	kv := newFakeKV()
	s := NewStore(kv)

	// exp в прошлом — запись всё равно живёт минуту
	require.NoError(t, s.Revoke(context.Background(), "jti-old", time.Now().Add(-time.Hour)))
	assert.Equal(t, 60, kv.data["jti:jti-old"])
}

func TestRevokeIdempotent(t *testing.T) {
	t.Parallel()
	s := NewStore(newFakeKV())

	require.NoError(t, s.Revoke(context.Background(), "jti-2", time.Now().Add(time.Hour)))
	require.NoError(t, s.Revoke(context.Background(), "jti-2", time.Now().Add(time.Hour)))

	revoked, err := s.IsRevoked(context.Background(), "jti-2")
	require.NoError(t, err)
	assert.True(t, revoked)
}
