package session

import (
	"context"
	"io"
	"log"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/news-cms/internal/auth/token"
	"github.com/EgorLis/news-cms/internal/domain"
)

// --- in-memory фейки ---

type memTokenStore struct {
	mu   sync.Mutex
	data map[string]domain.RefreshToken
}

func newMemTokenStore() *memTokenStore { return &memTokenStore{data: make(map[string]domain.RefreshToken)} }

func (s *memTokenStore) SaveRefreshToken(_ context.Context, rec domain.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[rec.Token] = rec
	return nil
}

func (s *memTokenStore) ConsumeRefreshToken(_ context.Context, t domain.Token) (domain.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[string(t)]
	if !ok {
		return domain.RefreshToken{}, domain.ErrNotFound
	}
	if rec.Blacklisted || rec.ExpiresAt.Before(time.Now()) {
		return domain.RefreshToken{}, domain.ErrTokenBlacklisted
	}
	rec.Blacklisted = true
	s.data[string(t)] = rec
	return rec, nil
}

func (s *memTokenStore) BlacklistRefreshToken(_ context.Context, t domain.Token) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[string(t)]
	if !ok {
		return domain.ErrNotFound
	}
	rec.Blacklisted = true
	s.data[string(t)] = rec
	return nil
}

func (s *memTokenStore) RefreshTokenByValue(_ context.Context, t domain.Token) (domain.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.data[string(t)]
	if !ok {
		return domain.RefreshToken{}, domain.ErrNotFound
	}
	return rec, nil
}

type memBlacklist struct {
	mu   sync.Mutex
	data map[string]bool
}

func newMemBlacklist() *memBlacklist { return &memBlacklist{data: make(map[string]bool)} }

func (b *memBlacklist) Revoke(_ context.Context, jti string, _ time.Time) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.data[jti] = true
	return nil
}

func (b *memBlacklist) IsRevoked(_ context.Context, jti string) (bool, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.data[jti], nil
}

type memAdmins struct {
	admins map[domain.AdminID]domain.Admin
}

func (m *memAdmins) Close()                        {}
func (m *memAdmins) Ping(context.Context) error    { return nil }
func (m *memAdmins) CreateAdmin(_ context.Context, email string, hash []byte, roles []string) (domain.Admin, error) {
	a := domain.Admin{ID: uuid.New(), Email: email, PassHash: hash, Roles: roles}
	m.admins[a.ID] = a
	return a, nil
}
func (m *memAdmins) AdminByEmail(_ context.Context, email string) (domain.Admin, error) {
	for _, a := range m.admins {
		if a.Email == email {
			return a, nil
		}
	}
	return domain.Admin{}, domain.ErrNotFound
}
func (m *memAdmins) AdminByID(_ context.Context, id domain.AdminID) (domain.Admin, error) {
	a, ok := m.admins[id]
	if !ok {
		return domain.Admin{}, domain.ErrNotFound
	}
	return a, nil
}

type env struct {
	mgr   *Manager
	codec domain.TokenCodec
	store *memTokenStore
	black *memBlacklist
	admin domain.Admin
}

func newEnv(t *testing.T, keepAdminAccess bool, roles ...string) env {
	t.Helper()
	if len(roles) == 0 {
		roles = []string{domain.RoleAdmin}
	}
	codec := token.New("access-secret", "refresh-secret", "test", time.Minute, time.Hour)
	store := newMemTokenStore()
	black := newMemBlacklist()
	admins := &memAdmins{admins: make(map[domain.AdminID]domain.Admin)}
	a, err := admins.CreateAdmin(context.Background(), "admin@example.com", []byte("x"), roles)
	require.NoError(t, err)

	logger := log.New(io.Discard, "", 0)
	return env{
		mgr:   New(logger, codec, store, black, admins, keepAdminAccess),
		codec: codec,
		store: store,
		black: black,
		admin: a,
	}
}

func TestGenerateAndVerify(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true)

	pair, err := e.mgr.Generate(context.Background(), e.admin)
	require.NoError(t, err)

	cl, err := e.mgr.VerifyAccess(context.Background(), pair.Access)
	require.NoError(t, err)
	assert.Equal(t, e.admin.ID, cl.AdminID)

	// refresh-запись сохранена и жива
	rec, err := e.store.RefreshTokenByValue(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.False(t, rec.Blacklisted)
}

func TestVerifyBlacklistBeatsValidity(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true)

	pair, err := e.mgr.Generate(context.Background(), e.admin)
	require.NoError(t, err)

	cl, err := e.codec.PeekClaims(pair.Access)
	require.NoError(t, err)
	require.NoError(t, e.black.Revoke(context.Background(), cl.JTI, cl.ExpiresAt))

	// токен валиден по подписи и сроку, но отозван
	_, err = e.mgr.VerifyAccess(context.Background(), pair.Access)
	assert.ErrorIs(t, err, domain.ErrTokenBlacklisted)
}

func TestRotateSingleUse(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true)

	pair, err := e.mgr.Generate(context.Background(), e.admin)
	require.NoError(t, err)

	newPair, cl, err := e.mgr.Rotate(context.Background(), pair.Refresh, pair.Access)
	require.NoError(t, err)
	assert.Equal(t, e.admin.ID, cl.AdminID)
	assert.NotEqual(t, pair.Refresh, newPair.Refresh)

	// повтор того же refresh — проигрыш
	_, _, err = e.mgr.Rotate(context.Background(), pair.Refresh, pair.Access)
	assert.ErrorIs(t, err, domain.ErrTokenBlacklisted)
}

func TestRotateUnknownRefresh(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true)

	_, _, err := e.mgr.Rotate(context.Background(), "no-such-token", "")
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestRotateKeepsAdminAccessWhenPolicyOn(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true)

	pair, err := e.mgr.Generate(context.Background(), e.admin)
	require.NoError(t, err)

	_, _, err = e.mgr.Rotate(context.Background(), pair.Refresh, pair.Access)
	require.NoError(t, err)

	// старый access админа не отозван
	cl, err := e.codec.PeekClaims(pair.Access)
	require.NoError(t, err)
	revoked, err := e.black.IsRevoked(context.Background(), cl.JTI)
	require.NoError(t, err)
	assert.False(t, revoked)
}

func TestRotateRevokesOldAccessWhenPolicyOff(t *testing.T) {
	t.Parallel()
	e := newEnv(t, false)

	pair, err := e.mgr.Generate(context.Background(), e.admin)
	require.NoError(t, err)

	_, _, err = e.mgr.Rotate(context.Background(), pair.Refresh, pair.Access)
	require.NoError(t, err)

	cl, err := e.codec.PeekClaims(pair.Access)
	require.NoError(t, err)
	revoked, err := e.black.IsRevoked(context.Background(), cl.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRotateRevokesOldAccessForNonAdmin(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true, "editor")

	pair, err := e.mgr.Generate(context.Background(), e.admin)
	require.NoError(t, err)

	_, _, err = e.mgr.Rotate(context.Background(), pair.Refresh, pair.Access)
	require.NoError(t, err)

	// политика keepAdminAccess не распространяется на другие роли
	cl, err := e.codec.PeekClaims(pair.Access)
	require.NoError(t, err)
	revoked, err := e.black.IsRevoked(context.Background(), cl.JTI)
	require.NoError(t, err)
	assert.True(t, revoked)
}

func TestRevokeLogout(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true)

	pair, err := e.mgr.Generate(context.Background(), e.admin)
	require.NoError(t, err)

	require.NoError(t, e.mgr.Revoke(context.Background(), pair.Access, pair.Refresh))

	_, err = e.mgr.VerifyAccess(context.Background(), pair.Access)
	assert.ErrorIs(t, err, domain.ErrTokenBlacklisted)

	rec, err := e.store.RefreshTokenByValue(context.Background(), pair.Refresh)
	require.NoError(t, err)
	assert.True(t, rec.Blacklisted)

	// повторный логаут не ошибка
	require.NoError(t, e.mgr.Revoke(context.Background(), pair.Access, pair.Refresh))
}

func TestRevokeUnknownRefreshTolerated(t *testing.T) {
	t.Parallel()
	e := newEnv(t, true)

	require.NoError(t, e.mgr.Revoke(context.Background(), "", "no-such-token"))
}
