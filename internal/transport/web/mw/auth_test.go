package mw

import (
	"context"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/news-cms/internal/domain"
)

type fakeSessions struct {
	verify func(domain.Token) (domain.TokenClaims, error)
	rotate func(refresh, oldAccess domain.Token) (domain.TokenPair, domain.TokenClaims, error)
}

func (f *fakeSessions) Generate(context.Context, domain.Admin) (domain.TokenPair, error) {
	panic("not used")
}

func (f *fakeSessions) VerifyAccess(_ context.Context, t domain.Token) (domain.TokenClaims, error) {
	return f.verify(t)
}

func (f *fakeSessions) Rotate(_ context.Context, refresh, oldAccess domain.Token) (domain.TokenPair, domain.TokenClaims, error) {
	if f.rotate == nil {
		panic("unexpected rotate")
	}
	return f.rotate(refresh, oldAccess)
}

func (f *fakeSessions) Revoke(context.Context, domain.Token, domain.Token) error { return nil }

func adminClaims() domain.TokenClaims {
	return domain.TokenClaims{
		JTI:       "jti-1",
		AdminID:   uuid.New(),
		Email:     "admin@example.com",
		Roles:     []string{domain.RoleAdmin},
		ExpiresAt: time.Now().Add(time.Minute),
	}
}

func gateWith(s domain.SessionManager) (http.Handler, *bool, *domain.Admin) {
	called := false
	var seen domain.Admin
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen, _ = domain.AdminFromCtx(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	deps := AuthDeps{Log: log.New(io.Discard, "", 0), Sessions: s}
	return AutoRefresh(deps, next), &called, &seen
}

func TestAutoRefreshValidAccess(t *testing.T) {
	t.Parallel()
	cl := adminClaims()
	sessions := &fakeSessions{
		verify: func(tok domain.Token) (domain.TokenClaims, error) {
			require.Equal(t, domain.Token("valid"), tok)
			return cl, nil
		},
	}
	gate, called, seen := gateWith(sessions)

	r := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieAccess, Value: "valid"})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, cl.AdminID, seen.ID)
	assert.Empty(t, rec.Header().Get(HeaderSessionExpired))
}

func TestAutoRefreshExpiredAccessRotates(t *testing.T) {
	t.Parallel()
	cl := adminClaims()
	newPair := domain.TokenPair{
		Access:     "new-access",
		Refresh:    "new-refresh",
		AccessExp:  time.Now().Add(15 * time.Minute),
		RefreshExp: time.Now().Add(7 * 24 * time.Hour),
	}
	sessions := &fakeSessions{
		verify: func(domain.Token) (domain.TokenClaims, error) {
			return domain.TokenClaims{}, domain.ErrTokenExpired
		},
		rotate: func(refresh, oldAccess domain.Token) (domain.TokenPair, domain.TokenClaims, error) {
			require.Equal(t, domain.Token("old-refresh"), refresh)
			require.Equal(t, domain.Token("old-access"), oldAccess)
			return newPair, cl, nil
		},
	}
	gate, called, seen := gateWith(sessions)

	r := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieAccess, Value: "old-access"})
	r.AddCookie(&http.Cookie{Name: CookieRefresh, Value: "old-refresh"})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
	assert.Equal(t, cl.AdminID, seen.ID)

	// новая пара и в cookie, и в заголовках
	cookies := rec.Result().Cookies()
	assert.Equal(t, "new-access", cookieByName(t, cookies, CookieAccess).Value)
	assert.Equal(t, "new-refresh", cookieByName(t, cookies, CookieRefresh).Value)
	assert.Equal(t, "new-access", rec.Header().Get(HeaderAccess))
	assert.Equal(t, "new-refresh", rec.Header().Get(HeaderRefresh))
}

func TestAutoRefreshMissingAccessWithRefreshRotates(t *testing.T) {
	t.Parallel()
	cl := adminClaims()
	sessions := &fakeSessions{
		verify: func(domain.Token) (domain.TokenClaims, error) {
			panic("verify must not be called without access token")
		},
		rotate: func(refresh, oldAccess domain.Token) (domain.TokenPair, domain.TokenClaims, error) {
			require.Empty(t, oldAccess)
			return domain.TokenPair{
				Access: "a", Refresh: "r",
				AccessExp: time.Now().Add(time.Minute), RefreshExp: time.Now().Add(time.Hour),
			}, cl, nil
		},
	}
	gate, called, _ := gateWith(sessions)

	r := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieRefresh, Value: "only-refresh"})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func assertSessionExpired(t *testing.T, rec *httptest.ResponseRecorder, called bool) {
	t.Helper()
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)
	assert.Equal(t, "true", rec.Header().Get(HeaderSessionExpired))
	for _, c := range rec.Result().Cookies() {
		assert.Equal(t, -1, c.MaxAge, "cookie %s must be cleared", c.Name)
	}
}

func TestAutoRefreshRotateFailureIsTerminal(t *testing.T) {
	t.Parallel()
	sessions := &fakeSessions{
		verify: func(domain.Token) (domain.TokenClaims, error) {
			return domain.TokenClaims{}, domain.ErrTokenExpired
		},
		rotate: func(domain.Token, domain.Token) (domain.TokenPair, domain.TokenClaims, error) {
			// refresh уже потреблён (replay)
			return domain.TokenPair{}, domain.TokenClaims{}, domain.ErrTokenBlacklisted
		},
	}
	gate, called, _ := gateWith(sessions)

	r := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieAccess, Value: "expired"})
	r.AddCookie(&http.Cookie{Name: CookieRefresh, Value: "replayed"})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, r)

	assertSessionExpired(t, rec, *called)
}

func TestAutoRefreshBlacklistedAccessNoRotation(t *testing.T) {
	t.Parallel()
	sessions := &fakeSessions{
		verify: func(domain.Token) (domain.TokenClaims, error) {
			return domain.TokenClaims{}, domain.ErrTokenBlacklisted
		},
		// rotate nil: попытка ротации уронит тест паникой
	}
	gate, called, _ := gateWith(sessions)

	r := httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil)
	r.AddCookie(&http.Cookie{Name: CookieAccess, Value: "blacklisted"})
	r.AddCookie(&http.Cookie{Name: CookieRefresh, Value: "still-fresh"})
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, r)

	assertSessionExpired(t, rec, *called)
}

func TestAutoRefreshNoTokens(t *testing.T) {
	t.Parallel()
	sessions := &fakeSessions{
		verify: func(domain.Token) (domain.TokenClaims, error) { panic("must not verify") },
	}
	gate, called, _ := gateWith(sessions)

	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/admin/me", nil))

	assertSessionExpired(t, rec, *called)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	gate := RequireRole(domain.RoleAdmin, next)

	// без идентичности
	rec := httptest.NewRecorder()
	gate.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// не та роль
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(domain.WithAdmin(r.Context(), domain.Admin{Roles: []string{"editor"}}))
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// admin проходит
	r = httptest.NewRequest(http.MethodGet, "/", nil)
	r = r.WithContext(domain.WithAdmin(r.Context(), domain.Admin{Roles: []string{domain.RoleAdmin}}))
	rec = httptest.NewRecorder()
	gate.ServeHTTP(rec, r)
	assert.Equal(t, http.StatusOK, rec.Code)
}
