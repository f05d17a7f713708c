package mw

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/EgorLis/news-cms/internal/domain"
)

func cookieByName(t *testing.T, cookies []*http.Cookie, name string) *http.Cookie {
	t.Helper()
	for _, c := range cookies {
		if c.Name == name {
			return c
		}
	}
	t.Fatalf("cookie %q not set", name)
	return nil
}

func TestSetAuthCookies(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	SetAuthCookies(rec, domain.TokenPair{
		Access:     "acc",
		Refresh:    "ref",
		AccessExp:  time.Now().Add(15 * time.Minute),
		RefreshExp: time.Now().Add(30 * 24 * time.Hour),
	})

	cookies := rec.Result().Cookies()
	acc := cookieByName(t, cookies, CookieAccess)
	ref := cookieByName(t, cookies, CookieRefresh)
	isAuth := cookieByName(t, cookies, CookieIsAuth)

	assert.Equal(t, "acc", acc.Value)
	assert.True(t, acc.HttpOnly)
	assert.Equal(t, "ref", ref.Value)
	assert.True(t, ref.HttpOnly)
	assert.Equal(t, "true", isAuth.Value)
	assert.False(t, isAuth.HttpOnly) // фронтенд читает флаг

	// refresh живёт дольше floor — берём остаток жизни токена
	assert.Greater(t, ref.MaxAge, refreshMaxAgeFloor)
}

func TestSetAuthCookiesMaxAgeFloor(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	// токены короче floor — cookie всё равно живёт час/неделю
	SetAuthCookies(rec, domain.TokenPair{
		Access:     "acc",
		Refresh:    "ref",
		AccessExp:  time.Now().Add(time.Minute),
		RefreshExp: time.Now().Add(time.Minute),
	})

	cookies := rec.Result().Cookies()
	assert.Equal(t, accessMaxAgeFloor, cookieByName(t, cookies, CookieAccess).MaxAge)
	assert.Equal(t, refreshMaxAgeFloor, cookieByName(t, cookies, CookieRefresh).MaxAge)
}

func TestClearAuthCookies(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	ClearAuthCookies(rec)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 3)
	for _, c := range cookies {
		assert.Empty(t, c.Value)
		assert.Equal(t, -1, c.MaxAge)
	}
}

func TestAccessFromRequestCookieWinsOverHeader(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: CookieAccess, Value: "from-cookie"})
	r.Header.Set(HeaderAccess, "from-header")

	assert.Equal(t, domain.Token("from-cookie"), AccessFromRequest(r))
}

func TestTokenFromHeaderUnquoted(t *testing.T) {
	t.Parallel()
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	// клиент прислал токен как JSON-строку
	r.Header.Set(HeaderRefresh, `"eyJtoken"`)

	assert.Equal(t, domain.Token("eyJtoken"), RefreshFromRequest(r))
}
