package mw

import (
	"net/http"
	"strings"
	"time"

	"github.com/EgorLis/news-cms/internal/domain"
)

// Имена cookie и заголовков сессии — контракт с фронтендом
const (
	CookieAccess  = "accessToken"
	CookieRefresh = "refreshToken"
	CookieIsAuth  = "is_auth"

	HeaderAccess         = "X-Access-Token"
	HeaderRefresh        = "X-Refresh-Token"
	HeaderSessionExpired = "X-Session-Expired"
)

// Нижние границы max-age: cookie живёт не меньше часа/недели,
// даже если сам токен короче
const (
	accessMaxAgeFloor  = 3600
	refreshMaxAgeFloor = 7 * 24 * 3600
)

// SetAuthCookies выставляет обе токен-cookie (HttpOnly) и флаг is_auth,
// читаемый фронтендом
func SetAuthCookies(w http.ResponseWriter, pair domain.TokenPair) {
	accessAge := cookieMaxAge(pair.AccessExp, accessMaxAgeFloor)
	refreshAge := cookieMaxAge(pair.RefreshExp, refreshMaxAgeFloor)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieAccess,
		Value:    string(pair.Access),
		Path:     "/",
		MaxAge:   accessAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieRefresh,
		Value:    string(pair.Refresh),
		Path:     "/",
		MaxAge:   refreshAge,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
	http.SetCookie(w, &http.Cookie{
		Name:     CookieIsAuth,
		Value:    "true",
		Path:     "/",
		MaxAge:   refreshAge,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

// ClearAuthCookies гасит все три cookie сессии
func ClearAuthCookies(w http.ResponseWriter) {
	for _, name := range []string{CookieAccess, CookieRefresh, CookieIsAuth} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: name != CookieIsAuth,
			Secure:   true,
			SameSite: http.SameSiteNoneMode,
		})
	}
}

func cookieMaxAge(exp time.Time, floor int) int {
	age := int(time.Until(exp).Seconds())
	if age < floor {
		age = floor
	}
	return age
}

// AccessFromRequest достаёт access-токен: cookie, затем заголовок
func AccessFromRequest(r *http.Request) domain.Token {
	if c, err := r.Cookie(CookieAccess); err == nil && c.Value != "" {
		return domain.Token(c.Value)
	}
	return domain.Token(unquote(r.Header.Get(HeaderAccess)))
}

func RefreshFromRequest(r *http.Request) domain.Token {
	if c, err := r.Cookie(CookieRefresh); err == nil && c.Value != "" {
		return domain.Token(c.Value)
	}
	return domain.Token(unquote(r.Header.Get(HeaderRefresh)))
}

// unquote терпит токен, присланный как JSON-строка ("eyJ...")
func unquote(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	return s
}
