package mw

import (
	"errors"
	"log"
	"net/http"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
)

type AuthDeps struct {
	Log      *log.Logger
	Sessions domain.SessionManager
}

// AutoRefresh — шлюз защищённых маршрутов. Живой access пропускает
// как есть; истёкший прозрачно меняется по refresh на новую пару
// (cookie + заголовки обновляются в том же ответе). Любой терминальный
// отказ гасит cookie и помечает ответ X-Session-Expired.
func AutoRefresh(deps AuthDeps, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		const op = "mw.auth"
		reqID := RequestIDFromCtx(r.Context())

		access := AccessFromRequest(r)
		refresh := RefreshFromRequest(r)

		if access == "" && refresh == "" {
			logx.Error(deps.Log, reqID, op, "no tokens", domain.ErrUnauth, "path", r.URL.Path)
			expireSession(w)
			return
		}

		if access != "" {
			claims, err := deps.Sessions.VerifyAccess(r.Context(), access)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(domain.WithAdmin(r.Context(), adminFromClaims(claims))))
				return
			case errors.Is(err, domain.ErrTokenExpired):
				// идём на ротацию
			default:
				// блэклист или битый токен — ротация запрещена
				logx.Error(deps.Log, reqID, op, "access rejected", err, "path", r.URL.Path)
				expireSession(w)
				return
			}
		}

		if refresh == "" {
			logx.Error(deps.Log, reqID, op, "access expired, no refresh", domain.ErrUnauth, "path", r.URL.Path)
			expireSession(w)
			return
		}

		pair, claims, err := deps.Sessions.Rotate(r.Context(), refresh, access)
		if err != nil {
			logx.Error(deps.Log, reqID, op, "rotate failed", err, "path", r.URL.Path)
			expireSession(w)
			return
		}

		// новая пара уезжает и в cookie, и в заголовки — для клиентов без cookie-jar
		SetAuthCookies(w, pair)
		w.Header().Set(HeaderAccess, string(pair.Access))
		w.Header().Set(HeaderRefresh, string(pair.Refresh))

		logx.Info(deps.Log, reqID, op, "rotated", "admin_id", claims.AdminID)
		next.ServeHTTP(w, r.WithContext(domain.WithAdmin(r.Context(), adminFromClaims(claims))))
	})
}

// RequireRole пускает дальше только идентичность с нужной ролью
func RequireRole(role string, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a, ok := domain.AdminFromCtx(r.Context())
		if !ok {
			writeAuthError(w, http.StatusUnauthorized, `{"error":{"code":1001,"text":"unauthorized"}}`)
			return
		}
		if !a.HasRole(role) {
			writeAuthError(w, http.StatusForbidden, `{"error":{"code":1003,"text":"forbidden"}}`)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func adminFromClaims(c domain.TokenClaims) domain.Admin {
	return domain.Admin{ID: c.AdminID, Email: c.Email, Roles: c.Roles}
}

// expireSession — терминальный 401: cookie гаснут, фронтенд по
// X-Session-Expired понимает, что сессию не вернуть
func expireSession(w http.ResponseWriter) {
	ClearAuthCookies(w)
	w.Header().Set(HeaderSessionExpired, "true")
	writeAuthError(w, http.StatusUnauthorized, `{"error":{"code":1001,"text":"unauthorized"}}`)
}

func writeAuthError(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(body))
}
