package admin

import (
	"net/http"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

type logoutResponse struct {
	LoggedOut bool `json:"loggedOut"`
}

// Logout гасит сессию целиком: обе половины в блэклист, cookie — в ноль.
// Идемпотентен: повторный логаут с теми же токенами тоже ok.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	const op = "admin.logout"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	access := mw.AccessFromRequest(r)
	refresh := mw.RefreshFromRequest(r)
	if access == "" && refresh == "" {
		logx.Error(h.Log, reqID, op, "no tokens", domain.ErrBadParams)
		mw.ClearAuthCookies(w)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Sessions.Revoke(r.Context(), access, refresh); err != nil {
		logx.Error(h.Log, reqID, op, "revoke failed", err)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	mw.ClearAuthCookies(w)
	logx.Info(h.Log, reqID, op, "ok")
	v1.WriteOKResponse(w, r, logoutResponse{LoggedOut: true})
}
