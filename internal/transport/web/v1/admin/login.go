package admin

import (
	"net/http"

	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	const op = "admin.login"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req credentialsRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	a, pair, err := h.Admins.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		logx.Error(h.Log, reqID, op, "login failed", err, "email", req.Email)
		v1.WriteDomainError(w, r, err)
		return
	}

	mw.SetAuthCookies(w, pair)
	logx.Info(h.Log, reqID, op, "ok", "admin_id", a.ID, "email", a.Email)
	v1.WriteOKResponse(w, r, adminResponse{Admin: a})
}
