package admin

import (
	"net/http"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

// Me отдаёт свежую запись администратора из БД,
// а не клеймы токена — роли могли поменяться после выпуска
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	const op = "admin.me"
	reqID := mw.RequestIDFromCtx(r.Context())

	me, ok := domain.AdminFromCtx(r.Context())
	if !ok {
		logx.Error(h.Log, reqID, op, "no identity in ctx", domain.ErrUnauth)
		v1.WriteDomainError(w, r, domain.ErrUnauth)
		return
	}

	a, err := h.Admins.GetByID(r.Context(), me.ID)
	if err != nil {
		logx.Error(h.Log, reqID, op, "load admin failed", err, "admin_id", me.ID)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "admin_id", a.ID)
	v1.WriteOKResponse(w, r, adminResponse{Admin: a})
}
