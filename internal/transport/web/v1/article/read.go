package article

import (
	"net/http"
	"strings"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "article.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	q := r.URL.Query()
	f := domain.ArticleFilter{
		Status: strings.TrimSpace(q.Get("status")),
		Search: strings.TrimSpace(q.Get("search")),
	}
	lf := v1.ListFilterFromQuery(r)
	f.Page, f.Limit = lf.Page, lf.Limit

	page, err := h.Articles.List(r.Context(), f)
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(page.Articles), "total", page.Pagination.Total)
	v1.WriteOKData(w, r, page)
}

func (h *Handler) Published(w http.ResponseWriter, r *http.Request) {
	const op = "article.published"
	reqID := mw.RequestIDFromCtx(r.Context())

	items, err := h.Articles.Published(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "published failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(items))
	v1.WriteOKData(w, r, items)
}

// Search — всегда мимо кеша: произвольные термы кеш только замусорят
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	const op = "article.search"
	reqID := mw.RequestIDFromCtx(r.Context())

	q := r.URL.Query()
	items, err := h.Articles.Search(r.Context(), q.Get("q"), strings.TrimSpace(q.Get("status")))
	if err != nil {
		logx.Error(h.Log, reqID, op, "search failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(items))
	v1.WriteOKData(w, r, items)
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "article.getone"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	a, err := h.Articles.GetByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", a.ID)
	v1.WriteOKData(w, r, articleResponse{Article: a})
}
