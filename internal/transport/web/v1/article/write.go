package article

import (
	"net/http"

	"github.com/EgorLis/news-cms/internal/service"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "article.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req articleRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	a, err := h.Articles.Create(r.Context(), service.CreateArticleInput{
		ColoredHeading: req.ColoredHeading,
		RestHeading:    req.RestHeading,
		ArticleTitle:   req.ArticleTitle,
		Author:         req.Author,
		CategoryID:     req.Category,
		Status:         req.Status,
		FeaturedImage:  req.FeaturedImage,
		Excerpt:        req.Excerpt,
		Content:        req.Content,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", a.ID, "title", a.ArticleTitle)
	v1.WriteCreated(w, r, articleResponse{Article: a})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "article.update"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req articlePatchRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	a, err := h.Articles.Update(r.Context(), id, req.patch())
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", a.ID)
	v1.WriteOKResponse(w, r, articleResponse{Article: a})
}

type statusRequest struct {
	Status string `json:"status"`
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const op = "article.status"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req statusRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	a, err := h.Articles.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		logx.Error(h.Log, reqID, op, "status update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", a.ID, "status", a.Status)
	v1.WriteOKResponse(w, r, articleResponse{Article: a})
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "article.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Articles.Delete(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, deletedResponse{Deleted: true})
}
