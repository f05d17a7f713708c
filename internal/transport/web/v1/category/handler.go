package category

import (
	"log"
	"net/http"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/service"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

type Handler struct {
	Log        *log.Logger
	Categories *service.CategoryService
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Color       string `json:"color"`
}

type categoryPatchRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Color       *string `json:"color"`
}

type categoryResponse struct {
	Category domain.Category `json:"category"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "category.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req categoryRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	c, err := h.Categories.Create(r.Context(), service.CreateCategoryInput{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "name", req.Name)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", c.ID, "name", c.Name)
	v1.WriteCreated(w, r, categoryResponse{Category: c})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "category.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	page, err := h.Categories.List(r.Context(), v1.ListFilterFromQuery(r))
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(page.Categories), "total", page.Pagination.Total)
	v1.WriteOKData(w, r, page)
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	const op = "category.active"
	reqID := mw.RequestIDFromCtx(r.Context())

	items, err := h.Categories.Active(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "active failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(items))
	v1.WriteOKData(w, r, items)
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "category.getone"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	c, err := h.Categories.GetByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", c.ID)
	v1.WriteOKData(w, r, categoryResponse{Category: c})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "category.update"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req categoryPatchRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	c, err := h.Categories.Update(r.Context(), id, domain.CategoryPatch{
		Name:        req.Name,
		Description: req.Description,
		Color:       req.Color,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", c.ID)
	v1.WriteOKResponse(w, r, categoryResponse{Category: c})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "category.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Categories.Delete(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, deletedResponse{Deleted: true})
}
