package location

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
	Log       *log.Logger
	Locations *service.LocationService
}

type locationRequest struct {
	Name        string `json:"name"`
	Country     string `json:"country"`
	Region      string `json:"region"`
	Description string `json:"description"`
	Status      string `json:"status"`
}

type locationPatchRequest struct {
	Name        *string `json:"name"`
	Country     *string `json:"country"`
	Region      *string `json:"region"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type locationResponse struct {
	Location domain.Location `json:"location"`
}

type statusRequest struct {
	Status string `json:"status"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "location.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req locationRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	l, err := h.Locations.Create(r.Context(), service.CreateLocationInput{
		Name:        req.Name,
		Country:     req.Country,
		Region:      req.Region,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err, "name", req.Name)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", l.ID, "name", l.Name)
	v1.WriteCreated(w, r, locationResponse{Location: l})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "location.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	page, err := h.Locations.List(r.Context(), v1.ListFilterFromQuery(r))
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(page.Locations), "total", page.Pagination.Total)
	v1.WriteOKData(w, r, page)
}

func (h *Handler) Active(w http.ResponseWriter, r *http.Request) {
	const op = "location.active"
	reqID := mw.RequestIDFromCtx(r.Context())

	items, err := h.Locations.Active(r.Context())
	if err != nil {
		logx.Error(h.Log, reqID, op, "active failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(items))
	v1.WriteOKData(w, r, items)
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "location.getone"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	l, err := h.Locations.GetByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", l.ID)
	v1.WriteOKData(w, r, locationResponse{Location: l})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "location.update"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req locationPatchRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	l, err := h.Locations.Update(r.Context(), id, domain.LocationPatch{
		Name:        req.Name,
		Country:     req.Country,
		Region:      req.Region,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", l.ID)
	v1.WriteOKResponse(w, r, locationResponse{Location: l})
}

func (h *Handler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	const op = "location.status"
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

	l, err := h.Locations.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		logx.Error(h.Log, reqID, op, "status update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", l.ID, "status", l.Status)
	v1.WriteOKResponse(w, r, locationResponse{Location: l})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "location.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Locations.Delete(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, deletedResponse{Deleted: true})
}
