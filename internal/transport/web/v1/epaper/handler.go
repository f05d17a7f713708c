package epaper

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/service"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

type Handler struct {
	Log     *log.Logger
	EPapers *service.EPaperService
}

type epaperRequest struct {
	PublicationName string              `json:"publicationName"`
	PublicationDate string              `json:"publicationDate"`
	City            string              `json:"city"`
	Pages           []domain.EPaperPage `json:"pages"`
}

type epaperPatchRequest struct {
	PublicationName *string              `json:"publicationName"`
	PublicationDate *string              `json:"publicationDate"`
	City            *string              `json:"city"`
	Pages           *[]domain.EPaperPage `json:"pages"`
}

type epaperResponse struct {
	EPaper domain.EPaper `json:"epaper"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

// parseDate принимает дату выпуска как "2006-01-02" или полный RFC3339
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: invalid publicationDate %q", domain.ErrBadParams, s)
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "epaper.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req epaperRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	date, err := parseDate(req.PublicationDate)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad date", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	e, err := h.EPapers.Create(r.Context(), service.CreateEPaperInput{
		PublicationName: req.PublicationName,
		PublicationDate: date,
		City:            req.City,
		Pages:           req.Pages,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", e.ID, "name", e.PublicationName)
	v1.WriteCreated(w, r, epaperResponse{EPaper: e})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "epaper.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	page, err := h.EPapers.List(r.Context(), v1.ListFilterFromQuery(r))
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(page.EPapers), "total", page.Pagination.Total)
	v1.WriteOKData(w, r, page)
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "epaper.getone"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	e, err := h.EPapers.GetByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", e.ID)
	v1.WriteOKData(w, r, epaperResponse{EPaper: e})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "epaper.update"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req epaperPatchRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	p := domain.EPaperPatch{
		PublicationName: req.PublicationName,
		City:            req.City,
		Pages:           req.Pages,
	}
	if req.PublicationDate != nil {
		date, err := parseDate(*req.PublicationDate)
		if err != nil {
			logx.Error(h.Log, reqID, op, "bad date", err)
			v1.WriteDomainError(w, r, err)
			return
		}
		p.PublicationDate = &date
	}

	e, err := h.EPapers.Update(r.Context(), id, p)
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", e.ID)
	v1.WriteOKResponse(w, r, epaperResponse{EPaper: e})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "epaper.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.EPapers.Delete(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, deletedResponse{Deleted: true})
}
