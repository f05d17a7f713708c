package short

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
	Log    *log.Logger
	Shorts *service.ShortService
}

type shortRequest struct {
	Title          string               `json:"title"`
	VideoImage     string               `json:"videoImage"`
	ThumbnailImage string               `json:"thumbnailImage"`
	Description    string               `json:"description"`
	Category       domain.CategoryID    `json:"category"`
	Tags           []string             `json:"tags"`
	RelatedLinks   []domain.RelatedLink `json:"relatedLinks"`
}

type shortPatchRequest struct {
	Title          *string               `json:"title"`
	VideoImage     *string               `json:"videoImage"`
	ThumbnailImage *string               `json:"thumbnailImage"`
	Description    *string               `json:"description"`
	Category       *domain.CategoryID    `json:"category"`
	Tags           *[]string             `json:"tags"`
	RelatedLinks   *[]domain.RelatedLink `json:"relatedLinks"`
}

type shortResponse struct {
	Short domain.Short `json:"short"`
}

type deletedResponse struct {
	Deleted bool `json:"deleted"`
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	const op = "short.create"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	var req shortRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	s, err := h.Shorts.Create(r.Context(), service.CreateShortInput{
		Title:          req.Title,
		VideoImage:     req.VideoImage,
		ThumbnailImage: req.ThumbnailImage,
		Description:    req.Description,
		CategoryID:     req.Category,
		Tags:           req.Tags,
		RelatedLinks:   req.RelatedLinks,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "create failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", s.ID, "title", s.Title)
	v1.WriteCreated(w, r, shortResponse{Short: s})
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	const op = "short.list"
	reqID := mw.RequestIDFromCtx(r.Context())

	page, err := h.Shorts.List(r.Context(), v1.ListFilterFromQuery(r))
	if err != nil {
		logx.Error(h.Log, reqID, op, "list failed", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "count", len(page.Shorts), "total", page.Pagination.Total)
	v1.WriteOKData(w, r, page)
}

func (h *Handler) GetOne(w http.ResponseWriter, r *http.Request) {
	const op = "short.getone"
	reqID := mw.RequestIDFromCtx(r.Context())

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	s, err := h.Shorts.GetByID(r.Context(), id)
	if err != nil {
		logx.Error(h.Log, reqID, op, "get failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", s.ID)
	v1.WriteOKData(w, r, shortResponse{Short: s})
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	const op = "short.update"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	var req shortPatchRequest
	if err := v1.DecodeJSON(r, &req); err != nil {
		logx.Error(h.Log, reqID, op, "bad body", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	s, err := h.Shorts.Update(r.Context(), id, domain.ShortPatch{
		Title:          req.Title,
		VideoImage:     req.VideoImage,
		ThumbnailImage: req.ThumbnailImage,
		Description:    req.Description,
		CategoryID:     req.Category,
		Tags:           req.Tags,
		RelatedLinks:   req.RelatedLinks,
	})
	if err != nil {
		logx.Error(h.Log, reqID, op, "update failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", s.ID)
	v1.WriteOKResponse(w, r, shortResponse{Short: s})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "short.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	id, err := v1.IDFromPath(r)
	if err != nil {
		logx.Error(h.Log, reqID, op, "bad id", err)
		v1.WriteDomainError(w, r, err)
		return
	}

	if err := h.Shorts.Delete(r.Context(), id); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "id", id)
		v1.WriteDomainError(w, r, err)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "id", id)
	v1.WriteOKResponse(w, r, deletedResponse{Deleted: true})
}
