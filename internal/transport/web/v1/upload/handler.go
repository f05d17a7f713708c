package upload

import (
	"log"
	"net/http"

	"github.com/EgorLis/news-cms/internal/domain"
	"github.com/EgorLis/news-cms/internal/transport/web/logx"
	"github.com/EgorLis/news-cms/internal/transport/web/mw"
	v1 "github.com/EgorLis/news-cms/internal/transport/web/v1"
)

type Handler struct {
	Log     *log.Logger
	Storage domain.BlobStorage
}

type uploadResponse struct {
	Key  string `json:"key"`
	URL  string `json:"url"`
	Size int64  `json:"size"`
}

type deletedResponse struct {
	Deleted bool   `json:"deleted"`
	Key     string `json:"key"`
}

// Upload принимает файл (multipart/form-data, поле "file"),
// кладёт в S3 и возвращает публичную ссылку
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	const op = "upload.put"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	if err := r.ParseMultipartForm(32 << 20); err != nil { // 32MB
		logx.Error(h.Log, reqID, op, "invalid multipart", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		logx.Error(h.Log, reqID, op, "missing file", err)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}
	defer file.Close()

	mime := header.Header.Get("Content-Type")
	if mime == "" {
		mime = "application/octet-stream"
	}

	res, err := h.Storage.Put(r.Context(), file, header.Size, header.Filename, mime)
	if err != nil {
		logx.Error(h.Log, reqID, op, "put failed", err, "name", header.Filename)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "key", res.StorageKey, "size", res.Size)
	v1.WriteOKResponse(w, r, uploadResponse{Key: res.StorageKey, URL: res.URL, Size: res.Size})
}

func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	const op = "upload.delete"
	reqID := mw.RequestIDFromCtx(r.Context())
	logx.Info(h.Log, reqID, op, "start", "method", r.Method, "path", r.URL.Path)

	key := r.URL.Query().Get("key")
	if key == "" {
		logx.Error(h.Log, reqID, op, "missing key", domain.ErrBadParams)
		v1.WriteDomainError(w, r, domain.ErrBadParams)
		return
	}

	if err := h.Storage.Delete(r.Context(), key); err != nil {
		logx.Error(h.Log, reqID, op, "delete failed", err, "key", key)
		v1.WriteDomainError(w, r, domain.ErrUnexpected)
		return
	}

	logx.Info(h.Log, reqID, op, "ok", "key", key)
	v1.WriteOKResponse(w, r, deletedResponse{Deleted: true, Key: key})
}
