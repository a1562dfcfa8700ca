// internal/api/handler/upload.go
package handler

import (
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"rarebit-ledger/pkg/blob"
)

// maxUploadBytes caps item image uploads at 10 MiB.
const maxUploadBytes = 10 << 20

const itemImageFolder = "item-images"

// UploadHandler handles item image uploads. The store is nil when no blob
// storage credentials are configured; uploads then return 503.
type UploadHandler struct {
	store  blob.Store
	logger *slog.Logger
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store blob.Store, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{store: store, logger: logger}
}

// UploadItemImage handles POST /uploads/item-image. Expects a multipart form
// with the image under the "image" field and returns the delivery URL.
func (h *UploadHandler) UploadItemImage(w http.ResponseWriter, r *http.Request) {
	if h.store == nil {
		respondWithJSON(w, h.logger, http.StatusServiceUnavailable, map[string]string{
			"error": "image storage is not configured",
		})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		respondWithJSON(w, h.logger, http.StatusBadRequest, map[string]string{
			"error": "invalid multipart form",
		})
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		respondWithJSON(w, h.logger, http.StatusBadRequest, map[string]string{
			"error": "missing image file",
		})
		return
	}
	defer file.Close()

	url, err := h.store.UploadImage(r.Context(), file, itemImageFolder, uuid.NewString())
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, map[string]string{"url": url})
}
