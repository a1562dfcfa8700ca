// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"rarebit-ledger/internal/util"
)

// DefaultTimeout bounds each HTTP request.
const DefaultTimeout = 30 * time.Second

// respondWithJSON marshals payload and writes it with the given status code.
func respondWithJSON(w http.ResponseWriter, logger *slog.Logger, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error("Failed to marshal JSON response", "error", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors to HTTP status codes. Partial failures
// get their own status and carry what already committed, so the client can
// tell the user which side effect did happen before refetching.
func respondWithError(w http.ResponseWriter, logger *slog.Logger, err error) {
	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	var partial *util.PartialFailure

	switch {
	case errors.As(err, &partial):
		statusCode = http.StatusConflict
		respondWithJSON(w, logger, statusCode, map[string]string{
			"error":     partial.Error(),
			"committed": partial.Committed,
		})
		return
	case util.IsError(err, util.ErrInvalidInput), util.IsError(err, util.ErrCategoryRequired),
		util.IsError(err, util.ErrSameWalletTransfer), util.IsError(err, util.ErrBalanceImmutable),
		util.IsError(err, util.ErrUnknownTransactionType):
		statusCode = http.StatusBadRequest
		message = err.Error()
	case util.IsError(err, util.ErrNotFound), util.IsError(err, util.ErrWalletNotFound),
		util.IsError(err, util.ErrItemNotFound), util.IsError(err, util.ErrClientNotFound):
		statusCode = http.StatusNotFound
		message = "Resource not found"
	default:
		logger.Error("Unhandled service error", "error", err)
	}

	respondWithJSON(w, logger, statusCode, map[string]string{"error": message})
}

// pathID parses a numeric URL parameter.
func pathID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, util.ErrInvalidInput
	}
	return id, nil
}

// pagination parses limit/offset query parameters with defaults.
func pagination(r *http.Request) (limit, offset int) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	offset, err = strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}
