// internal/api/handler/client.go
package handler

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/service"
	"rarebit-ledger/internal/util"
)

// ClientHandler handles HTTP requests for clients and their purchase history.
type ClientHandler struct {
	clients service.ClientService
	reports service.ReportService
	logger  *slog.Logger
}

// NewClientHandler creates a new ClientHandler.
func NewClientHandler(clients service.ClientService, reports service.ReportService, logger *slog.Logger) *ClientHandler {
	return &ClientHandler{clients: clients, reports: reports, logger: logger}
}

// ListClients handles GET /clients.
func (h *ClientHandler) ListClients(w http.ResponseWriter, r *http.Request) {
	clients, err := h.clients.ListClients(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"data": clients})
}

// SaveClientRequest represents the request body for client create/edit.
// Phones and addresses are replaced wholesale on every save.
type SaveClientRequest struct {
	ID        *int64                 `json:"id"`
	Name      string                 `json:"name"`
	Email     *string                `json:"email"`
	Notes     *string                `json:"notes"`
	Phones    []domain.ClientPhone   `json:"phones"`
	Addresses []domain.ClientAddress `json:"addresses"`
}

// SaveClient handles POST /clients.
func (h *ClientHandler) SaveClient(w http.ResponseWriter, r *http.Request) {
	var req SaveClientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	client, err := h.clients.SaveClient(r.Context(), userID(r), req.ID, service.ClientInput{
		Name:      req.Name,
		Email:     req.Email,
		Notes:     req.Notes,
		Phones:    req.Phones,
		Addresses: req.Addresses,
	})
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	code := http.StatusOK
	if req.ID == nil {
		code = http.StatusCreated
	}
	respondWithJSON(w, h.logger, code, client)
}

// GetClientDetail handles GET /clients/{clientID}. The response includes the
// client's sold items and derived spend statistics.
func (h *ClientHandler) GetClientDetail(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(chi.URLParam(r, "clientID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	detail, err := h.clients.GetClientDetail(r.Context(), userID(r), clientID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, detail)
}

// DeleteClient handles DELETE /clients/{clientID}.
func (h *ClientHandler) DeleteClient(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(chi.URLParam(r, "clientID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	if err := h.clients.DeleteClient(r.Context(), userID(r), clientID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Client deleted"})
}

// ClientHistoryCSV handles GET /clients/{clientID}/history.csv.
func (h *ClientHandler) ClientHistoryCSV(w http.ResponseWriter, r *http.Request) {
	clientID, err := pathID(chi.URLParam(r, "clientID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=client_%d_history.csv", clientID))
	if err := h.reports.WriteClientHistoryCSV(r.Context(), userID(r), clientID, w); err != nil {
		// Headers may already be out; log and abandon the stream.
		h.logger.Error("Failed to write client history CSV", slog.String("error", err.Error()))
	}
}
