// internal/api/handler/item.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"rarebit-ledger/internal/domain"
	"rarebit-ledger/internal/service"
	"rarebit-ledger/internal/util"
)

// ItemHandler handles HTTP requests for inventory items.
type ItemHandler struct {
	items  service.ItemService
	logger *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(items service.ItemService, logger *slog.Logger) *ItemHandler {
	return &ItemHandler{items: items, logger: logger}
}

// ListItems handles GET /items.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	items, err := h.items.ListItems(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"data": items})
}

// GetItem handles GET /items/{itemID}.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(chi.URLParam(r, "itemID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	item, err := h.items.GetItem(r.Context(), userID(r), itemID)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, item)
}

// SaveItemRequest represents the request body for item create/edit.
// OriginalStatus is the status the caller loaded before editing; it decides
// which ledger action the save triggers.
type SaveItemRequest struct {
	ID             *int64            `json:"id"`
	Name           string            `json:"name"`
	Category       string            `json:"category"`
	CostPrice      decimal.Decimal   `json:"cost_price"`
	SellingPrice   decimal.Decimal   `json:"selling_price"`
	Status         domain.ItemStatus `json:"status"`
	DateBought     *time.Time        `json:"date_bought"`
	DateSold       *time.Time        `json:"date_sold"`
	Platforms      []string          `json:"platforms"`
	SoldPlatforms  []string          `json:"sold_platforms"`
	ImageURL       *string           `json:"image_url"`
	ClientID       *int64            `json:"client_id"`
	WalletID       *int64            `json:"wallet_id"`
	OriginalStatus domain.ItemStatus `json:"original_status"`
}

// SaveItem handles POST /items.
func (h *ItemHandler) SaveItem(w http.ResponseWriter, r *http.Request) {
	var req SaveItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}

	item, action, err := h.items.SaveItem(r.Context(), userID(r), service.ItemInput{
		ID:            req.ID,
		Name:          req.Name,
		Category:      req.Category,
		CostPrice:     req.CostPrice,
		SellingPrice:  req.SellingPrice,
		Status:        req.Status,
		DateBought:    req.DateBought,
		DateSold:      req.DateSold,
		Platforms:     req.Platforms,
		SoldPlatforms: req.SoldPlatforms,
		ImageURL:      req.ImageURL,
		ClientID:      req.ClientID,
		WalletID:      req.WalletID,
	}, req.OriginalStatus)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}

	code := http.StatusOK
	if req.ID == nil {
		code = http.StatusCreated
	}
	respondWithJSON(w, h.logger, code, map[string]interface{}{
		"item":   item,
		"action": action,
	})
}

// DeleteItem handles DELETE /items/{itemID}.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	itemID, err := pathID(chi.URLParam(r, "itemID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	if err := h.items.DeleteItem(r.Context(), userID(r), itemID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Item deleted"})
}
