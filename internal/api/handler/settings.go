// internal/api/handler/settings.go
package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"rarebit-ledger/internal/service"
	"rarebit-ledger/internal/util"
)

// SettingsHandler handles HTTP requests for categories and the user profile.
type SettingsHandler struct {
	settings service.SettingsService
	logger   *slog.Logger
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(settings service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{settings: settings, logger: logger}
}

// ListCategories handles GET /categories.
func (h *SettingsHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.settings.ListCategories(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]interface{}{"data": categories})
}

// CreateCategoryRequest represents the request body for category creation.
type CreateCategoryRequest struct {
	Name  string  `json:"name"`
	Color *string `json:"color"`
}

// CreateCategory handles POST /categories.
func (h *SettingsHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	category, err := h.settings.CreateCategory(r.Context(), userID(r), req.Name, req.Color)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusCreated, category)
}

// DeleteCategory handles DELETE /categories/{categoryID}.
func (h *SettingsHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	categoryID, err := pathID(chi.URLParam(r, "categoryID"))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	if err := h.settings.DeleteCategory(r.Context(), userID(r), categoryID); err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, map[string]string{"message": "Category deleted"})
}

// GetProfile handles GET /profile. A user with no stored profile gets an
// empty one back, not a 404.
func (h *SettingsHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	profile, err := h.settings.GetProfile(r.Context(), userID(r))
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, profile)
}

// SaveProfileRequest represents the request body for profile save.
type SaveProfileRequest struct {
	Username  *string `json:"username"`
	AvatarURL *string `json:"avatar_url"`
}

// SaveProfile handles PUT /profile.
func (h *SettingsHandler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	var req SaveProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, h.logger, util.ErrInvalidInput)
		return
	}
	profile, err := h.settings.SaveProfile(r.Context(), userID(r), req.Username, req.AvatarURL)
	if err != nil {
		respondWithError(w, h.logger, err)
		return
	}
	respondWithJSON(w, h.logger, http.StatusOK, profile)
}
