package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/nmantri/spendwise/internal/settings"
	"github.com/nmantri/spendwise/internal/transport/httpapi/middleware"
)

// SettingsStoreInterface defines the settings operations needed by
// SettingsHandler. Each save action round-trips the whole settings object.
type SettingsStoreInterface interface {
	Load(ctx context.Context, user string) (settings.Settings, error)
	Save(ctx context.Context, user string, s settings.Settings) error
}

// SettingsHandler handles per-user preference requests
type SettingsHandler struct {
	store SettingsStoreInterface
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store SettingsStoreInterface) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// GetSettings handles GET /settings
func (h *SettingsHandler) GetSettings(w http.ResponseWriter, r *http.Request) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	prefs, err := h.store.Load(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, prefs, http.StatusOK)
}

// SaveCategories handles PUT /settings/categories. Blank entries are
// dropped; order is preserved and duplicates are allowed.
func (h *SettingsHandler) SaveCategories(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Categories []string `json:"categories"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	categories := make([]string, 0, len(req.Categories))
	for _, c := range req.Categories {
		if c = strings.TrimSpace(c); c != "" {
			categories = append(categories, c)
		}
	}

	h.save(w, r, func(s *settings.Settings) {
		s.Categories = categories
	})
}

// SaveCurrency handles PUT /settings/currency
func (h *SettingsHandler) SaveCurrency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Currency string `json:"currency"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if req.Currency == "" {
		respondError(w, "currency is required", http.StatusBadRequest)
		return
	}

	h.save(w, r, func(s *settings.Settings) {
		s.Currency = req.Currency
	})
}

// SaveStartDate handles PUT /settings/start-date
func (h *SettingsHandler) SaveStartDate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		StartDate int `json:"start_date"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}

	h.save(w, r, func(s *settings.Settings) {
		s.StartDate = req.StartDate
	})
}

// save loads the whole settings object, applies one mutation, validates,
// and writes it back wholesale.
func (h *SettingsHandler) save(w http.ResponseWriter, r *http.Request, mutate func(*settings.Settings)) {
	username, ok := middleware.GetUsernameFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	prefs, err := h.store.Load(r.Context(), username)
	if err != nil {
		respondAppError(w, err)
		return
	}

	mutate(&prefs)

	if err := prefs.Validate(); err != nil {
		respondAppError(w, err)
		return
	}
	if err := h.store.Save(r.Context(), username, prefs); err != nil {
		respondAppError(w, err)
		return
	}
	respondJSON(w, prefs, http.StatusOK)
}
