package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"stagefront/internal/middleware"
	"stagefront/internal/models"
	"stagefront/internal/services"
)

// DraftServiceInterface defines the draft operations handlers need
type DraftServiceInterface interface {
	Save(userID int, draftKey, content string)
	Get(userID int, draftKey string) (string, time.Time, error)
	Delete(userID int, draftKey string) error
}

var _ DraftServiceInterface = (*services.DraftService)(nil)

// DraftHandler autosaves in-progress form content per user
type DraftHandler struct {
	draftService DraftServiceInterface
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(draftService DraftServiceInterface) *DraftHandler {
	return &DraftHandler{draftService: draftService}
}

// SaveDraft accepts draft content. The write is debounced, so a burst
// of keystrokes costs one database write; 202 signals the save is
// scheduled rather than durable.
func (h *DraftHandler) SaveDraft(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	key := chi.URLParam(r, "key")
	if key == "" {
		writeError(w, http.StatusBadRequest, "draft key is required")
		return
	}

	var req struct {
		Content string `json:"content"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	h.draftService.Save(user.ID, key, req.Content)
	writeJSON(w, http.StatusAccepted, map[string]string{"status": "saving"})
}

// GetDraft returns the latest draft content, including edits still
// waiting on the debounce timer
func (h *DraftHandler) GetDraft(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	key := chi.URLParam(r, "key")
	content, updatedAt, err := h.draftService.Get(user.ID, key)
	if errors.Is(err, models.ErrDraftNotFound) {
		writeError(w, http.StatusNotFound, "draft not found")
		return
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"content":    content,
		"updated_at": updatedAt,
	})
}

// DeleteDraft discards a draft
func (h *DraftHandler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	key := chi.URLParam(r, "key")
	if err := h.draftService.Delete(user.ID, key); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
