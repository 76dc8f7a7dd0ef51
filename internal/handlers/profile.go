package handlers

import (
	"net/http"

	"stagefront/internal/middleware"
	"stagefront/internal/models"
	"stagefront/internal/services"
	"stagefront/internal/validation"
)

// ProfileHandler manages the logged-in user's profile
type ProfileHandler struct {
	authService services.AuthServiceInterface
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(authService services.AuthServiceInterface) *ProfileHandler {
	return &ProfileHandler{authService: authService}
}

// GetProfile returns the user's profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user)
}

// UpdateProfile updates the editable profile fields. Inputs are trimmed
// and empty fields dropped before validation, so " " and "" behave the
// same.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var raw map[string]interface{}
	if err := decodeJSON(r, &raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	form := validation.PrepareFormData(raw)

	req := &models.ProfileUpdateRequest{
		FirstName: stringField(form, "first_name", user.FirstName),
		LastName:  stringField(form, "last_name", user.LastName),
		Phone:     stringField(form, "phone", user.Phone),
		Bio:       validation.SanitizeInput(stringField(form, "bio", user.Bio)),
	}

	updated, err := h.authService.UpdateProfile(user.ID, req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// ChangePassword changes the user's password
func (h *ProfileHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req struct {
		CurrentPassword string `json:"current_password"`
		NewPassword     string `json:"new_password"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.authService.ChangePassword(user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "password changed"})
}

func stringField(form map[string]interface{}, key, fallback string) string {
	if value, ok := form[key].(string); ok {
		return value
	}
	return fallback
}
