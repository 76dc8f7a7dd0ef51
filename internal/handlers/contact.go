package handlers

import (
	"log"
	"net/http"

	"stagefront/internal/services"
	"stagefront/internal/validation"
)

// ContactHandler relays contact form submissions to the send-contact
// backend function
type ContactHandler struct {
	functions services.FunctionsServiceInterface
}

// NewContactHandler creates a new contact handler
func NewContactHandler(functions services.FunctionsServiceInterface) *ContactHandler {
	return &ContactHandler{functions: functions}
}

type contactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Submit validates and forwards a contact message
func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req contactRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Name = validation.SanitizeInput(req.Name)
	req.Subject = validation.SanitizeInput(req.Subject)
	req.Message = validation.SanitizeInput(req.Message)

	if err := validation.RequiredString("name", req.Name, 100); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.Email("email", req.Email); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := validation.RequiredString("message", req.Message, 5000); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var result struct {
		ID string `json:"id"`
	}
	if err := h.functions.Invoke(r.Context(), "send-contact", req, &result); err != nil {
		log.Printf("Failed to deliver contact message from %s: %v", req.Email, err)
		writeError(w, http.StatusBadGateway, "failed to send message")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status": "sent",
		"id":     result.ID,
	})
}
