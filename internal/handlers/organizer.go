package handlers

import (
	"net/http"

	"stagefront/internal/middleware"
	"stagefront/internal/models"
	"stagefront/internal/services"
)

// OrganizerHandler manages an organizer's events, tiers, and merchandise
type OrganizerHandler struct {
	eventService   services.EventServiceInterface
	ticketService  services.TicketServiceInterface
	productService services.ProductServiceInterface
	imageService   *services.ImageService
}

// NewOrganizerHandler creates a new organizer handler
func NewOrganizerHandler(eventService services.EventServiceInterface, ticketService services.TicketServiceInterface, productService services.ProductServiceInterface, imageService *services.ImageService) *OrganizerHandler {
	return &OrganizerHandler{
		eventService:   eventService,
		ticketService:  ticketService,
		productService: productService,
		imageService:   imageService,
	}
}

// ListMyEvents returns the organizer's own events
func (h *OrganizerHandler) ListMyEvents(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	events, err := h.eventService.GetEventsByOrganizer(user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// CreateEvent creates a new event owned by the organizer
func (h *OrganizerHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req models.EventCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.eventService.CreateEvent(user.ID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, event)
}

// UpdateEvent updates an event the organizer owns
func (h *OrganizerHandler) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.EventUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	event, err := h.eventService.UpdateEvent(eventID, user.ID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, event)
}

// DeleteEvent deletes an event the organizer owns
func (h *OrganizerHandler) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	if err := h.eventService.DeleteEvent(eventID, user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateTier adds a ticket tier to an event
func (h *OrganizerHandler) CreateTier(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.TierCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tier, err := h.ticketService.CreateTier(eventID, user.ID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tier)
}

// UpdateTier updates a ticket tier
func (h *OrganizerHandler) UpdateTier(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	tierID, err := urlParamInt(r, "tierID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tier id")
		return
	}

	var req models.TierUpdateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	tier, err := h.ticketService.UpdateTier(tierID, user.ID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tier)
}

// DeleteTier removes a ticket tier
func (h *OrganizerHandler) DeleteTier(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	tierID, err := urlParamInt(r, "tierID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid tier id")
		return
	}

	if err := h.ticketService.DeleteTier(tierID, user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// CreateProduct adds merchandise to an event
func (h *OrganizerHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	eventID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	var req models.ProductCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.CreateProduct(eventID, user.ID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct updates merchandise
func (h *OrganizerHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	productID, err := urlParamInt(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	var req models.ProductCreateRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.productService.UpdateProduct(productID, user.ID, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct removes merchandise
func (h *OrganizerHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	productID, err := urlParamInt(r, "productID")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid product id")
		return
	}

	if err := h.productService.DeleteProduct(productID, user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

// UploadImage stores an event image and its resized variants
func (h *OrganizerHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.imageService == nil {
		writeError(w, http.StatusServiceUnavailable, "image storage not configured")
		return
	}

	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	result, err := h.imageService.UploadImage(r.Context(), file, header.Filename)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, result)
}
