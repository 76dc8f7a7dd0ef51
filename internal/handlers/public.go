package handlers

import (
	"net/http"
	"time"

	"stagefront/internal/repositories"
	"stagefront/internal/services"
)

// PublicHandler serves the event browsing endpoints
type PublicHandler struct {
	eventService   services.EventServiceInterface
	ticketService  services.TicketServiceInterface
	productService services.ProductServiceInterface
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(eventService services.EventServiceInterface, ticketService services.TicketServiceInterface, productService services.ProductServiceInterface) *PublicHandler {
	return &PublicHandler{
		eventService:   eventService,
		ticketService:  ticketService,
		productService: productService,
	}
}

// ListEvents returns published events, optionally filtered
func (h *PublicHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	filters := repositories.EventSearchFilters{
		Query:      r.URL.Query().Get("q"),
		CategoryID: queryInt(r, "category", 0),
		Venue:      r.URL.Query().Get("venue"),
		Limit:      queryInt(r, "limit", 20),
		Offset:     queryInt(r, "offset", 0),
	}

	if from := r.URL.Query().Get("from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filters.DateFrom = &t
		}
	}
	if to := r.URL.Query().Get("to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filters.DateTo = &t
		}
	}

	events, total, err := h.eventService.SearchEvents(filters)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"events": events,
		"total":  total,
	})
}

// GetEvent returns one event with its ticket tiers and merchandise
func (h *PublicHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid event id")
		return
	}

	event, err := h.eventService.GetEventByID(eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	tiers, err := h.ticketService.GetTiersByEvent(eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	products, err := h.productService.GetByEvent(eventID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"event":    event,
		"tiers":    tiers,
		"products": products,
	})
}

// ListCategories returns all event categories
func (h *PublicHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.eventService.GetCategories()
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"categories": categories})
}
