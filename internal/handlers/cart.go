package handlers

import (
	"net/http"

	"github.com/gorilla/sessions"

	"stagefront/internal/middleware"
	"stagefront/internal/models"
	"stagefront/internal/services"
)

// CartHandler manages the session shopping cart. A cart holds ticket
// lines for one event plus any of that event's merchandise; prices and
// fees are snapshotted into the cart when a line is added.
type CartHandler struct {
	store          sessions.Store
	eventService   services.EventServiceInterface
	ticketService  services.TicketServiceInterface
	productService services.ProductServiceInterface
}

// NewCartHandler creates a new cart handler
func NewCartHandler(store sessions.Store, eventService services.EventServiceInterface, ticketService services.TicketServiceInterface, productService services.ProductServiceInterface) *CartHandler {
	return &CartHandler{
		store:          store,
		eventService:   eventService,
		ticketService:  ticketService,
		productService: productService,
	}
}

// GetCart returns the current cart with its computed totals
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	cart := h.loadCart(r)
	h.writeCart(w, cart)
}

// AddItem adds a ticket tier or merchandise line to the cart
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type     models.CartItemType `json:"type"`
		ID       int                 `json:"id"`
		Quantity int                 `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity <= 0 {
		writeError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}

	cart := h.loadCart(r)

	var item models.CartItem
	var eventID int

	switch req.Type {
	case models.CartItemTicket:
		tier, err := h.ticketService.GetTierByID(req.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !tier.IsAvailable() {
			writeError(w, http.StatusConflict, "tickets are not on sale")
			return
		}
		eventID = tier.EventID
		item = models.CartItem{
			ID:         tier.ID,
			Type:       models.CartItemTicket,
			Name:       tier.Name,
			PriceCents: tier.PriceCents,
			FeesCents:  tier.FeesPerTicket(),
			Quantity:   req.Quantity,
		}
	case models.CartItemMerch:
		product, err := h.productService.GetByID(req.ID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		if !product.InStock() {
			writeError(w, http.StatusConflict, "product is out of stock")
			return
		}
		eventID = product.EventID
		item = models.CartItem{
			ID:         product.ID,
			Type:       models.CartItemMerch,
			Name:       product.Name,
			PriceCents: product.PriceCents,
			Quantity:   req.Quantity,
			ImageURL:   product.ImageURL,
		}
	default:
		writeError(w, http.StatusBadRequest, "invalid item type")
		return
	}

	// A cart belongs to one event; switching events starts a fresh cart.
	if cart.EventID != 0 && cart.EventID != eventID {
		cart = &models.Cart{}
	}

	if cart.EventID == 0 {
		event, err := h.eventService.GetEventByID(eventID)
		if err != nil {
			writeServiceError(w, err)
			return
		}
		cart.EventID = event.ID
		cart.EventTitle = event.Title
	}

	cart.Upsert(item)

	if err := h.saveCart(w, r, cart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	h.writeCart(w, cart)
}

// UpdateItem changes a line's quantity; zero removes the line
func (h *CartHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Type     models.CartItemType `json:"type"`
		ID       int                 `json:"id"`
		Quantity int                 `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Quantity < 0 {
		writeError(w, http.StatusBadRequest, "quantity cannot be negative")
		return
	}

	cart := h.loadCart(r)
	cart.SetQuantity(req.Type, req.ID, req.Quantity)

	if err := h.saveCart(w, r, cart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	h.writeCart(w, cart)
}

// ClearCart empties the cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	cart := &models.Cart{}

	if err := h.saveCart(w, r, cart); err != nil {
		writeError(w, http.StatusInternalServerError, "failed to save cart")
		return
	}

	h.writeCart(w, cart)
}

func (h *CartHandler) loadCart(r *http.Request) *models.Cart {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		return &models.Cart{}
	}

	cart, ok := session.Values[models.CartStorageKey].(*models.Cart)
	if !ok || cart == nil {
		return &models.Cart{}
	}

	// An expired hold invalidates the cart contents.
	if cart.IsExpired() {
		return &models.Cart{}
	}

	return cart
}

func (h *CartHandler) saveCart(w http.ResponseWriter, r *http.Request, cart *models.Cart) error {
	session, err := h.store.Get(r, middleware.SessionName)
	if err != nil {
		session, _ = h.store.New(r, middleware.SessionName)
	}

	session.Values[models.CartStorageKey] = cart
	return session.Save(r, w)
}

func (h *CartHandler) writeCart(w http.ResponseWriter, cart *models.Cart) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cart":           cart,
		"subtotal_cents": cart.Subtotal(),
		"fees_cents":     cart.Fees(),
		"total_cents":    cart.Total(),
		"ticket_count":   cart.TicketCount(),
	})
}
