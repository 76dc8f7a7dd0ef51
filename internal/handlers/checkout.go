package handlers

import (
	"log"
	"net/http"

	"stagefront/internal/middleware"
	"stagefront/internal/services"
)

// CheckoutHandler runs the reserve-then-pay checkout flow
type CheckoutHandler struct {
	orderService   services.OrderServiceInterface
	ticketService  services.TicketServiceInterface
	paymentService services.PaymentService
}

// NewCheckoutHandler creates a new checkout handler
func NewCheckoutHandler(orderService services.OrderServiceInterface, ticketService services.TicketServiceInterface, paymentService services.PaymentService) *CheckoutHandler {
	return &CheckoutHandler{
		orderService:   orderService,
		ticketService:  ticketService,
		paymentService: paymentService,
	}
}

// Quote prices a set of selections without reserving anything
func (h *CheckoutHandler) Quote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selections []services.CheckoutSelection `json:"selections"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.orderService.QuoteOrder(req.Selections)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, quote)
}

// Reserve places a timed hold on tickets ahead of checkout
func (h *CheckoutHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req struct {
		TierID   int `json:"tier_id"`
		Quantity int `json:"quantity"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	reservation, err := h.ticketService.ReserveTickets(req.TierID, req.Quantity, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, reservation)
}

// ReleaseReservation gives up a hold before it expires
func (h *CheckoutHandler) ReleaseReservation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ReservationID string `json:"reservation_id"`
	}
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.ticketService.ReleaseReservation(req.ReservationID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "released"})
}

// checkoutRequest is the body for starting a checkout
type checkoutRequest struct {
	EventID      int                          `json:"event_id"`
	Selections   []services.CheckoutSelection `json:"selections"`
	Merch        []services.MerchSelection    `json:"merch"`
	BillingEmail string                       `json:"billing_email"`
	BillingName  string                       `json:"billing_name"`
}

// StartCheckout reserves the selected tickets, creates a pending order,
// and initiates payment. The hold taken during reservation becomes the
// pending order's inventory; the expired-order sweep returns it if
// payment never lands.
//
// Nothing stops a client that replays this request from creating a
// second pending order for the same selections. The second order holds
// its own inventory and expires on its own; a payment reference only
// ever completes the order it was initiated for.
func (h *CheckoutHandler) StartCheckout(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	var req checkoutRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Hold inventory first so pricing and payment happen against seats
	// that are actually ours.
	var reserved []string
	for _, sel := range req.Selections {
		if sel.Quantity == 0 {
			continue
		}
		reservation, err := h.ticketService.ReserveTickets(sel.TierID, sel.Quantity, user.ID)
		if err != nil {
			h.releaseAll(reserved)
			writeServiceError(w, err)
			return
		}
		reserved = append(reserved, reservation.ID)
	}

	if len(reserved) == 0 && len(req.Merch) == 0 {
		writeError(w, http.StatusBadRequest, "no items selected")
		return
	}

	order, err := h.orderService.CreateOrder(&services.CheckoutRequest{
		UserID:       user.ID,
		EventID:      req.EventID,
		Selections:   req.Selections,
		Merch:        req.Merch,
		BillingEmail: req.BillingEmail,
		BillingName:  req.BillingName,
	})
	if err != nil {
		h.releaseAll(reserved)
		writeServiceError(w, err)
		return
	}

	// The pending order now owns the inventory; stop the hold timers so
	// they cannot release it out from under the order.
	for _, id := range reserved {
		if _, err := h.ticketService.ConfirmReservation(id); err != nil {
			// The hold lapsed between reserving and confirming. The
			// order cannot be fulfilled.
			_ = h.orderService.CancelOrder(order.ID, user.ID)
			writeServiceError(w, err)
			return
		}
	}

	payment, err := h.paymentService.ProcessPayment(order.TotalCents, services.PaymentBillingInfo{
		Email: req.BillingEmail,
		Name:  req.BillingName,
	})
	if err != nil {
		_ = h.orderService.CancelOrder(order.ID, user.ID)
		writeError(w, http.StatusBadGateway, "failed to initiate payment")
		return
	}

	if err := h.orderService.AttachPayment(order.ID, payment.PaymentID); err != nil {
		log.Printf("Failed to attach payment %s to order %d: %v", payment.PaymentID, order.ID, err)
	}

	// Providers that settle synchronously (the mock does) complete the
	// order right away; otherwise completion waits for the callback.
	if payment.Status == "success" {
		if err := h.orderService.CompleteOrder(order.ID, payment.PaymentID); err == nil {
			order, _ = h.orderService.GetOrderByID(order.ID, user.ID)
		}
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"order":             order,
		"payment_id":        payment.PaymentID,
		"authorization_url": payment.AuthorizationURL,
		"payment_status":    payment.Status,
	})
}

func (h *CheckoutHandler) releaseAll(reservationIDs []string) {
	for _, id := range reservationIDs {
		_ = h.ticketService.ReleaseReservation(id)
	}
}
