package handlers

import (
	"net/http"

	"stagefront/internal/middleware"
	"stagefront/internal/services"
)

// OrderHandler serves a user's order history
type OrderHandler struct {
	orderService  services.OrderServiceInterface
	ticketService services.TicketServiceInterface
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(orderService services.OrderServiceInterface, ticketService services.TicketServiceInterface) *OrderHandler {
	return &OrderHandler{
		orderService:  orderService,
		ticketService: ticketService,
	}
}

// ListOrders returns a page of the user's orders
func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)

	orders, total, err := h.orderService.GetUserOrders(user.ID, limit, offset)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"total":  total,
	})
}

// GetOrder returns one order with its tickets
func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orderID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	order, err := h.orderService.GetOrderByID(orderID, user.ID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	tickets, err := h.ticketService.GetTicketsByOrder(orderID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order":   order,
		"tickets": tickets,
	})
}

// CancelOrder cancels a pending order
func (h *OrderHandler) CancelOrder(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUserFromContext(r.Context())

	orderID, err := urlParamInt(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid order id")
		return
	}

	if err := h.orderService.CancelOrder(orderID, user.ID); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "cancelled"})
}
