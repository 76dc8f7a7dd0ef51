package handlers

import (
	"encoding/json"
	"io"
	"log"
	"net/http"

	"stagefront/internal/models"
	"stagefront/internal/services"
)

// PaymentHandler handles gateway callbacks and webhooks
type PaymentHandler struct {
	orderService   services.OrderServiceInterface
	orderLookup    OrderLookup
	paymentService services.PaymentService
	webhookVerify  WebhookVerifier
}

// OrderLookup finds the order a gateway reference belongs to
type OrderLookup interface {
	GetByPaymentID(paymentID string) (*models.Order, error)
}

// WebhookVerifier checks webhook payload signatures
type WebhookVerifier interface {
	VerifyWebhookSignature(payload []byte, signature string) bool
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(orderService services.OrderServiceInterface, orderLookup OrderLookup, paymentService services.PaymentService, webhookVerify WebhookVerifier) *PaymentHandler {
	return &PaymentHandler{
		orderService:   orderService,
		orderLookup:    orderLookup,
		paymentService: paymentService,
		webhookVerify:  webhookVerify,
	}
}

// Callback handles the customer's return from the payment page. The
// reference is re-verified with the gateway before the order completes.
func (h *PaymentHandler) Callback(w http.ResponseWriter, r *http.Request) {
	reference := r.URL.Query().Get("reference")
	if reference == "" {
		writeError(w, http.StatusBadRequest, "missing payment reference")
		return
	}

	if err := h.settle(reference); err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Webhook handles asynchronous gateway notifications
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to read payload")
		return
	}

	signature := r.Header.Get("X-Paystack-Signature")
	if h.webhookVerify == nil || !h.webhookVerify.VerifyWebhookSignature(payload, signature) {
		writeError(w, http.StatusUnauthorized, "invalid webhook signature")
		return
	}

	var event struct {
		Event string `json:"event"`
		Data  struct {
			Reference string `json:"reference"`
		} `json:"data"`
	}
	if err := json.Unmarshal(payload, &event); err != nil {
		writeError(w, http.StatusBadRequest, "invalid payload")
		return
	}

	if event.Event != "charge.success" {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	if err := h.settle(event.Data.Reference); err != nil {
		// Acknowledge anyway; the gateway retries on non-200 and the
		// verification above already established authenticity.
		log.Printf("Failed to settle webhook payment %s: %v", event.Data.Reference, err)
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *PaymentHandler) settle(reference string) error {
	status, err := h.paymentService.VerifyPayment(reference)
	if err != nil {
		return err
	}

	order, err := h.orderLookup.GetByPaymentID(reference)
	if err != nil {
		return err
	}

	switch status.Status {
	case "success":
		return h.orderService.CompleteOrder(order.ID, reference)
	case "failed":
		return h.orderService.CancelOrder(order.ID, order.UserID)
	default:
		// Still pending at the gateway; the sweep handles abandonment.
		return nil
	}
}
