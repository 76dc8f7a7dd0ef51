package services

import (
	"fmt"
	"log"
	"time"

	"stagefront/internal/config"
)

// MockPaymentService is a payment service that delegates to Paystack when
// credentials are configured and otherwise simulates instant success,
// which keeps local development and tests independent of the gateway.
type MockPaymentService struct {
	paystack *PaystackService
}

// NewMockPaymentService creates a payment service with optional Paystack support
func NewMockPaymentService(cfg *config.PaystackConfig) *MockPaymentService {
	service := &MockPaymentService{}

	if cfg != nil && cfg.SecretKey != "" {
		service.paystack = NewPaystackService(*cfg)
		log.Printf("Payment service: using Paystack (%s environment)", cfg.Environment)
	} else {
		log.Println("Payment service: using mock (no Paystack credentials provided)")
	}

	return service
}

// ProcessPayment processes a payment
func (s *MockPaymentService) ProcessPayment(amountCents int, billingInfo PaymentBillingInfo) (*PaymentResult, error) {
	if s.paystack != nil {
		return s.paystack.ProcessPayment(amountCents, billingInfo)
	}

	paymentID := fmt.Sprintf("mock_pay_%d_%d", time.Now().UnixNano(), amountCents)
	log.Printf("Mock payment: charging %d cents for %s", amountCents, billingInfo.Email)

	return &PaymentResult{
		PaymentID:   paymentID,
		Status:      "success",
		AmountCents: amountCents,
		ProcessedAt: time.Now(),
	}, nil
}

// VerifyPayment returns the state of a payment
func (s *MockPaymentService) VerifyPayment(paymentID string) (*PaymentStatus, error) {
	if s.paystack != nil {
		return s.paystack.VerifyPayment(paymentID)
	}

	return &PaymentStatus{
		PaymentID: paymentID,
		Status:    "success",
		UpdatedAt: time.Now(),
	}, nil
}

// VerifyWebhookSignature checks a webhook payload signature. Without
// Paystack credentials there is no shared secret, so every payload is
// accepted.
func (s *MockPaymentService) VerifyWebhookSignature(payload []byte, signature string) bool {
	if s.paystack != nil {
		return s.paystack.VerifyWebhookSignature(payload, signature)
	}
	return true
}

// RefundPayment processes a refund
func (s *MockPaymentService) RefundPayment(paymentID string, amountCents int) (*RefundResult, error) {
	if s.paystack != nil {
		return s.paystack.RefundPayment(paymentID, amountCents)
	}

	log.Printf("Mock payment: refunding %d cents for payment %s", amountCents, paymentID)

	return &RefundResult{
		RefundID:    fmt.Sprintf("mock_ref_%d", time.Now().UnixNano()),
		Status:      "success",
		AmountCents: amountCents,
		ProcessedAt: time.Now(),
	}, nil
}
