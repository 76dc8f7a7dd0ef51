package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"stagefront/internal/config"
)

// ResendEmailService sends transactional email via the Resend API
type ResendEmailService struct {
	config config.ResendConfig
	client *http.Client
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(cfg config.ResendConfig) *ResendEmailService {
	return &ResendEmailService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
	}
}

// resendEmailRequest is the request body for the Resend send endpoint
type resendEmailRequest struct {
	From    string      `json:"from"`
	To      []string    `json:"to"`
	Subject string      `json:"subject"`
	HTML    string      `json:"html,omitempty"`
	Text    string      `json:"text,omitempty"`
	Tags    []resendTag `json:"tags,omitempty"`
}

type resendTag struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

type resendErrorResponse struct {
	Message string `json:"message"`
	Name    string `json:"name"`
}

func (s *ResendEmailService) fromField() string {
	if s.config.FromName != "" {
		return fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail)
	}
	return s.config.FromEmail
}

// SendWelcomeEmail sends a welcome email to a new user
func (s *ResendEmailService) SendWelcomeEmail(email, userName string) error {
	htmlContent := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Welcome</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="color: #4F46E5;">Welcome to Stagefront!</h1>
        <p>Hi %s,</p>
        <p>Your account is ready. You can now browse upcoming shows, grab tickets before they sell out, and keep all your orders in one place.</p>
        <p>See you at the show!</p>
        <p style="color: #666; font-size: 12px;">The Stagefront Team</p>
    </div>
</body>
</html>`, userName)

	textContent := fmt.Sprintf(`Welcome to Stagefront!

Hi %s,

Your account is ready. You can now browse upcoming shows, grab tickets before they sell out, and keep all your orders in one place.

See you at the show!

The Stagefront Team`, userName)

	return s.sendEmail(resendEmailRequest{
		From:    s.fromField(),
		To:      []string{email},
		Subject: "Welcome to Stagefront",
		HTML:    htmlContent,
		Text:    textContent,
		Tags: []resendTag{
			{Name: "category", Value: "welcome"},
		},
	})
}

// SendOrderConfirmation sends the purchase confirmation for a completed order
func (s *ResendEmailService) SendOrderConfirmation(email, userName, orderNumber, eventTitle string, totalCents int) error {
	total := fmt.Sprintf("%.2f", float64(totalCents)/100)

	htmlContent := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Order Confirmed</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="color: #059669;">Order Confirmed</h1>
        <p>Hi %s,</p>
        <p>Your order <strong>%s</strong> for <strong>%s</strong> is confirmed.</p>
        <p>Total charged: <strong>%s</strong></p>
        <p>Your tickets are attached to your account. Show the QR code on each ticket at the door.</p>
        <p style="color: #666; font-size: 12px;">The Stagefront Team</p>
    </div>
</body>
</html>`, userName, orderNumber, eventTitle, total)

	textContent := fmt.Sprintf(`Order Confirmed

Hi %s,

Your order %s for %s is confirmed.
Total charged: %s

Your tickets are attached to your account. Show the QR code on each ticket at the door.

The Stagefront Team`, userName, orderNumber, eventTitle, total)

	return s.sendEmail(resendEmailRequest{
		From:    s.fromField(),
		To:      []string{email},
		Subject: fmt.Sprintf("Order %s confirmed", orderNumber),
		HTML:    htmlContent,
		Text:    textContent,
		Tags: []resendTag{
			{Name: "category", Value: "order_confirmation"},
		},
	})
}

// SendOrderCancelled notifies the customer that an order was cancelled
func (s *ResendEmailService) SendOrderCancelled(email, userName, orderNumber string) error {
	htmlContent := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Order Cancelled</title></head>
<body style="font-family: Arial, sans-serif; color: #333;">
    <div style="max-width: 600px; margin: 0 auto; padding: 20px;">
        <h1 style="color: #DC2626;">Order Cancelled</h1>
        <p>Hi %s,</p>
        <p>Your order <strong>%s</strong> has been cancelled and any held tickets have been released.</p>
        <p>If you didn't mean to cancel, the tickets may still be available for a fresh order.</p>
        <p style="color: #666; font-size: 12px;">The Stagefront Team</p>
    </div>
</body>
</html>`, userName, orderNumber)

	textContent := fmt.Sprintf(`Order Cancelled

Hi %s,

Your order %s has been cancelled and any held tickets have been released.

If you didn't mean to cancel, the tickets may still be available for a fresh order.

The Stagefront Team`, userName, orderNumber)

	return s.sendEmail(resendEmailRequest{
		From:    s.fromField(),
		To:      []string{email},
		Subject: fmt.Sprintf("Order %s cancelled", orderNumber),
		HTML:    htmlContent,
		Text:    textContent,
		Tags: []resendTag{
			{Name: "category", Value: "order_cancelled"},
		},
	})
}

func (s *ResendEmailService) sendEmail(req resendEmailRequest) error {
	if s.config.APIKey == "" {
		return fmt.Errorf("resend API key not configured")
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal email request: %w", err)
	}

	httpReq, err := http.NewRequest(http.MethodPost, "https://api.resend.com/emails", bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create email request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+s.config.APIKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var apiErr resendErrorResponse
		if err := json.NewDecoder(resp.Body).Decode(&apiErr); err != nil {
			return fmt.Errorf("email send failed with status %d", resp.StatusCode)
		}
		return fmt.Errorf("email send failed: %s", apiErr.Message)
	}

	return nil
}

// MockEmailService logs emails instead of sending them
type MockEmailService struct{}

// NewMockEmailService creates a mock email service
func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

// SendWelcomeEmail logs a welcome email
func (s *MockEmailService) SendWelcomeEmail(email, userName string) error {
	fmt.Printf("Mock email: welcome to %s (%s)\n", userName, email)
	return nil
}

// SendOrderConfirmation logs an order confirmation
func (s *MockEmailService) SendOrderConfirmation(email, userName, orderNumber, eventTitle string, totalCents int) error {
	fmt.Printf("Mock email: order %s confirmed for %s (%d cents)\n", orderNumber, email, totalCents)
	return nil
}

// SendOrderCancelled logs a cancellation notice
func (s *MockEmailService) SendOrderCancelled(email, userName, orderNumber string) error {
	fmt.Printf("Mock email: order %s cancelled for %s\n", orderNumber, email)
	return nil
}
