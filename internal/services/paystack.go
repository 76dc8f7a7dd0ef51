package services

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"stagefront/internal/config"
)

// PaystackService handles payments via the Paystack API
type PaystackService struct {
	config  config.PaystackConfig
	client  *http.Client
	baseURL string
}

// NewPaystackService creates a new Paystack payment service
func NewPaystackService(cfg config.PaystackConfig) *PaystackService {
	return &PaystackService{
		config:  cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: "https://api.paystack.co",
	}
}

// paystackInitRequest is the body for transaction initialization
type paystackInitRequest struct {
	Email       string            `json:"email"`
	Amount      int               `json:"amount"` // minor currency units
	Currency    string            `json:"currency"`
	Reference   string            `json:"reference"`
	CallbackURL string            `json:"callback_url"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// paystackInitResponse is the response from transaction initialization
type paystackInitResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		AuthorizationURL string `json:"authorization_url"`
		AccessCode       string `json:"access_code"`
		Reference        string `json:"reference"`
	} `json:"data"`
}

// paystackVerifyResponse is the response from transaction verification
type paystackVerifyResponse struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
	Data    struct {
		ID        int    `json:"id"`
		Status    string `json:"status"`
		Reference string `json:"reference"`
		Amount    int    `json:"amount"`
		Currency  string `json:"currency"`
		PaidAt    string `json:"paid_at"`
		Channel   string `json:"channel"`
	} `json:"data"`
}

// paystackError is an error body from the Paystack API
type paystackError struct {
	Status  bool   `json:"status"`
	Message string `json:"message"`
}

// ProcessPayment initializes a Paystack transaction and returns the
// authorization URL the customer is redirected to.
func (s *PaystackService) ProcessPayment(amountCents int, billingInfo PaymentBillingInfo) (*PaymentResult, error) {
	reference := fmt.Sprintf("TXN-%d-%06d", time.Now().Unix(), time.Now().Nanosecond()%1000000)

	req := &paystackInitRequest{
		Email:       billingInfo.Email,
		Amount:      amountCents,
		Currency:    "KES",
		Reference:   reference,
		CallbackURL: s.config.CallbackURL,
		Metadata: map[string]string{
			"customer_name": billingInfo.Name,
		},
	}

	var resp paystackInitResponse
	if err := s.post("/transaction/initialize", req, &resp); err != nil {
		return nil, fmt.Errorf("failed to initialize transaction: %w", err)
	}

	if !resp.Status {
		return nil, fmt.Errorf("transaction initialization failed: %s", resp.Message)
	}

	return &PaymentResult{
		PaymentID:        resp.Data.Reference,
		Status:           "pending",
		AmountCents:      amountCents,
		AuthorizationURL: resp.Data.AuthorizationURL,
		ProcessedAt:      time.Now(),
	}, nil
}

// VerifyPayment fetches the current state of a transaction
func (s *PaystackService) VerifyPayment(paymentID string) (*PaymentStatus, error) {
	var resp paystackVerifyResponse
	if err := s.get("/transaction/verify/"+paymentID, &resp); err != nil {
		return nil, fmt.Errorf("failed to verify transaction: %w", err)
	}

	if !resp.Status {
		return nil, fmt.Errorf("transaction verification failed: %s", resp.Message)
	}

	var status string
	switch resp.Data.Status {
	case "success":
		status = "success"
	case "failed", "abandoned":
		status = "failed"
	default:
		status = "pending"
	}

	return &PaymentStatus{
		PaymentID:   paymentID,
		Status:      status,
		AmountCents: resp.Data.Amount,
		UpdatedAt:   time.Now(),
	}, nil
}

// RefundPayment requests a refund for a settled transaction
func (s *PaystackService) RefundPayment(paymentID string, amountCents int) (*RefundResult, error) {
	body := map[string]interface{}{
		"transaction": paymentID,
		"amount":      amountCents,
	}

	var resp struct {
		Status  bool   `json:"status"`
		Message string `json:"message"`
		Data    struct {
			ID int `json:"id"`
		} `json:"data"`
	}

	if err := s.post("/refund", body, &resp); err != nil {
		return nil, fmt.Errorf("failed to request refund: %w", err)
	}

	if !resp.Status {
		return nil, fmt.Errorf("refund request failed: %s", resp.Message)
	}

	return &RefundResult{
		RefundID:    fmt.Sprintf("REF-%d", resp.Data.ID),
		Status:      "pending",
		AmountCents: amountCents,
		ProcessedAt: time.Now(),
	}, nil
}

// VerifyWebhookSignature checks the HMAC-SHA512 signature Paystack sends
// with webhook deliveries.
func (s *PaystackService) VerifyWebhookSignature(payload []byte, signature string) bool {
	mac := hmac.New(sha512.New, []byte(s.config.SecretKey))
	mac.Write(payload)
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(signature), []byte(expected))
}

func (s *PaystackService) post(path string, body interface{}, out interface{}) error {
	jsonData, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, s.baseURL+path, bytes.NewBuffer(jsonData))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return s.do(req, out)
}

func (s *PaystackService) get(path string, out interface{}) error {
	req, err := http.NewRequest(http.MethodGet, s.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	return s.do(req, out)
}

func (s *PaystackService) do(req *http.Request, out interface{}) error {
	req.Header.Set("Authorization", "Bearer "+s.config.SecretKey)
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var apiErr paystackError
		if err := json.Unmarshal(bodyBytes, &apiErr); err != nil {
			return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(bodyBytes))
		}
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, apiErr.Message)
	}

	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
