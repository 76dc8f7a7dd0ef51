package services

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagefront/internal/config"
)

func TestProcessPayment(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/transaction/initialize", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_secret", r.Header.Get("Authorization"))

		var req paystackInitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, 2300, req.Amount)
		assert.Equal(t, "fan@example.com", req.Email)

		json.NewEncoder(w).Encode(map[string]interface{}{
			"status":  true,
			"message": "Authorization URL created",
			"data": map[string]string{
				"authorization_url": "https://checkout.paystack.com/abc123",
				"access_code":       "abc123",
				"reference":         req.Reference,
			},
		})
	}))
	defer server.Close()

	service := NewPaystackService(config.PaystackConfig{SecretKey: "sk_test_secret"})
	service.baseURL = server.URL

	result, err := service.ProcessPayment(2300, PaymentBillingInfo{Email: "fan@example.com", Name: "Jamie Fan"})
	require.NoError(t, err)
	assert.Equal(t, "pending", result.Status)
	assert.Equal(t, 2300, result.AmountCents)
	assert.Equal(t, "https://checkout.paystack.com/abc123", result.AuthorizationURL)
	assert.NotEmpty(t, result.PaymentID)
}

func TestVerifyPaymentStatusMapping(t *testing.T) {
	tests := []struct {
		gateway string
		want    string
	}{
		{"success", "success"},
		{"failed", "failed"},
		{"abandoned", "failed"},
		{"ongoing", "pending"},
	}

	for _, tt := range tests {
		t.Run(tt.gateway, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				json.NewEncoder(w).Encode(map[string]interface{}{
					"status": true,
					"data": map[string]interface{}{
						"status": tt.gateway,
						"amount": 2300,
					},
				})
			}))
			defer server.Close()

			service := NewPaystackService(config.PaystackConfig{SecretKey: "sk_test_secret"})
			service.baseURL = server.URL

			status, err := service.VerifyPayment("TXN-1-000001")
			require.NoError(t, err)
			assert.Equal(t, tt.want, status.Status)
			assert.Equal(t, 2300, status.AmountCents)
		})
	}
}

func TestVerifyWebhookSignature(t *testing.T) {
	service := NewPaystackService(config.PaystackConfig{SecretKey: "sk_test_secret"})

	payload := []byte(`{"event":"charge.success"}`)
	mac := hmac.New(sha512.New, []byte("sk_test_secret"))
	mac.Write(payload)
	signature := hex.EncodeToString(mac.Sum(nil))

	assert.True(t, service.VerifyWebhookSignature(payload, signature))
	assert.False(t, service.VerifyWebhookSignature(payload, "bad-signature"))
	assert.False(t, service.VerifyWebhookSignature([]byte(`tampered`), signature))
}
