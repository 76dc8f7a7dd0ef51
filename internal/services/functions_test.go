package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stagefront/internal/config"
	"stagefront/internal/kvstore"
)

func newFunctionsFixture(t *testing.T, handler http.HandlerFunc) (*FunctionsService, kvstore.Store) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	tokens := kvstore.NewMemoryStore()
	service := NewFunctionsService(config.FunctionsConfig{BaseURL: server.URL}, tokens)
	return service, tokens
}

func TestInvokeDecodesDataEnvelope(t *testing.T) {
	service, _ := newFunctionsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/send-contact", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "hello", payload["message"])

		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": map[string]string{"id": "msg_1"},
		})
	})

	var out struct {
		ID string `json:"id"`
	}
	err := service.Invoke(context.Background(), "send-contact", map[string]string{"message": "hello"}, &out)
	require.NoError(t, err)
	assert.Equal(t, "msg_1", out.ID)
}

func TestInvokeErrorEnvelope(t *testing.T) {
	service, _ := newFunctionsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		// An error envelope is an error even on HTTP 200.
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]string{"code": "invalid_input", "message": "message is required"},
		})
	})

	err := service.Invoke(context.Background(), "send-contact", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_input")
	assert.Contains(t, err.Error(), "message is required")
}

func TestInvokeNonOKStatus(t *testing.T) {
	service, _ := newFunctionsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	err := service.Invoke(context.Background(), "send-contact", nil, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestInvokeSendsStoredToken(t *testing.T) {
	var gotAuth string
	service, _ := newFunctionsFixture(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]string{}})
	})

	require.NoError(t, service.SetAuthToken("tok_abc"))
	require.NoError(t, service.Invoke(context.Background(), "whoami", nil, nil))
	assert.Equal(t, "Bearer tok_abc", gotAuth)

	require.NoError(t, service.ClearAuthToken())
	require.NoError(t, service.Invoke(context.Background(), "whoami", nil, nil))
	assert.Empty(t, gotAuth)
}

func TestClearAuthTokenWhenAbsent(t *testing.T) {
	service, _ := newFunctionsFixture(t, func(w http.ResponseWriter, r *http.Request) {})

	// Clearing a token that was never set is not an error.
	assert.NoError(t, service.ClearAuthToken())
}

func TestTokenSurvivesServiceRestart(t *testing.T) {
	tokens := kvstore.NewMemoryStore()

	first := NewFunctionsService(config.FunctionsConfig{BaseURL: "http://unused"}, tokens)
	require.NoError(t, first.SetAuthToken("tok_persist"))

	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		json.NewEncoder(w).Encode(map[string]interface{}{"data": map[string]string{}})
	}))
	defer server.Close()

	second := NewFunctionsService(config.FunctionsConfig{BaseURL: server.URL}, tokens)
	require.NoError(t, second.Invoke(context.Background(), "whoami", nil, nil))
	assert.Equal(t, "Bearer tok_persist", gotAuth)
}
