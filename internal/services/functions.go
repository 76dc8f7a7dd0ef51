package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"stagefront/internal/config"
	"stagefront/internal/kvstore"
)

// functionsTokenKey is where the caller's auth token lives in the
// token store between invocations.
const functionsTokenKey = "functions_auth_token"

// FunctionsService invokes named backend functions over HTTP. Responses
// use a {data, error} envelope: exactly one of the two is set, and a
// populated error field is surfaced as a Go error even on HTTP 200.
type FunctionsService struct {
	config config.FunctionsConfig
	client *http.Client
	tokens kvstore.Store
}

// NewFunctionsService creates a new functions service. Tokens persist in
// the given store so a restart does not drop an active session.
func NewFunctionsService(cfg config.FunctionsConfig, tokens kvstore.Store) *FunctionsService {
	return &FunctionsService{
		config: cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		tokens: tokens,
	}
}

// functionEnvelope is the wire format of every function response
type functionEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Error *functionError  `json:"error"`
}

// functionError is the error half of the response envelope
type functionError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *functionError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return e.Message
}

// Invoke calls the named function with a JSON payload and decodes the
// envelope's data field into out. A nil out discards the data.
func (s *FunctionsService) Invoke(ctx context.Context, name string, payload interface{}, out interface{}) error {
	if s.config.BaseURL == "" {
		return errors.New("functions base URL not configured")
	}

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewReader(jsonData)
	}

	url := strings.TrimSuffix(s.config.BaseURL, "/") + "/" + strings.TrimPrefix(name, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if s.config.APIKey != "" {
		req.Header.Set("X-Api-Key", s.config.APIKey)
	}

	if token, err := s.tokens.Get(functionsTokenKey); err == nil && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("function %s request failed: %w", name, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read function response: %w", err)
	}

	var envelope functionEnvelope
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("function %s failed with status %d", name, resp.StatusCode)
		}
		return fmt.Errorf("failed to decode function response: %w", err)
	}

	if envelope.Error != nil {
		return fmt.Errorf("function %s: %w", name, envelope.Error)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("function %s failed with status %d", name, resp.StatusCode)
	}

	if out != nil && envelope.Data != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return fmt.Errorf("failed to decode function data: %w", err)
		}
	}

	return nil
}

// SetAuthToken stores the token attached to subsequent invocations
func (s *FunctionsService) SetAuthToken(token string) error {
	return s.tokens.Set(functionsTokenKey, token)
}

// ClearAuthToken removes the stored token. Clearing an absent token is
// not an error.
func (s *FunctionsService) ClearAuthToken() error {
	err := s.tokens.Remove(functionsTokenKey)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	return err
}
