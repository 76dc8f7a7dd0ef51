package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func doContact(handler *ContactHandler, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/contact", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	handler.Submit(rec, req)
	return rec
}

func TestContactSubmit(t *testing.T) {
	functions := &stubFunctionsService{response: map[string]string{"id": "msg_1"}}
	handler := NewContactHandler(functions)

	rec := doContact(handler, `{
		"name": "Jamie Fan",
		"email": "fan@example.com",
		"subject": "Refunds",
		"message": "How do I get a refund?"
	}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("Submit status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}

	if len(functions.invoked) != 1 || functions.invoked[0] != "send-contact" {
		t.Errorf("invoked = %v, want [send-contact]", functions.invoked)
	}

	var response map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response["id"] != "msg_1" {
		t.Errorf("id = %q, want msg_1", response["id"])
	}
}

func TestContactRejectsInvalidEmail(t *testing.T) {
	functions := &stubFunctionsService{}
	handler := NewContactHandler(functions)

	rec := doContact(handler, `{"name":"Jamie","email":"not-an-email","message":"hi"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Submit status = %d for bad email, want 400", rec.Code)
	}
	if len(functions.invoked) != 0 {
		t.Errorf("invoked = %v, want no calls", functions.invoked)
	}
}

func TestContactReportsDeliveryFailure(t *testing.T) {
	functions := &stubFunctionsService{err: errors.New("upstream down")}
	handler := NewContactHandler(functions)

	rec := doContact(handler, `{"name":"Jamie","email":"fan@example.com","message":"hello there"}`)
	if rec.Code != http.StatusBadGateway {
		t.Errorf("Submit status = %d when delivery fails, want 502", rec.Code)
	}
}
