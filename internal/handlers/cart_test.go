package handlers

import (
	"bytes"
	"encoding/gob"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/sessions"

	"stagefront/internal/models"
)

func init() {
	gob.Register(&models.Cart{})
	gob.Register(models.CartItem{})
	gob.Register([]models.CartItem{})
}

type cartFixture struct {
	handler *CartHandler
	tickets *stubTicketService
	cookies []*http.Cookie
}

func newCartFixture() *cartFixture {
	events := newStubEventService()
	events.events[1] = &models.Event{ID: 1, Title: "Warehouse Sessions"}
	events.events[2] = &models.Event{ID: 2, Title: "Rooftop Acoustic"}

	tickets := newStubTicketService()
	tickets.tiers[10] = &models.TicketTier{
		ID:               10,
		EventID:          1,
		Name:             "General Admission",
		PriceCents:       1000,
		FlatFeeCents:     50,
		PercentageFeeBps: 1000,
		Quantity:         100,
		SaleStart:        time.Now().Add(-time.Hour),
		SaleEnd:          time.Now().Add(time.Hour),
	}
	tickets.tiers[20] = &models.TicketTier{
		ID:         20,
		EventID:    2,
		Name:       "Early Bird",
		PriceCents: 500,
		Quantity:   50,
		SaleStart:  time.Now().Add(-time.Hour),
		SaleEnd:    time.Now().Add(time.Hour),
	}

	products := newStubProductService()
	products.products[5] = &models.Product{
		ID:         5,
		EventID:    1,
		Name:       "Tour Shirt",
		PriceCents: 2500,
		Stock:      3,
	}

	store := sessions.NewCookieStore([]byte("test-secret"))

	return &cartFixture{
		handler: NewCartHandler(store, events, tickets, products),
		tickets: tickets,
	}
}

// do sends a request through the handler, carrying the session cookie
// across calls the way a browser would.
func (f *cartFixture) do(t *testing.T, method, body string, handlerFunc http.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()

	req := httptest.NewRequest(method, "/cart", bytes.NewBufferString(body))
	for _, cookie := range f.cookies {
		req.AddCookie(cookie)
	}

	rec := httptest.NewRecorder()
	handlerFunc(rec, req)

	if cookies := rec.Result().Cookies(); len(cookies) > 0 {
		f.cookies = cookies
	}

	var response map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &response); err != nil {
		t.Fatalf("failed to decode response: %v (body %q)", err, rec.Body.String())
	}

	return rec, response
}

func TestCartAddAndTotals(t *testing.T) {
	f := newCartFixture()

	// Two GA tickets at $10.00 each with $1.50 of fees per ticket.
	rec, response := f.do(t, "POST", `{"type":"ticket","id":10,"quantity":2}`, f.handler.AddItem)
	if rec.Code != http.StatusOK {
		t.Fatalf("AddItem status = %d, want 200 (body %s)", rec.Code, rec.Body.String())
	}
	if got := response["subtotal_cents"].(float64); got != 2000 {
		t.Errorf("subtotal_cents = %v, want 2000", got)
	}
	if got := response["fees_cents"].(float64); got != 300 {
		t.Errorf("fees_cents = %v, want 300", got)
	}
	if got := response["total_cents"].(float64); got != 2300 {
		t.Errorf("total_cents = %v, want 2300", got)
	}
	if got := response["ticket_count"].(float64); got != 2 {
		t.Errorf("ticket_count = %v, want 2", got)
	}

	// Merch carries no per-item fees.
	_, response = f.do(t, "POST", `{"type":"merch","id":5,"quantity":1}`, f.handler.AddItem)
	if got := response["subtotal_cents"].(float64); got != 4500 {
		t.Errorf("subtotal_cents = %v after adding merch, want 4500", got)
	}
	if got := response["fees_cents"].(float64); got != 300 {
		t.Errorf("fees_cents = %v after adding merch, want 300", got)
	}

	// Setting a line to zero removes it.
	_, response = f.do(t, "PATCH", `{"type":"ticket","id":10,"quantity":0}`, f.handler.UpdateItem)
	if got := response["subtotal_cents"].(float64); got != 2500 {
		t.Errorf("subtotal_cents = %v after removing tickets, want 2500", got)
	}
	if got := response["ticket_count"].(float64); got != 0 {
		t.Errorf("ticket_count = %v after removing tickets, want 0", got)
	}
}

func TestCartMergesDuplicateLines(t *testing.T) {
	f := newCartFixture()

	f.do(t, "POST", `{"type":"ticket","id":10,"quantity":1}`, f.handler.AddItem)
	_, response := f.do(t, "POST", `{"type":"ticket","id":10,"quantity":2}`, f.handler.AddItem)

	if got := response["ticket_count"].(float64); got != 3 {
		t.Errorf("ticket_count = %v after adding the same tier twice, want 3", got)
	}

	cart := response["cart"].(map[string]interface{})
	items := cart["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1 merged line", len(items))
	}
}

func TestCartSwitchingEventsStartsFresh(t *testing.T) {
	f := newCartFixture()

	f.do(t, "POST", `{"type":"ticket","id":10,"quantity":2}`, f.handler.AddItem)
	_, response := f.do(t, "POST", `{"type":"ticket","id":20,"quantity":1}`, f.handler.AddItem)

	cart := response["cart"].(map[string]interface{})
	if got := cart["event_title"].(string); got != "Rooftop Acoustic" {
		t.Errorf("event_title = %q, want %q", got, "Rooftop Acoustic")
	}

	items := cart["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("len(items) = %d after switching events, want 1", len(items))
	}
	if got := response["subtotal_cents"].(float64); got != 500 {
		t.Errorf("subtotal_cents = %v after switching events, want 500", got)
	}
}

func TestCartRejectsClosedSale(t *testing.T) {
	f := newCartFixture()
	f.tickets.tiers[10].SaleEnd = time.Now().Add(-time.Minute)

	rec, _ := f.do(t, "POST", `{"type":"ticket","id":10,"quantity":1}`, f.handler.AddItem)
	if rec.Code != http.StatusConflict {
		t.Errorf("AddItem status = %d for closed sale, want 409", rec.Code)
	}
}

func TestCartRejectsNonPositiveQuantity(t *testing.T) {
	f := newCartFixture()

	rec, _ := f.do(t, "POST", `{"type":"ticket","id":10,"quantity":0}`, f.handler.AddItem)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("AddItem status = %d for zero quantity, want 400", rec.Code)
	}
}

func TestClearCart(t *testing.T) {
	f := newCartFixture()

	f.do(t, "POST", `{"type":"ticket","id":10,"quantity":2}`, f.handler.AddItem)
	_, response := f.do(t, "DELETE", "", f.handler.ClearCart)

	if got := response["total_cents"].(float64); got != 0 {
		t.Errorf("total_cents = %v after clear, want 0", got)
	}
}
