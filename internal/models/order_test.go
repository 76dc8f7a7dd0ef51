package models

import (
	"regexp"
	"testing"
	"time"
)

func TestOrderCreateRequest_Validate(t *testing.T) {
	valid := OrderCreateRequest{
		UserID:        1,
		EventID:       1,
		SubtotalCents: 2000,
		FeesCents:     300,
		TotalCents:    2300,
		BillingEmail:  "john@example.com",
		BillingName:   "John Doe",
		Status:        OrderPending,
	}

	tests := []struct {
		name   string
		mutate func(*OrderCreateRequest)
		errMsg string
	}{
		{
			name:   "valid request",
			mutate: func(r *OrderCreateRequest) {},
		},
		{
			name:   "total not subtotal plus fees",
			mutate: func(r *OrderCreateRequest) { r.TotalCents = 2500 },
			errMsg: "order total must equal subtotal plus fees",
		},
		{
			name:   "negative subtotal",
			mutate: func(r *OrderCreateRequest) { r.SubtotalCents = -100; r.TotalCents = 200 },
			errMsg: "subtotal cannot be negative",
		},
		{
			name:   "negative fees",
			mutate: func(r *OrderCreateRequest) { r.FeesCents = -1; r.TotalCents = 1999 },
			errMsg: "fees cannot be negative",
		},
		{
			name: "over maximum",
			mutate: func(r *OrderCreateRequest) {
				r.SubtotalCents = 10000001
				r.FeesCents = 0
				r.TotalCents = 10000001
			},
			errMsg: "total amount cannot exceed $100,000",
		},
		{
			name:   "missing billing email",
			mutate: func(r *OrderCreateRequest) { r.BillingEmail = "" },
			errMsg: "billing email is required",
		},
		{
			name:   "invalid billing email",
			mutate: func(r *OrderCreateRequest) { r.BillingEmail = "not-an-email" },
			errMsg: "billing email format is invalid",
		},
		{
			name:   "whitespace billing name",
			mutate: func(r *OrderCreateRequest) { r.BillingName = "   " },
			errMsg: "billing name cannot be only whitespace",
		},
		{
			name:   "invalid status",
			mutate: func(r *OrderCreateRequest) { r.Status = "shipped" },
			errMsg: "invalid order status",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)
			err := req.Validate()
			if tt.errMsg == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.errMsg {
				t.Errorf("error = %v, want %q", err, tt.errMsg)
			}
		})
	}
}

func TestGenerateOrderNumber(t *testing.T) {
	pattern := regexp.MustCompile(`^ORD-\d{8}-\d{6}$`)

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		number := GenerateOrderNumber()
		if !pattern.MatchString(number) {
			t.Fatalf("order number %q does not match expected format", number)
		}
		seen[number] = true
	}

	if len(seen) < 45 {
		t.Errorf("generated %d distinct numbers out of 50; suspicious collision rate", len(seen))
	}
}

func TestOrder_Lifecycle(t *testing.T) {
	order := Order{Status: OrderPending, CreatedAt: time.Now()}

	if !order.CanBeCancelled() || !order.CanBeCompleted() {
		t.Error("pending order should be cancellable and completable")
	}
	if order.CanBeRefunded() {
		t.Error("pending order should not be refundable")
	}

	order.Status = OrderCompleted
	if !order.CanBeRefunded() {
		t.Error("completed order should be refundable")
	}
	if order.CanBeCancelled() {
		t.Error("completed order should not be cancellable")
	}
}

func TestOrder_IsExpired(t *testing.T) {
	order := Order{Status: OrderPending, CreatedAt: time.Now().Add(-20 * time.Minute)}

	if !order.IsExpired(15 * time.Minute) {
		t.Error("pending order past the hold window should be expired")
	}

	order.Status = OrderCompleted
	if order.IsExpired(15 * time.Minute) {
		t.Error("completed order should never be expired")
	}
}
