package models

import (
	"testing"
	"time"
)

func TestCart_Totals(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ID: 1, Type: CartItemTicket, PriceCents: 1000, FeesCents: 150, Quantity: 2},
			{ID: 7, Type: CartItemMerch, PriceCents: 2500, FeesCents: 0, Quantity: 1},
		},
	}

	if got := cart.Subtotal(); got != 4500 {
		t.Errorf("Subtotal() = %d, want 4500", got)
	}
	if got := cart.Fees(); got != 300 {
		t.Errorf("Fees() = %d, want 300", got)
	}
	if got := cart.Total(); got != 4800 {
		t.Errorf("Total() = %d, want 4800", got)
	}
	if got := cart.TicketCount(); got != 2 {
		t.Errorf("TicketCount() = %d, want 2 (merch excluded)", got)
	}
}

func TestCart_Upsert(t *testing.T) {
	cart := Cart{}

	cart.Upsert(CartItem{ID: 1, Type: CartItemTicket, Name: "General", PriceCents: 1000, Quantity: 2})
	cart.Upsert(CartItem{ID: 1, Type: CartItemTicket, Name: "General", PriceCents: 1000, Quantity: 1})
	cart.Upsert(CartItem{ID: 1, Type: CartItemMerch, Name: "Tour Tee", PriceCents: 2500, Quantity: 1})

	if len(cart.Items) != 2 {
		t.Fatalf("items = %d, want 2 (same ID different type stays separate)", len(cart.Items))
	}
	if cart.Items[0].Quantity != 3 {
		t.Errorf("merged quantity = %d, want 3", cart.Items[0].Quantity)
	}
	if cart.UpdatedAt.IsZero() {
		t.Error("Upsert should stamp UpdatedAt")
	}
}

func TestCart_SetQuantity(t *testing.T) {
	cart := Cart{
		Items: []CartItem{
			{ID: 1, Type: CartItemTicket, Quantity: 2},
			{ID: 2, Type: CartItemTicket, Quantity: 1},
		},
	}

	cart.SetQuantity(CartItemTicket, 1, 5)
	if cart.Items[0].Quantity != 5 {
		t.Errorf("quantity = %d, want 5", cart.Items[0].Quantity)
	}

	cart.SetQuantity(CartItemTicket, 2, 0)
	if len(cart.Items) != 1 {
		t.Errorf("items = %d, want 1 (zero quantity removes the line)", len(cart.Items))
	}
}

func TestCart_IsExpired(t *testing.T) {
	cart := Cart{}
	if cart.IsExpired() {
		t.Error("cart without a hold should never be expired")
	}

	cart.ExpiresAt = time.Now().Add(-time.Minute).Unix()
	if !cart.IsExpired() {
		t.Error("cart past its hold should be expired")
	}

	cart.ExpiresAt = time.Now().Add(time.Minute).Unix()
	if cart.IsExpired() {
		t.Error("cart within its hold should not be expired")
	}
}
