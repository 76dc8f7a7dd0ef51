package models

import (
	"testing"
	"time"
)

func TestTicketTier_Validate(t *testing.T) {
	saleStart := time.Now().Add(1 * time.Hour)
	saleEnd := saleStart.Add(48 * time.Hour)

	tests := []struct {
		name    string
		tier    TicketTier
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid tier",
			tier: TicketTier{
				Name:             "General Admission",
				PriceCents:       2500,
				FlatFeeCents:     50,
				PercentageFeeBps: 500,
				Quantity:         100,
				SaleStart:        saleStart,
				SaleEnd:          saleEnd,
			},
		},
		{
			name: "empty name",
			tier: TicketTier{
				Name:      "",
				Quantity:  100,
				SaleStart: saleStart,
				SaleEnd:   saleEnd,
			},
			wantErr: true,
			errMsg:  "tier name is required",
		},
		{
			name: "negative price",
			tier: TicketTier{
				Name:      "General Admission",
				PriceCents: -100,
				Quantity:  100,
				SaleStart: saleStart,
				SaleEnd:   saleEnd,
			},
			wantErr: true,
			errMsg:  "ticket price cannot be negative",
		},
		{
			name: "negative flat fee",
			tier: TicketTier{
				Name:         "General Admission",
				PriceCents:   2500,
				FlatFeeCents: -1,
				Quantity:     100,
				SaleStart:    saleStart,
				SaleEnd:      saleEnd,
			},
			wantErr: true,
			errMsg:  "flat fee cannot be negative",
		},
		{
			name: "percentage fee over 100%",
			tier: TicketTier{
				Name:             "General Admission",
				PriceCents:       2500,
				PercentageFeeBps: 10001,
				Quantity:         100,
				SaleStart:        saleStart,
				SaleEnd:          saleEnd,
			},
			wantErr: true,
			errMsg:  "percentage fee cannot exceed 100%",
		},
		{
			name: "zero quantity",
			tier: TicketTier{
				Name:      "General Admission",
				PriceCents: 2500,
				Quantity:  0,
				SaleStart: saleStart,
				SaleEnd:   saleEnd,
			},
			wantErr: true,
			errMsg:  "ticket quantity must be greater than 0",
		},
		{
			name: "sale start after end",
			tier: TicketTier{
				Name:      "General Admission",
				PriceCents: 2500,
				Quantity:  100,
				SaleStart: saleEnd,
				SaleEnd:   saleStart,
			},
			wantErr: true,
			errMsg:  "sale start date must be before sale end date",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.tier.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if err.Error() != tt.errMsg {
					t.Errorf("error = %q, want %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestTicketTier_FeesPerTicket(t *testing.T) {
	tier := TicketTier{
		PriceCents:       1000,
		FlatFeeCents:     50,
		PercentageFeeBps: 1000, // 10%
	}

	if got := tier.FeesPerTicket(); got != 150 {
		t.Errorf("FeesPerTicket() = %d, want 150", got)
	}
}

func TestTicketTier_Availability(t *testing.T) {
	now := time.Now()
	tier := TicketTier{
		Quantity:  100,
		Sold:      98,
		SaleStart: now.Add(-time.Hour),
		SaleEnd:   now.Add(time.Hour),
	}

	if !tier.IsAvailable() {
		t.Error("tier with stock inside sale window should be available")
	}
	if got := tier.Available(); got != 2 {
		t.Errorf("Available() = %d, want 2", got)
	}

	tier.Sold = 100
	if !tier.IsSoldOut() {
		t.Error("fully sold tier should be sold out")
	}
	if tier.IsAvailable() {
		t.Error("sold out tier should not be available")
	}

	tier.Sold = 0
	tier.SaleStart = now.Add(time.Hour)
	if tier.IsAvailable() {
		t.Error("tier before sale start should not be available")
	}
	if !tier.SaleNotStarted() {
		t.Error("SaleNotStarted should be true before sale start")
	}
}

func TestTicket_Validate(t *testing.T) {
	ticket := Ticket{QRCode: "TKT-abc123", Status: TicketActive}
	if err := ticket.Validate(); err != nil {
		t.Errorf("valid ticket: %v", err)
	}

	ticket.QRCode = ""
	if err := ticket.Validate(); err == nil {
		t.Error("missing QR code should fail validation")
	}

	ticket.QRCode = "TKT-abc123"
	ticket.Status = "torn"
	if err := ticket.Validate(); err == nil {
		t.Error("unknown status should fail validation")
	}
}
