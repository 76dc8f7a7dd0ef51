package checkout

// TicketFees holds the fee configuration attached to a ticket tier.
// PercentageFeeBps is in basis points (100 bps = 1%).
type TicketFees struct {
	FlatFeeCents     int `json:"flat_fee_cents"`
	PercentageFeeBps int `json:"percentage_fee_bps"`
}

// TicketSelection represents a (tier, quantity) pair chosen during checkout.
// All amounts are in cents.
type TicketSelection struct {
	TierID         int    `json:"tier_id"`
	TierName       string `json:"tier_name"`
	Quantity       int    `json:"quantity"`
	PricePerTicket int    `json:"price_per_ticket"`
	FeesPerTicket  int    `json:"fees_per_ticket"`
}

// ItemSummary is the per-tier line of an order summary. It carries the
// per-ticket price and fee alongside the line totals so callers can
// display or snapshot unit amounts without going back to the selection.
type ItemSummary struct {
	TierID         int    `json:"tier_id"`
	TierName       string `json:"tier_name"`
	Quantity       int    `json:"quantity"`
	PricePerTicket int    `json:"price_per_ticket"`
	FeesPerTicket  int    `json:"fees_per_ticket"`
	SubtotalCents  int    `json:"subtotal_cents"`
	FeesCents      int    `json:"fees_cents"`
	TotalCents     int    `json:"total_cents"`
}

// OrderSummary is derived from a selection set and never stored.
// Invariant: TotalCents == SubtotalCents + FeesCents.
type OrderSummary struct {
	Items         []ItemSummary `json:"items"`
	SubtotalCents int           `json:"subtotal_cents"`
	FeesCents     int           `json:"fees_cents"`
	TotalCents    int           `json:"total_cents"`
	TicketCount   int           `json:"ticket_count"`
}

// CalculateFees returns the per-ticket fee in cents for a given price:
// the flat fee plus the percentage fee rounded to the nearest cent.
// Ties round half up.
func CalculateFees(priceCents int, fees TicketFees) int {
	percentage := (priceCents*fees.PercentageFeeBps + 5000) / 10000
	return fees.FlatFeeCents + percentage
}

// CalculateOrderSummary computes subtotal, fees and total across a
// selection set. Entries with quantity zero are excluded from every sum.
// Quantities are not validated here; callers validate at the form boundary.
func CalculateOrderSummary(selections []TicketSelection) OrderSummary {
	summary := OrderSummary{Items: []ItemSummary{}}

	for _, sel := range selections {
		if sel.Quantity == 0 {
			continue
		}

		item := ItemSummary{
			TierID:         sel.TierID,
			TierName:       sel.TierName,
			Quantity:       sel.Quantity,
			PricePerTicket: sel.PricePerTicket,
			FeesPerTicket:  sel.FeesPerTicket,
			SubtotalCents:  sel.PricePerTicket * sel.Quantity,
			FeesCents:      sel.FeesPerTicket * sel.Quantity,
		}
		item.TotalCents = item.SubtotalCents + item.FeesCents

		summary.Items = append(summary.Items, item)
		summary.SubtotalCents += item.SubtotalCents
		summary.FeesCents += item.FeesCents
		summary.TicketCount += sel.Quantity
	}

	summary.TotalCents = summary.SubtotalCents + summary.FeesCents
	return summary
}
