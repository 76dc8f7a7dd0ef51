package models

import "time"

// TierCreateRequest represents a request to create a new ticket tier
type TierCreateRequest struct {
	EventID          int       `json:"event_id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	PriceCents       int       `json:"price_cents"`
	FlatFeeCents     int       `json:"flat_fee_cents"`
	PercentageFeeBps int       `json:"percentage_fee_bps"`
	Quantity         int       `json:"quantity"`
	SaleStart        time.Time `json:"sale_start"`
	SaleEnd          time.Time `json:"sale_end"`
}

// TierUpdateRequest represents a request to update a ticket tier
type TierUpdateRequest struct {
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	PriceCents       int       `json:"price_cents"`
	FlatFeeCents     int       `json:"flat_fee_cents"`
	PercentageFeeBps int       `json:"percentage_fee_bps"`
	Quantity         int       `json:"quantity"`
	SaleStart        time.Time `json:"sale_start"`
	SaleEnd          time.Time `json:"sale_end"`
}

// Validate validates tier creation data
func (req *TierCreateRequest) Validate() error {
	return validateTierRequest(req.Name, req.Description, req.PriceCents,
		req.FlatFeeCents, req.PercentageFeeBps, req.Quantity, req.SaleStart, req.SaleEnd)
}

// Validate validates tier update data
func (req *TierUpdateRequest) Validate() error {
	return validateTierRequest(req.Name, req.Description, req.PriceCents,
		req.FlatFeeCents, req.PercentageFeeBps, req.Quantity, req.SaleStart, req.SaleEnd)
}

func validateTierRequest(name, description string, priceCents, flatFeeCents, percentageFeeBps, quantity int, saleStart, saleEnd time.Time) error {
	if err := validateTierName(name); err != nil {
		return err
	}

	if err := validateTierPrice(priceCents); err != nil {
		return err
	}

	if err := validateTierFees(flatFeeCents, percentageFeeBps); err != nil {
		return err
	}

	if err := validateTierQuantity(quantity); err != nil {
		return err
	}

	if err := validateTierSalePeriod(saleStart, saleEnd); err != nil {
		return err
	}

	return validateTierDescription(description)
}
