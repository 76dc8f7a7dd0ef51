package models

import "time"

// CartStorageKey is the fixed key the cart is persisted under, both in the
// session and in on-device storage for the mobile client.
const CartStorageKey = "stagefront_cart"

// CartItemType distinguishes ticket selections from merchandise.
type CartItemType string

const (
	CartItemTicket CartItemType = "ticket"
	CartItemMerch  CartItemType = "merch"
)

// CartItem represents an item in the shopping cart. Price is in cents.
type CartItem struct {
	ID         int               `json:"id"`
	Type       CartItemType      `json:"type"`
	Name       string            `json:"name"`
	PriceCents int               `json:"price_cents"`
	FeesCents  int               `json:"fees_cents"`
	Quantity   int               `json:"quantity"`
	ImageURL   string            `json:"image_url,omitempty"`
	Metadata   map[string]string `json:"metadata,omitempty"`
}

// Cart represents a shopping cart. Persistence is last-write-wins on
// UpdatedAt; a cart holds tickets for at most one event plus any merch.
type Cart struct {
	EventID    int        `json:"event_id"`
	EventTitle string     `json:"event_title"`
	Items      []CartItem `json:"items"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ExpiresAt  int64      `json:"expires_at"` // Unix timestamp; 0 means no hold
}

// Subtotal returns the item subtotal of the cart in cents.
func (c *Cart) Subtotal() int {
	subtotal := 0
	for _, item := range c.Items {
		subtotal += item.PriceCents * item.Quantity
	}
	return subtotal
}

// Fees returns the total fees of the cart in cents.
func (c *Cart) Fees() int {
	fees := 0
	for _, item := range c.Items {
		fees += item.FeesCents * item.Quantity
	}
	return fees
}

// Total returns subtotal plus fees in cents.
func (c *Cart) Total() int {
	return c.Subtotal() + c.Fees()
}

// TicketCount returns the number of tickets in the cart, excluding merch.
func (c *Cart) TicketCount() int {
	count := 0
	for _, item := range c.Items {
		if item.Type == CartItemTicket {
			count += item.Quantity
		}
	}
	return count
}

// IsEmpty returns true if the cart holds no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// IsExpired returns true if the cart's ticket hold has lapsed.
func (c *Cart) IsExpired() bool {
	return c.ExpiresAt > 0 && time.Now().Unix() > c.ExpiresAt
}

// Upsert adds an item to the cart or merges quantity into an existing line
// of the same type and ID, then stamps UpdatedAt.
func (c *Cart) Upsert(item CartItem) {
	for i := range c.Items {
		if c.Items[i].ID == item.ID && c.Items[i].Type == item.Type {
			c.Items[i].Quantity += item.Quantity
			c.UpdatedAt = time.Now()
			return
		}
	}

	c.Items = append(c.Items, item)
	c.UpdatedAt = time.Now()
}

// SetQuantity updates the quantity of a line, removing it when quantity
// reaches zero.
func (c *Cart) SetQuantity(itemType CartItemType, id, quantity int) {
	for i := range c.Items {
		if c.Items[i].ID == id && c.Items[i].Type == itemType {
			if quantity == 0 {
				c.Items = append(c.Items[:i], c.Items[i+1:]...)
			} else {
				c.Items[i].Quantity = quantity
			}
			c.UpdatedAt = time.Now()
			return
		}
	}
}
