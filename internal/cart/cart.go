package cart

import (
	"github.com/google/uuid"
)

// Line is one product entry in the cart. Prices are stored in cents.
type Line struct {
	ID                 uuid.UUID
	ProductID          string
	Name               string
	PriceCents         int64
	OriginalPriceCents int64 // price at insertion time, never changed
	Quantity           int
	IsDebt             bool
}

// Customer holds the buyer details required for debt sales.
type Customer struct {
	Name    string
	Phone   string
	Comment string
}

// LineCandidate carries the fields for a new line before an ID is assigned.
type LineCandidate struct {
	ProductID          string
	Name               string
	PriceCents         int64
	OriginalPriceCents int64
	Quantity           int
	IsDebt             bool
}

// LineUpdate is a partial update; nil fields are left untouched.
type LineUpdate struct {
	PriceCents *int64
	Quantity   *int
	IsDebt     *bool
}

// Cart is the in-memory ledger for one sales session. It is owned by a
// single event loop and is not safe for concurrent use.
type Cart struct {
	lines    []Line
	customer *Customer
}

func New() *Cart {
	return &Cart{}
}

// AddLine inserts a new line, or increments the quantity of the existing
// line with the same ProductID. Price and flags of an existing line are not
// touched; only quantity accumulates.
func (c *Cart) AddLine(candidate LineCandidate) Line {
	for i := range c.lines {
		if c.lines[i].ProductID == candidate.ProductID {
			c.lines[i].Quantity += candidate.Quantity
			return c.lines[i]
		}
	}

	line := Line{
		ID:                 uuid.New(),
		ProductID:          candidate.ProductID,
		Name:               candidate.Name,
		PriceCents:         candidate.PriceCents,
		OriginalPriceCents: candidate.OriginalPriceCents,
		Quantity:           candidate.Quantity,
		IsDebt:             candidate.IsDebt,
	}
	c.lines = append(c.lines, line)

	return line
}

// UpdateLine applies a partial update to the line with the given ID.
// Unknown IDs are a caller contract violation and are silently ignored.
func (c *Cart) UpdateLine(id uuid.UUID, update LineUpdate) {
	for i := range c.lines {
		if c.lines[i].ID != id {
			continue
		}

		if update.PriceCents != nil {
			c.lines[i].PriceCents = *update.PriceCents
		}

		if update.Quantity != nil {
			c.lines[i].Quantity = *update.Quantity
		}

		if update.IsDebt != nil {
			c.lines[i].IsDebt = *update.IsDebt
		}

		return
	}
}

// RemoveLine deletes the line with the given ID, if present. Idempotent.
func (c *Cart) RemoveLine(id uuid.UUID) {
	for i := range c.lines {
		if c.lines[i].ID == id {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the line list and detaches the customer.
func (c *Cart) Clear() {
	c.lines = nil
	c.customer = nil
}

// SetCustomer replaces the attached customer; nil detaches it.
func (c *Cart) SetCustomer(customer *Customer) {
	c.customer = customer
}

// Customer returns the attached customer, or nil.
func (c *Cart) Customer() *Customer {
	return c.customer
}

// MarkAllAsDebt sets the debt flag on every current line. Lines added
// afterwards are unaffected.
func (c *Cart) MarkAllAsDebt(isDebt bool) {
	for i := range c.lines {
		c.lines[i].IsDebt = isDebt
	}
}

// Lines returns a snapshot copy of the current lines.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)

	return out
}

// Len returns the number of lines.
func (c *Cart) Len() int {
	return len(c.lines)
}

// TotalCents recomputes the cart total from current state on every call.
func (c *Cart) TotalCents() int64 {
	var total int64
	for i := range c.lines {
		total += c.lines[i].PriceCents * int64(c.lines[i].Quantity)
	}

	return total
}

// ItemCount returns the summed quantity over all lines.
func (c *Cart) ItemCount() int {
	var count int
	for i := range c.lines {
		count += c.lines[i].Quantity
	}

	return count
}

// HasDebt reports whether any line is flagged as a debt sale.
func (c *Cart) HasDebt() bool {
	for i := range c.lines {
		if c.lines[i].IsDebt {
			return true
		}
	}

	return false
}
