package models

import "time"

// DiscountCode is resolved server-side at order creation so the client
// never submits a discount amount of its own.
type DiscountCode struct {
	ID         string     `json:"id"`
	Code       string     `json:"code"`
	Percent    int        `json:"percent"`
	ValidFrom  *time.Time `json:"valid_from,omitempty"`
	ValidUntil *time.Time `json:"valid_until,omitempty"`
	MaxUses    *int       `json:"max_uses,omitempty"`
	UsedCount  int        `json:"used_count"`
	CreatedAt  time.Time  `json:"created_at"`
}

// Usable reports whether the code can still be applied at the given time.
func (d *DiscountCode) Usable(now time.Time) bool {
	if d.ValidFrom != nil && now.Before(*d.ValidFrom) {
		return false
	}
	if d.ValidUntil != nil && now.After(*d.ValidUntil) {
		return false
	}
	if d.MaxUses != nil && d.UsedCount >= *d.MaxUses {
		return false
	}
	return true
}

// Amount returns the discount for the given subtotal. Integer division
// truncates, matching round-down on IDR amounts.
func (d *DiscountCode) Amount(subtotal int64) int64 {
	return subtotal * int64(d.Percent) / 100
}
