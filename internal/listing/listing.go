package listing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Kind is what the owner is doing with the material.
type Kind string

const (
	KindFree   Kind = "free"
	KindWanted Kind = "wanted"
	KindSale   Kind = "sale"
)

// Status is the availability of a listing.
type Status string

const (
	StatusActive      Status = "active"
	StatusInactive    Status = "inactive"
	StatusSold        Status = "sold"
	StatusUnavailable Status = "unavailable"
)

// Listing is a posted item. Listings are managed outside the exchange; the
// exchange only reads them.
type Listing struct {
	ID        uuid.UUID
	OwnerID   uuid.UUID
	Title     string
	Kind      Kind
	UnitPrice decimal.Decimal
	Quantity  int
	Status    Status
}

// Price returns the amount owed for qty units at the current unit price.
func (l *Listing) Price(qty int) decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(qty)))
}
