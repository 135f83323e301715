package transaction

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/compostlink/compostlink/internal/listing"
)

// Status represents the lifecycle state of a transaction.
type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDeclined  Status = "declined"
	StatusCancelled Status = "cancelled"
	StatusCompleted Status = "completed"
)

var transitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusDeclined, StatusCancelled, StatusCompleted},
	StatusAccepted: {StatusCancelled, StatusCompleted},
}

// Terminal reports whether no further transitions are possible.
func (s Status) Terminal() bool {
	return len(transitions[s]) == 0
}

func (s Status) CanTransitionTo(to Status) bool {
	return slices.Contains(transitions[s], to)
}

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusDeclined, StatusCancelled, StatusCompleted:
		return true
	}

	return false
}

// Transaction is one offer against a listing.
type Transaction struct {
	ID          uuid.UUID
	ListingID   uuid.UUID
	RequesterID uuid.UUID
	Amount      decimal.Decimal // Snapshot of unit price × quantity at creation.
	Quantity    int
	Status      Status
	Proof       string
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	CompletedAt *time.Time

	// Loaded via JOIN on listings.
	ListingOwnerID uuid.UUID
	ListingTitle   string
	ListingKind    listing.Kind
}

// IsParty reports whether userID is the requester or the listing owner.
func (t *Transaction) IsParty(userID uuid.UUID) bool {
	return userID == t.RequesterID || userID == t.ListingOwnerID
}

// StatusUpdate describes the columns written by a status change. Nil fields
// are left untouched.
type StatusUpdate struct {
	Status      Status
	Proof       *string
	CompletedAt *time.Time
}
