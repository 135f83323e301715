package transaction

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/apperr"
	"github.com/compostlink/compostlink/internal/listing"
	"github.com/compostlink/compostlink/internal/metrics"
	"github.com/compostlink/compostlink/internal/notification"
)

const (
	// MaxQuantity bounds a single offer.
	MaxQuantity = 1_000_000
)

// maxAmount is the first value that no longer fits the amount column,
// NUMERIC(12, 2).
var maxAmount = decimal.New(1, 10)

type OfferParams struct {
	ListingID   uuid.UUID
	RequesterID uuid.UUID
	Quantity    int
	Message     string
}

// Offer is the pair of rows written by CreateOffer.
type Offer struct {
	Transaction  *Transaction
	Notification *notification.Notification
}

// CreateOffer records a pending offer and its notification for the listing
// owner. Both rows are written in one database transaction, and at most one
// pending offer exists per (listing, requester).
func (s *Service) CreateOffer(ctx context.Context, params OfferParams) (*Offer, error) {
	if params.ListingID == uuid.Nil || params.RequesterID == uuid.Nil || params.Quantity <= 0 {
		return nil, ErrInvalidOffer
	}

	if params.Quantity > MaxQuantity {
		return nil, fmt.Errorf("%w: quantity exceeds %d", ErrInvalidOffer, MaxQuantity)
	}

	otx, err := s.repo.BeginOffer(ctx, params.ListingID, params.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("begin offer: %w", err)
	}
	defer otx.Rollback()

	offer, err := s.createOffer(ctx, otx, params)
	if err != nil {
		metrics.OffersRejected.WithLabelValues(apperr.CodeOf(err)).Inc()
		return nil, err
	}

	if err := otx.Commit(); err != nil {
		return nil, fmt.Errorf("commit offer: %w", err)
	}

	metrics.OffersCreated.Inc()
	slog.Info("offer created",
		"transaction_id", offer.Transaction.ID,
		"listing_id", params.ListingID,
		"requester_id", params.RequesterID,
		"amount", offer.Transaction.Amount.String(),
	)

	return offer, nil
}

func (s *Service) createOffer(ctx context.Context, otx OfferTx, params OfferParams) (*Offer, error) {
	l, err := otx.GetListing(ctx, params.ListingID)
	if err != nil {
		return nil, err
	}

	if l.OwnerID == params.RequesterID {
		return nil, ErrOwnListing
	}

	if l.Status != listing.StatusActive {
		return nil, fmt.Errorf("%w: listing is %s", ErrListingUnavailable, l.Status)
	}

	pending, err := otx.HasPendingOffer(ctx, params.ListingID, params.RequesterID)
	if err != nil {
		return nil, fmt.Errorf("checking pending offers: %w", err)
	}

	if pending {
		return nil, ErrDuplicatePendingOffer
	}

	requester, err := otx.GetRequester(ctx, params.RequesterID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: requester %s", ErrDependencyLookup, params.RequesterID)
		}

		return nil, fmt.Errorf("loading requester: %w", err)
	}

	if !requester.CanTransact(s.now()) {
		return nil, ErrAccountIneligible
	}

	amount := l.Price(params.Quantity)
	if amount.IsNegative() || amount.GreaterThanOrEqual(maxAmount) {
		return nil, fmt.Errorf("%w: amount %s out of range", ErrInvalidOffer, amount)
	}

	tx := &Transaction{
		ListingID:      params.ListingID,
		RequesterID:    params.RequesterID,
		Amount:         amount,
		Quantity:       params.Quantity,
		Status:         StatusPending,
		ListingOwnerID: l.OwnerID,
		ListingTitle:   l.Title,
		ListingKind:    l.Kind,
	}
	if err := otx.CreateTransaction(ctx, tx); err != nil {
		return nil, err
	}

	n := notification.NewOfferNotification(tx.ID, requester.Name, l.Title, params.Message)
	if err := otx.CreateNotification(ctx, n); err != nil {
		return nil, err
	}

	return &Offer{Transaction: tx, Notification: n}, nil
}
