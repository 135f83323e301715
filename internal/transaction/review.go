package transaction

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/compostlink/compostlink/internal/listing"
	"github.com/compostlink/compostlink/internal/notification"
)

// Request is one incoming offer as shown to a listing owner.
type Request struct {
	ID              uuid.UUID
	RequesterID     uuid.UUID
	RequesterName   string
	RequesterAvatar string
	ListingID       uuid.UUID
	ListingTitle    string
	ListingKind     listing.Kind
	RequestDate     time.Time
	Message         string
	Status          Status
	Amount          decimal.Decimal
	Quantity        int
}

// ListOwnerRequests returns the offers made against the owner's active
// listings that have not been completed, newest first.
func (s *Service) ListOwnerRequests(ctx context.Context, ownerID uuid.UUID) ([]*Request, error) {
	listings, err := s.repo.ListActiveListings(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("listing active listings: %w", err)
	}

	if len(listings) == 0 {
		return []*Request{}, nil
	}

	byListing := make(map[uuid.UUID]*listing.Listing, len(listings))
	listingIDs := make([]uuid.UUID, 0, len(listings))

	for _, l := range listings {
		byListing[l.ID] = l
		listingIDs = append(listingIDs, l.ID)
	}

	txs, err := s.repo.ListOpenTransactions(ctx, listingIDs)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}

	if len(txs) == 0 {
		return []*Request{}, nil
	}

	txIDs := make([]uuid.UUID, 0, len(txs))
	requesterIDs := make([]uuid.UUID, 0, len(txs))
	seen := make(map[uuid.UUID]struct{}, len(txs))

	for _, tx := range txs {
		txIDs = append(txIDs, tx.ID)

		if _, ok := seen[tx.RequesterID]; ok {
			continue
		}

		seen[tx.RequesterID] = struct{}{}
		requesterIDs = append(requesterIDs, tx.RequesterID)
	}

	profiles, err := s.profiles.Profiles(ctx, requesterIDs)
	if err != nil {
		return nil, fmt.Errorf("loading requesters: %w", err)
	}

	notes, err := s.repo.ListNotifications(ctx, txIDs)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}

	byTx := make(map[uuid.UUID]*notification.Notification, len(notes))
	for _, n := range notes {
		byTx[n.TransactionID] = n
	}

	requests := make([]*Request, 0, len(txs))

	for _, tx := range txs {
		l, ok := byListing[tx.ListingID]
		if !ok {
			// Not one of the owner's listings.
			continue
		}

		if tx.Status == StatusCompleted {
			continue
		}

		req := &Request{
			ID:           tx.ID,
			RequesterID:  tx.RequesterID,
			ListingID:    l.ID,
			ListingTitle: l.Title,
			ListingKind:  l.Kind,
			RequestDate:  tx.CreatedAt,
			Status:       tx.Status,
			Amount:       tx.Amount,
			Quantity:     tx.Quantity,
		}

		if p, ok := profiles[tx.RequesterID]; ok {
			req.RequesterName = p.Name
			req.RequesterAvatar = p.AvatarURL
		} else {
			slog.Warn("requester profile missing", "transaction_id", tx.ID, "requester_id", tx.RequesterID)
		}

		if n, ok := byTx[tx.ID]; ok {
			req.Message = n.CustomMessage()
		}

		requests = append(requests, req)
	}

	slices.SortFunc(requests, func(a, b *Request) int {
		if c := b.RequestDate.Compare(a.RequestDate); c != 0 {
			return c
		}

		return cmp.Compare(a.ID.String(), b.ID.String())
	})

	return requests, nil
}

// Accept moves a pending offer to accepted. Only the listing owner may accept.
func (s *Service) Accept(ctx context.Context, actorID, id uuid.UUID) (*Transaction, error) {
	return s.transition(ctx, actorID, id, transitionRule{
		to:      StatusAccepted,
		from:    []Status{StatusPending},
		allowed: ownerOnly,
	}, StatusUpdate{})
}

// Decline moves a pending offer to declined. Only the listing owner may decline.
func (s *Service) Decline(ctx context.Context, actorID, id uuid.UUID) (*Transaction, error) {
	return s.transition(ctx, actorID, id, transitionRule{
		to:      StatusDeclined,
		from:    []Status{StatusPending},
		allowed: ownerOnly,
	}, StatusUpdate{})
}
