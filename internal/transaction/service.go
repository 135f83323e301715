package transaction

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/listing"
	"github.com/compostlink/compostlink/internal/metrics"
	"github.com/compostlink/compostlink/internal/notification"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=transaction
type Repository interface {
	GetTransaction(ctx context.Context, id uuid.UUID) (*Transaction, error)
	// UpdateStatus applies update only if the row is still in status from,
	// returning ErrInvalidTransition otherwise.
	UpdateStatus(ctx context.Context, id uuid.UUID, from Status, update StatusUpdate) (*Transaction, error)

	ListActiveListings(ctx context.Context, ownerID uuid.UUID) ([]*listing.Listing, error)
	ListOpenTransactions(ctx context.Context, listingIDs []uuid.UUID) ([]*Transaction, error)
	ListNotifications(ctx context.Context, transactionIDs []uuid.UUID) ([]*notification.Notification, error)

	BeginOffer(ctx context.Context, listingID, requesterID uuid.UUID) (OfferTx, error)
}

// OfferTx is a database transaction serialized per (listing, requester) pair.
type OfferTx interface {
	GetListing(ctx context.Context, id uuid.UUID) (*listing.Listing, error)
	HasPendingOffer(ctx context.Context, listingID, requesterID uuid.UUID) (bool, error)
	GetRequester(ctx context.Context, id uuid.UUID) (*account.Profile, error)
	CreateTransaction(ctx context.Context, tx *Transaction) error
	CreateNotification(ctx context.Context, n *notification.Notification) error
	Commit() error
	Rollback() error
}

type ProfileSource interface {
	Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*account.Profile, error)
}

type Options struct {
	// RequireAccepted restricts Complete to accepted transactions. When false
	// a pending transaction may be completed directly.
	RequireAccepted bool
}

type Service struct {
	repo     Repository
	profiles ProfileSource
	opts     Options
	now      func() time.Time
}

func NewService(repo Repository, profiles ProfileSource, opts Options) *Service {
	return &Service{
		repo:     repo,
		profiles: profiles,
		opts:     opts,
		now:      time.Now,
	}
}

func (s *Service) Get(ctx context.Context, actorID, id uuid.UUID) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if !tx.IsParty(actorID) {
		return nil, ErrForbidden
	}

	return tx, nil
}

type transitionRule struct {
	to   Status
	from []Status
	// allowed reports whether the actor may apply the transition.
	allowed func(tx *Transaction, actorID uuid.UUID) bool
}

func ownerOnly(tx *Transaction, actorID uuid.UUID) bool {
	return tx.ListingOwnerID == actorID
}

func eitherParty(tx *Transaction, actorID uuid.UUID) bool {
	return tx.IsParty(actorID)
}

func (s *Service) transition(ctx context.Context, actorID, id uuid.UUID, rule transitionRule, update StatusUpdate) (*Transaction, error) {
	tx, err := s.repo.GetTransaction(ctx, id)
	if err != nil {
		return nil, err
	}

	if !rule.allowed(tx, actorID) {
		return nil, ErrForbidden
	}

	if !slices.Contains(rule.from, tx.Status) || !tx.Status.CanTransitionTo(rule.to) {
		return nil, fmt.Errorf("%w: %s to %s", ErrInvalidTransition, tx.Status, rule.to)
	}

	update.Status = rule.to

	updated, err := s.repo.UpdateStatus(ctx, id, tx.Status, update)
	if err != nil {
		return nil, err
	}

	metrics.Transitions.WithLabelValues(string(rule.to)).Inc()
	slog.Info("transaction status changed",
		"transaction_id", id,
		"from", tx.Status,
		"to", rule.to,
		"actor_id", actorID,
	)

	return updated, nil
}
