package rating

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/metrics"
	"github.com/compostlink/compostlink/internal/transaction"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=rating
type Repository interface {
	BeginRating(ctx context.Context) (RatingTx, error)
}

// RatingTx reads and writes the rows touched by one rating under row locks.
type RatingTx interface {
	// LockTransaction returns the transaction with its row locked for the
	// rest of the database transaction.
	LockTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error)
	HasRating(ctx context.Context, transactionID uuid.UUID) (bool, error)
	LockAggregate(ctx context.Context, userID uuid.UUID) (*Aggregate, error)
	CreateRating(ctx context.Context, r *Rating) error
	UpdateAggregate(ctx context.Context, a Aggregate) error
	Commit() error
	Rollback() error
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Submit records the requester's score for the listing owner and updates the
// owner's running average.
func (s *Service) Submit(ctx context.Context, raterID, transactionID uuid.UUID, score int) (*Rating, error) {
	if !validScore(score) {
		return nil, ErrInvalidScore
	}

	rtx, err := s.repo.BeginRating(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin rating: %w", err)
	}
	defer rtx.Rollback()

	r, err := s.submit(ctx, rtx, raterID, transactionID, score)
	if err != nil {
		return nil, err
	}

	if err := rtx.Commit(); err != nil {
		return nil, fmt.Errorf("commit rating: %w", err)
	}

	metrics.RatingsSubmitted.Inc()
	slog.Info("rating submitted",
		"transaction_id", transactionID,
		"rated_user_id", r.RatedUserID,
		"score", score,
		"average", r.Aggregate.Display(),
	)

	return r, nil
}

func (s *Service) submit(ctx context.Context, rtx RatingTx, raterID, transactionID uuid.UUID, score int) (*Rating, error) {
	tx, err := rtx.LockTransaction(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if tx.RequesterID != raterID {
		return nil, ErrNotRequester
	}

	if tx.Status != transaction.StatusCompleted {
		return nil, ErrTransactionNotCompleted
	}

	rated, err := rtx.HasRating(ctx, transactionID)
	if err != nil {
		return nil, fmt.Errorf("checking existing rating: %w", err)
	}

	if rated {
		return nil, ErrAlreadyRated
	}

	agg, err := rtx.LockAggregate(ctx, tx.ListingOwnerID)
	if err != nil {
		if errors.Is(err, account.ErrUserNotFound) {
			return nil, fmt.Errorf("%w: listing owner %s", transaction.ErrDependencyLookup, tx.ListingOwnerID)
		}

		return nil, fmt.Errorf("loading rated user: %w", err)
	}

	r := &Rating{
		TransactionID: transactionID,
		RaterID:       raterID,
		RatedUserID:   tx.ListingOwnerID,
		Score:         score,
	}
	if err := rtx.CreateRating(ctx, r); err != nil {
		return nil, err
	}

	r.Aggregate = agg.Add(score)
	if err := rtx.UpdateAggregate(ctx, r.Aggregate); err != nil {
		return nil, fmt.Errorf("updating rated user: %w", err)
	}

	return r, nil
}
