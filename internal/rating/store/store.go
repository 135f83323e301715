package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/rating"
	"github.com/compostlink/compostlink/internal/transaction"
)

const (
	uniqueViolation       = "23505"
	ratingTransactionUniq = "ratings_transaction_id_key"
)

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

type ratingTx struct {
	tx *sql.Tx
}

func (s *Store) BeginRating(ctx context.Context) (rating.RatingTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning rating tx: %w", err)
	}

	return &ratingTx{tx: dbTx}, nil
}

func (rtx *ratingTx) Commit() error   { return rtx.tx.Commit() }
func (rtx *ratingTx) Rollback() error { return rtx.tx.Rollback() }

func (rtx *ratingTx) LockTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	query := `
		SELECT t.id, t.listing_id, t.requester_id, t.status, l.owner_id
		FROM transactions t
		JOIN listings l ON t.listing_id = l.id
		WHERE t.id = $1
		FOR UPDATE OF t`

	var (
		tx     transaction.Transaction
		status string
	)

	err := rtx.tx.QueryRowContext(ctx, query, id).Scan(&tx.ID, &tx.ListingID, &tx.RequesterID, &status, &tx.ListingOwnerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("locking transaction: %w", err)
	}

	tx.Status = transaction.Status(status)

	return &tx, nil
}

func (rtx *ratingTx) HasRating(ctx context.Context, transactionID uuid.UUID) (bool, error) {
	var exists bool

	err := rtx.tx.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM ratings WHERE transaction_id = $1)`, transactionID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking rating: %w", err)
	}

	return exists, nil
}

func (rtx *ratingTx) LockAggregate(ctx context.Context, userID uuid.UUID) (*rating.Aggregate, error) {
	query := `SELECT id, rating_sum, transaction_count FROM users WHERE id = $1 FOR UPDATE`

	var agg rating.Aggregate

	err := rtx.tx.QueryRowContext(ctx, query, userID).Scan(&agg.UserID, &agg.Sum, &agg.Count)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}

		return nil, fmt.Errorf("locking user aggregate: %w", err)
	}

	return &agg, nil
}

func (rtx *ratingTx) CreateRating(ctx context.Context, r *rating.Rating) error {
	query := `
		INSERT INTO ratings (transaction_id, rater_id, rated_user_id, score, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := rtx.tx.QueryRowContext(ctx, query, r.TransactionID, r.RaterID, r.RatedUserID, r.Score).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == ratingTransactionUniq {
			return rating.ErrAlreadyRated
		}

		return fmt.Errorf("creating rating: %w", err)
	}

	return nil
}

func (rtx *ratingTx) UpdateAggregate(ctx context.Context, a rating.Aggregate) error {
	query := `
		UPDATE users
		SET rating_sum = $1, transaction_count = $2, rating_avg = $3, updated_at = NOW()
		WHERE id = $4
	`

	res, err := rtx.tx.ExecContext(ctx, query, a.Sum, a.Count, a.Average(), a.UserID)
	if err != nil {
		return fmt.Errorf("updating user aggregate: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking rows affected: %w", err)
	}

	if n == 0 {
		return account.ErrUserNotFound
	}

	return nil
}
