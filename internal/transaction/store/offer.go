package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"hash/fnv"

	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/listing"
	"github.com/compostlink/compostlink/internal/notification"
	"github.com/compostlink/compostlink/internal/transaction"
)

const (
	pendingOfferIndex     = "transactions_one_pending_per_requester"
	notificationTxnUnique = "notifications_transaction_id_key"
)

// offerLockKey derives the advisory lock that serializes offers from one
// requester on one listing.
func offerLockKey(listingID, requesterID uuid.UUID) int64 {
	h := fnv.New64a()
	h.Write(listingID[:])
	h.Write([]byte{0})
	h.Write(requesterID[:])

	return int64(h.Sum64())
}

type offerTx struct {
	tx *sql.Tx
}

func (s *Store) BeginOffer(ctx context.Context, listingID, requesterID uuid.UUID) (transaction.OfferTx, error) {
	dbTx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning offer tx: %w", err)
	}

	lockKey := offerLockKey(listingID, requesterID)
	if _, err := dbTx.ExecContext(ctx, "SELECT pg_advisory_xact_lock($1)", lockKey); err != nil {
		dbTx.Rollback()
		return nil, fmt.Errorf("acquiring offer lock: %w", err)
	}

	return &offerTx{tx: dbTx}, nil
}

func (otx *offerTx) Commit() error   { return otx.tx.Commit() }
func (otx *offerTx) Rollback() error { return otx.tx.Rollback() }

func (otx *offerTx) GetListing(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	query := `SELECT ` + selectListingColumns + ` FROM listings l WHERE l.id = $1`

	l, err := scanListing(otx.tx.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrListingNotFound
		}

		return nil, fmt.Errorf("getting listing: %w", err)
	}

	return l, nil
}

func (otx *offerTx) HasPendingOffer(ctx context.Context, listingID, requesterID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM transactions
			WHERE listing_id = $1 AND requester_id = $2 AND status = $3
		)`

	var exists bool
	if err := otx.tx.QueryRowContext(ctx, query, listingID, requesterID, transaction.StatusPending).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking pending offer: %w", err)
	}

	return exists, nil
}

func (otx *offerTx) GetRequester(ctx context.Context, id uuid.UUID) (*account.Profile, error) {
	query := `SELECT id, name, avatar_url, account_status FROM users WHERE id = $1`

	var p account.Profile

	var avatar sql.NullString

	err := otx.tx.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Name, &avatar, &p.AccountStatus)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}

		return nil, fmt.Errorf("getting requester: %w", err)
	}

	p.AvatarURL = avatar.String

	return &p, nil
}

func (otx *offerTx) CreateTransaction(ctx context.Context, tx *transaction.Transaction) error {
	query := `
		INSERT INTO transactions (listing_id, requester_id, amount, quantity, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id, created_at, updated_at
	`

	err := otx.tx.QueryRowContext(ctx, query,
		tx.ListingID,
		tx.RequesterID,
		tx.Amount,
		tx.Quantity,
		tx.Status,
	).Scan(&tx.ID, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err, pendingOfferIndex) {
			return transaction.ErrDuplicatePendingOffer
		}

		return fmt.Errorf("creating transaction: %w", err)
	}

	return nil
}

func (otx *offerTx) CreateNotification(ctx context.Context, n *notification.Notification) error {
	query := `
		INSERT INTO notifications (transaction_id, message, custom_message, is_read, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, created_at
	`

	err := otx.tx.QueryRowContext(ctx, query, n.TransactionID, n.Message, n.Custom, n.Read).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		if isUniqueViolation(err, notificationTxnUnique) {
			return fmt.Errorf("transaction %s already has a notification: %w", n.TransactionID, err)
		}

		return fmt.Errorf("creating notification: %w", err)
	}

	return nil
}
