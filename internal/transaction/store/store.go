package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/compostlink/compostlink/internal/listing"
	"github.com/compostlink/compostlink/internal/notification"
	"github.com/compostlink/compostlink/internal/transaction"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scanner is satisfied by both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// scanTransaction reads a transaction row from the scanner and returns a populated Transaction.
// Expected column order: id, listing_id, requester_id, amount, quantity, status, proof, created_at, updated_at, completed_at, owner_id, title, kind
func scanTransaction(s scanner) (*transaction.Transaction, error) {
	var tx transaction.Transaction

	var statusStr, kindStr string

	var proof sql.NullString

	if err := s.Scan(
		&tx.ID, &tx.ListingID, &tx.RequesterID, &tx.Amount, &tx.Quantity, &statusStr, &proof,
		&tx.CreatedAt, &tx.UpdatedAt, &tx.CompletedAt,
		&tx.ListingOwnerID, &tx.ListingTitle, &kindStr,
	); err != nil {
		return nil, err
	}

	tx.Status = transaction.Status(statusStr)
	tx.ListingKind = listing.Kind(kindStr)
	tx.Proof = proof.String

	return &tx, nil
}

const selectTransactionColumns = `
	t.id, t.listing_id, t.requester_id, t.amount, t.quantity, t.status, t.proof,
	t.created_at, t.updated_at, t.completed_at, l.owner_id, l.title, l.kind
`

// Expected column order: id, owner_id, title, kind, unit_price, quantity, status
const selectListingColumns = `l.id, l.owner_id, l.title, l.kind, l.unit_price, l.quantity, l.status`

func scanListing(s scanner) (*listing.Listing, error) {
	var l listing.Listing

	var kindStr, statusStr string

	if err := s.Scan(&l.ID, &l.OwnerID, &l.Title, &kindStr, &l.UnitPrice, &l.Quantity, &statusStr); err != nil {
		return nil, err
	}

	l.Kind = listing.Kind(kindStr)
	l.Status = listing.Status(statusStr)

	return &l, nil
}

func getTransaction(ctx context.Context, q queryer, id uuid.UUID, lock bool) (*transaction.Transaction, error) {
	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		JOIN listings l ON t.listing_id = l.id
		WHERE t.id = $1`

	if lock {
		query += " FOR UPDATE OF t"
	}

	tx, err := scanTransaction(q.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, transaction.ErrNotFound
		}

		return nil, fmt.Errorf("getting transaction: %w", err)
	}

	return tx, nil
}

func (s *Store) GetTransaction(ctx context.Context, id uuid.UUID) (*transaction.Transaction, error) {
	return getTransaction(ctx, s.db, id, false)
}

func (s *Store) UpdateStatus(ctx context.Context, id uuid.UUID, from transaction.Status, update transaction.StatusUpdate) (*transaction.Transaction, error) {
	query := `
		WITH t AS (
			UPDATE transactions
			SET status = $1,
				proof = COALESCE($2, proof),
				completed_at = COALESCE($3, completed_at),
				updated_at = NOW()
			WHERE id = $4 AND status = $5
			RETURNING *
		)
		SELECT ` + selectTransactionColumns + `
		FROM t
		JOIN listings l ON t.listing_id = l.id`

	tx, err := scanTransaction(s.db.QueryRowContext(ctx, query,
		update.Status,
		update.Proof,
		update.CompletedAt,
		id,
		from,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: status is no longer %s", transaction.ErrInvalidTransition, from)
		}

		return nil, fmt.Errorf("updating status: %w", err)
	}

	return tx, nil
}

func (s *Store) ListActiveListings(ctx context.Context, ownerID uuid.UUID) ([]*listing.Listing, error) {
	query := `SELECT ` + selectListingColumns + `
		FROM listings l
		WHERE l.owner_id = $1 AND l.status = $2`

	rows, err := s.db.QueryContext(ctx, query, ownerID, listing.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("listing active listings: %w", err)
	}
	defer rows.Close()

	var listings []*listing.Listing

	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}

		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listing rows: %w", err)
	}

	return listings, nil
}

func (s *Store) ListOpenTransactions(ctx context.Context, listingIDs []uuid.UUID) ([]*transaction.Transaction, error) {
	if len(listingIDs) == 0 {
		return nil, nil
	}

	query := `SELECT ` + selectTransactionColumns + `
		FROM transactions t
		JOIN listings l ON t.listing_id = l.id
		WHERE t.listing_id = ANY($1::uuid[]) AND t.status <> $2
		ORDER BY t.created_at DESC`

	rows, err := s.db.QueryContext(ctx, query, uuidStrings(listingIDs), transaction.StatusCompleted)
	if err != nil {
		return nil, fmt.Errorf("listing transactions: %w", err)
	}
	defer rows.Close()

	var txs []*transaction.Transaction

	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning transaction: %w", err)
		}

		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating transaction rows: %w", err)
	}

	return txs, nil
}

func (s *Store) ListNotifications(ctx context.Context, transactionIDs []uuid.UUID) ([]*notification.Notification, error) {
	if len(transactionIDs) == 0 {
		return nil, nil
	}

	query := `
		SELECT id, transaction_id, message, custom_message, is_read, created_at
		FROM notifications
		WHERE transaction_id = ANY($1::uuid[])`

	rows, err := s.db.QueryContext(ctx, query, uuidStrings(transactionIDs))
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notes []*notification.Notification

	for rows.Next() {
		var n notification.Notification

		var custom sql.NullString

		if err := rows.Scan(&n.ID, &n.TransactionID, &n.Message, &custom, &n.Read, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}

		if custom.Valid {
			n.Custom = &custom.String
		}

		notes = append(notes, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating notification rows: %w", err)
	}

	return notes, nil
}

func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}

	return constraint == "" || pgErr.ConstraintName == constraint
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
