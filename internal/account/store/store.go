package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/account"
)

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

// Expected column order: id, name, avatar_url, account_status, is_admin, rating_avg, transaction_count, updated_at
const selectProfileColumns = `
	u.id, u.name, u.avatar_url, u.account_status, u.is_admin, u.rating_avg, u.transaction_count, u.updated_at
`

func scanProfile(s scanner) (*account.Profile, error) {
	var p account.Profile

	var avatar sql.NullString

	if err := s.Scan(
		&p.ID, &p.Name, &avatar, &p.AccountStatus, &p.IsAdmin, &p.RatingAvg, &p.TransactionCount, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}

	p.AvatarURL = avatar.String

	return &p, nil
}

func (s *Store) GetProfile(ctx context.Context, id uuid.UUID) (*account.Profile, error) {
	query := `SELECT ` + selectProfileColumns + ` FROM users u WHERE u.id = $1`

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}

		return nil, fmt.Errorf("getting profile: %w", err)
	}

	return p, nil
}

func (s *Store) ListProfiles(ctx context.Context, ids []uuid.UUID) ([]*account.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := `SELECT ` + selectProfileColumns + ` FROM users u WHERE u.id = ANY($1::uuid[])`

	rows, err := s.db.QueryContext(ctx, query, uuidStrings(ids))
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}
	defer rows.Close()

	var profiles []*account.Profile

	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning profile: %w", err)
		}

		profiles = append(profiles, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating profile rows: %w", err)
	}

	return profiles, nil
}

func (s *Store) UpdateAccountStatus(ctx context.Context, id uuid.UUID, status string) (*account.Profile, error) {
	query := `
		UPDATE users u
		SET account_status = $1, updated_at = NOW()
		WHERE u.id = $2
		RETURNING ` + selectProfileColumns

	p, err := scanProfile(s.db.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, account.ErrUserNotFound
		}

		return nil, fmt.Errorf("updating account status: %w", err)
	}

	return p, nil
}

func uuidStrings(ids []uuid.UUID) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = id.String()
	}

	return out
}
