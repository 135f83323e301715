package account

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

//go:generate mockgen -source=service.go -destination=repository_mock.go -package=account
type Repository interface {
	GetProfile(ctx context.Context, id uuid.UUID) (*Profile, error)
	ListProfiles(ctx context.Context, ids []uuid.UUID) ([]*Profile, error)
	UpdateAccountStatus(ctx context.Context, id uuid.UUID, status string) (*Profile, error)
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

type ManageParams struct {
	AdminID       uuid.UUID
	UserID        uuid.UUID
	Action        Action
	EffectiveDate time.Time
}

func (s *Service) Profile(ctx context.Context, id uuid.UUID) (*Profile, error) {
	return s.repo.GetProfile(ctx, id)
}

// Profiles returns the profiles for ids keyed by user id. Unknown ids are
// absent from the map rather than reported as errors.
func (s *Service) Profiles(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*Profile, error) {
	if len(ids) == 0 {
		return map[uuid.UUID]*Profile{}, nil
	}

	profiles, err := s.repo.ListProfiles(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("listing profiles: %w", err)
	}

	byID := make(map[uuid.UUID]*Profile, len(profiles))
	for _, p := range profiles {
		byID[p.ID] = p
	}

	return byID, nil
}

// Manage applies an administrative action to a user's account status.
func (s *Service) Manage(ctx context.Context, params ManageParams) (*Profile, error) {
	admin, err := s.repo.GetProfile(ctx, params.AdminID)
	if err != nil {
		return nil, fmt.Errorf("loading admin: %w", err)
	}

	if !admin.IsAdmin {
		return nil, ErrNotAdmin
	}

	if params.AdminID == params.UserID {
		return nil, ErrSelfManage
	}

	status, err := Encode(params.Action, params.EffectiveDate)
	if err != nil {
		return nil, err
	}

	profile, err := s.repo.UpdateAccountStatus(ctx, params.UserID, status)
	if err != nil {
		return nil, fmt.Errorf("updating account status: %w", err)
	}

	slog.Info("account status changed",
		"user_id", params.UserID,
		"admin_id", params.AdminID,
		"action", params.Action,
		"status", status,
	)

	return profile, nil
}
