package account_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/compostlink/compostlink/internal/account"
)

func TestService_Manage(t *testing.T) {
	adminID := uuid.New()
	userID := uuid.New()

	type testCase struct {
		name       string
		params     account.ManageParams
		setupMock  func(m *account.MockRepository)
		wantStatus string
		wantErr    error
	}

	tests := []testCase{
		{
			name: "Suspend",
			params: account.ManageParams{
				AdminID: adminID,
				UserID:  userID,
				Action:  account.ActionSuspend,
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID, IsAdmin: true}, nil)
				m.EXPECT().
					UpdateAccountStatus(gomock.Any(), userID, "Suspend").
					Return(&account.Profile{ID: userID, AccountStatus: "Suspend"}, nil)
			},
			wantStatus: "Suspend",
		},
		{
			name: "DeactivatePremium",
			params: account.ManageParams{
				AdminID:       adminID,
				UserID:        userID,
				Action:        account.ActionDeactivatePremium,
				EffectiveDate: day(2025, 12, 25),
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID, IsAdmin: true}, nil)
				m.EXPECT().
					UpdateAccountStatus(gomock.Any(), userID, "DeactivatePremium12252025").
					Return(&account.Profile{ID: userID, AccountStatus: "DeactivatePremium12252025"}, nil)
			},
			wantStatus: "DeactivatePremium12252025",
		},
		{
			name:   "NotAdmin",
			params: account.ManageParams{AdminID: adminID, UserID: userID, Action: account.ActionActivateFree},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID}, nil)
			},
			wantErr: account.ErrNotAdmin,
		},
		{
			name:   "AdminMissing",
			params: account.ManageParams{AdminID: adminID, UserID: userID, Action: account.ActionActivateFree},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(nil, account.ErrUserNotFound)
			},
			wantErr: account.ErrUserNotFound,
		},
		{
			name:   "Self",
			params: account.ManageParams{AdminID: adminID, UserID: adminID, Action: account.ActionSuspend},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID, IsAdmin: true}, nil)
			},
			wantErr: account.ErrSelfManage,
		},
		{
			name:   "MissingDate",
			params: account.ManageParams{AdminID: adminID, UserID: userID, Action: account.ActionDeactivateFree},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID, IsAdmin: true}, nil)
			},
			wantErr: account.ErrEffectiveDateRequired,
		},
		{
			name:   "TargetMissing",
			params: account.ManageParams{AdminID: adminID, UserID: userID, Action: account.ActionActivateFree},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID, IsAdmin: true}, nil)
				m.EXPECT().UpdateAccountStatus(gomock.Any(), userID, "Free").Return(nil, account.ErrUserNotFound)
			},
			wantErr: account.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)
			got, err := svc.Manage(context.Background(), tt.params)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.AccountStatus)
		})
	}
}

func TestService_Profiles(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	svc := account.NewService(repo)

	a, b := uuid.New(), uuid.New()
	repo.EXPECT().
		ListProfiles(gomock.Any(), []uuid.UUID{a, b}).
		Return([]*account.Profile{{ID: a, Name: "Ana"}}, nil)

	got, err := svc.Profiles(context.Background(), []uuid.UUID{a, b})
	require.NoError(t, err)
	assert.Len(t, got, 1)
	assert.Equal(t, "Ana", got[a].Name)
	assert.NotContains(t, got, b)
}

func TestService_Profiles_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc := account.NewService(account.NewMockRepository(ctrl))

	got, err := svc.Profiles(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestService_Profiles_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().ListProfiles(gomock.Any(), gomock.Any()).Return(nil, errors.New("db down"))

	_, err := account.NewService(repo).Profiles(context.Background(), []uuid.UUID{uuid.New()})
	assert.Error(t, err)
}
