package account_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/compostlink/compostlink/internal/account"
	accountHandler "github.com/compostlink/compostlink/internal/http/account"
	"github.com/compostlink/compostlink/internal/http/auth"
)

type forgetter struct {
	forgotten []uuid.UUID
}

func (f *forgetter) Forget(id uuid.UUID) {
	f.forgotten = append(f.forgotten, id)
}

func TestHandler_Manage(t *testing.T) {
	adminID, userID := uuid.New(), uuid.New()

	tests := []struct {
		name       string
		body       string
		setup      func(m *account.MockRepository)
		wantStatus int
		wantCode   string
		wantStored string
	}{
		{
			name: "DeactivateFree",
			body: `{"user_id":"` + userID.String() + `","action":"DeactivateFree","effective_date":"2025-12-25"}`,
			setup: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID, IsAdmin: true}, nil)
				m.EXPECT().UpdateAccountStatus(gomock.Any(), userID, "DeactivateFree12252025").
					Return(&account.Profile{ID: userID, Name: "Kim", AccountStatus: "DeactivateFree12252025"}, nil)
			},
			wantStatus: http.StatusOK,
			wantStored: "DeactivateFree12252025",
		},
		{
			name:       "UnknownAction",
			body:       `{"user_id":"` + userID.String() + `","action":"Ban"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "UNKNOWN_ACTION",
		},
		{
			name:       "BadDate",
			body:       `{"user_id":"` + userID.String() + `","action":"DeactivateFree","effective_date":"12/25/2025"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   "INVALID_EFFECTIVE_DATE",
		},
		{
			name:       "AdminMismatch",
			body:       `{"user_id":"` + userID.String() + `","action":"Suspend","admin_id":"` + uuid.NewString() + `"}`,
			wantStatus: http.StatusForbidden,
			wantCode:   "IDENTITY_MISMATCH",
		},
		{
			name: "NotAdmin",
			body: `{"user_id":"` + userID.String() + `","action":"Suspend"}`,
			setup: func(m *account.MockRepository) {
				m.EXPECT().GetProfile(gomock.Any(), adminID).Return(&account.Profile{ID: adminID}, nil)
			},
			wantStatus: http.StatusForbidden,
			wantCode:   "NOT_ADMIN",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := account.NewMockRepository(ctrl)

			if tt.setup != nil {
				tt.setup(repo)
			}

			cache := &forgetter{}

			r := chi.NewRouter()
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, req.WithContext(auth.WithUser(req.Context(), adminID)))
				})
			})
			accountHandler.NewHandler(account.NewService(repo), cache).Routes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/admin/manage-users", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantCode != "" {
				var got struct {
					Error struct {
						Code string `json:"code"`
					} `json:"error"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, tt.wantCode, got.Error.Code)
				assert.Empty(t, cache.forgotten)

				return
			}

			var got struct {
				AccountStatus string `json:"account_status"`
				RatingAvg     string `json:"rating_avg"`
			}
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
			assert.Equal(t, tt.wantStored, got.AccountStatus)
			assert.Equal(t, "0.0", got.RatingAvg)
			assert.Equal(t, []uuid.UUID{userID}, cache.forgotten)
		})
	}
}
