package rating_test

import (
	"context"
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

	"github.com/compostlink/compostlink/internal/http/auth"
	ratingHandler "github.com/compostlink/compostlink/internal/http/rating"
	"github.com/compostlink/compostlink/internal/rating"
	"github.com/compostlink/compostlink/internal/transaction"
)

func TestHandler_Submit(t *testing.T) {
	requesterID, ownerID, txID := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name       string
		body       string
		setup      func(repo *rating.MockRepository, rtx *rating.MockRatingTx)
		wantStatus int
		wantAvg    string
	}{
		{
			name: "Created",
			body: `{"score":3}`,
			setup: func(repo *rating.MockRepository, rtx *rating.MockRatingTx) {
				repo.EXPECT().BeginRating(gomock.Any()).Return(rtx, nil)
				rtx.EXPECT().LockTransaction(gomock.Any(), txID).Return(&transaction.Transaction{
					ID:             txID,
					RequesterID:    requesterID,
					ListingOwnerID: ownerID,
					Status:         transaction.StatusCompleted,
				}, nil)
				rtx.EXPECT().HasRating(gomock.Any(), txID).Return(false, nil)
				rtx.EXPECT().LockAggregate(gomock.Any(), ownerID).
					Return(&rating.Aggregate{UserID: ownerID, Sum: 4, Count: 1}, nil)
				rtx.EXPECT().CreateRating(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, r *rating.Rating) error {
					r.ID = uuid.New()
					return nil
				})
				rtx.EXPECT().UpdateAggregate(gomock.Any(), gomock.Any()).Return(nil)
				rtx.EXPECT().Commit().Return(nil)
				rtx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusCreated,
			wantAvg:    "3.5",
		},
		{
			name:       "ScoreOutOfRange",
			body:       `{"score":6}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "AlreadyRated",
			body: `{"score":5}`,
			setup: func(repo *rating.MockRepository, rtx *rating.MockRatingTx) {
				repo.EXPECT().BeginRating(gomock.Any()).Return(rtx, nil)
				rtx.EXPECT().LockTransaction(gomock.Any(), txID).Return(&transaction.Transaction{
					ID:             txID,
					RequesterID:    requesterID,
					ListingOwnerID: ownerID,
					Status:         transaction.StatusCompleted,
				}, nil)
				rtx.EXPECT().HasRating(gomock.Any(), txID).Return(true, nil)
				rtx.EXPECT().Rollback().Return(nil)
			},
			wantStatus: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := rating.NewMockRepository(ctrl)
			rtx := rating.NewMockRatingTx(ctrl)

			if tt.setup != nil {
				tt.setup(repo, rtx)
			}

			r := chi.NewRouter()
			r.Use(func(next http.Handler) http.Handler {
				return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
					next.ServeHTTP(w, req.WithContext(auth.WithUser(req.Context(), requesterID)))
				})
			})
			ratingHandler.NewHandler(rating.NewService(repo)).Routes(r)

			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/transactions/"+txID.String()+"/rating", strings.NewReader(tt.body)))

			require.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())

			if tt.wantAvg != "" {
				var got struct {
					RatedUserID      uuid.UUID `json:"rated_user_id"`
					RatingAvg        string    `json:"rating_avg"`
					TransactionCount int       `json:"transaction_count"`
				}
				require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
				assert.Equal(t, ownerID, got.RatedUserID)
				assert.Equal(t, tt.wantAvg, got.RatingAvg)
				assert.Equal(t, 2, got.TransactionCount)
			}
		})
	}
}
