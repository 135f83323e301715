package rating

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/http/auth"
	"github.com/compostlink/compostlink/internal/http/respond"
	"github.com/compostlink/compostlink/internal/rating"
)

type Handler struct {
	svc *rating.Service
}

func NewHandler(svc *rating.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/transactions/{id}/rating", h.submit)
}

type submitRequest struct {
	Score int `json:"score"`
}

type ratingResponse struct {
	ID               uuid.UUID `json:"id"`
	TransactionID    uuid.UUID `json:"transaction_id"`
	RaterID          uuid.UUID `json:"rater_id"`
	RatedUserID      uuid.UUID `json:"rated_user_id"`
	Score            int       `json:"score"`
	RatingAvg        string    `json:"rating_avg"`
	TransactionCount int       `json:"transaction_count"`
	CreatedAt        time.Time `json:"created_at"`
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request) {
	raterID, err := auth.Resolve(r.Context(), nil)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	id, err := respond.PathID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var req submitRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	rt, err := h.svc.Submit(r.Context(), raterID, id, req.Score)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, ratingResponse{
		ID:               rt.ID,
		TransactionID:    rt.TransactionID,
		RaterID:          rt.RaterID,
		RatedUserID:      rt.RatedUserID,
		Score:            rt.Score,
		RatingAvg:        rt.Aggregate.Display(),
		TransactionCount: rt.Aggregate.Count,
		CreatedAt:        rt.CreatedAt,
	})
}
