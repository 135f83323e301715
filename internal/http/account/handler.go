package account

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/account"
	"github.com/compostlink/compostlink/internal/apperr"
	"github.com/compostlink/compostlink/internal/http/auth"
	"github.com/compostlink/compostlink/internal/http/respond"
)

const effectiveDateLayout = time.DateOnly

var ErrInvalidEffectiveDate = apperr.New(apperr.KindValidation, "INVALID_EFFECTIVE_DATE", "effective_date must be YYYY-MM-DD")

// Forgetter drops cached copies of a profile after it changes.
type Forgetter interface {
	Forget(id uuid.UUID)
}

type Handler struct {
	svc   *account.Service
	cache Forgetter
}

// NewHandler builds the admin handler. cache may be nil.
func NewHandler(svc *account.Service, cache Forgetter) *Handler {
	return &Handler{svc: svc, cache: cache}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/admin/manage-users", h.manage)
}

type manageRequest struct {
	UserID        uuid.UUID  `json:"user_id"`
	Action        string     `json:"action"`
	AdminID       *uuid.UUID `json:"admin_id,omitempty"`
	EffectiveDate string     `json:"effective_date,omitempty"`
}

type profileResponse struct {
	ID               uuid.UUID  `json:"id"`
	Name             string     `json:"name"`
	AvatarURL        string     `json:"avatar_url,omitempty"`
	AccountStatus    string     `json:"account_status"`
	RatingAvg        string     `json:"rating_avg"`
	TransactionCount int        `json:"transaction_count"`
	UpdatedAt        *time.Time `json:"updated_at,omitempty"`
}

func (h *Handler) manage(w http.ResponseWriter, r *http.Request) {
	var req manageRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	adminID, err := auth.Resolve(r.Context(), req.AdminID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	action, err := account.ParseAction(req.Action)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	var effective time.Time
	if req.EffectiveDate != "" {
		effective, err = time.Parse(effectiveDateLayout, req.EffectiveDate)
		if err != nil {
			respond.Error(w, r, ErrInvalidEffectiveDate)
			return
		}
	}

	p, err := h.svc.Manage(r.Context(), account.ManageParams{
		AdminID:       adminID,
		UserID:        req.UserID,
		Action:        action,
		EffectiveDate: effective,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	if h.cache != nil {
		h.cache.Forget(p.ID)
	}

	respond.JSON(w, http.StatusOK, profileResponse{
		ID:               p.ID,
		Name:             p.Name,
		AvatarURL:        p.AvatarURL,
		AccountStatus:    p.AccountStatus,
		RatingAvg:        p.RatingAvg.StringFixed(1),
		TransactionCount: p.TransactionCount,
		UpdatedAt:        p.UpdatedAt,
	})
}
