package transaction

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/compostlink/compostlink/internal/http/auth"
	"github.com/compostlink/compostlink/internal/http/respond"
	"github.com/compostlink/compostlink/internal/transaction"
)

type Handler struct {
	svc *transaction.Service
}

func NewHandler(svc *transaction.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/offers", h.offer)
	r.Post("/requests/review", h.review)

	r.Route("/transactions/{id}", func(r chi.Router) {
		r.Get("/", h.get)
		r.Post("/accept", h.accept)
		r.Post("/decline", h.decline)
		r.Post("/complete", h.complete)
		r.Post("/cancel", h.cancel)
	})
}

type offerRequest struct {
	ListingID   uuid.UUID  `json:"listing_id"`
	RequesterID *uuid.UUID `json:"requester_id,omitempty"`
	Quantity    int        `json:"quantity"`
	Message     string     `json:"message,omitempty"`
}

func (h *Handler) offer(w http.ResponseWriter, r *http.Request) {
	var req offerRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	requesterID, err := auth.Resolve(r.Context(), req.RequesterID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	offer, err := h.svc.CreateOffer(r.Context(), transaction.OfferParams{
		ListingID:   req.ListingID,
		RequesterID: requesterID,
		Quantity:    req.Quantity,
		Message:     req.Message,
	})
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusCreated, offerResponse{
		Transaction:  toResponse(offer.Transaction),
		Notification: toNotificationResponse(offer.Notification),
	})
}

type reviewRequest struct {
	OwnerID *uuid.UUID `json:"owner_id,omitempty"`
}

func (h *Handler) review(w http.ResponseWriter, r *http.Request) {
	var req reviewRequest
	if err := respond.Decode(r, &req); err != nil {
		respond.Error(w, r, err)
		return
	}

	ownerID, err := auth.Resolve(r.Context(), req.OwnerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	reqs, err := h.svc.ListOwnerRequests(r.Context(), ownerID)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toRequestList(reqs))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, actorID, id uuid.UUID) (*transaction.Transaction, error) {
		return h.svc.Get(r.Context(), actorID, id)
	})
}

func (h *Handler) accept(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, actorID, id uuid.UUID) (*transaction.Transaction, error) {
		return h.svc.Accept(r.Context(), actorID, id)
	})
}

func (h *Handler) decline(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, actorID, id uuid.UUID) (*transaction.Transaction, error) {
		return h.svc.Decline(r.Context(), actorID, id)
	})
}

func (h *Handler) cancel(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, actorID, id uuid.UUID) (*transaction.Transaction, error) {
		return h.svc.Cancel(r.Context(), actorID, id)
	})
}

type completeRequest struct {
	Proof string `json:"proof"`
}

func (h *Handler) complete(w http.ResponseWriter, r *http.Request) {
	h.act(w, r, func(r *http.Request, actorID, id uuid.UUID) (*transaction.Transaction, error) {
		var req completeRequest
		if err := respond.Decode(r, &req); err != nil {
			return nil, err
		}

		return h.svc.Complete(r.Context(), actorID, id, req.Proof)
	})
}

// act resolves the caller and the {id} path parameter, runs fn and writes the
// resulting transaction.
func (h *Handler) act(
	w http.ResponseWriter,
	r *http.Request,
	fn func(r *http.Request, actorID, id uuid.UUID) (*transaction.Transaction, error),
) {
	actorID, err := auth.Resolve(r.Context(), nil)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	id, err := respond.PathID(chi.URLParam(r, "id"))
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	tx, err := fn(r, actorID, id)
	if err != nil {
		respond.Error(w, r, err)
		return
	}

	respond.JSON(w, http.StatusOK, toResponse(tx))
}
