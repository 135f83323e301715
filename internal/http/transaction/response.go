package transaction

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/compostlink/compostlink/internal/listing"
	"github.com/compostlink/compostlink/internal/notification"
	"github.com/compostlink/compostlink/internal/transaction"
)

type transactionResponse struct {
	ID           uuid.UUID          `json:"id"`
	ListingID    uuid.UUID          `json:"listing_id"`
	RequesterID  uuid.UUID          `json:"requester_id"`
	OwnerID      uuid.UUID          `json:"owner_id"`
	ListingTitle string             `json:"listing_title,omitempty"`
	ListingKind  listing.Kind       `json:"listing_kind,omitempty"`
	Amount       decimal.Decimal    `json:"amount"`
	Quantity     int                `json:"quantity"`
	Status       transaction.Status `json:"status"`
	Proof        string             `json:"proof,omitempty"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    *time.Time         `json:"updated_at,omitempty"`
	CompletedAt  *time.Time         `json:"completed_at,omitempty"`
}

type notificationResponse struct {
	ID            uuid.UUID `json:"id"`
	TransactionID uuid.UUID `json:"transaction_id"`
	Message       string    `json:"message"`
	CustomMessage string    `json:"custom_message"`
	Read          bool      `json:"is_read"`
	CreatedAt     time.Time `json:"created_at"`
}

type offerResponse struct {
	Transaction  transactionResponse  `json:"transaction"`
	Notification notificationResponse `json:"notification"`
}

type requestResponse struct {
	ID              uuid.UUID          `json:"id"`
	RequesterID     uuid.UUID          `json:"requester_id"`
	RequesterName   string             `json:"requester_name"`
	RequesterAvatar string             `json:"requester_avatar,omitempty"`
	ListingID       uuid.UUID          `json:"listing_id"`
	ListingTitle    string             `json:"listing_title"`
	ListingKind     listing.Kind       `json:"listing_kind"`
	RequestDate     time.Time          `json:"request_date"`
	Message         string             `json:"message"`
	Status          transaction.Status `json:"status"`
	Amount          decimal.Decimal    `json:"amount"`
	Quantity        int                `json:"quantity"`
}

type requestListResponse struct {
	Requests []requestResponse `json:"requests"`
}

func toResponse(tx *transaction.Transaction) transactionResponse {
	return transactionResponse{
		ID:           tx.ID,
		ListingID:    tx.ListingID,
		RequesterID:  tx.RequesterID,
		OwnerID:      tx.ListingOwnerID,
		ListingTitle: tx.ListingTitle,
		ListingKind:  tx.ListingKind,
		Amount:       tx.Amount,
		Quantity:     tx.Quantity,
		Status:       tx.Status,
		Proof:        tx.Proof,
		CreatedAt:    tx.CreatedAt,
		UpdatedAt:    tx.UpdatedAt,
		CompletedAt:  tx.CompletedAt,
	}
}

func toNotificationResponse(n *notification.Notification) notificationResponse {
	return notificationResponse{
		ID:            n.ID,
		TransactionID: n.TransactionID,
		Message:       n.Message,
		CustomMessage: n.CustomMessage(),
		Read:          n.Read,
		CreatedAt:     n.CreatedAt,
	}
}

func toRequestList(reqs []*transaction.Request) requestListResponse {
	resp := requestListResponse{Requests: make([]requestResponse, len(reqs))}

	for i, r := range reqs {
		resp.Requests[i] = requestResponse{
			ID:              r.ID,
			RequesterID:     r.RequesterID,
			RequesterName:   r.RequesterName,
			RequesterAvatar: r.RequesterAvatar,
			ListingID:       r.ListingID,
			ListingTitle:    r.ListingTitle,
			ListingKind:     r.ListingKind,
			RequestDate:     r.RequestDate,
			Message:         r.Message,
			Status:          r.Status,
			Amount:          r.Amount,
			Quantity:        r.Quantity,
		}
	}

	return resp
}
