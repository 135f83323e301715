package notification

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Notification is the message shown to a listing owner when an offer arrives.
// Exactly one exists per transaction.
type Notification struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	Message       string
	// Custom holds the requester's free-text comment separately from Message.
	// It is nil for rows written before the comment was stored on its own.
	Custom    *string
	Read      bool
	CreatedAt time.Time
}

// NewOfferNotification builds the notification for a freshly created offer.
func NewOfferNotification(transactionID uuid.UUID, requesterName, listingTitle, customMessage string) *Notification {
	custom := strings.TrimSpace(customMessage)

	return &Notification{
		TransactionID: transactionID,
		Message:       FormatOfferMessage(requesterName, listingTitle, custom),
		Custom:        &custom,
	}
}

// CustomMessage returns the requester's comment, falling back to parsing
// Message for legacy rows.
func (n *Notification) CustomMessage() string {
	if n.Custom != nil {
		return *n.Custom
	}

	return ExtractCustomMessage(n.Message)
}

// FormatOfferMessage renders the offer sentence, followed by the requester's
// comment when there is one.
func FormatOfferMessage(requesterName, listingTitle, customMessage string) string {
	msg := fmt.Sprintf("%s wants to offer item to your listing: %s.", requesterName, listingTitle)
	if customMessage != "" {
		msg += " " + customMessage
	}

	return msg
}

// ExtractCustomMessage recovers the comment from a formatted offer message by
// dropping everything up to the first period. It is lossy when the listing
// title contains a period; prefer Notification.Custom.
func ExtractCustomMessage(message string) string {
	parts := strings.Split(message, ".")
	if len(parts) < 2 {
		return ""
	}

	return strings.TrimSpace(strings.Join(parts[1:], "."))
}
