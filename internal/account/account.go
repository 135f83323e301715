package account

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/compostlink/compostlink/internal/apperr"
)

var (
	ErrUserNotFound          = apperr.New(apperr.KindNotFound, "USER_NOT_FOUND", "user not found")
	ErrNotAdmin              = apperr.New(apperr.KindForbidden, "NOT_ADMIN", "administrator privileges required")
	ErrSelfManage            = apperr.New(apperr.KindValidation, "SELF_MANAGE", "administrators cannot change their own status")
	ErrUnknownAction         = apperr.New(apperr.KindValidation, "UNKNOWN_ACTION", "unknown account action")
	ErrUnknownStatus         = apperr.New(apperr.KindValidation, "UNKNOWN_ACCOUNT_STATUS", "unrecognized account status")
	ErrEffectiveDateRequired = apperr.New(apperr.KindValidation, "EFFECTIVE_DATE_REQUIRED", "deactivation requires an effective date")
)

// Profile is the part of a user record the exchange reads and writes.
type Profile struct {
	ID               uuid.UUID
	Name             string
	AvatarURL        string
	AccountStatus    string // Encoded, see Encode/Decode.
	IsAdmin          bool
	RatingAvg        decimal.Decimal
	TransactionCount int
	UpdatedAt        *time.Time
}

// CanTransact decodes the stored account status and reports whether the user
// may transact at now. Undecodable statuses never transact.
func (p *Profile) CanTransact(now time.Time) bool {
	st, err := Decode(p.AccountStatus)
	if err != nil {
		return false
	}

	return st.CanTransact(now)
}
