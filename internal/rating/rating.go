package rating

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/compostlink/compostlink/internal/apperr"
)

const (
	MinScore = 1
	MaxScore = 5
)

var (
	ErrInvalidScore            = apperr.New(apperr.KindValidation, "INVALID_SCORE", "score must be between 1 and 5")
	ErrTransactionNotCompleted = apperr.New(apperr.KindConflict, "TRANSACTION_NOT_COMPLETED", "only completed transactions can be rated")
	ErrAlreadyRated            = apperr.New(apperr.KindConflict, "ALREADY_RATED", "transaction has already been rated")
	ErrNotRequester            = apperr.New(apperr.KindForbidden, "NOT_REQUESTER", "only the requester can rate this transaction")
)

// Rating is a requester's score for the listing owner on one completed
// transaction.
type Rating struct {
	ID            uuid.UUID
	TransactionID uuid.UUID
	RaterID       uuid.UUID
	RatedUserID   uuid.UUID
	Score         int
	CreatedAt     time.Time

	// Aggregate is the rated user's standing after this rating was applied.
	Aggregate Aggregate
}

func (r *Rating) Display() string {
	return decimal.NewFromInt(int64(r.Score)).StringFixed(1)
}

// Aggregate is a user's rating standing. Sum is the total of all scores, so
// the average is derived exactly rather than carried forward.
type Aggregate struct {
	UserID uuid.UUID
	Sum    int
	Count  int
}

// Add folds score into the aggregate.
func (a Aggregate) Add(score int) Aggregate {
	return Aggregate{
		UserID: a.UserID,
		Sum:    a.Sum + score,
		Count:  a.Count + 1,
	}
}

// Average is Sum/Count, or zero before the first rating.
func (a Aggregate) Average() decimal.Decimal {
	if a.Count == 0 {
		return decimal.Zero
	}

	return decimal.NewFromInt(int64(a.Sum)).Div(decimal.NewFromInt(int64(a.Count)))
}

func (a Aggregate) Display() string {
	return a.Average().StringFixed(1)
}

func validScore(score int) bool {
	return score >= MinScore && score <= MaxScore
}
