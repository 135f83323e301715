package rating_test

import (
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compostlink/compostlink/internal/rating"
)

func TestAggregate_Add(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name        string
		agg         rating.Aggregate
		score       int
		wantAvg     string
		wantCount   int
		wantDisplay string
	}{
		{name: "FirstRating", agg: rating.Aggregate{UserID: userID}, score: 4, wantAvg: "4", wantCount: 1, wantDisplay: "4.0"},
		{name: "Averages", agg: rating.Aggregate{UserID: userID, Sum: 4, Count: 1}, score: 3, wantAvg: "3.5", wantCount: 2, wantDisplay: "3.5"},
		{name: "Repeating", agg: rating.Aggregate{UserID: userID, Sum: 10, Count: 2}, score: 4, wantCount: 3, wantDisplay: "4.7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.agg.Add(tt.score)

			assert.Equal(t, userID, got.UserID)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.Equal(t, tt.wantDisplay, got.Display())

			if tt.wantAvg != "" {
				assert.True(t, decimal.RequireFromString(tt.wantAvg).Equal(got.Average()), "average = %s", got.Average())
			}
		})
	}
}

func TestAggregate_Empty(t *testing.T) {
	var a rating.Aggregate

	assert.True(t, a.Average().IsZero())
	assert.Equal(t, "0.0", a.Display())
}

// Each step reloads the aggregate the way the store does (sum and count
// columns) and checks the displayed and persisted averages against the exact
// mean of every score so far.
func TestAggregate_NoDriftAcrossReloads(t *testing.T) {
	userID := uuid.New()
	stored := rating.Aggregate{UserID: userID}

	total := 0

	for i := range 40 {
		score := 1 + (i*7)%5
		total += score

		next := stored.Add(score)

		want := new(big.Rat).SetFrac64(int64(total), int64(i+1))
		assert.Equal(t, want.FloatString(1), next.Display(), "after %d ratings", i+1)

		// rating_avg is written from Average() and read back as text.
		persisted, err := decimal.NewFromString(next.Average().String())
		require.NoError(t, err)
		assert.Equal(t, want.FloatString(1), persisted.StringFixed(1), "persisted after %d ratings", i+1)

		stored = rating.Aggregate{UserID: userID, Sum: next.Sum, Count: next.Count}
	}

	assert.Equal(t, 40, stored.Count)
	assert.Equal(t, total, stored.Sum)
}

func TestRating_Display(t *testing.T) {
	r := &rating.Rating{Score: 5}
	assert.Equal(t, "5.0", r.Display())
}
