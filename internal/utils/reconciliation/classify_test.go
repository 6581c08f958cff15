package reconciliation_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vikoba/vikoba_backend/internal/utils/reconciliation"
)

func TestClassify(t *testing.T) {
	penalty := decimal.NewFromInt(50)

	tests := []struct {
		name     string
		now      time.Time
		month    int
		year     int
		dueDay   int
		wantLate bool
	}{
		{
			name:   "current month before due day",
			now:    time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC),
			month:  3, year: 2025, dueDay: 15,
			wantLate: false,
		},
		{
			name:   "current month on due day",
			now:    time.Date(2025, 3, 15, 23, 59, 0, 0, time.UTC),
			month:  3, year: 2025, dueDay: 15,
			wantLate: false,
		},
		{
			name:   "current month after due day",
			now:    time.Date(2025, 3, 16, 0, 1, 0, 0, time.UTC),
			month:  3, year: 2025, dueDay: 15,
			wantLate: true,
		},
		{
			name:   "previous month in same year",
			now:    time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
			month:  2, year: 2025, dueDay: 28,
			wantLate: true,
		},
		{
			name:   "previous year with later month number",
			now:    time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC),
			month:  11, year: 2024, dueDay: 28,
			wantLate: true,
		},
		{
			name:   "future month is not late",
			now:    time.Date(2025, 3, 20, 0, 0, 0, 0, time.UTC),
			month:  4, year: 2025, dueDay: 15,
			wantLate: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isLate, penaltyApplied := reconciliation.Classify(tt.now, tt.month, tt.year, tt.dueDay, penalty)

			assert.Equal(t, tt.wantLate, isLate)
			if tt.wantLate {
				assert.True(t, penalty.Equal(penaltyApplied))
			} else {
				assert.True(t, penaltyApplied.IsZero())
			}
		})
	}
}
