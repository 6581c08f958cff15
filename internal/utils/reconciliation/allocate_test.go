package reconciliation_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/vikoba/vikoba_backend/internal/utils/reconciliation"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestAllocate(t *testing.T) {
	tests := []struct {
		name                  string
		amount                decimal.Decimal
		unpaidPenalties       decimal.Decimal
		recordPenalty         decimal.Decimal
		monthlyDue            decimal.Decimal
		feeAlreadyApplied     bool
		penaltyAlreadyApplied bool
		wantPenaltyPaid       decimal.Decimal
		wantBalanceIncrement  decimal.Decimal
		wantUnpaidPenalties   decimal.Decimal
	}{
		{
			name:            "penalties cleared then due charged, surplus nets to zero",
			amount:          d(500),
			unpaidPenalties: d(300),
			recordPenalty:   d(0),
			monthlyDue:      d(200),
			// 500 pays off 300 penalties, remaining 200 minus due 200 = 0
			wantPenaltyPaid:      d(300),
			wantBalanceIncrement: d(0),
			wantUnpaidPenalties:  d(0),
		},
		{
			name:                 "insufficient amount leaves penalty remainder and negative balance",
			amount:               d(100),
			unpaidPenalties:      d(0),
			recordPenalty:        d(150),
			monthlyDue:           d(1000),
			wantPenaltyPaid:      d(100),
			wantBalanceIncrement: d(-1000),
			wantUnpaidPenalties:  d(50),
		},
		{
			name:                 "on-time full payment credits surplus",
			amount:               d(250),
			unpaidPenalties:      d(0),
			recordPenalty:        d(0),
			monthlyDue:           d(200),
			wantPenaltyPaid:      d(0),
			wantBalanceIncrement: d(50),
			wantUnpaidPenalties:  d(0),
		},
		{
			name:                 "due already applied by sibling record",
			amount:               d(200),
			unpaidPenalties:      d(0),
			recordPenalty:        d(0),
			monthlyDue:           d(200),
			feeAlreadyApplied:    true,
			wantPenaltyPaid:      d(0),
			wantBalanceIncrement: d(200),
			wantUnpaidPenalties:  d(0),
		},
		{
			name:                  "record penalty ignored when sibling already charged it",
			amount:                d(200),
			unpaidPenalties:       d(0),
			recordPenalty:         d(50),
			monthlyDue:            d(200),
			penaltyAlreadyApplied: true,
			wantPenaltyPaid:       d(0),
			wantBalanceIncrement:  d(0),
			wantUnpaidPenalties:   d(0),
		},
		{
			name:                 "record penalty joins existing pool",
			amount:               d(120),
			unpaidPenalties:      d(80),
			recordPenalty:        d(50),
			monthlyDue:           d(200),
			feeAlreadyApplied:    true,
			wantPenaltyPaid:      d(120),
			wantBalanceIncrement: d(0),
			wantUnpaidPenalties:  d(10),
		},
		{
			name:                 "zero amount charges due and keeps penalties intact",
			amount:               d(0),
			unpaidPenalties:      d(40),
			recordPenalty:        d(0),
			monthlyDue:           d(200),
			wantPenaltyPaid:      d(0),
			wantBalanceIncrement: d(-200),
			wantUnpaidPenalties:  d(40),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reconciliation.Allocate(tt.amount, tt.unpaidPenalties, tt.recordPenalty, tt.monthlyDue, tt.feeAlreadyApplied, tt.penaltyAlreadyApplied)

			assert.True(t, tt.wantPenaltyPaid.Equal(got.PenaltyPaid), "penaltyPaid = %s, want %s", got.PenaltyPaid, tt.wantPenaltyPaid)
			assert.True(t, tt.wantBalanceIncrement.Equal(got.BalanceIncrement), "balanceIncrement = %s, want %s", got.BalanceIncrement, tt.wantBalanceIncrement)
			assert.True(t, tt.wantUnpaidPenalties.Equal(got.NewUnpaidPenalties), "newUnpaidPenalties = %s, want %s", got.NewUnpaidPenalties, tt.wantUnpaidPenalties)
		})
	}
}

func TestAllocateNeverOverpaysPenaltyPool(t *testing.T) {
	// The penalty paid can never exceed the pre-transaction pool plus the
	// record's own newly chargeable penalty.
	got := reconciliation.Allocate(d(10000), d(30), d(20), d(0), true, false)
	assert.True(t, got.PenaltyPaid.Equal(d(50)))
	assert.True(t, got.NewUnpaidPenalties.Equal(d(0)))
	assert.True(t, got.BalanceIncrement.Equal(d(9950)))
}
