package reconciliation

import "github.com/shopspring/decimal"

// Allocation is the result of applying an approved payment across a member's
// outstanding obligations.
type Allocation struct {
	PenaltyPaid        decimal.Decimal
	BalanceIncrement   decimal.Decimal
	NewUnpaidPenalties decimal.Decimal
}

// Allocate splits an approved contribution amount using the fixed waterfall:
// outstanding penalties are paid first, then the monthly due is charged, and
// any surplus credits the member's free balance.
//
// recordPenalty is the penalty stamped on the record being settled (zero when
// on time); it joins the penalty pool only if no sibling record has already
// charged it. The monthly due is subtracted only if no sibling has already
// been assessed for the period. BalanceIncrement may be negative when the
// amount does not cover the due; the member balance is allowed to run a
// shortfall and is never clamped.
func Allocate(amount, unpaidPenalties, recordPenalty, monthlyDue decimal.Decimal, feeAlreadyApplied, penaltyAlreadyApplied bool) Allocation {
	duePool := unpaidPenalties
	if !penaltyAlreadyApplied {
		duePool = duePool.Add(recordPenalty)
	}

	penaltyPaid := decimal.Min(amount, duePool)
	remaining := amount.Sub(penaltyPaid)

	balanceIncrement := remaining
	if !feeAlreadyApplied {
		balanceIncrement = balanceIncrement.Sub(monthlyDue)
	}

	return Allocation{
		PenaltyPaid:        penaltyPaid,
		BalanceIncrement:   balanceIncrement,
		NewUnpaidPenalties: duePool.Sub(penaltyPaid),
	}
}
