package services

import (
	"context"

	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// LoanEligibilitySvc derives loan eligibility from confirmed contribution
// history. Read-only; depends on the contribution ledger's output but never
// the other way around.
type LoanEligibilitySvc interface {
	// ComputeEligibility returns the member's eligibility and maximum loan
	// amount based on COMPLETED contributions and active-loan presence.
	ComputeEligibility(ctx context.Context, groupID, userID string, requestingUserID string) (*domain.LoanEligibility, error)
}

// LoanSvcFacade combines all loan-related service interfaces.
type LoanSvcFacade interface {
	LoanEligibilitySvc
}
