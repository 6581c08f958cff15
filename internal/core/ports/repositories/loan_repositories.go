package repositories

import (
	"context"

	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// LoanReader defines read operations for loan data
type LoanReader interface {
	// HasActiveLoan reports whether the member currently holds a loan in a
	// PENDING, APPROVED or ACTIVE state.
	HasActiveLoan(ctx context.Context, groupID, userID string) (bool, error)

	// ListLoansByMember retrieves all loans for a member in a group.
	ListLoansByMember(ctx context.Context, groupID, userID string) ([]domain.Loan, error)
}
