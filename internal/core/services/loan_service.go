package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	portssvc "github.com/vikoba/vikoba_backend/internal/core/ports/services"
)

// defaultMinContributionMonths applies when a group has no explicit minimum.
const defaultMinContributionMonths = 3

// loanService derives loan eligibility from confirmed contribution history.
// Strictly read-only: it consumes the ledger's output and never mutates it.
type loanService struct {
	BaseService
	loanRepo         portsrepo.LoanReader
	contributionRepo portsrepo.ContributionReader
	groupSvc         portssvc.GroupSvcFacade
}

// NewLoanService creates a new LoanService.
func NewLoanService(loanRepo portsrepo.LoanReader, contributionRepo portsrepo.ContributionReader, groupSvc portssvc.GroupSvcFacade) portssvc.LoanSvcFacade {
	return &loanService{
		loanRepo:         loanRepo,
		contributionRepo: contributionRepo,
		groupSvc:         groupSvc,
	}
}

// Ensure loanService implements the portssvc.LoanSvcFacade interface
var _ portssvc.LoanSvcFacade = (*loanService)(nil)

// ComputeEligibility derives eligibility and the maximum loan amount for a
// member. Only COMPLETED contributions count: eligibility is a trust signal
// built from confirmed payment history, so PENDING, REJECTED and FAILED
// records never move it.
func (s *loanService) ComputeEligibility(ctx context.Context, groupID, userID string, requestingUserID string) (*domain.LoanEligibility, error) {
	if err := s.groupSvc.AuthorizeMemberAction(ctx, requestingUserID, groupID); err != nil {
		return nil, err
	}

	group, err := s.groupSvc.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group %s: %w", groupID, err)
	}

	count, total, err := s.contributionRepo.SumCompletedContributions(ctx, groupID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to sum completed contributions",
			slog.String("group_id", groupID), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to compute contribution totals: %w", err)
	}

	hasActiveLoan, err := s.loanRepo.HasActiveLoan(ctx, groupID, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check active loans",
			slog.String("group_id", groupID), slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to check active loans: %w", err)
	}

	minMonths := group.MinContributionMonths
	if minMonths <= 0 {
		minMonths = defaultMinContributionMonths
	}

	eligibility := &domain.LoanEligibility{
		ContributionsCount: count,
		TotalContributions: total,
		MaxLoanAmount:      decimal.Zero,
	}

	switch {
	case hasActiveLoan:
		eligibility.Reason = "member already has an active or pending loan"
	case count < int64(minMonths):
		eligibility.Reason = fmt.Sprintf("requires %d completed contribution months, has %d", minMonths, count)
	default:
		eligibility.Eligible = true
		eligibility.MaxLoanAmount = total.Mul(group.MaxLoanMultiplier)
	}

	s.LogDebug(ctx, "Eligibility computed",
		slog.String("group_id", groupID),
		slog.String("user_id", userID),
		slog.Bool("eligible", eligibility.Eligible),
		slog.Int64("contributions_count", count))

	return eligibility, nil
}
