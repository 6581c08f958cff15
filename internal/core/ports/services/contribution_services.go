package services

import (
	"context"

	"github.com/vikoba/vikoba_backend/internal/core/domain"
	"github.com/vikoba/vikoba_backend/internal/dto"
)

// ContributionReaderSvc defines read operations for contribution data
type ContributionReaderSvc interface {
	// GetContributionByID retrieves a specific contribution.
	GetContributionByID(ctx context.Context, contributionID string, requestingUserID string) (*domain.Contribution, error)

	// ListGroupContributions retrieves a paginated list of a group's contributions.
	ListGroupContributions(ctx context.Context, groupID string, requestingUserID string, params dto.ListContributionsParams) (*dto.ListContributionsResponse, error)
}

// ContributionWriterSvc defines the contribution lifecycle operations.
type ContributionWriterSvc interface {
	// SubmitContribution creates a PENDING contribution for the submitting
	// member, stamping lateness and penalty at submission time.
	SubmitContribution(ctx context.Context, groupID string, req dto.SubmitContributionRequest, submitterUserID string) (*domain.Contribution, error)

	// ReviewContribution approves or rejects one PENDING contribution. On
	// approval the member's balance and unpaid penalties are settled in the
	// same transaction as the status change.
	ReviewContribution(ctx context.Context, contributionID string, req dto.ReviewContributionRequest, reviewerUserID string) (*domain.Contribution, error)

	// ReviewContributionsBatch reviews several contributions as one atomic
	// unit: if any item fails validation or mutation, nothing is applied.
	ReviewContributionsBatch(ctx context.Context, req dto.BatchReviewRequest, reviewerUserID string) ([]domain.Contribution, error)

	// RecordCashPayment records an officer-collected cash payment as an
	// already-completed contribution, settled through the same obligation and
	// allocation rules as the review path.
	RecordCashPayment(ctx context.Context, groupID string, req dto.CashPaymentRequest, actorUserID string) (*domain.Contribution, error)
}

// ContributionSvcFacade combines all contribution-related service interfaces.
type ContributionSvcFacade interface {
	ContributionReaderSvc
	ContributionWriterSvc
}
