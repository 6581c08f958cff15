package repositories

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// ContributionFilter narrows contribution listings.
type ContributionFilter struct {
	Status *domain.ContributionStatus
	Month  *int
	Year   *int
	UserID *string
}

// ContributionReader defines read operations for contribution data
type ContributionReader interface {
	// FindContributionByID retrieves a specific contribution by its unique identifier.
	FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error)

	// FindContributionsByIDs retrieves the given contributions, keyed by id.
	// Missing ids are simply absent from the map.
	FindContributionsByIDs(ctx context.Context, contributionIDs []string) (map[string]domain.Contribution, error)

	// ListContributionsByGroup retrieves a paginated list of contributions for
	// a group using token-based pagination. It returns the contributions, a
	// token for the next page, and an error.
	ListContributionsByGroup(ctx context.Context, groupID string, limit int, nextToken *string, filter ContributionFilter) ([]domain.Contribution, *string, error)

	// SumCompletedContributions returns the count and total amount of
	// COMPLETED contributions for a member. Feeds the eligibility calculator;
	// PENDING, REJECTED and FAILED records never count.
	SumCompletedContributions(ctx context.Context, groupID, userID string) (int64, decimal.Decimal, error)
}

// ContributionWriter defines write operations for contribution data
type ContributionWriter interface {
	// SaveContribution persists a new PENDING contribution (normal submission path).
	SaveContribution(ctx context.Context, contribution domain.Contribution) error

	// SettleContributions approves the given PENDING contributions in one
	// database transaction: for each, it re-checks status under lock,
	// evaluates the period's obligation state against sibling records,
	// allocates the amount across penalties/due/balance, and writes the
	// COMPLETED status together with the member's new financial fields.
	// Any failure rolls back the entire set.
	SettleContributions(ctx context.Context, contributionIDs []string, reviewerUserID string, reviewedAt time.Time) ([]domain.Contribution, error)

	// RejectContributions marks the given PENDING contributions REJECTED in
	// one transaction. No financial fields are touched. Any failure rolls
	// back the entire set.
	RejectContributions(ctx context.Context, contributionIDs []string, reviewerUserID string, reason string, reviewedAt time.Time) ([]domain.Contribution, error)

	// SettleCashContribution inserts an already-COMPLETED contribution
	// (officer-recorded cash payment) and settles it against the member's
	// obligations in the same transaction as the insert.
	SettleCashContribution(ctx context.Context, contribution domain.Contribution) (*domain.Contribution, error)
}

// ContributionRepositoryFacade combines all contribution-related repository
// interfaces. This is a facade for clients that need access to all operations.
type ContributionRepositoryFacade interface {
	ContributionReader
	ContributionWriter
}

// ContributionRepositoryWithTx extends ContributionRepositoryFacade with
// transaction capabilities.
type ContributionRepositoryWithTx interface {
	ContributionRepositoryFacade
	TransactionManager
}
