package pgsql

import (
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	groupRepo := newPgxGroupRepository(dbPool)
	contributionRepo := newPgxContributionRepository(dbPool)
	loanRepo := newPgxLoanRepository(dbPool)
	activityRepo := newPgxActivityRepository(dbPool)

	return portsrepo.RepositoryProvider{
		GroupRepo:        groupRepo,
		ContributionRepo: contributionRepo,
		LoanRepo:         loanRepo,
		ActivityRepo:     activityRepo,
	}
}
