package pgsql

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vikoba/vikoba_backend/internal/apperrors"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	"github.com/vikoba/vikoba_backend/internal/models"
	"github.com/vikoba/vikoba_backend/internal/utils/mapping"
)

type PgxLoanRepository struct {
	BaseRepository
}

// newPgxLoanRepository creates a new repository for loan data.
func newPgxLoanRepository(pool *pgxpool.Pool) portsrepo.LoanReader {
	return &PgxLoanRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxLoanRepository implements portsrepo.LoanReader
var _ portsrepo.LoanReader = (*PgxLoanRepository)(nil)

// HasActiveLoan reports whether the member currently holds a loan in a
// PENDING, APPROVED or ACTIVE state.
func (r *PgxLoanRepository) HasActiveLoan(ctx context.Context, groupID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1
			FROM loans
			WHERE group_id = $1 AND user_id = $2
			  AND status IN ('PENDING', 'APPROVED', 'ACTIVE')
		);
	`
	var exists bool
	if err := r.Pool.QueryRow(ctx, query, groupID, userID).Scan(&exists); err != nil {
		return false, apperrors.NewAppError(500, "failed to check active loans for user "+userID, err)
	}
	return exists, nil
}

// ListLoansByMember retrieves all loans for a member in a group.
func (r *PgxLoanRepository) ListLoansByMember(ctx context.Context, groupID, userID string) ([]domain.Loan, error) {
	query := `
		SELECT loan_id, group_id, user_id, amount, status,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM loans
		WHERE group_id = $1 AND user_id = $2
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, groupID, userID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query loans for user "+userID, err)
	}
	defer rows.Close()

	loans := []domain.Loan{}
	for rows.Next() {
		var m models.Loan
		scanErr := rows.Scan(
			&m.LoanID,
			&m.GroupID,
			&m.UserID,
			&m.Amount,
			&m.Status,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan loan row for user "+userID, scanErr)
		}
		loans = append(loans, mapping.ToDomainLoan(m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating loan rows for user "+userID, err)
	}

	return loans, nil
}
