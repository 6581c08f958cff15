package pgsql

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/vikoba/vikoba_backend/internal/apperrors"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	"github.com/vikoba/vikoba_backend/internal/models"
	"github.com/vikoba/vikoba_backend/internal/utils/mapping"
)

type PgxGroupRepository struct {
	BaseRepository
}

// newPgxGroupRepository creates a new repository for group and membership data.
func newPgxGroupRepository(pool *pgxpool.Pool) portsrepo.GroupRepositoryFacade {
	return &PgxGroupRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxGroupRepository implements portsrepo.GroupRepositoryFacade
var _ portsrepo.GroupRepositoryFacade = (*PgxGroupRepository)(nil)

// FindGroupByID retrieves a group by its ID.
func (r *PgxGroupRepository) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	query := `
		SELECT group_id, name, description, monthly_due_amount, penalty_amount,
		       contribution_due_day, min_contribution_months, max_loan_multiplier, is_active,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM groups
		WHERE group_id = $1;
	`
	var m models.Group
	err := r.Pool.QueryRow(ctx, query, groupID).Scan(
		&m.GroupID,
		&m.Name,
		&m.Description,
		&m.MonthlyDueAmount,
		&m.PenaltyAmount,
		&m.ContributionDueDay,
		&m.MinContributionMonths,
		&m.MaxLoanMultiplier,
		&m.IsActive,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find group by ID "+groupID, err)
	}

	group := mapping.ToDomainGroup(m)
	return &group, nil
}

// FindMemberByGroupAndUser retrieves a user's membership in a group, including
// the financial fields.
func (r *PgxGroupRepository) FindMemberByGroupAndUser(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	query := memberSelectColumns + `
		FROM members
		WHERE group_id = $1 AND user_id = $2;
	`
	m, err := scanMemberRow(r.Pool.QueryRow(ctx, query, groupID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find member for group "+groupID, err)
	}

	member := mapping.ToDomainMember(*m)
	return &member, nil
}

// ListMembersByGroup retrieves all memberships of a group.
func (r *PgxGroupRepository) ListMembersByGroup(ctx context.Context, groupID string) ([]domain.Member, error) {
	query := memberSelectColumns + `
		FROM members
		WHERE group_id = $1
		ORDER BY joined_at;
	`
	rows, err := r.Pool.Query(ctx, query, groupID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query members for group "+groupID, err)
	}
	defer rows.Close()

	members := []domain.Member{}
	for rows.Next() {
		m, scanErr := scanMemberRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan member row for group "+groupID, scanErr)
		}
		members = append(members, mapping.ToDomainMember(*m))
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating member rows for group "+groupID, err)
	}

	return members, nil
}

const memberSelectColumns = `
		SELECT member_id, group_id, user_id, role, status, balance, unpaid_penalties, joined_at,
		       created_at, created_by, last_updated_at, last_updated_by`

// scanMemberRow scans a single members row into the persistence model.
func scanMemberRow(row pgx.Row) (*models.Member, error) {
	var m models.Member
	err := row.Scan(
		&m.MemberID,
		&m.GroupID,
		&m.UserID,
		&m.Role,
		&m.Status,
		&m.Balance,
		&m.UnpaidPenalties,
		&m.JoinedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
