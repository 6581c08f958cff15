package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/vikoba/vikoba_backend/internal/apperrors"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	"github.com/vikoba/vikoba_backend/internal/models"
	"github.com/vikoba/vikoba_backend/internal/utils/mapping"
	"github.com/vikoba/vikoba_backend/internal/utils/pagination"
	"github.com/vikoba/vikoba_backend/internal/utils/reconciliation"
)

type PgxContributionRepository struct {
	BaseRepository
}

// newPgxContributionRepository creates a new repository for contribution data.
func newPgxContributionRepository(pool *pgxpool.Pool) portsrepo.ContributionRepositoryWithTx {
	return &PgxContributionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxContributionRepository implements portsrepo.ContributionRepositoryWithTx
var _ portsrepo.ContributionRepositoryWithTx = (*PgxContributionRepository)(nil)

const contributionSelectColumns = `
		SELECT contribution_id, group_id, user_id, amount, month, year, status,
		       is_late, penalty_applied, reviewed_by, reviewed_at, rejection_reason,
		       created_at, created_by, last_updated_at, last_updated_by`

// scanContributionRow scans a single contributions row into the persistence model.
func scanContributionRow(row pgx.Row) (*models.Contribution, error) {
	var m models.Contribution
	err := row.Scan(
		&m.ContributionID,
		&m.GroupID,
		&m.UserID,
		&m.Amount,
		&m.Month,
		&m.Year,
		&m.Status,
		&m.IsLate,
		&m.PenaltyApplied,
		&m.ReviewedBy,
		&m.ReviewedAt,
		&m.RejectionReason,
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

// SaveContribution persists a new PENDING contribution. The schema carries no
// uniqueness constraint on (group, user, month, year): resubmission after a
// rejection creates a sibling row for the same period.
func (r *PgxContributionRepository) SaveContribution(ctx context.Context, contribution domain.Contribution) error {
	m := mapping.ToModelContribution(contribution)
	query := `
		INSERT INTO contributions (
			contribution_id, group_id, user_id, amount, month, year, status,
			is_late, penalty_applied, reviewed_by, reviewed_at, rejection_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ContributionID,
		m.GroupID,
		m.UserID,
		m.Amount,
		m.Month,
		m.Year,
		m.Status,
		m.IsLate,
		m.PenaltyApplied,
		m.ReviewedBy,
		m.ReviewedAt,
		m.RejectionReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to insert contribution "+m.ContributionID)
	}
	return nil
}

// FindContributionByID retrieves a contribution by its ID.
func (r *PgxContributionRepository) FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	query := contributionSelectColumns + `
		FROM contributions
		WHERE contribution_id = $1;
	`
	m, err := scanContributionRow(r.Pool.QueryRow(ctx, query, contributionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find contribution by ID "+contributionID, err)
	}

	contribution := mapping.ToDomainContribution(*m)
	return &contribution, nil
}

// FindContributionsByIDs retrieves the given contributions, keyed by id.
// Missing ids are simply absent from the map.
func (r *PgxContributionRepository) FindContributionsByIDs(ctx context.Context, contributionIDs []string) (map[string]domain.Contribution, error) {
	if len(contributionIDs) == 0 {
		return map[string]domain.Contribution{}, nil
	}

	query := contributionSelectColumns + `
		FROM contributions
		WHERE contribution_id = ANY($1);
	`
	rows, err := r.Pool.Query(ctx, query, contributionIDs)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query contributions by IDs", err)
	}
	defer rows.Close()

	result := make(map[string]domain.Contribution, len(contributionIDs))
	for rows.Next() {
		m, scanErr := scanContributionRow(rows)
		if scanErr != nil {
			return nil, apperrors.NewAppError(500, "failed to scan contribution row during batch fetch", scanErr)
		}
		result[m.ContributionID] = mapping.ToDomainContribution(*m)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating contribution rows during batch fetch", err)
	}

	return result, nil
}

// ListContributionsByGroup retrieves a paginated list of contributions for a group using token-based pagination.
// It returns the contributions, a token for the next page, and an error.
func (r *PgxContributionRepository) ListContributionsByGroup(ctx context.Context, groupID string, limit int, nextToken *string, filter portsrepo.ContributionFilter) ([]domain.Contribution, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// We fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := contributionSelectColumns + `
		FROM contributions`

	filterClause := ` WHERE group_id = $1`
	args := []interface{}{groupID}

	if filter.Status != nil {
		args = append(args, string(*filter.Status))
		filterClause += ` AND status = $` + strconv.Itoa(len(args))
	}
	if filter.Month != nil {
		args = append(args, *filter.Month)
		filterClause += ` AND month = $` + strconv.Itoa(len(args))
	}
	if filter.Year != nil {
		args = append(args, *filter.Year)
		filterClause += ` AND year = $` + strconv.Itoa(len(args))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		filterClause += ` AND user_id = $` + strconv.Itoa(len(args))
	}

	// Ordering must be stable: created_at DESC with contribution_id as a
	// tie-breaker, matching the cursor encoding.
	orderByClause := ` ORDER BY created_at DESC, contribution_id DESC`

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, lastID, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison is concise and efficient in Postgres.
		args = append(args, lastCreatedAt, lastID)
		filterClause += ` AND (created_at, contribution_id) < ($` + strconv.Itoa(len(args)-1) + `, $` + strconv.Itoa(len(args)) + `)`
	}

	args = append(args, fetchLimit)
	query := baseQuery + filterClause + orderByClause + ` LIMIT $` + strconv.Itoa(len(args)) + `;`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query contributions for group "+groupID, err)
	}
	defer rows.Close()

	modelContributions := make([]models.Contribution, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanContributionRow(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan contribution row for group "+groupID, scanErr)
		}
		modelContributions = append(modelContributions, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating contribution rows for group "+groupID, err)
	}

	var nextTokenVal *string
	results := modelContributions
	if len(modelContributions) > limit {
		// The token points to the last item included in this response page;
		// the next query starts strictly after it.
		last := modelContributions[limit-1]
		token := pagination.EncodeToken(last.CreatedAt, last.ContributionID)
		nextTokenVal = &token
		results = modelContributions[:limit]
	}

	return mapping.ToDomainContributionSlice(results), nextTokenVal, nil
}

// SumCompletedContributions returns the count and total amount of COMPLETED
// contributions for a member. Pending, rejected and failed rows never count.
func (r *PgxContributionRepository) SumCompletedContributions(ctx context.Context, groupID, userID string) (int64, decimal.Decimal, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0)
		FROM contributions
		WHERE group_id = $1 AND user_id = $2 AND status = 'COMPLETED';
	`
	var count int64
	var total decimal.Decimal
	err := r.Pool.QueryRow(ctx, query, groupID, userID).Scan(&count, &total)
	if err != nil {
		return 0, decimal.Zero, apperrors.NewAppError(500, "failed to sum completed contributions for user "+userID, err)
	}
	return count, total, nil
}

// groupTerms caches the per-group amounts needed during settlement.
type groupTerms struct {
	monthlyDue decimal.Decimal
	penalty    decimal.Decimal
}

// SettleContributions approves the given PENDING contributions in one database
// transaction. For each contribution it re-checks status under lock, evaluates
// the period's obligation state against sibling rows, allocates the amount
// across penalties then monthly due then balance, and writes the COMPLETED
// status together with the member's new financial fields. Any failure rolls
// back the entire set.
func (r *PgxContributionRepository) SettleContributions(ctx context.Context, contributionIDs []string, reviewerUserID string, reviewedAt time.Time) ([]domain.Contribution, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	// Ignored if the transaction commits successfully.
	defer r.Rollback(ctx, tx)

	terms := make(map[string]groupTerms)
	updated := make([]domain.Contribution, 0, len(contributionIDs))

	for _, id := range contributionIDs {
		m, err := r.lockContribution(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if m.Status != models.ContributionPending {
			return nil, fmt.Errorf("%w: contribution %s is %s", apperrors.ErrInvalidState, id, m.Status)
		}

		if err := r.applySettlement(ctx, tx, m, terms, reviewerUserID, reviewedAt); err != nil {
			return nil, err
		}

		updateQuery := `
			UPDATE contributions
			SET status = $2,
			    reviewed_by = $3,
			    reviewed_at = $4,
			    last_updated_at = $5,
			    last_updated_by = $6
			WHERE contribution_id = $1;
		`
		_, err = tx.Exec(ctx, updateQuery,
			m.ContributionID,
			models.ContributionCompleted,
			reviewerUserID,
			reviewedAt,
			reviewedAt,
			reviewerUserID,
		)
		if err != nil {
			return nil, mapWriteError(err, "failed to mark contribution "+id+" completed")
		}

		m.Status = models.ContributionCompleted
		m.ReviewedBy = &reviewerUserID
		reviewedAtCopy := reviewedAt
		m.ReviewedAt = &reviewedAtCopy
		m.LastUpdatedAt = reviewedAt
		m.LastUpdatedBy = reviewerUserID
		updated = append(updated, mapping.ToDomainContribution(*m))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// RejectContributions marks the given PENDING contributions REJECTED in one
// transaction. No financial fields are touched. Any failure rolls back the
// entire set.
func (r *PgxContributionRepository) RejectContributions(ctx context.Context, contributionIDs []string, reviewerUserID string, reason string, reviewedAt time.Time) ([]domain.Contribution, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	updated := make([]domain.Contribution, 0, len(contributionIDs))

	for _, id := range contributionIDs {
		m, err := r.lockContribution(ctx, tx, id)
		if err != nil {
			return nil, err
		}
		if m.Status != models.ContributionPending {
			return nil, fmt.Errorf("%w: contribution %s is %s", apperrors.ErrInvalidState, id, m.Status)
		}

		updateQuery := `
			UPDATE contributions
			SET status = $2,
			    reviewed_by = $3,
			    reviewed_at = $4,
			    rejection_reason = $5,
			    last_updated_at = $6,
			    last_updated_by = $7
			WHERE contribution_id = $1;
		`
		_, err = tx.Exec(ctx, updateQuery,
			m.ContributionID,
			models.ContributionRejected,
			reviewerUserID,
			reviewedAt,
			reason,
			reviewedAt,
			reviewerUserID,
		)
		if err != nil {
			return nil, mapWriteError(err, "failed to mark contribution "+id+" rejected")
		}

		m.Status = models.ContributionRejected
		m.ReviewedBy = &reviewerUserID
		reviewedAtCopy := reviewedAt
		m.ReviewedAt = &reviewedAtCopy
		reasonCopy := reason
		m.RejectionReason = &reasonCopy
		m.LastUpdatedAt = reviewedAt
		m.LastUpdatedBy = reviewerUserID
		updated = append(updated, mapping.ToDomainContribution(*m))
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return updated, nil
}

// SettleCashContribution inserts an already-COMPLETED contribution (an
// officer-recorded cash payment) and settles it against the member's
// obligations within the same transaction as the insert.
func (r *PgxContributionRepository) SettleCashContribution(ctx context.Context, contribution domain.Contribution) (*domain.Contribution, error) {
	m := mapping.ToModelContribution(contribution)
	if m.ReviewedBy == nil || m.ReviewedAt == nil {
		return nil, fmt.Errorf("%w: cash contribution requires reviewer fields", apperrors.ErrValidation)
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	insertQuery := `
		INSERT INTO contributions (
			contribution_id, group_id, user_id, amount, month, year, status,
			is_late, penalty_applied, reviewed_by, reviewed_at, rejection_reason,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16);
	`
	_, err = tx.Exec(ctx, insertQuery,
		m.ContributionID,
		m.GroupID,
		m.UserID,
		m.Amount,
		m.Month,
		m.Year,
		m.Status,
		m.IsLate,
		m.PenaltyApplied,
		m.ReviewedBy,
		m.ReviewedAt,
		m.RejectionReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return nil, mapWriteError(err, "failed to insert cash contribution "+m.ContributionID)
	}

	terms := make(map[string]groupTerms)
	if err := r.applySettlement(ctx, tx, &m, terms, *m.ReviewedBy, *m.ReviewedAt); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	settled := mapping.ToDomainContribution(m)
	return &settled, nil
}

// lockContribution selects a contribution row FOR UPDATE within tx.
func (r *PgxContributionRepository) lockContribution(ctx context.Context, tx pgx.Tx, contributionID string) (*models.Contribution, error) {
	query := contributionSelectColumns + `
		FROM contributions
		WHERE contribution_id = $1
		FOR UPDATE;
	`
	m, err := scanContributionRow(tx.QueryRow(ctx, query, contributionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("contribution " + contributionID + " not found")
		}
		return nil, mapWriteError(err, "failed to lock contribution "+contributionID)
	}
	return m, nil
}

// applySettlement performs the financial half of settling one contribution
// inside tx: it locks the member row, evaluates the period's obligation state
// against sibling rows in a terminal-positive status, allocates the amount,
// and writes the member's new balance and unpaid penalties. The allocation may
// drive the balance negative; it is stored as computed, never clamped.
func (r *PgxContributionRepository) applySettlement(ctx context.Context, tx pgx.Tx, m *models.Contribution, terms map[string]groupTerms, updatedBy string, updatedAt time.Time) error {
	gt, ok := terms[m.GroupID]
	if !ok {
		groupQuery := `
			SELECT monthly_due_amount, penalty_amount
			FROM groups
			WHERE group_id = $1;
		`
		if err := tx.QueryRow(ctx, groupQuery, m.GroupID).Scan(&gt.monthlyDue, &gt.penalty); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.NewNotFoundError("group " + m.GroupID + " not found")
			}
			return mapWriteError(err, "failed to load group terms for "+m.GroupID)
		}
		terms[m.GroupID] = gt
	}

	// Lock the member row so concurrent settlements for the same member
	// serialize on it.
	memberQuery := `
		SELECT member_id, balance, unpaid_penalties
		FROM members
		WHERE group_id = $1 AND user_id = $2
		FOR UPDATE;
	`
	var memberID string
	var balance, unpaidPenalties decimal.Decimal
	err := tx.QueryRow(ctx, memberQuery, m.GroupID, m.UserID).Scan(&memberID, &balance, &unpaidPenalties)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFoundError("member for user " + m.UserID + " not found in group " + m.GroupID)
		}
		return mapWriteError(err, "failed to lock member for user "+m.UserID)
	}

	// Obligation state comes from sibling rows for the same period, excluding
	// the row being settled. COMPLETED and FAILED both count toward the
	// monthly due and penalty having been applied.
	obligationQuery := `
		SELECT COUNT(*) > 0,
		       COUNT(*) FILTER (WHERE is_late AND penalty_applied > 0) > 0
		FROM contributions
		WHERE group_id = $1 AND user_id = $2 AND month = $3 AND year = $4
		  AND status IN ('COMPLETED', 'FAILED')
		  AND contribution_id <> $5;
	`
	var obligation domain.ObligationState
	err = tx.QueryRow(ctx, obligationQuery, m.GroupID, m.UserID, m.Month, m.Year, m.ContributionID).
		Scan(&obligation.FeeAlreadyApplied, &obligation.PenaltyAlreadyApplied)
	if err != nil {
		return mapWriteError(err, "failed to evaluate obligation state for contribution "+m.ContributionID)
	}

	alloc := reconciliation.Allocate(
		m.Amount,
		unpaidPenalties,
		m.PenaltyApplied,
		gt.monthlyDue,
		obligation.FeeAlreadyApplied,
		obligation.PenaltyAlreadyApplied,
	)

	memberUpdate := `
		UPDATE members
		SET balance = $2,
		    unpaid_penalties = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE member_id = $1;
	`
	_, err = tx.Exec(ctx, memberUpdate,
		memberID,
		balance.Add(alloc.BalanceIncrement),
		alloc.NewUnpaidPenalties,
		updatedAt,
		updatedBy,
	)
	if err != nil {
		return mapWriteError(err, "failed to update member balance for "+memberID)
	}

	return nil
}
