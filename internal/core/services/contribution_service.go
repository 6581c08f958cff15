package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/vikoba/vikoba_backend/internal/apperrors"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	portssvc "github.com/vikoba/vikoba_backend/internal/core/ports/services"
	"github.com/vikoba/vikoba_backend/internal/dto"
	"github.com/vikoba/vikoba_backend/internal/utils/reconciliation"
)

var (
	ErrAmountNotPositive = errors.New("contribution amount must be positive")
	ErrEmptyBatch        = errors.New("batch must contain at least one contribution")
)

// contributionService coordinates the contribution lifecycle: submission,
// single and batch review, and officer-recorded cash payments. It is, with
// the repository transaction it delegates to, the only code path that mutates
// member balances and unpaid penalties.
type contributionService struct {
	BaseService
	contributionRepo portsrepo.ContributionRepositoryWithTx
	groupSvc         portssvc.GroupSvcFacade
	activityRepo     portsrepo.ActivityWriter
}

// NewContributionService creates a new ContributionService.
func NewContributionService(contributionRepo portsrepo.ContributionRepositoryWithTx, groupSvc portssvc.GroupSvcFacade, activityRepo portsrepo.ActivityWriter) portssvc.ContributionSvcFacade {
	return &contributionService{
		contributionRepo: contributionRepo,
		groupSvc:         groupSvc,
		activityRepo:     activityRepo,
	}
}

// Ensure contributionService implements the portssvc.ContributionSvcFacade interface
var _ portssvc.ContributionSvcFacade = (*contributionService)(nil)

// SubmitContribution creates a PENDING contribution for the submitting
// member. Lateness and the applicable penalty are classified against the
// group's due day once, here, and stored on the record; review later checks
// only whether a sibling already applied them.
func (s *contributionService) SubmitContribution(ctx context.Context, groupID string, req dto.SubmitContributionRequest, submitterUserID string) (*domain.Contribution, error) {
	if err := s.groupSvc.AuthorizeMemberAction(ctx, submitterUserID, groupID); err != nil {
		s.LogWarn(ctx, "Authorization failed for SubmitContribution",
			slog.String("user_id", submitterUserID), slog.String("group_id", groupID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	group, err := s.groupSvc.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group %s: %w", groupID, err)
	}

	now := time.Now().UTC()
	isLate, penaltyApplied := reconciliation.Classify(now, req.Month, req.Year, group.ContributionDueDay, group.PenaltyAmount)

	contribution := domain.Contribution{
		ContributionID: uuid.NewString(),
		GroupID:        groupID,
		UserID:         submitterUserID,
		Amount:         req.Amount,
		Month:          req.Month,
		Year:           req.Year,
		Status:         domain.ContributionPending,
		IsLate:         isLate,
		PenaltyApplied: penaltyApplied,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     submitterUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: submitterUserID,
		},
	}

	if err := s.contributionRepo.SaveContribution(ctx, contribution); err != nil {
		s.LogError(ctx, err, "Failed to save contribution", slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to save contribution: %w", err)
	}

	s.LogInfo(ctx, "Contribution submitted",
		slog.String("contribution_id", contribution.ContributionID),
		slog.String("group_id", groupID),
		slog.Bool("is_late", isLate))

	s.recordActivity(ctx, groupID, submitterUserID, "CONTRIBUTION_SUBMITTED",
		fmt.Sprintf("contribution %s for %d/%d submitted", contribution.ContributionID, req.Month, req.Year))

	return &contribution, nil
}

// ReviewContribution approves or rejects a single PENDING contribution.
// Approval settles the member's obligations for the period inside one
// database transaction; the obligation state is re-read there, not here,
// since other approvals may have landed in the meantime.
func (s *contributionService) ReviewContribution(ctx context.Context, contributionID string, req dto.ReviewContributionRequest, reviewerUserID string) (*domain.Contribution, error) {
	contribution, err := s.contributionRepo.FindContributionByID(ctx, contributionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find contribution for review", slog.String("contribution_id", contributionID))
		}
		return nil, err
	}

	if err := s.groupSvc.AuthorizeOfficerAction(ctx, reviewerUserID, contribution.GroupID); err != nil {
		s.LogWarn(ctx, "Authorization failed for ReviewContribution",
			slog.String("user_id", reviewerUserID), slog.String("contribution_id", contributionID), slog.String("error", err.Error()))
		return nil, err
	}

	if contribution.Status != domain.ContributionPending {
		return nil, fmt.Errorf("%w: contribution %s is %s", apperrors.ErrInvalidState, contributionID, contribution.Status)
	}

	now := time.Now().UTC()

	var updated []domain.Contribution
	switch req.Decision {
	case domain.DecisionApprove:
		updated, err = s.contributionRepo.SettleContributions(ctx, []string{contributionID}, reviewerUserID, now)
	case domain.DecisionReject:
		updated, err = s.contributionRepo.RejectContributions(ctx, []string{contributionID}, reviewerUserID, req.RejectionReason, now)
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, req.Decision)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to review contribution",
			slog.String("contribution_id", contributionID), slog.String("decision", string(req.Decision)))
		return nil, err
	}
	if len(updated) != 1 {
		return nil, fmt.Errorf("%w: expected one updated contribution, got %d", apperrors.ErrInternal, len(updated))
	}

	s.LogInfo(ctx, "Contribution reviewed",
		slog.String("contribution_id", contributionID),
		slog.String("decision", string(req.Decision)))

	s.notifyReviewOutcome(ctx, &updated[0], reviewerUserID)
	return &updated[0], nil
}

// ReviewContributionsBatch reviews several contributions as one atomic unit.
// Unlike the permissive bulk operations elsewhere in the system, the batch is
// all-or-nothing: a later item's obligation read can be invalidated by an
// earlier item's write, so partial application would break the per-period
// charge guarantees.
func (s *contributionService) ReviewContributionsBatch(ctx context.Context, req dto.BatchReviewRequest, reviewerUserID string) ([]domain.Contribution, error) {
	if len(req.ContributionIDs) == 0 {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrEmptyBatch)
	}

	found, err := s.contributionRepo.FindContributionsByIDs(ctx, req.ContributionIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch contributions for batch review")
		return nil, fmt.Errorf("failed to fetch contributions: %w", err)
	}

	authorizedGroups := make(map[string]bool)
	for _, id := range req.ContributionIDs {
		contribution, ok := found[id]
		if !ok {
			return nil, fmt.Errorf("%w: contribution %s", apperrors.ErrNotFound, id)
		}
		if contribution.Status != domain.ContributionPending {
			return nil, fmt.Errorf("%w: contribution %s is %s", apperrors.ErrInvalidState, id, contribution.Status)
		}
		if !authorizedGroups[contribution.GroupID] {
			if err := s.groupSvc.AuthorizeOfficerAction(ctx, reviewerUserID, contribution.GroupID); err != nil {
				s.LogWarn(ctx, "Authorization failed for ReviewContributionsBatch",
					slog.String("user_id", reviewerUserID), slog.String("group_id", contribution.GroupID), slog.String("error", err.Error()))
				return nil, err
			}
			authorizedGroups[contribution.GroupID] = true
		}
	}

	now := time.Now().UTC()

	var updated []domain.Contribution
	switch req.Decision {
	case domain.DecisionApprove:
		updated, err = s.contributionRepo.SettleContributions(ctx, req.ContributionIDs, reviewerUserID, now)
	case domain.DecisionReject:
		updated, err = s.contributionRepo.RejectContributions(ctx, req.ContributionIDs, reviewerUserID, req.RejectionReason, now)
	default:
		return nil, fmt.Errorf("%w: unknown decision %q", apperrors.ErrValidation, req.Decision)
	}
	if err != nil {
		s.LogError(ctx, err, "Batch review rolled back",
			slog.Int("batch_size", len(req.ContributionIDs)), slog.String("decision", string(req.Decision)))
		return nil, err
	}

	s.LogInfo(ctx, "Contribution batch reviewed",
		slog.Int("count", len(updated)), slog.String("decision", string(req.Decision)))

	for i := range updated {
		s.notifyReviewOutcome(ctx, &updated[i], reviewerUserID)
	}
	return updated, nil
}

// RecordCashPayment records an officer-collected cash payment. The
// contribution is created already COMPLETED and settled through exactly the
// same obligation query and waterfall as the review path; only the entry
// point differs.
func (s *contributionService) RecordCashPayment(ctx context.Context, groupID string, req dto.CashPaymentRequest, actorUserID string) (*domain.Contribution, error) {
	if err := s.groupSvc.AuthorizeOfficerAction(ctx, actorUserID, groupID); err != nil {
		s.LogWarn(ctx, "Authorization failed for RecordCashPayment",
			slog.String("user_id", actorUserID), slog.String("group_id", groupID), slog.String("error", err.Error()))
		return nil, err
	}

	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, ErrAmountNotPositive)
	}

	// The target must actually be a member; the settle transaction mutates
	// their financial fields.
	if _, err := s.groupSvc.FindMember(ctx, groupID, req.UserID); err != nil {
		return nil, fmt.Errorf("failed to find member %s in group %s: %w", req.UserID, groupID, err)
	}

	group, err := s.groupSvc.FindGroupByID(ctx, groupID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch group %s: %w", groupID, err)
	}

	now := time.Now().UTC()
	isLate, penaltyApplied := reconciliation.Classify(now, req.Month, req.Year, group.ContributionDueDay, group.PenaltyAmount)

	reviewedAt := now
	contribution := domain.Contribution{
		ContributionID: uuid.NewString(),
		GroupID:        groupID,
		UserID:         req.UserID,
		Amount:         req.Amount,
		Month:          req.Month,
		Year:           req.Year,
		Status:         domain.ContributionCompleted,
		IsLate:         isLate,
		PenaltyApplied: penaltyApplied,
		ReviewedBy:     &actorUserID,
		ReviewedAt:     &reviewedAt,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actorUserID,
		},
	}

	settled, err := s.contributionRepo.SettleCashContribution(ctx, contribution)
	if err != nil {
		s.LogError(ctx, err, "Failed to record cash payment",
			slog.String("group_id", groupID), slog.String("target_user_id", req.UserID))
		return nil, err
	}

	s.LogInfo(ctx, "Cash payment recorded",
		slog.String("contribution_id", settled.ContributionID),
		slog.String("group_id", groupID),
		slog.String("target_user_id", req.UserID))

	s.recordActivity(ctx, groupID, actorUserID, "CASH_PAYMENT_RECORDED",
		fmt.Sprintf("cash payment %s recorded for member %s (%d/%d)", settled.ContributionID, req.UserID, req.Month, req.Year))
	s.notifyReviewOutcome(ctx, settled, actorUserID)

	return settled, nil
}

// GetContributionByID retrieves a single contribution, visible to any active
// member of its group.
func (s *contributionService) GetContributionByID(ctx context.Context, contributionID string, requestingUserID string) (*domain.Contribution, error) {
	contribution, err := s.contributionRepo.FindContributionByID(ctx, contributionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find contribution", slog.String("contribution_id", contributionID))
		}
		return nil, err
	}

	if err := s.groupSvc.AuthorizeMemberAction(ctx, requestingUserID, contribution.GroupID); err != nil {
		return nil, err
	}

	return contribution, nil
}

// ListGroupContributions retrieves a paginated list of a group's contributions.
func (s *contributionService) ListGroupContributions(ctx context.Context, groupID string, requestingUserID string, params dto.ListContributionsParams) (*dto.ListContributionsResponse, error) {
	if err := s.groupSvc.AuthorizeMemberAction(ctx, requestingUserID, groupID); err != nil {
		return nil, err
	}

	filter := portsrepo.ContributionFilter{
		Month:  params.Month,
		Year:   params.Year,
		UserID: params.UserID,
	}
	if params.Status != nil {
		status := domain.ContributionStatus(*params.Status)
		switch status {
		case domain.ContributionPending, domain.ContributionCompleted, domain.ContributionRejected, domain.ContributionFailed:
			filter.Status = &status
		default:
			return nil, fmt.Errorf("%w: unknown status %q", apperrors.ErrValidation, *params.Status)
		}
	}

	contributions, nextToken, err := s.contributionRepo.ListContributionsByGroup(ctx, groupID, params.Limit, params.NextToken, filter)
	if err != nil {
		s.LogError(ctx, err, "Failed to list contributions", slog.String("group_id", groupID))
		return nil, fmt.Errorf("failed to retrieve contributions: %w", err)
	}

	return &dto.ListContributionsResponse{
		Contributions: dto.ToContributionResponses(contributions),
		NextToken:     nextToken,
	}, nil
}

// recordActivity appends a best-effort activity log entry. Activity failures
// are logged and swallowed; they never affect the financial outcome.
func (s *contributionService) recordActivity(ctx context.Context, groupID, actorUserID, action, detail string) {
	if s.activityRepo == nil {
		return
	}
	activity := domain.Activity{
		ActivityID: uuid.NewString(),
		GroupID:    groupID,
		UserID:     actorUserID,
		Action:     action,
		Detail:     detail,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.activityRepo.SaveActivity(ctx, activity); err != nil {
		s.LogWarn(ctx, "Failed to record activity", slog.String("action", action), slog.String("error", err.Error()))
	}
}

// notifyReviewOutcome queues a best-effort notification to the contribution's
// owner after a committed state change.
func (s *contributionService) notifyReviewOutcome(ctx context.Context, contribution *domain.Contribution, actorUserID string) {
	if s.activityRepo == nil {
		return
	}

	var title, body string
	switch contribution.Status {
	case domain.ContributionCompleted:
		title = "Contribution approved"
		body = fmt.Sprintf("Your contribution of %s for %d/%d was approved.", contribution.Amount.String(), contribution.Month, contribution.Year)
	case domain.ContributionRejected:
		title = "Contribution rejected"
		reason := ""
		if contribution.RejectionReason != nil {
			reason = " Reason: " + *contribution.RejectionReason
		}
		body = fmt.Sprintf("Your contribution of %s for %d/%d was rejected.%s", contribution.Amount.String(), contribution.Month, contribution.Year, reason)
	default:
		return
	}

	notification := domain.Notification{
		NotificationID: uuid.NewString(),
		UserID:         contribution.UserID,
		Title:          title,
		Body:           body,
		CreatedAt:      time.Now().UTC(),
	}
	if err := s.activityRepo.SaveNotification(ctx, notification); err != nil {
		s.LogWarn(ctx, "Failed to queue notification",
			slog.String("contribution_id", contribution.ContributionID), slog.String("error", err.Error()))
	}

	s.recordActivity(ctx, contribution.GroupID, actorUserID, "CONTRIBUTION_"+string(contribution.Status),
		fmt.Sprintf("contribution %s moved to %s", contribution.ContributionID, contribution.Status))
}
