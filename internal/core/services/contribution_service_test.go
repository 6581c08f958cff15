package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"

	"github.com/vikoba/vikoba_backend/internal/apperrors"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	portssvc "github.com/vikoba/vikoba_backend/internal/core/ports/services"
	"github.com/vikoba/vikoba_backend/internal/core/services"
	"github.com/vikoba/vikoba_backend/internal/dto"
)

// --- Mock ContributionRepository ---
type MockContributionRepository struct {
	mock.Mock
}

// Ensure MockContributionRepository implements portsrepo.ContributionRepositoryWithTx
var _ portsrepo.ContributionRepositoryWithTx = (*MockContributionRepository)(nil)

func (m *MockContributionRepository) SaveContribution(ctx context.Context, contribution domain.Contribution) error {
	args := m.Called(ctx, contribution)
	return args.Error(0)
}

func (m *MockContributionRepository) FindContributionByID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	args := m.Called(ctx, contributionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) FindContributionsByIDs(ctx context.Context, contributionIDs []string) (map[string]domain.Contribution, error) {
	args := m.Called(ctx, contributionIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) ListContributionsByGroup(ctx context.Context, groupID string, limit int, nextToken *string, filter portsrepo.ContributionFilter) ([]domain.Contribution, *string, error) {
	args := m.Called(ctx, groupID, limit, nextToken, filter)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	var returnedNextToken *string
	if args.Get(1) != nil {
		tokenVal := args.Get(1).(string)
		returnedNextToken = &tokenVal
	}
	return args.Get(0).([]domain.Contribution), returnedNextToken, args.Error(2)
}

func (m *MockContributionRepository) SumCompletedContributions(ctx context.Context, groupID, userID string) (int64, decimal.Decimal, error) {
	args := m.Called(ctx, groupID, userID)
	return args.Get(0).(int64), args.Get(1).(decimal.Decimal), args.Error(2)
}

func (m *MockContributionRepository) SettleContributions(ctx context.Context, contributionIDs []string, reviewerUserID string, reviewedAt time.Time) ([]domain.Contribution, error) {
	args := m.Called(ctx, contributionIDs, reviewerUserID, reviewedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) RejectContributions(ctx context.Context, contributionIDs []string, reviewerUserID string, reason string, reviewedAt time.Time) ([]domain.Contribution, error) {
	args := m.Called(ctx, contributionIDs, reviewerUserID, reason, reviewedAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) SettleCashContribution(ctx context.Context, contribution domain.Contribution) (*domain.Contribution, error) {
	args := m.Called(ctx, contribution)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Contribution), args.Error(1)
}

func (m *MockContributionRepository) Begin(ctx context.Context) (pgx.Tx, error) {
	args := m.Called(ctx)
	return nil, args.Error(1)
}

func (m *MockContributionRepository) Commit(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockContributionRepository) Rollback(ctx context.Context, tx pgx.Tx) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

// --- Mock GroupService ---
type MockGroupService struct {
	mock.Mock
}

var _ portssvc.GroupSvcFacade = (*MockGroupService)(nil)

func (m *MockGroupService) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	args := m.Called(ctx, groupID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Group), args.Error(1)
}

func (m *MockGroupService) FindMember(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	args := m.Called(ctx, groupID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Member), args.Error(1)
}

func (m *MockGroupService) AuthorizeOfficerAction(ctx context.Context, userID, groupID string) error {
	args := m.Called(ctx, userID, groupID)
	return args.Error(0)
}

func (m *MockGroupService) AuthorizeMemberAction(ctx context.Context, userID, groupID string) error {
	args := m.Called(ctx, userID, groupID)
	return args.Error(0)
}

// --- Mock ActivityRepository ---
type MockActivityRepository struct {
	mock.Mock
}

var _ portsrepo.ActivityWriter = (*MockActivityRepository)(nil)

func (m *MockActivityRepository) SaveActivity(ctx context.Context, activity domain.Activity) error {
	args := m.Called(ctx, activity)
	return args.Error(0)
}

func (m *MockActivityRepository) SaveNotification(ctx context.Context, notification domain.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

// --- Test Suite Setup ---
type ContributionServiceTestSuite struct {
	suite.Suite
	mockContributionRepo *MockContributionRepository
	mockGroupSvc         *MockGroupService
	mockActivityRepo     *MockActivityRepository
	service              portssvc.ContributionSvcFacade
	group                domain.Group
	groupID              string
	memberUserID         string
	officerUserID        string
}

func (suite *ContributionServiceTestSuite) SetupTest() {
	suite.mockContributionRepo = new(MockContributionRepository)
	suite.mockGroupSvc = new(MockGroupService)
	suite.mockActivityRepo = new(MockActivityRepository)
	suite.service = services.NewContributionService(suite.mockContributionRepo, suite.mockGroupSvc, suite.mockActivityRepo)

	suite.groupID = uuid.NewString()
	suite.memberUserID = uuid.NewString()
	suite.officerUserID = uuid.NewString()

	suite.group = domain.Group{
		GroupID:               suite.groupID,
		Name:                  "Umoja Savings",
		MonthlyDueAmount:      decimal.NewFromInt(200),
		PenaltyAmount:         decimal.NewFromInt(50),
		ContributionDueDay:    31, // current month is never late in tests
		MinContributionMonths: 3,
		MaxLoanMultiplier:     decimal.NewFromInt(3),
		IsActive:              true,
	}
}

func (suite *ContributionServiceTestSuite) pendingContribution() *domain.Contribution {
	return &domain.Contribution{
		ContributionID: uuid.NewString(),
		GroupID:        suite.groupID,
		UserID:         suite.memberUserID,
		Amount:         decimal.NewFromInt(200),
		Month:          int(time.Now().UTC().Month()),
		Year:           time.Now().UTC().Year(),
		Status:         domain.ContributionPending,
		PenaltyApplied: decimal.Zero,
	}
}

// --- Submit ---

func (suite *ContributionServiceTestSuite) TestSubmitContribution_Success() {
	ctx := context.Background()
	now := time.Now().UTC()
	req := dto.SubmitContributionRequest{
		Amount: decimal.NewFromInt(200),
		Month:  int(now.Month()),
		Year:   now.Year(),
	}

	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, suite.memberUserID, suite.groupID).Return(nil).Once()
	suite.mockGroupSvc.On("FindGroupByID", ctx, suite.groupID).Return(&suite.group, nil).Once()
	suite.mockContributionRepo.On("SaveContribution", ctx, mock.AnythingOfType("domain.Contribution")).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	contribution, err := suite.service.SubmitContribution(ctx, suite.groupID, req, suite.memberUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(contribution)
	suite.NotEmpty(contribution.ContributionID)
	suite.Equal(domain.ContributionPending, contribution.Status)
	suite.False(contribution.IsLate)
	suite.True(contribution.PenaltyApplied.IsZero())
	suite.Equal(suite.memberUserID, contribution.CreatedBy)

	suite.mockContributionRepo.AssertExpectations(suite.T())
	suite.mockGroupSvc.AssertExpectations(suite.T())
}

func (suite *ContributionServiceTestSuite) TestSubmitContribution_PastPeriodStampsPenalty() {
	ctx := context.Background()
	req := dto.SubmitContributionRequest{
		Amount: decimal.NewFromInt(200),
		Month:  1,
		Year:   2020,
	}

	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, suite.memberUserID, suite.groupID).Return(nil).Once()
	suite.mockGroupSvc.On("FindGroupByID", ctx, suite.groupID).Return(&suite.group, nil).Once()
	suite.mockContributionRepo.On("SaveContribution", ctx, mock.AnythingOfType("domain.Contribution")).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	contribution, err := suite.service.SubmitContribution(ctx, suite.groupID, req, suite.memberUserID)

	suite.Require().NoError(err)
	suite.True(contribution.IsLate)
	suite.True(contribution.PenaltyApplied.Equal(suite.group.PenaltyAmount))
}

func (suite *ContributionServiceTestSuite) TestSubmitContribution_NotAMember() {
	ctx := context.Background()
	req := dto.SubmitContributionRequest{Amount: decimal.NewFromInt(200), Month: 1, Year: 2025}

	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, suite.memberUserID, suite.groupID).Return(apperrors.ErrForbidden).Once()

	contribution, err := suite.service.SubmitContribution(ctx, suite.groupID, req, suite.memberUserID)

	suite.Require().Error(err)
	suite.Nil(contribution)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SaveContribution", mock.Anything, mock.Anything)
}

func (suite *ContributionServiceTestSuite) TestSubmitContribution_NonPositiveAmount() {
	ctx := context.Background()
	req := dto.SubmitContributionRequest{Amount: decimal.NewFromInt(-5), Month: 1, Year: 2025}

	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, suite.memberUserID, suite.groupID).Return(nil).Once()

	contribution, err := suite.service.SubmitContribution(ctx, suite.groupID, req, suite.memberUserID)

	suite.Require().Error(err)
	suite.Nil(contribution)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SaveContribution", mock.Anything, mock.Anything)
}

// --- Single review ---

func (suite *ContributionServiceTestSuite) TestReviewContribution_ApproveSuccess() {
	ctx := context.Background()
	pending := suite.pendingContribution()

	settled := *pending
	settled.Status = domain.ContributionCompleted
	settled.ReviewedBy = &suite.officerUserID

	suite.mockContributionRepo.On("FindContributionByID", ctx, pending.ContributionID).Return(pending, nil).Once()
	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.officerUserID, suite.groupID).Return(nil).Once()
	suite.mockContributionRepo.On("SettleContributions", ctx, []string{pending.ContributionID}, suite.officerUserID, mock.AnythingOfType("time.Time")).
		Return([]domain.Contribution{settled}, nil).Once()
	suite.mockActivityRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	result, err := suite.service.ReviewContribution(ctx, pending.ContributionID, dto.ReviewContributionRequest{Decision: domain.DecisionApprove}, suite.officerUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(result)
	suite.Equal(domain.ContributionCompleted, result.Status)
	suite.Equal(&suite.officerUserID, result.ReviewedBy)
	suite.mockContributionRepo.AssertExpectations(suite.T())
}

func (suite *ContributionServiceTestSuite) TestReviewContribution_RejectSuccess() {
	ctx := context.Background()
	pending := suite.pendingContribution()
	reason := "amount does not match deposit slip"

	rejected := *pending
	rejected.Status = domain.ContributionRejected
	rejected.RejectionReason = &reason

	suite.mockContributionRepo.On("FindContributionByID", ctx, pending.ContributionID).Return(pending, nil).Once()
	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.officerUserID, suite.groupID).Return(nil).Once()
	suite.mockContributionRepo.On("RejectContributions", ctx, []string{pending.ContributionID}, suite.officerUserID, reason, mock.AnythingOfType("time.Time")).
		Return([]domain.Contribution{rejected}, nil).Once()
	suite.mockActivityRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	result, err := suite.service.ReviewContribution(ctx, pending.ContributionID, dto.ReviewContributionRequest{Decision: domain.DecisionReject, RejectionReason: reason}, suite.officerUserID)

	suite.Require().NoError(err)
	suite.Equal(domain.ContributionRejected, result.Status)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SettleContributions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContributionServiceTestSuite) TestReviewContribution_AlreadyTerminal() {
	ctx := context.Background()
	completed := suite.pendingContribution()
	completed.Status = domain.ContributionCompleted

	suite.mockContributionRepo.On("FindContributionByID", ctx, completed.ContributionID).Return(completed, nil).Once()
	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.officerUserID, suite.groupID).Return(nil).Once()

	result, err := suite.service.ReviewContribution(ctx, completed.ContributionID, dto.ReviewContributionRequest{Decision: domain.DecisionApprove}, suite.officerUserID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SettleContributions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContributionServiceTestSuite) TestReviewContribution_PermissionDenied() {
	ctx := context.Background()
	pending := suite.pendingContribution()

	suite.mockContributionRepo.On("FindContributionByID", ctx, pending.ContributionID).Return(pending, nil).Once()
	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.memberUserID, suite.groupID).Return(apperrors.ErrForbidden).Once()

	result, err := suite.service.ReviewContribution(ctx, pending.ContributionID, dto.ReviewContributionRequest{Decision: domain.DecisionApprove}, suite.memberUserID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ContributionServiceTestSuite) TestReviewContribution_NotFound() {
	ctx := context.Background()
	missingID := uuid.NewString()

	suite.mockContributionRepo.On("FindContributionByID", ctx, missingID).Return(nil, apperrors.ErrNotFound).Once()

	result, err := suite.service.ReviewContribution(ctx, missingID, dto.ReviewContributionRequest{Decision: domain.DecisionApprove}, suite.officerUserID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *ContributionServiceTestSuite) TestReviewContribution_NotificationFailureIgnored() {
	ctx := context.Background()
	pending := suite.pendingContribution()

	settled := *pending
	settled.Status = domain.ContributionCompleted

	suite.mockContributionRepo.On("FindContributionByID", ctx, pending.ContributionID).Return(pending, nil).Once()
	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.officerUserID, suite.groupID).Return(nil).Once()
	suite.mockContributionRepo.On("SettleContributions", ctx, []string{pending.ContributionID}, suite.officerUserID, mock.AnythingOfType("time.Time")).
		Return([]domain.Contribution{settled}, nil).Once()
	suite.mockActivityRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(errors.New("queue unavailable")).Once()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.AnythingOfType("domain.Activity")).Return(nil).Once()

	result, err := suite.service.ReviewContribution(ctx, pending.ContributionID, dto.ReviewContributionRequest{Decision: domain.DecisionApprove}, suite.officerUserID)

	// Notification failures never fail the committed review.
	suite.Require().NoError(err)
	suite.Equal(domain.ContributionCompleted, result.Status)
}

// --- Batch review ---

func (suite *ContributionServiceTestSuite) TestReviewBatch_ApproveSuccess() {
	ctx := context.Background()
	first := suite.pendingContribution()
	second := suite.pendingContribution()
	ids := []string{first.ContributionID, second.ContributionID}

	settledFirst := *first
	settledFirst.Status = domain.ContributionCompleted
	settledSecond := *second
	settledSecond.Status = domain.ContributionCompleted

	suite.mockContributionRepo.On("FindContributionsByIDs", ctx, ids).
		Return(map[string]domain.Contribution{first.ContributionID: *first, second.ContributionID: *second}, nil).Once()
	// Both contributions share a group: authorization runs once.
	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.officerUserID, suite.groupID).Return(nil).Once()
	suite.mockContributionRepo.On("SettleContributions", ctx, ids, suite.officerUserID, mock.AnythingOfType("time.Time")).
		Return([]domain.Contribution{settledFirst, settledSecond}, nil).Once()
	suite.mockActivityRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Twice()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.AnythingOfType("domain.Activity")).Return(nil).Twice()

	results, err := suite.service.ReviewContributionsBatch(ctx, dto.BatchReviewRequest{ContributionIDs: ids, Decision: domain.DecisionApprove}, suite.officerUserID)

	suite.Require().NoError(err)
	suite.Len(results, 2)
	suite.mockGroupSvc.AssertNumberOfCalls(suite.T(), "AuthorizeOfficerAction", 1)
	suite.mockContributionRepo.AssertExpectations(suite.T())
}

func (suite *ContributionServiceTestSuite) TestReviewBatch_MissingItemAbortsAll() {
	ctx := context.Background()
	existing := suite.pendingContribution()
	missingID := uuid.NewString()
	ids := []string{existing.ContributionID, missingID}

	suite.mockContributionRepo.On("FindContributionsByIDs", ctx, ids).
		Return(map[string]domain.Contribution{existing.ContributionID: *existing}, nil).Once()

	results, err := suite.service.ReviewContributionsBatch(ctx, dto.BatchReviewRequest{ContributionIDs: ids, Decision: domain.DecisionApprove}, suite.officerUserID)

	suite.Require().Error(err)
	suite.Nil(results)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SettleContributions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContributionServiceTestSuite) TestReviewBatch_TerminalItemAbortsAll() {
	ctx := context.Background()
	pending := suite.pendingContribution()
	rejected := suite.pendingContribution()
	rejected.Status = domain.ContributionRejected
	ids := []string{pending.ContributionID, rejected.ContributionID}

	suite.mockContributionRepo.On("FindContributionsByIDs", ctx, ids).
		Return(map[string]domain.Contribution{pending.ContributionID: *pending, rejected.ContributionID: *rejected}, nil).Once()

	results, err := suite.service.ReviewContributionsBatch(ctx, dto.BatchReviewRequest{ContributionIDs: ids, Decision: domain.DecisionApprove}, suite.officerUserID)

	suite.Require().Error(err)
	suite.Nil(results)
	suite.ErrorIs(err, apperrors.ErrInvalidState)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SettleContributions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockGroupSvc.AssertNotCalled(suite.T(), "AuthorizeOfficerAction", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContributionServiceTestSuite) TestReviewBatch_EmptyBatch() {
	ctx := context.Background()

	results, err := suite.service.ReviewContributionsBatch(ctx, dto.BatchReviewRequest{Decision: domain.DecisionApprove}, suite.officerUserID)

	suite.Require().Error(err)
	suite.Nil(results)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Cash payments ---

func (suite *ContributionServiceTestSuite) TestRecordCashPayment_Success() {
	ctx := context.Background()
	now := time.Now().UTC()
	req := dto.CashPaymentRequest{
		UserID: suite.memberUserID,
		Amount: decimal.NewFromInt(250),
		Month:  int(now.Month()),
		Year:   now.Year(),
	}
	member := &domain.Member{
		MemberID: uuid.NewString(),
		GroupID:  suite.groupID,
		UserID:   suite.memberUserID,
		Role:     domain.RoleOrdinary,
		Status:   domain.MemberActive,
	}

	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.officerUserID, suite.groupID).Return(nil).Once()
	suite.mockGroupSvc.On("FindMember", ctx, suite.groupID, suite.memberUserID).Return(member, nil).Once()
	suite.mockGroupSvc.On("FindGroupByID", ctx, suite.groupID).Return(&suite.group, nil).Once()

	// Echo the settled contribution back, the way the repository would.
	var settled domain.Contribution
	suite.mockContributionRepo.On("SettleCashContribution", ctx, mock.AnythingOfType("domain.Contribution")).
		Run(func(args mock.Arguments) { settled = args.Get(1).(domain.Contribution) }).
		Return(&settled, nil).Once()
	suite.mockActivityRepo.On("SaveActivity", ctx, mock.AnythingOfType("domain.Activity")).Return(nil).Twice()
	suite.mockActivityRepo.On("SaveNotification", ctx, mock.AnythingOfType("domain.Notification")).Return(nil).Once()

	contribution, err := suite.service.RecordCashPayment(ctx, suite.groupID, req, suite.officerUserID)

	suite.Require().NoError(err)
	suite.Require().NotNil(contribution)
	suite.Equal(domain.ContributionCompleted, contribution.Status)
	suite.Equal(&suite.officerUserID, contribution.ReviewedBy)
	suite.Require().NotNil(contribution.ReviewedAt)
	suite.mockContributionRepo.AssertExpectations(suite.T())
}

func (suite *ContributionServiceTestSuite) TestRecordCashPayment_OrdinaryMemberForbidden() {
	ctx := context.Background()
	req := dto.CashPaymentRequest{UserID: suite.memberUserID, Amount: decimal.NewFromInt(100), Month: 1, Year: 2025}

	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.memberUserID, suite.groupID).Return(apperrors.ErrForbidden).Once()

	contribution, err := suite.service.RecordCashPayment(ctx, suite.groupID, req, suite.memberUserID)

	suite.Require().Error(err)
	suite.Nil(contribution)
	suite.ErrorIs(err, apperrors.ErrForbidden)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SettleCashContribution", mock.Anything, mock.Anything)
}

func (suite *ContributionServiceTestSuite) TestRecordCashPayment_TargetNotAMember() {
	ctx := context.Background()
	req := dto.CashPaymentRequest{UserID: suite.memberUserID, Amount: decimal.NewFromInt(100), Month: 1, Year: 2025}

	suite.mockGroupSvc.On("AuthorizeOfficerAction", ctx, suite.officerUserID, suite.groupID).Return(nil).Once()
	suite.mockGroupSvc.On("FindMember", ctx, suite.groupID, suite.memberUserID).Return(nil, apperrors.ErrNotFound).Once()

	contribution, err := suite.service.RecordCashPayment(ctx, suite.groupID, req, suite.officerUserID)

	suite.Require().Error(err)
	suite.Nil(contribution)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "SettleCashContribution", mock.Anything, mock.Anything)
}

// --- Reads ---

func (suite *ContributionServiceTestSuite) TestGetContributionByID_Success() {
	ctx := context.Background()
	pending := suite.pendingContribution()

	suite.mockContributionRepo.On("FindContributionByID", ctx, pending.ContributionID).Return(pending, nil).Once()
	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, suite.memberUserID, suite.groupID).Return(nil).Once()

	result, err := suite.service.GetContributionByID(ctx, pending.ContributionID, suite.memberUserID)

	suite.Require().NoError(err)
	suite.Equal(pending.ContributionID, result.ContributionID)
}

func (suite *ContributionServiceTestSuite) TestGetContributionByID_OutsiderForbidden() {
	ctx := context.Background()
	pending := suite.pendingContribution()
	outsiderID := uuid.NewString()

	suite.mockContributionRepo.On("FindContributionByID", ctx, pending.ContributionID).Return(pending, nil).Once()
	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, outsiderID, suite.groupID).Return(apperrors.ErrForbidden).Once()

	result, err := suite.service.GetContributionByID(ctx, pending.ContributionID, outsiderID)

	suite.Require().Error(err)
	suite.Nil(result)
	suite.ErrorIs(err, apperrors.ErrForbidden)
}

func (suite *ContributionServiceTestSuite) TestListGroupContributions_InvalidStatusFilter() {
	ctx := context.Background()
	badStatus := "SETTLED"
	params := dto.ListContributionsParams{Status: &badStatus}

	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, suite.memberUserID, suite.groupID).Return(nil).Once()

	resp, err := suite.service.ListGroupContributions(ctx, suite.groupID, suite.memberUserID, params)

	suite.Require().Error(err)
	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockContributionRepo.AssertNotCalled(suite.T(), "ListContributionsByGroup", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ContributionServiceTestSuite) TestListGroupContributions_Success() {
	ctx := context.Background()
	pending := suite.pendingContribution()
	params := dto.ListContributionsParams{Limit: 10}

	suite.mockGroupSvc.On("AuthorizeMemberAction", ctx, suite.memberUserID, suite.groupID).Return(nil).Once()
	suite.mockContributionRepo.On("ListContributionsByGroup", ctx, suite.groupID, 10, (*string)(nil), portsrepo.ContributionFilter{}).
		Return([]domain.Contribution{*pending}, nil, nil).Once()

	resp, err := suite.service.ListGroupContributions(ctx, suite.groupID, suite.memberUserID, params)

	suite.Require().NoError(err)
	suite.Require().NotNil(resp)
	suite.Len(resp.Contributions, 1)
	suite.Nil(resp.NextToken)
}

func TestContributionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ContributionServiceTestSuite))
}
