package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// SubmitContributionRequest is the payload for a member submitting a
// contribution toward a period. Lateness and penalty are stamped server-side.
type SubmitContributionRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Month  int             `json:"month" binding:"required,min=1,max=12"`
	Year   int             `json:"year" binding:"required,min=2000,max=2100"`
}

// ReviewContributionRequest is the payload for an officer reviewing a single
// pending contribution.
type ReviewContributionRequest struct {
	Decision        domain.ReviewDecision `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	RejectionReason string                `json:"rejectionReason"`
}

// BatchReviewRequest is the payload for reviewing several contributions in
// one all-or-nothing transaction.
type BatchReviewRequest struct {
	ContributionIDs []string              `json:"contributionIDs" binding:"required,min=1,dive,required"`
	Decision        domain.ReviewDecision `json:"decision" binding:"required,oneof=APPROVE REJECT"`
	RejectionReason string                `json:"rejectionReason"`
}

// CashPaymentRequest is the payload for an officer recording a cash payment
// received outside the app. The contribution is created already completed.
type CashPaymentRequest struct {
	UserID string          `json:"userID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Month  int             `json:"month" binding:"required,min=1,max=12"`
	Year   int             `json:"year" binding:"required,min=2000,max=2100"`
}

// ContributionResponse defines the data returned for a contribution.
type ContributionResponse struct {
	ContributionID  string          `json:"contributionID"`
	GroupID         string          `json:"groupID"`
	UserID          string          `json:"userID"`
	Amount          decimal.Decimal `json:"amount"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	Status          string          `json:"status"`
	IsLate          bool            `json:"isLate"`
	PenaltyApplied  decimal.Decimal `json:"penaltyApplied"`
	ReviewedBy      *string         `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time      `json:"reviewedAt,omitempty"`
	RejectionReason *string         `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// ListContributionsParams holds query parameters for listing contributions.
type ListContributionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Status    *string `form:"status"`
	Month     *int    `form:"month"`
	Year      *int    `form:"year"`
	UserID    *string `form:"userID"`
}

// ListContributionsResponse is the paginated listing payload.
type ListContributionsResponse struct {
	Contributions []ContributionResponse `json:"contributions"`
	NextToken     *string                `json:"nextToken,omitempty"`
}

// ToContributionResponse converts a domain.Contribution to its response DTO.
func ToContributionResponse(c *domain.Contribution) ContributionResponse {
	return ContributionResponse{
		ContributionID:  c.ContributionID,
		GroupID:         c.GroupID,
		UserID:          c.UserID,
		Amount:          c.Amount,
		Month:           c.Month,
		Year:            c.Year,
		Status:          string(c.Status),
		IsLate:          c.IsLate,
		PenaltyApplied:  c.PenaltyApplied,
		ReviewedBy:      c.ReviewedBy,
		ReviewedAt:      c.ReviewedAt,
		RejectionReason: c.RejectionReason,
		CreatedAt:       c.CreatedAt,
	}
}

// ToContributionResponses converts a slice of domain contributions.
func ToContributionResponses(cs []domain.Contribution) []ContributionResponse {
	responses := make([]ContributionResponse, len(cs))
	for i := range cs {
		responses[i] = ToContributionResponse(&cs[i])
	}
	return responses
}
