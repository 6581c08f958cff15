package dto

import (
	"github.com/shopspring/decimal"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// LoanEligibilityResponse is the derived eligibility view returned to clients.
// MaxLoanAmount is reported even when not eligible, for display purposes.
type LoanEligibilityResponse struct {
	Eligible           bool            `json:"eligible"`
	MaxLoanAmount      decimal.Decimal `json:"maxLoanAmount"`
	ContributionsCount int64           `json:"contributionsCount"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	Reason             string          `json:"reason,omitempty"`
}

// ToLoanEligibilityResponse converts the domain eligibility view to its DTO.
func ToLoanEligibilityResponse(e *domain.LoanEligibility) LoanEligibilityResponse {
	return LoanEligibilityResponse{
		Eligible:           e.Eligible,
		MaxLoanAmount:      e.MaxLoanAmount,
		ContributionsCount: e.ContributionsCount,
		TotalContributions: e.TotalContributions,
		Reason:             e.Reason,
	}
}
