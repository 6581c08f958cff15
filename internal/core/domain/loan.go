package domain

import "github.com/shopspring/decimal"

// LoanStatus indicates the state of a loan.
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanActive   LoanStatus = "ACTIVE"
	LoanRepaid   LoanStatus = "REPAID"
	LoanRejected LoanStatus = "REJECTED"
)

// Loan represents a loan taken by a member against the group fund. Only its
// presence in a non-terminal state matters to the eligibility calculator;
// disbursement and repayment scheduling live outside this service.
type Loan struct {
	LoanID  string          `json:"loanID"` // Primary Key (e.g., UUID)
	GroupID string          `json:"groupID"`
	UserID  string          `json:"userID"`
	Amount  decimal.Decimal `json:"amount"`
	Status  LoanStatus      `json:"status"`
	AuditFields
}

// LoanEligibility is the derived loan-eligibility view for one member,
// computed from confirmed contribution history only.
type LoanEligibility struct {
	Eligible           bool            `json:"eligible"`
	MaxLoanAmount      decimal.Decimal `json:"maxLoanAmount"`
	ContributionsCount int64           `json:"contributionsCount"`
	TotalContributions decimal.Decimal `json:"totalContributions"`
	Reason             string          `json:"reason,omitempty"`
}
