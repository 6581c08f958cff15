package models

import "github.com/shopspring/decimal"

// LoanStatus mirrors domain.LoanStatus at the persistence layer.
type LoanStatus string

const (
	LoanPending  LoanStatus = "PENDING"
	LoanApproved LoanStatus = "APPROVED"
	LoanActive   LoanStatus = "ACTIVE"
	LoanRepaid   LoanStatus = "REPAID"
	LoanRejected LoanStatus = "REJECTED"
)

// Loan is the persistence model for a loan row.
type Loan struct {
	LoanID  string          `json:"loanID"` // Primary Key (e.g., UUID)
	GroupID string          `json:"groupID"`
	UserID  string          `json:"userID"`
	Amount  decimal.Decimal `json:"amount"`
	Status  LoanStatus      `json:"status"`
	AuditFields
}
