package models

import "github.com/shopspring/decimal"

// Group is the persistence model for a savings group row.
type Group struct {
	GroupID               string          `json:"groupID"` // Primary Key (e.g., UUID)
	Name                  string          `json:"name"`
	Description           string          `json:"description"`
	MonthlyDueAmount      decimal.Decimal `json:"monthlyDueAmount"`
	PenaltyAmount         decimal.Decimal `json:"penaltyAmount"`
	ContributionDueDay    int             `json:"contributionDueDay"`
	MinContributionMonths int             `json:"minContributionMonths"`
	MaxLoanMultiplier     decimal.Decimal `json:"maxLoanMultiplier"`
	IsActive              bool            `json:"isActive"`
	AuditFields
}
