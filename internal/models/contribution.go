package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionStatus mirrors domain.ContributionStatus at the persistence layer.
type ContributionStatus string

const (
	ContributionPending   ContributionStatus = "PENDING"
	ContributionCompleted ContributionStatus = "COMPLETED"
	ContributionRejected  ContributionStatus = "REJECTED"
	ContributionFailed    ContributionStatus = "FAILED"
)

// Contribution is the persistence model for a contribution row. Several rows
// may exist per (group, user, month, year); the schema deliberately carries no
// uniqueness constraint on the period tuple.
type Contribution struct {
	ContributionID  string             `json:"contributionID"` // Primary Key (e.g., UUID)
	GroupID         string             `json:"groupID"`        // FK -> groups.group_id
	UserID          string             `json:"userID"`         // FK -> users.user_id
	Amount          decimal.Decimal    `json:"amount"`
	Month           int                `json:"month"`
	Year            int                `json:"year"`
	Status          ContributionStatus `json:"status"`
	IsLate          bool               `json:"isLate"`
	PenaltyApplied  decimal.Decimal    `json:"penaltyApplied"`
	ReviewedBy      *string            `json:"reviewedBy"`
	ReviewedAt      *time.Time         `json:"reviewedAt"`
	RejectionReason *string            `json:"rejectionReason"`
	AuditFields
}
