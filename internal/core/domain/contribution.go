package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ContributionStatus indicates the state of a contribution record.
type ContributionStatus string

const (
	ContributionPending   ContributionStatus = "PENDING"
	ContributionCompleted ContributionStatus = "COMPLETED"
	ContributionRejected  ContributionStatus = "REJECTED"
	ContributionFailed    ContributionStatus = "FAILED"
)

// IsTerminal reports whether the status can never change again.
// Status transitions are monotonic: PENDING -> {COMPLETED, REJECTED}.
func (s ContributionStatus) IsTerminal() bool {
	return s == ContributionCompleted || s == ContributionRejected || s == ContributionFailed
}

// ReviewDecision is an officer's verdict on a pending contribution.
type ReviewDecision string

const (
	DecisionApprove ReviewDecision = "APPROVE"
	DecisionReject  ReviewDecision = "REJECT"
)

// Contribution represents one submitted payment toward a member's monthly
// obligation. A member may hold several contribution records for the same
// (group, month, year) period; obligation state is derived by querying the
// set, never assumed unique.
type Contribution struct {
	ContributionID  string             `json:"contributionID"` // Primary Key (e.g., UUID)
	GroupID         string             `json:"groupID"`        // FK -> groups.group_id
	UserID          string             `json:"userID"`         // FK -> users.user_id
	Amount          decimal.Decimal    `json:"amount"`
	Month           int                `json:"month"` // 1-12
	Year            int                `json:"year"`
	Status          ContributionStatus `json:"status"`
	IsLate          bool               `json:"isLate"`         // Fixed at submission time, never recomputed
	PenaltyApplied  decimal.Decimal    `json:"penaltyApplied"` // Fixed at submission time; 0 when on time
	ReviewedBy      *string            `json:"reviewedBy,omitempty"`
	ReviewedAt      *time.Time         `json:"reviewedAt,omitempty"`
	RejectionReason *string            `json:"rejectionReason,omitempty"`
	AuditFields
}

// ObligationState captures whether sibling records in a terminal-positive
// state already satisfied the period's monthly due and late penalty. It must
// be evaluated inside the same transaction as the settlement mutation.
type ObligationState struct {
	FeeAlreadyApplied     bool `json:"feeAlreadyApplied"`
	PenaltyAlreadyApplied bool `json:"penaltyAlreadyApplied"`
}
