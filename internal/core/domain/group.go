package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Group represents a community savings group ("village bank") with its
// contribution schedule and loan policy. Groups are read-only inputs during
// contribution settlement.
type Group struct {
	GroupID               string          `json:"groupID"`               // Primary Key (e.g., UUID)
	Name                  string          `json:"name"`                  // User-defined name for the group
	Description           string          `json:"description"`           // Optional description
	MonthlyDueAmount      decimal.Decimal `json:"monthlyDueAmount"`      // Fixed contribution expected per member per month
	PenaltyAmount         decimal.Decimal `json:"penaltyAmount"`         // Flat fee charged on late contributions
	ContributionDueDay    int             `json:"contributionDueDay"`    // Day of month (1-31) contributions fall due
	MinContributionMonths int             `json:"minContributionMonths"` // Completed months required before loan eligibility
	MaxLoanMultiplier     decimal.Decimal `json:"maxLoanMultiplier"`     // Max loan = total contributions * multiplier
	IsActive              bool            `json:"isActive"`
	AuditFields
}

// MemberRole defines the possible roles a user can have within a group.
type MemberRole string

const (
	RoleAdmin     MemberRole = "ADMIN"
	RoleTreasurer MemberRole = "TREASURER"
	RoleOrdinary  MemberRole = "ORDINARY"
)

// MemberStatus defines the membership lifecycle states.
type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberSuspended MemberStatus = "SUSPENDED"
	MemberPending   MemberStatus = "PENDING"
)

// Member represents the membership of a user in a group, including the
// financial fields (Balance, UnpaidPenalties) that are mutated exclusively by
// the contribution settlement path.
type Member struct {
	MemberID        string          `json:"memberID"` // Primary Key (e.g., UUID)
	GroupID         string          `json:"groupID"`  // FK -> groups.group_id
	UserID          string          `json:"userID"`   // FK -> users.user_id
	Role            MemberRole      `json:"role"`
	Status          MemberStatus    `json:"status"`
	Balance         decimal.Decimal `json:"balance"`         // Free funds; may go negative (running shortfall)
	UnpaidPenalties decimal.Decimal `json:"unpaidPenalties"` // Outstanding late fees, never negative
	JoinedAt        time.Time       `json:"joinedAt"`
	AuditFields
}

// CanReview reports whether this member may review contributions for the
// group: only active admins and treasurers act as officers.
func (m Member) CanReview() bool {
	return m.Status == MemberActive && (m.Role == RoleAdmin || m.Role == RoleTreasurer)
}
