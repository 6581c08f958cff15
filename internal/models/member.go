package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// MemberRole mirrors domain.MemberRole at the persistence layer.
type MemberRole string

const (
	RoleAdmin     MemberRole = "ADMIN"
	RoleTreasurer MemberRole = "TREASURER"
	RoleOrdinary  MemberRole = "ORDINARY"
)

// MemberStatus mirrors domain.MemberStatus at the persistence layer.
type MemberStatus string

const (
	MemberActive    MemberStatus = "ACTIVE"
	MemberSuspended MemberStatus = "SUSPENDED"
	MemberPending   MemberStatus = "PENDING"
)

// Member is the persistence model for a group membership row. Balance and
// UnpaidPenalties are only written inside the contribution settlement
// transaction.
type Member struct {
	MemberID        string          `json:"memberID"` // Primary Key (e.g., UUID)
	GroupID         string          `json:"groupID"`  // FK -> groups.group_id
	UserID          string          `json:"userID"`   // FK -> users.user_id
	Role            MemberRole      `json:"role"`
	Status          MemberStatus    `json:"status"`
	Balance         decimal.Decimal `json:"balance"`
	UnpaidPenalties decimal.Decimal `json:"unpaidPenalties"`
	JoinedAt        time.Time       `json:"joinedAt"`
	AuditFields
}
