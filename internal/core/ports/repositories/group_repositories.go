package repositories

import (
	"context"

	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// GroupReader defines read operations for group data
type GroupReader interface {
	// FindGroupByID retrieves a specific group by its unique identifier.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)
}

// MemberReader defines read operations for group membership data
type MemberReader interface {
	// FindMemberByGroupAndUser retrieves a user's membership in a group,
	// including the financial fields. Returns apperrors.ErrNotFound when the
	// user is not a member.
	FindMemberByGroupAndUser(ctx context.Context, groupID, userID string) (*domain.Member, error)

	// ListMembersByGroup retrieves all memberships of a group.
	ListMembersByGroup(ctx context.Context, groupID string) ([]domain.Member, error)
}

// GroupRepositoryFacade combines all group-related repository interfaces.
type GroupRepositoryFacade interface {
	GroupReader
	MemberReader
}
