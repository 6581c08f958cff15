package services

import (
	"context"

	"github.com/vikoba/vikoba_backend/internal/core/domain"
)

// GroupReaderSvc defines read operations for group data
type GroupReaderSvc interface {
	// FindGroupByID retrieves a group by its ID.
	FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error)

	// FindMember retrieves a user's membership in a group.
	FindMember(ctx context.Context, groupID, userID string) (*domain.Member, error)
}

// GroupAuthorizerSvc is the single authorization predicate consumed by every
// financial entry point.
type GroupAuthorizerSvc interface {
	// AuthorizeOfficerAction verifies the user is an active admin or
	// treasurer of the group. Returns apperrors.ErrForbidden otherwise.
	AuthorizeOfficerAction(ctx context.Context, userID, groupID string) error

	// AuthorizeMemberAction verifies the user is an active member of the
	// group (any role). Returns apperrors.ErrForbidden otherwise.
	AuthorizeMemberAction(ctx context.Context, userID, groupID string) error
}

// GroupSvcFacade combines all group-related service interfaces.
type GroupSvcFacade interface {
	GroupReaderSvc
	GroupAuthorizerSvc
}
