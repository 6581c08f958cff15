package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/vikoba/vikoba_backend/internal/apperrors"
	"github.com/vikoba/vikoba_backend/internal/core/domain"
	portsrepo "github.com/vikoba/vikoba_backend/internal/core/ports/repositories"
	portssvc "github.com/vikoba/vikoba_backend/internal/core/ports/services"
)

// groupService provides group lookups and the shared authorization predicate
// used by every contribution entry point.
type groupService struct {
	BaseService
	groupRepo portsrepo.GroupRepositoryFacade
}

// NewGroupService creates a new GroupService.
func NewGroupService(groupRepo portsrepo.GroupRepositoryFacade) portssvc.GroupSvcFacade {
	return &groupService{groupRepo: groupRepo}
}

// Ensure groupService implements the portssvc.GroupSvcFacade interface
var _ portssvc.GroupSvcFacade = (*groupService)(nil)

// FindGroupByID retrieves a group by its ID.
func (s *groupService) FindGroupByID(ctx context.Context, groupID string) (*domain.Group, error) {
	group, err := s.groupRepo.FindGroupByID(ctx, groupID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group by ID", slog.String("group_id", groupID))
		}
		return nil, err
	}
	return group, nil
}

// FindMember retrieves a user's membership in a group.
func (s *groupService) FindMember(ctx context.Context, groupID, userID string) (*domain.Member, error) {
	member, err := s.groupRepo.FindMemberByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find group member",
				slog.String("group_id", groupID), slog.String("user_id", userID))
		}
		return nil, err
	}
	return member, nil
}

// AuthorizeOfficerAction verifies the user is an active admin or treasurer of
// the group. Every entry point that reviews or records payments goes through
// this single predicate rather than re-implementing the role check inline.
func (s *groupService) AuthorizeOfficerAction(ctx context.Context, userID, groupID string) error {
	member, err := s.groupRepo.FindMemberByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "User not a member of group",
				slog.String("user_id", userID), slog.String("group_id", groupID))
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to look up group membership",
			slog.String("user_id", userID), slog.String("group_id", groupID))
		return err
	}

	if !member.CanReview() {
		s.LogDebug(ctx, "User lacks officer role or is not active",
			slog.String("user_id", userID),
			slog.String("group_id", groupID),
			slog.String("role", string(member.Role)),
			slog.String("status", string(member.Status)))
		return fmt.Errorf("%w: officer role required", apperrors.ErrForbidden)
	}

	return nil
}

// AuthorizeMemberAction verifies the user is an active member of the group.
func (s *groupService) AuthorizeMemberAction(ctx context.Context, userID, groupID string) error {
	member, err := s.groupRepo.FindMemberByGroupAndUser(ctx, groupID, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.ErrForbidden
		}
		s.LogError(ctx, err, "Failed to look up group membership",
			slog.String("user_id", userID), slog.String("group_id", groupID))
		return err
	}

	if member.Status != domain.MemberActive {
		return fmt.Errorf("%w: membership is %s", apperrors.ErrForbidden, member.Status)
	}

	return nil
}
