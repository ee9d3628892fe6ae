package group

import (
	"context"
	"errors"
	"time"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// Common errors
var (
	ErrGroupNotFound          = errors.New("group not found")
	ErrGroupMemberNotFound    = errors.New("group member not found")
	ErrMaxGroupLimitExceeded  = errors.New("maximum number of joined groups exceeded")
	ErrMaxMemberLimitExceeded = errors.New("group member limit exceeded")
	ErrAlreadyGroupMember     = errors.New("already a member of this group")
	ErrInvalidInviteCode      = errors.New("invalid invite code")
	ErrInsufficientPermission = errors.New("insufficient permission")
	ErrOwnerCannotLeave       = errors.New("group owner cannot leave the group")
	ErrCannotRemoveOwner      = errors.New("group owner cannot be removed")

	// ErrInviteCodeTaken signals an invite code collision with another
	// group; generation retries on it.
	ErrInviteCodeTaken = errors.New("invite code already in use")
)

// MaxGroupsPerMember is how many groups a single member may belong to
const MaxGroupsPerMember = 10

// inviteCodeRetries bounds regeneration attempts on code collision
const inviteCodeRetries = 3

// GroupStore is the persistence port for groups. CreateWithOwner and
// DeleteWithMemberships are transactional: group and membership writes
// commit together or not at all.
type GroupStore interface {
	CreateWithOwner(ctx context.Context, g *Group, owner *GroupMember) error
	GetByID(ctx context.Context, id int64) (*Group, error)
	GetByInviteCode(ctx context.Context, code domain.InviteCode) (*Group, error)
	Update(ctx context.Context, g *Group) error
	DeleteWithMemberships(ctx context.Context, groupID int64) error
}

// MembershipStore is the persistence port for group memberships
type MembershipStore interface {
	Create(ctx context.Context, m *GroupMember) (*GroupMember, error)
	GetByGroupAndMember(ctx context.Context, groupID, memberID int64) (*GroupMember, error)
	ListByGroup(ctx context.Context, groupID int64) ([]*GroupMember, error)
	ListByMember(ctx context.Context, memberID int64) ([]*GroupMember, error)
	CountByGroup(ctx context.Context, groupID int64) (int, error)
	CountByMember(ctx context.Context, memberID int64) (int, error)
	Update(ctx context.Context, m *GroupMember) error
	Delete(ctx context.Context, id domain.GroupMemberID) error
}

// Service orchestrates groups and memberships: membership limits, role-based
// authorization, and owner protections all live here.
type Service struct {
	groups      GroupStore
	memberships MembershipStore
	codes       CodeGenerator
}

// NewService creates a new group service
func NewService(groups GroupStore, memberships MembershipStore, codes CodeGenerator) *Service {
	return &Service{groups: groups, memberships: memberships, codes: codes}
}

// Create creates a new group with the caller as its OWNER
func (s *Service) Create(ctx context.Context, callerID int64, req *CreateGroupRequest) (*GroupSummary, error) {
	count, err := s.memberships.CountByMember(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if count >= MaxGroupsPerMember {
		return nil, ErrMaxGroupLimitExceeded
	}

	name, err := domain.NewGroupName(req.Name)
	if err != nil {
		return nil, err
	}
	groupType, err := ParseType(req.Type)
	if err != nil {
		return nil, err
	}

	g := New(name, groupType, req.Description, req.CoverImageURL)
	owner := NewOwner(0, callerID)
	if err := s.groups.CreateWithOwner(ctx, g, owner); err != nil {
		return nil, err
	}

	return &GroupSummary{Group: g, MemberCount: 1}, nil
}

// ListMine retrieves all groups the caller belongs to
func (s *Service) ListMine(ctx context.Context, callerID int64) ([]*GroupSummary, error) {
	memberships, err := s.memberships.ListByMember(ctx, callerID)
	if err != nil {
		return nil, err
	}

	summaries := make([]*GroupSummary, 0, len(memberships))
	for _, m := range memberships {
		g, err := s.groups.GetByID(ctx, m.GroupID)
		if err != nil {
			return nil, err
		}
		if g == nil {
			continue
		}
		count, err := s.memberships.CountByGroup(ctx, m.GroupID)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, &GroupSummary{Group: g, MemberCount: count})
	}

	return summaries, nil
}

// Get retrieves a single group. Only members may see it; non-members get
// the same not-found error whether or not the group exists.
func (s *Service) Get(ctx context.Context, callerID, groupID int64) (*GroupSummary, error) {
	if _, err := s.requireMembership(ctx, groupID, callerID); err != nil {
		return nil, err
	}

	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	count, err := s.memberships.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &GroupSummary{Group: g, MemberCount: count}, nil
}

// Update partially updates a group. Requires OWNER or ADMIN.
func (s *Service) Update(ctx context.Context, callerID, groupID int64, req *UpdateGroupRequest) (*GroupSummary, error) {
	caller, err := s.requireMembership(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanManage() {
		return nil, ErrInsufficientPermission
	}

	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var name *domain.GroupName
	if req.Name != nil {
		n, err := domain.NewGroupName(*req.Name)
		if err != nil {
			return nil, err
		}
		name = &n
	}

	g.Update(name, req.Description, req.CoverImageURL)
	if err := s.groups.Update(ctx, g); err != nil {
		return nil, err
	}

	count, err := s.memberships.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &GroupSummary{Group: g, MemberCount: count}, nil
}

// Delete removes a group and all its memberships. Only the OWNER may
// delete a group.
func (s *Service) Delete(ctx context.Context, callerID, groupID int64) error {
	caller, err := s.requireMembership(ctx, groupID, callerID)
	if err != nil {
		return err
	}
	if !caller.Role.IsOwner() {
		return ErrInsufficientPermission
	}

	if _, err := s.findGroup(ctx, groupID); err != nil {
		return err
	}

	return s.groups.DeleteWithMemberships(ctx, groupID)
}

// GenerateInviteCode installs a fresh invite code on the group, replacing
// any previous one. Requires OWNER or ADMIN. Regenerates on collision with
// another group's active code.
func (s *Service) GenerateInviteCode(ctx context.Context, callerID, groupID int64) (*InviteCodeResponse, error) {
	caller, err := s.requireMembership(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.CanManage() {
		return nil, ErrInsufficientPermission
	}

	g, err := s.findGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	var saveErr error
	for attempt := 0; attempt < inviteCodeRetries; attempt++ {
		code, err := s.codes.Generate()
		if err != nil {
			return nil, err
		}

		g.AssignInviteCode(code, time.Now())
		saveErr = s.groups.Update(ctx, g)
		if saveErr == nil {
			return &InviteCodeResponse{
				InviteCode: code.String(),
				ExpiresAt:  g.InviteCodeExpiresAt.UTC().Format(time.RFC3339),
			}, nil
		}
		if !errors.Is(saveErr, ErrInviteCodeTaken) {
			return nil, saveErr
		}
	}

	return nil, saveErr
}

// Join adds the caller to the group behind a valid invite code. Error
// precedence: the caller's group-count limit is checked before the code is
// even looked up, and existing membership before capacity.
func (s *Service) Join(ctx context.Context, callerID int64, req *JoinGroupRequest) (*GroupMember, error) {
	code, err := domain.NewInviteCode(req.InviteCode)
	if err != nil {
		return nil, err
	}

	count, err := s.memberships.CountByMember(ctx, callerID)
	if err != nil {
		return nil, err
	}
	if count >= MaxGroupsPerMember {
		return nil, ErrMaxGroupLimitExceeded
	}

	g, err := s.groups.GetByInviteCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if g == nil || !g.IsInviteCodeValid(code, time.Now()) {
		return nil, ErrInvalidInviteCode
	}

	existing, err := s.memberships.GetByGroupAndMember(ctx, g.ID, callerID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrAlreadyGroupMember
	}

	memberCount, err := s.memberships.CountByGroup(ctx, g.ID)
	if err != nil {
		return nil, err
	}
	if !g.CanAcceptNewMember(memberCount) {
		return nil, ErrMaxMemberLimitExceeded
	}

	return s.memberships.Create(ctx, NewMember(g.ID, callerID))
}

// ListMembers retrieves all memberships of a group. Members only.
func (s *Service) ListMembers(ctx context.Context, callerID, groupID int64) ([]*GroupMember, error) {
	if _, err := s.requireMembership(ctx, groupID, callerID); err != nil {
		return nil, err
	}

	return s.memberships.ListByGroup(ctx, groupID)
}

// UpdateMember updates a member's role or per-group profile. Owner only.
// Role changes move strictly between ADMIN and MEMBER: the OWNER can
// neither be reassigned nor assigned by this operation.
func (s *Service) UpdateMember(ctx context.Context, callerID, groupID, targetMemberID int64, req *UpdateGroupMemberRequest) (*GroupMember, error) {
	caller, err := s.requireMembership(ctx, groupID, callerID)
	if err != nil {
		return nil, err
	}
	if !caller.Role.IsOwner() {
		return nil, ErrInsufficientPermission
	}

	target, err := s.memberships.GetByGroupAndMember(ctx, groupID, targetMemberID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrGroupMemberNotFound
	}

	if req.Role != nil {
		newRole, err := ParseRole(*req.Role)
		if err != nil {
			return nil, err
		}
		if target.Role.IsOwner() || newRole.IsOwner() {
			return nil, ErrInsufficientPermission
		}
		target.ChangeRole(newRole)
	}

	if req.DisplayName != nil || req.Color != nil {
		var displayName *domain.DisplayName
		if req.DisplayName != nil {
			d, err := domain.NewDisplayName(*req.DisplayName)
			if err != nil {
				return nil, err
			}
			displayName = &d
		}
		var color *domain.ColorHex
		if req.Color != nil {
			c, err := domain.NewColorHex(*req.Color)
			if err != nil {
				return nil, err
			}
			color = &c
		}
		target.UpdateProfile(displayName, color)
	}

	if err := s.memberships.Update(ctx, target); err != nil {
		return nil, err
	}

	return target, nil
}

// RemoveMember kicks a member out of the group. Requires OWNER or ADMIN;
// the OWNER can never be removed.
func (s *Service) RemoveMember(ctx context.Context, callerID, groupID, targetMemberID int64) error {
	caller, err := s.requireMembership(ctx, groupID, callerID)
	if err != nil {
		return err
	}
	if !caller.Role.CanManage() {
		return ErrInsufficientPermission
	}

	target, err := s.memberships.GetByGroupAndMember(ctx, groupID, targetMemberID)
	if err != nil {
		return err
	}
	if target == nil {
		return ErrGroupMemberNotFound
	}
	if target.Role.IsOwner() {
		return ErrCannotRemoveOwner
	}

	id, err := domain.NewGroupMemberID(target.ID)
	if err != nil {
		return err
	}
	return s.memberships.Delete(ctx, id)
}

// Leave removes the caller's own membership. The OWNER cannot leave; the
// group must be deleted or ownership transferred out of band first.
func (s *Service) Leave(ctx context.Context, callerID, groupID int64) error {
	m, err := s.requireMembership(ctx, groupID, callerID)
	if err != nil {
		return err
	}
	if m.Role.IsOwner() {
		return ErrOwnerCannotLeave
	}

	id, err := domain.NewGroupMemberID(m.ID)
	if err != nil {
		return err
	}
	return s.memberships.Delete(ctx, id)
}

func (s *Service) findGroup(ctx context.Context, groupID int64) (*Group, error) {
	g, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if g == nil {
		return nil, ErrGroupNotFound
	}
	return g, nil
}

func (s *Service) requireMembership(ctx context.Context, groupID, memberID int64) (*GroupMember, error) {
	m, err := s.memberships.GetByGroupAndMember(ctx, groupID, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrGroupMemberNotFound
	}
	return m, nil
}
