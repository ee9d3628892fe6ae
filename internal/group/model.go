package group

import (
	"time"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// Type represents the kind of calendar group. Immutable after creation.
type Type string

const (
	TypeCouple Type = "COUPLE"
	TypeFriend Type = "FRIEND"
	TypeFamily Type = "FAMILY"
	TypeCustom Type = "CUSTOM"
)

// ParseType validates a group type token
func ParseType(v string) (Type, error) {
	switch Type(v) {
	case TypeCouple, TypeFriend, TypeFamily, TypeCustom:
		return Type(v), nil
	}
	return "", domain.Invalidf("unknown group type: %s", v)
}

// Role represents a member's role within a group
type Role string

const (
	RoleOwner  Role = "OWNER"
	RoleAdmin  Role = "ADMIN"
	RoleMember Role = "MEMBER"
)

// ParseRole validates a role token
func ParseRole(v string) (Role, error) {
	switch Role(v) {
	case RoleOwner, RoleAdmin, RoleMember:
		return Role(v), nil
	}
	return "", domain.Invalidf("unknown role: %s", v)
}

// CanManage reports whether the role may update the group, manage non-owner
// members, and generate invite codes
func (r Role) CanManage() bool {
	return r == RoleOwner || r == RoleAdmin
}

// IsOwner reports whether the role is OWNER
func (r Role) IsOwner() bool {
	return r == RoleOwner
}

const (
	// DefaultMaxMembers is the fixed member capacity of a group
	DefaultMaxMembers = 50
	// InviteCodeTTL is how long a freshly generated invite code stays valid
	InviteCodeTTL = 24 * time.Hour
)

// Group represents a shared calendar group. The invite code and its expiry
// are either both set or both absent.
type Group struct {
	ID                  int64              `json:"id"`
	Name                domain.GroupName   `json:"name"`
	Type                Type               `json:"type"`
	Description         *string            `json:"description,omitempty"`
	CoverImageURL       *string            `json:"cover_image_url,omitempty"`
	InviteCode          *domain.InviteCode `json:"-"`
	InviteCodeExpiresAt *time.Time         `json:"-"`
	MaxMembers          int                `json:"max_members"`
	CreatedAt           time.Time          `json:"created_at"`
	UpdatedAt           time.Time          `json:"updated_at"`
}

// New creates a group with the default capacity and no invite code
func New(name domain.GroupName, groupType Type, description, coverImageURL *string) *Group {
	now := time.Now()
	return &Group{
		Name:          name,
		Type:          groupType,
		Description:   description,
		CoverImageURL: coverImageURL,
		MaxMembers:    DefaultMaxMembers,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// Update applies a partial update. Nil fields keep their current value.
func (g *Group) Update(name *domain.GroupName, description, coverImageURL *string) {
	if name != nil {
		g.Name = *name
	}
	if description != nil {
		g.Description = description
	}
	if coverImageURL != nil {
		g.CoverImageURL = coverImageURL
	}
	g.UpdatedAt = time.Now()
}

// AssignInviteCode installs a fresh invite code valid for InviteCodeTTL from
// now, replacing and thereby invalidating any previous code.
func (g *Group) AssignInviteCode(code domain.InviteCode, now time.Time) {
	expiresAt := now.Add(InviteCodeTTL)
	g.InviteCode = &code
	g.InviteCodeExpiresAt = &expiresAt
	g.UpdatedAt = now
}

// IsInviteCodeValid reports whether the supplied code matches the group's
// current code and has not expired. Expiry is exclusive: a code is invalid
// at exactly its expiry instant.
func (g *Group) IsInviteCodeValid(code domain.InviteCode, now time.Time) bool {
	return g.InviteCode != nil &&
		*g.InviteCode == code &&
		g.InviteCodeExpiresAt != nil &&
		now.Before(*g.InviteCodeExpiresAt)
}

// CanAcceptNewMember reports whether the group has room for one more member
func (g *Group) CanAcceptNewMember(currentMemberCount int) bool {
	return currentMemberCount < g.MaxMembers
}

// GroupMember represents a member's membership in a group, with a role and
// an optional per-group display profile.
type GroupMember struct {
	ID          int64               `json:"id"`
	GroupID     int64               `json:"group_id"`
	MemberID    int64               `json:"member_id"`
	Role        Role                `json:"role"`
	DisplayName *domain.DisplayName `json:"display_name,omitempty"`
	Color       *domain.ColorHex    `json:"color,omitempty"`
	JoinedAt    time.Time           `json:"joined_at"`
}

// NewOwner creates the OWNER membership for a freshly created group
func NewOwner(groupID, memberID int64) *GroupMember {
	return &GroupMember{
		GroupID:  groupID,
		MemberID: memberID,
		Role:     RoleOwner,
		JoinedAt: time.Now(),
	}
}

// NewMember creates a plain MEMBER membership for a joining member
func NewMember(groupID, memberID int64) *GroupMember {
	return &GroupMember{
		GroupID:  groupID,
		MemberID: memberID,
		Role:     RoleMember,
		JoinedAt: time.Now(),
	}
}

// ChangeRole replaces the membership's role. Callers enforce that OWNER is
// never a source or target of a role change.
func (m *GroupMember) ChangeRole(newRole Role) {
	m.Role = newRole
}

// UpdateProfile applies a partial overlay update. Nil fields keep their
// current value.
func (m *GroupMember) UpdateProfile(displayName *domain.DisplayName, color *domain.ColorHex) {
	if displayName != nil {
		m.DisplayName = displayName
	}
	if color != nil {
		m.Color = color
	}
}
