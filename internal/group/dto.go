package group

import "time"

// CreateGroupRequest represents the request to create a new group
type CreateGroupRequest struct {
	Name          string  `json:"name" validate:"required,min=1,max=100"`
	Type          string  `json:"type" validate:"required,oneof=COUPLE FRIEND FAMILY CUSTOM"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=500"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,max=500"`
}

// UpdateGroupRequest represents the request to partially update a group.
// Omitted fields keep their current value.
type UpdateGroupRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Description   *string `json:"description,omitempty" validate:"omitempty,max=500"`
	CoverImageURL *string `json:"cover_image_url,omitempty" validate:"omitempty,max=500"`
}

// JoinGroupRequest represents the request to join a group via invite code
type JoinGroupRequest struct {
	InviteCode string `json:"invite_code" validate:"required,len=6"`
}

// UpdateGroupMemberRequest represents the request to update a member's role
// or per-group profile
type UpdateGroupMemberRequest struct {
	Role        *string `json:"role,omitempty"`
	DisplayName *string `json:"display_name,omitempty" validate:"omitempty,min=1,max=50"`
	Color       *string `json:"color,omitempty"`
}

// GroupResponse represents the response for a group
type GroupResponse struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Type          string  `json:"type"`
	Description   *string `json:"description,omitempty"`
	CoverImageURL *string `json:"cover_image_url,omitempty"`
	MaxMembers    int     `json:"max_members"`
	MemberCount   int     `json:"member_count"`
}

// GroupMemberResponse represents a membership in a group response
type GroupMemberResponse struct {
	ID          int64   `json:"id"`
	GroupID     int64   `json:"group_id"`
	MemberID    int64   `json:"member_id"`
	Role        string  `json:"role"`
	DisplayName *string `json:"display_name,omitempty"`
	Color       *string `json:"color,omitempty"`
	JoinedAt    string  `json:"joined_at"`
}

// InviteCodeResponse represents the response for invite code generation
type InviteCodeResponse struct {
	InviteCode string `json:"invite_code"`
	ExpiresAt  string `json:"expires_at"`
}

// GroupSummary pairs a group with its current member count
type GroupSummary struct {
	Group       *Group
	MemberCount int
}

// ToResponse converts a GroupSummary to a GroupResponse DTO
func (s *GroupSummary) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:            s.Group.ID,
		Name:          s.Group.Name.String(),
		Type:          string(s.Group.Type),
		Description:   s.Group.Description,
		CoverImageURL: s.Group.CoverImageURL,
		MaxMembers:    s.Group.MaxMembers,
		MemberCount:   s.MemberCount,
	}
}

// ToResponse converts a GroupMember model to a GroupMemberResponse DTO
func (m *GroupMember) ToResponse() *GroupMemberResponse {
	resp := &GroupMemberResponse{
		ID:       m.ID,
		GroupID:  m.GroupID,
		MemberID: m.MemberID,
		Role:     string(m.Role),
		JoinedAt: m.JoinedAt.UTC().Format(time.RFC3339),
	}
	if m.DisplayName != nil {
		v := m.DisplayName.String()
		resp.DisplayName = &v
	}
	if m.Color != nil {
		v := m.Color.String()
		resp.Color = &v
	}
	return resp
}
