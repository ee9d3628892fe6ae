package member

import "time"

// UpdateMemberRequest represents the request body for updating my profile
type UpdateMemberRequest struct {
	Nickname        *string `json:"nickname,omitempty" validate:"omitempty,min=2,max=50"`
	ProfileImageURL *string `json:"profile_image_url,omitempty" validate:"omitempty,max=500"`
}

// MemberResponse represents the response for a member profile
type MemberResponse struct {
	ID              int64   `json:"id"`
	Email           string  `json:"email"`
	Nickname        string  `json:"nickname"`
	ProfileImageURL *string `json:"profile_image_url,omitempty"`
	CreatedAt       string  `json:"created_at"`
}

// ToResponse converts a Member model to a MemberResponse DTO
func (m *Member) ToResponse() *MemberResponse {
	return &MemberResponse{
		ID:              m.ID,
		Email:           m.Email.String(),
		Nickname:        m.Nickname.String(),
		ProfileImageURL: m.ProfileImageURL,
		CreatedAt:       m.CreatedAt.UTC().Format(time.RFC3339),
	}
}
