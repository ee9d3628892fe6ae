package member

import (
	"time"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// Status represents the lifecycle status of a member
type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusDeleted Status = "DELETED"
)

// Member represents a registered member. Members are soft-deleted: the row
// is kept for referential integrity but a DELETED member behaves as absent.
type Member struct {
	ID              int64               `json:"id"`
	Email           domain.Email        `json:"email"`
	PasswordHash    domain.PasswordHash `json:"-"`
	Nickname        domain.Nickname     `json:"nickname"`
	ProfileImageURL *string             `json:"profile_image_url,omitempty"`
	Status          Status              `json:"status"`
	CreatedAt       time.Time           `json:"created_at"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// New creates a new active member
func New(email domain.Email, passwordHash domain.PasswordHash, nickname domain.Nickname) *Member {
	now := time.Now()
	return &Member{
		Email:        email,
		PasswordHash: passwordHash,
		Nickname:     nickname,
		Status:       StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// UpdateProfile applies a partial profile update. Nil fields keep their
// current value.
func (m *Member) UpdateProfile(nickname *domain.Nickname, profileImageURL *string) {
	if nickname != nil {
		m.Nickname = *nickname
	}
	if profileImageURL != nil {
		m.ProfileImageURL = profileImageURL
	}
	m.UpdatedAt = time.Now()
}

// Withdraw soft-deletes the member
func (m *Member) Withdraw() {
	m.Status = StatusDeleted
	m.UpdatedAt = time.Now()
}

// IsActive reports whether the member can authenticate and act
func (m *Member) IsActive() bool {
	return m.Status == StatusActive
}
