package auth

import (
	"time"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// RefreshToken is a stored, single-use refresh credential. Tokens are
// rotated on every refresh: the presented token is deleted and a new one
// issued.
type RefreshToken struct {
	ID        domain.RefreshTokenID `json:"id"`
	MemberID  int64                 `json:"member_id"`
	Token     string                `json:"-"`
	ExpiresAt time.Time             `json:"expires_at"`
	CreatedAt time.Time             `json:"created_at"`
}

// NewRefreshToken creates a refresh token record for a member
func NewRefreshToken(memberID int64, tokenValue string, expiresAt time.Time) *RefreshToken {
	return &RefreshToken{
		MemberID:  memberID,
		Token:     tokenValue,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
}

// IsExpired reports whether the token is past its expiry
func (t *RefreshToken) IsExpired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
