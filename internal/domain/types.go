package domain

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	emailRegex      = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	colorHexRegex   = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	inviteCodeRegex = regexp.MustCompile(`^[A-Z0-9]{6}$`)
)

// Email is a validated email address.
type Email string

func NewEmail(v string) (Email, error) {
	if strings.TrimSpace(v) == "" {
		return "", Invalidf("email must not be blank")
	}
	if !emailRegex.MatchString(v) {
		return "", Invalidf("invalid email format: %s", v)
	}
	return Email(v), nil
}

func (e Email) String() string { return string(e) }

// PasswordHash is an encoded password. Never a raw password.
type PasswordHash string

func NewPasswordHash(v string) (PasswordHash, error) {
	if strings.TrimSpace(v) == "" {
		return "", Invalidf("password hash must not be blank")
	}
	return PasswordHash(v), nil
}

func (p PasswordHash) String() string { return string(p) }

// Nickname is a member's display name, 2-50 characters.
type Nickname string

const (
	nicknameMinLength = 2
	nicknameMaxLength = 50
)

func NewNickname(v string) (Nickname, error) {
	if strings.TrimSpace(v) == "" {
		return "", Invalidf("nickname must not be blank")
	}
	if n := utf8.RuneCountInString(v); n < nicknameMinLength || n > nicknameMaxLength {
		return "", Invalidf("nickname must be between %d and %d characters", nicknameMinLength, nicknameMaxLength)
	}
	return Nickname(v), nil
}

func (n Nickname) String() string { return string(n) }

// GroupName is a calendar group's name, 1-100 characters.
type GroupName string

const groupNameMaxLength = 100

func NewGroupName(v string) (GroupName, error) {
	if strings.TrimSpace(v) == "" {
		return "", Invalidf("group name must not be blank")
	}
	if utf8.RuneCountInString(v) > groupNameMaxLength {
		return "", Invalidf("group name must be at most %d characters", groupNameMaxLength)
	}
	return GroupName(v), nil
}

func (n GroupName) String() string { return string(n) }

// DisplayName is a member's per-group display name, 1-50 characters.
type DisplayName string

const displayNameMaxLength = 50

func NewDisplayName(v string) (DisplayName, error) {
	if strings.TrimSpace(v) == "" {
		return "", Invalidf("display name must not be blank")
	}
	if utf8.RuneCountInString(v) > displayNameMaxLength {
		return "", Invalidf("display name must be at most %d characters", displayNameMaxLength)
	}
	return DisplayName(v), nil
}

func (n DisplayName) String() string { return string(n) }

// ColorHex is a #RRGGBB color code.
type ColorHex string

func NewColorHex(v string) (ColorHex, error) {
	if !colorHexRegex.MatchString(v) {
		return "", Invalidf("invalid color code: %s (expected #RRGGBB)", v)
	}
	return ColorHex(v), nil
}

func (c ColorHex) String() string { return string(c) }

// InviteCode is a 6-character uppercase alphanumeric join code.
type InviteCode string

func NewInviteCode(v string) (InviteCode, error) {
	if !inviteCodeRegex.MatchString(v) {
		return "", Invalidf("invalid invite code: must be 6 uppercase alphanumeric characters")
	}
	return InviteCode(v), nil
}

func (c InviteCode) String() string { return string(c) }

// MemberID identifies a member. Always positive.
type MemberID int64

func NewMemberID(v int64) (MemberID, error) {
	if v <= 0 {
		return 0, Invalidf("member id must be positive: %d", v)
	}
	return MemberID(v), nil
}

func (id MemberID) Int64() int64 { return int64(id) }

// GroupID identifies a calendar group. Always positive.
type GroupID int64

func NewGroupID(v int64) (GroupID, error) {
	if v <= 0 {
		return 0, Invalidf("group id must be positive: %d", v)
	}
	return GroupID(v), nil
}

func (id GroupID) Int64() int64 { return int64(id) }

// GroupMemberID identifies a membership row. Always positive.
type GroupMemberID int64

func NewGroupMemberID(v int64) (GroupMemberID, error) {
	if v <= 0 {
		return 0, Invalidf("group member id must be positive: %d", v)
	}
	return GroupMemberID(v), nil
}

func (id GroupMemberID) Int64() int64 { return int64(id) }

// RefreshTokenID identifies a stored refresh token. Always positive.
type RefreshTokenID int64

func NewRefreshTokenID(v int64) (RefreshTokenID, error) {
	if v <= 0 {
		return 0, Invalidf("refresh token id must be positive: %d", v)
	}
	return RefreshTokenID(v), nil
}

func (id RefreshTokenID) Int64() int64 { return int64(id) }
