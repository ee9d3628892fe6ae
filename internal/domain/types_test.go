package domain

import (
	"errors"
	"strings"
	"testing"
)

func TestNewEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last+tag@sub.domain.co",
		"a_b%c@host.io",
	}
	for _, v := range valid {
		if _, err := NewEmail(v); err != nil {
			t.Errorf("NewEmail(%q) returned error: %v", v, err)
		}
	}

	invalid := []string{
		"",
		"   ",
		"plainstring",
		"missing@tld",
		"@no-local.com",
		"spaces in@mail.com",
	}
	for _, v := range invalid {
		if _, err := NewEmail(v); err == nil {
			t.Errorf("NewEmail(%q) should fail", v)
		}
	}
}

func TestNewNickname(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"min length", "ab", false},
		{"max length", strings.Repeat("a", 50), false},
		{"too short", "a", true},
		{"too long", strings.Repeat("a", 51), true},
		{"blank", "   ", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewNickname(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("NewNickname(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestNewGroupName(t *testing.T) {
	if _, err := NewGroupName("g"); err != nil {
		t.Errorf("single character group name should be valid: %v", err)
	}
	if _, err := NewGroupName(strings.Repeat("g", 100)); err != nil {
		t.Errorf("100 character group name should be valid: %v", err)
	}
	if _, err := NewGroupName(strings.Repeat("g", 101)); err == nil {
		t.Error("101 character group name should fail")
	}
	if _, err := NewGroupName("  "); err == nil {
		t.Error("blank group name should fail")
	}
}

func TestNewDisplayName(t *testing.T) {
	if _, err := NewDisplayName("d"); err != nil {
		t.Errorf("single character display name should be valid: %v", err)
	}
	if _, err := NewDisplayName(strings.Repeat("d", 51)); err == nil {
		t.Error("51 character display name should fail")
	}
	if _, err := NewDisplayName(""); err == nil {
		t.Error("empty display name should fail")
	}
}

func TestNewColorHex(t *testing.T) {
	valid := []string{"#FF0000", "#00ff00", "#AbCdEf"}
	for _, v := range valid {
		if _, err := NewColorHex(v); err != nil {
			t.Errorf("NewColorHex(%q) returned error: %v", v, err)
		}
	}

	invalid := []string{"FF0000", "#FFF", "#GG0000", "#FF00001", ""}
	for _, v := range invalid {
		if _, err := NewColorHex(v); err == nil {
			t.Errorf("NewColorHex(%q) should fail", v)
		}
	}
}

func TestNewInviteCode(t *testing.T) {
	if _, err := NewInviteCode("ABC123"); err != nil {
		t.Errorf("NewInviteCode(ABC123) returned error: %v", err)
	}

	invalid := []string{"abc123", "ABC12", "ABC1234", "ABC-12", ""}
	for _, v := range invalid {
		if _, err := NewInviteCode(v); err == nil {
			t.Errorf("NewInviteCode(%q) should fail", v)
		}
	}
}

func TestNumericIDs(t *testing.T) {
	if _, err := NewMemberID(1); err != nil {
		t.Errorf("NewMemberID(1) returned error: %v", err)
	}
	if _, err := NewMemberID(0); err == nil {
		t.Error("NewMemberID(0) should fail")
	}
	if _, err := NewGroupID(-5); err == nil {
		t.Error("NewGroupID(-5) should fail")
	}
	if _, err := NewGroupMemberID(42); err != nil {
		t.Errorf("NewGroupMemberID(42) returned error: %v", err)
	}
	if _, err := NewRefreshTokenID(0); err == nil {
		t.Error("NewRefreshTokenID(0) should fail")
	}
}

func TestValidationErrorsWrapSentinel(t *testing.T) {
	_, err := NewEmail("not-an-email")
	if !errors.Is(err, ErrValidation) {
		t.Errorf("value type errors should wrap ErrValidation, got %v", err)
	}
}
