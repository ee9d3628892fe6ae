package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jiyun-dev/wecal/internal/domain"
	"github.com/jiyun-dev/wecal/internal/member"
	"github.com/jiyun-dev/wecal/pkg/token"
)

// Common errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid refresh token")
)

// TokenStore is the persistence port for refresh tokens
type TokenStore interface {
	Create(ctx context.Context, t *RefreshToken) (*RefreshToken, error)
	GetByToken(ctx context.Context, tokenValue string) (*RefreshToken, error)
	DeleteByToken(ctx context.Context, tokenValue string) error
	DeleteAllByMember(ctx context.Context, memberID int64) error
}

// Service handles signup, login, and refresh token rotation
type Service struct {
	members    member.Store
	tokens     TokenStore
	provider   *token.Provider
	refreshTTL time.Duration
}

// NewService creates a new auth service
func NewService(members member.Store, tokens TokenStore, provider *token.Provider, refreshTTL time.Duration) *Service {
	return &Service{
		members:    members,
		tokens:     tokens,
		provider:   provider,
		refreshTTL: refreshTTL,
	}
}

// Signup registers a new member with a bcrypt-hashed password
func (s *Service) Signup(ctx context.Context, req *SignupRequest) (*member.Member, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, err
	}
	nickname, err := domain.NewNickname(req.Nickname)
	if err != nil {
		return nil, err
	}

	exists, err := s.members.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, member.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	hash, err := domain.NewPasswordHash(string(hashed))
	if err != nil {
		return nil, err
	}

	return s.members.Create(ctx, member.New(email, hash, nickname))
}

// Login verifies credentials and issues a token pair. Any mismatch, unknown
// email, or withdrawn member yields the same credentials error.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	email, err := domain.NewEmail(req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	m, err := s.members.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsActive() {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.generateTokens(ctx, m.ID)
}

// Refresh rotates a refresh token: the presented token is consumed and a
// new pair issued.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	stored, err := s.tokens.GetByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, ErrInvalidToken
	}

	if stored.IsExpired(time.Now()) {
		if err := s.tokens.DeleteByToken(ctx, refreshToken); err != nil {
			return nil, err
		}
		return nil, ErrInvalidToken
	}

	m, err := s.members.GetByID(ctx, stored.MemberID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsActive() {
		return nil, ErrInvalidToken
	}

	if err := s.tokens.DeleteByToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.generateTokens(ctx, m.ID)
}

// Logout revokes the presented refresh token
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	return s.tokens.DeleteByToken(ctx, refreshToken)
}

func (s *Service) generateTokens(ctx context.Context, memberID int64) (*TokenResponse, error) {
	accessToken, err := s.provider.GenerateAccessToken(memberID)
	if err != nil {
		return nil, err
	}

	refreshValue := uuid.NewString()
	refresh := NewRefreshToken(memberID, refreshValue, time.Now().Add(s.refreshTTL))
	if _, err := s.tokens.Create(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshValue,
	}, nil
}
