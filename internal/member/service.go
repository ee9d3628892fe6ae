package member

import (
	"context"
	"errors"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// Common errors
var (
	ErrMemberNotFound = errors.New("member not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

// Store is the persistence port for members
type Store interface {
	Create(ctx context.Context, m *Member) (*Member, error)
	GetByID(ctx context.Context, id int64) (*Member, error)
	GetByEmail(ctx context.Context, email domain.Email) (*Member, error)
	ExistsByEmail(ctx context.Context, email domain.Email) (bool, error)
	Update(ctx context.Context, m *Member) error
}

// TokenRevoker purges a member's refresh tokens, used on withdrawal
type TokenRevoker interface {
	DeleteAllByMember(ctx context.Context, memberID int64) error
}

// Service handles member business logic
type Service struct {
	repo   Store
	tokens TokenRevoker
}

// NewService creates a new member service
func NewService(repo Store, tokens TokenRevoker) *Service {
	return &Service{repo: repo, tokens: tokens}
}

// GetMe retrieves the caller's profile. Withdrawn members behave as absent.
func (s *Service) GetMe(ctx context.Context, memberID int64) (*Member, error) {
	return s.findActive(ctx, memberID)
}

// UpdateMe applies a partial profile update to the caller
func (s *Service) UpdateMe(ctx context.Context, memberID int64, req *UpdateMemberRequest) (*Member, error) {
	m, err := s.findActive(ctx, memberID)
	if err != nil {
		return nil, err
	}

	var nickname *domain.Nickname
	if req.Nickname != nil {
		n, err := domain.NewNickname(*req.Nickname)
		if err != nil {
			return nil, err
		}
		nickname = &n
	}

	m.UpdateProfile(nickname, req.ProfileImageURL)
	if err := s.repo.Update(ctx, m); err != nil {
		return nil, err
	}

	return m, nil
}

// DeleteMe withdraws the caller. The row is kept but flipped to DELETED, and
// all refresh tokens are revoked so existing sessions die with it.
func (s *Service) DeleteMe(ctx context.Context, memberID int64) error {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return err
	}
	if m == nil {
		return ErrMemberNotFound
	}

	m.Withdraw()
	if err := s.repo.Update(ctx, m); err != nil {
		return err
	}

	return s.tokens.DeleteAllByMember(ctx, memberID)
}

// IsActive reports whether the member exists and has not withdrawn
func (s *Service) IsActive(ctx context.Context, memberID int64) (bool, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return false, err
	}
	return m != nil && m.IsActive(), nil
}

func (s *Service) findActive(ctx context.Context, memberID int64) (*Member, error) {
	m, err := s.repo.GetByID(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if m == nil || !m.IsActive() {
		return nil, ErrMemberNotFound
	}
	return m, nil
}
