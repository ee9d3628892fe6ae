package auth

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// Repository handles refresh token persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new refresh token repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new refresh token
func (r *Repository) Create(ctx context.Context, t *RefreshToken) (*RefreshToken, error) {
	query := `
		INSERT INTO refresh_token (member_id, token, expires_at, created_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var raw int64
	err := r.db.QueryRowContext(ctx, query, t.MemberID, t.Token, t.ExpiresAt, t.CreatedAt).Scan(&raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}

	id, err := domain.NewRefreshTokenID(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh token: %w", err)
	}
	t.ID = id

	return t, nil
}

// GetByToken retrieves a refresh token by its value
func (r *Repository) GetByToken(ctx context.Context, tokenValue string) (*RefreshToken, error) {
	query := `
		SELECT id, member_id, token, expires_at, created_at
		FROM refresh_token
		WHERE token = $1
	`

	t := &RefreshToken{}
	err := r.db.QueryRowContext(ctx, query, tokenValue).Scan(
		&t.ID, &t.MemberID, &t.Token, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get refresh token: %w", err)
	}

	return t, nil
}

// DeleteByToken removes a refresh token by its value. Deleting an unknown
// token is not an error.
func (r *Repository) DeleteByToken(ctx context.Context, tokenValue string) error {
	query := `DELETE FROM refresh_token WHERE token = $1`

	if _, err := r.db.ExecContext(ctx, query, tokenValue); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}

// DeleteAllByMember removes every refresh token belonging to a member
func (r *Repository) DeleteAllByMember(ctx context.Context, memberID int64) error {
	query := `DELETE FROM refresh_token WHERE member_id = $1`

	if _, err := r.db.ExecContext(ctx, query, memberID); err != nil {
		return fmt.Errorf("failed to delete refresh tokens: %w", err)
	}
	return nil
}
