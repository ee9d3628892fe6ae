package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jiyun-dev/wecal/internal/domain"
)

// Repository handles member data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new member repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new member into the database. The unique constraint on
// email backstops concurrent signups with the same address.
func (r *Repository) Create(ctx context.Context, m *Member) (*Member, error) {
	query := `
		INSERT INTO member (email, password_hash, nickname, profile_image_url, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		m.Email, m.PasswordHash, m.Nickname, m.ProfileImageURL, m.Status, m.CreatedAt, m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create member: %w", err)
	}

	return m, nil
}

// GetByID retrieves a member by ID regardless of status
func (r *Repository) GetByID(ctx context.Context, id int64) (*Member, error) {
	query := `
		SELECT id, email, password_hash, nickname, profile_image_url, status, created_at, updated_at
		FROM member
		WHERE id = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByEmail retrieves a member by email regardless of status
func (r *Repository) GetByEmail(ctx context.Context, email domain.Email) (*Member, error) {
	query := `
		SELECT id, email, password_hash, nickname, profile_image_url, status, created_at, updated_at
		FROM member
		WHERE email = $1
	`

	return r.scanOne(r.db.QueryRowContext(ctx, query, email))
}

// ExistsByEmail reports whether a member row exists for the email
func (r *Repository) ExistsByEmail(ctx context.Context, email domain.Email) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM member WHERE email = $1)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return exists, nil
}

// Update persists a member's mutable fields
func (r *Repository) Update(ctx context.Context, m *Member) error {
	query := `
		UPDATE member
		SET nickname = $2, profile_image_url = $3, status = $4, updated_at = $5
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, m.ID, m.Nickname, m.ProfileImageURL, m.Status, m.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to update member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}

	return nil
}

func (r *Repository) scanOne(row *sql.Row) (*Member, error) {
	m := &Member{}
	err := row.Scan(
		&m.ID,
		&m.Email,
		&m.PasswordHash,
		&m.Nickname,
		&m.ProfileImageURL,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get member: %w", err)
	}
	return m, nil
}
