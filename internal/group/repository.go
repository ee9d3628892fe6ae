package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/jiyun-dev/wecal/internal/domain"
)

const uniqueViolation = "23505"

// Repository handles group data persistence
type Repository struct {
	db *sql.DB
}

// NewRepository creates a new group repository
func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithOwner inserts a group together with its OWNER membership in a
// single transaction, so a group can never exist without an owner.
func (r *Repository) CreateWithOwner(ctx context.Context, g *Group, owner *GroupMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	groupQuery := `
		INSERT INTO calendar_group (name, type, description, cover_image_url, max_members, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, groupQuery,
		g.Name, g.Type, g.Description, g.CoverImageURL, g.MaxMembers, g.CreatedAt, g.UpdatedAt,
	).Scan(&g.ID)
	if err != nil {
		return fmt.Errorf("failed to create group: %w", err)
	}

	owner.GroupID = g.ID
	memberQuery := `
		INSERT INTO group_member (group_id, member_id, role, display_name, color, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	err = tx.QueryRowContext(ctx, memberQuery,
		owner.GroupID, owner.MemberID, owner.Role, owner.DisplayName, owner.Color, owner.JoinedAt,
	).Scan(&owner.ID)
	if err != nil {
		return fmt.Errorf("failed to create owner membership: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group creation: %w", err)
	}
	return nil
}

// GetByID retrieves a group by its ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*Group, error) {
	query := groupSelect + ` WHERE id = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, id))
}

// GetByInviteCode retrieves a group by its current invite code
func (r *Repository) GetByInviteCode(ctx context.Context, code domain.InviteCode) (*Group, error) {
	query := groupSelect + ` WHERE invite_code = $1`
	return r.scanOne(r.db.QueryRowContext(ctx, query, code))
}

// Update persists a group's mutable fields. A unique violation on the
// invite code index means the freshly generated code collides with another
// group's active code.
func (r *Repository) Update(ctx context.Context, g *Group) error {
	query := `
		UPDATE calendar_group
		SET name = $2,
		    description = $3,
		    cover_image_url = $4,
		    invite_code = $5,
		    invite_code_expires_at = $6,
		    updated_at = $7
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query,
		g.ID, g.Name, g.Description, g.CoverImageURL, g.InviteCode, g.InviteCodeExpiresAt, g.UpdatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrInviteCodeTaken
		}
		return fmt.Errorf("failed to update group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	return nil
}

// DeleteWithMemberships removes all of a group's memberships and then the
// group itself in a single transaction, leaving no orphaned rows.
func (r *Repository) DeleteWithMemberships(ctx context.Context, groupID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM group_member WHERE group_id = $1`, groupID); err != nil {
		return fmt.Errorf("failed to delete group memberships: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM calendar_group WHERE id = $1`, groupID)
	if err != nil {
		return fmt.Errorf("failed to delete group: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGroupNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit group deletion: %w", err)
	}
	return nil
}

const groupSelect = `
	SELECT id, name, type, description, cover_image_url, invite_code, invite_code_expires_at, max_members, created_at, updated_at
	FROM calendar_group`

func (r *Repository) scanOne(row *sql.Row) (*Group, error) {
	g := &Group{}
	err := row.Scan(
		&g.ID,
		&g.Name,
		&g.Type,
		&g.Description,
		&g.CoverImageURL,
		&g.InviteCode,
		&g.InviteCodeExpiresAt,
		&g.MaxMembers,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get group: %w", err)
	}
	return g, nil
}

// MembershipRepository handles group membership persistence
type MembershipRepository struct {
	db *sql.DB
}

// NewMembershipRepository creates a new membership repository
func NewMembershipRepository(db *sql.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

// Create inserts a new membership. The unique constraint on
// (group_id, member_id) backstops concurrent joins by the same member;
// a violation surfaces as the already-a-member error.
func (r *MembershipRepository) Create(ctx context.Context, m *GroupMember) (*GroupMember, error) {
	query := `
		INSERT INTO group_member (group_id, member_id, role, display_name, color, joined_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	err := r.db.QueryRowContext(ctx, query,
		m.GroupID, m.MemberID, m.Role, m.DisplayName, m.Color, m.JoinedAt,
	).Scan(&m.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, ErrAlreadyGroupMember
		}
		return nil, fmt.Errorf("failed to create membership: %w", err)
	}

	return m, nil
}

// GetByGroupAndMember retrieves a member's membership in a group
func (r *MembershipRepository) GetByGroupAndMember(ctx context.Context, groupID, memberID int64) (*GroupMember, error) {
	query := membershipSelect + ` WHERE group_id = $1 AND member_id = $2`

	m := &GroupMember{}
	err := r.db.QueryRowContext(ctx, query, groupID, memberID).Scan(
		&m.ID, &m.GroupID, &m.MemberID, &m.Role, &m.DisplayName, &m.Color, &m.JoinedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get membership: %w", err)
	}

	return m, nil
}

// ListByGroup retrieves all memberships of a group ordered by join time
func (r *MembershipRepository) ListByGroup(ctx context.Context, groupID int64) ([]*GroupMember, error) {
	query := membershipSelect + ` WHERE group_id = $1 ORDER BY joined_at`
	return r.list(ctx, query, groupID)
}

// ListByMember retrieves all of a member's memberships ordered by join time
func (r *MembershipRepository) ListByMember(ctx context.Context, memberID int64) ([]*GroupMember, error) {
	query := membershipSelect + ` WHERE member_id = $1 ORDER BY joined_at`
	return r.list(ctx, query, memberID)
}

// CountByGroup counts the members of a group
func (r *MembershipRepository) CountByGroup(ctx context.Context, groupID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM group_member WHERE group_id = $1`, groupID)
}

// CountByMember counts how many groups a member belongs to
func (r *MembershipRepository) CountByMember(ctx context.Context, memberID int64) (int, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM group_member WHERE member_id = $1`, memberID)
}

// Update persists a membership's role and profile fields
func (r *MembershipRepository) Update(ctx context.Context, m *GroupMember) error {
	query := `
		UPDATE group_member
		SET role = $2, display_name = $3, color = $4
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, m.ID, m.Role, m.DisplayName, m.Color)
	if err != nil {
		return fmt.Errorf("failed to update membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGroupMemberNotFound
	}

	return nil
}

// Delete removes a membership row
func (r *MembershipRepository) Delete(ctx context.Context, id domain.GroupMemberID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM group_member WHERE id = $1`, id.Int64())
	if err != nil {
		return fmt.Errorf("failed to delete membership: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrGroupMemberNotFound
	}

	return nil
}

const membershipSelect = `
	SELECT id, group_id, member_id, role, display_name, color, joined_at
	FROM group_member`

func (r *MembershipRepository) list(ctx context.Context, query string, arg interface{}) ([]*GroupMember, error) {
	rows, err := r.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}
	defer rows.Close()

	var members []*GroupMember
	for rows.Next() {
		m := &GroupMember{}
		if err := rows.Scan(
			&m.ID, &m.GroupID, &m.MemberID, &m.Role, &m.DisplayName, &m.Color, &m.JoinedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return members, nil
}

func (r *MembershipRepository) count(ctx context.Context, query string, arg interface{}) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, query, arg).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count memberships: %w", err)
	}
	return n, nil
}
