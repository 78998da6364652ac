/**
 * @description
 * Database operations for user accounts and member referrals.
 */
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/viteezy/commerce-backend/internal/domain"
)

const userColumns = `id, email, name, role, language, password_hash, created_at, updated_at`

// CreateUser inserts a new account row.
func (r *Repository) CreateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (email, name, role, language, password_hash)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING ` + userColumns
	row := r.db.QueryRow(ctx, query, u.Email, u.Name, u.Role, u.Language, u.PasswordHash)

	created, err := scanUser(row)
	if err != nil {
		return nil, mapError(err)
	}
	return created, nil
}

// GetUserByEmail fetches an account by email, excluding soft-deleted rows.
func (r *Repository) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 AND is_deleted = FALSE`
	u, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// GetUserByID fetches an account by id, excluding soft-deleted rows.
func (r *Repository) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 AND is_deleted = FALSE`
	u, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		return nil, mapError(err)
	}
	return u, nil
}

// UpdateUser persists profile fields that users may change themselves.
func (r *Repository) UpdateUser(ctx context.Context, u *domain.User) (*domain.User, error) {
	query := `
        UPDATE users
        SET name = $2, language = $3, updated_at = NOW(), updated_by = $1
        WHERE id = $1 AND is_deleted = FALSE
        RETURNING ` + userColumns
	updated, err := scanUser(r.db.QueryRow(ctx, query, u.ID, u.Name, u.Language))
	if err != nil {
		return nil, mapError(err)
	}
	return updated, nil
}

// ListUsers returns a page of accounts and the total count.
func (r *Repository) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users WHERE is_deleted = FALSE`).Scan(&total); err != nil {
		return nil, 0, mapError(err)
	}

	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE is_deleted = FALSE
        ORDER BY created_at DESC
        LIMIT $1 OFFSET $2`
	rows, err := r.db.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, mapError(err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, total, rows.Err()
}

// CreateReferral records a parent -> child attribution. The child_id column
// is unique, so a child can only ever be attributed once.
func (r *Repository) CreateReferral(ctx context.Context, parentID, childID uuid.UUID) (*domain.MemberReferral, error) {
	var ref domain.MemberReferral
	query := `
        INSERT INTO member_referrals (parent_id, child_id)
        VALUES ($1, $2)
        RETURNING id, parent_id, child_id, created_at`
	err := r.db.QueryRow(ctx, query, parentID, childID).Scan(&ref.ID, &ref.ParentID, &ref.ChildID, &ref.CreatedAt)
	if err != nil {
		return nil, mapError(err)
	}
	return &ref, nil
}

// ListReferralChildren returns the direct children attributed to a parent.
// The relation is one level deep; grandchildren are never followed.
func (r *Repository) ListReferralChildren(ctx context.Context, parentID uuid.UUID) ([]domain.UserView, error) {
	query := `
        SELECT u.id, u.email, u.name, u.role, u.language
        FROM member_referrals mr
        JOIN users u ON u.id = mr.child_id AND u.is_deleted = FALSE
        WHERE mr.parent_id = $1
        ORDER BY mr.created_at DESC`
	rows, err := r.db.Query(ctx, query, parentID)
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	var children []domain.UserView
	for rows.Next() {
		var v domain.UserView
		if err := rows.Scan(&v.ID, &v.Email, &v.Name, &v.Role, &v.Language); err != nil {
			return nil, err
		}
		children = append(children, v)
	}
	return children, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.Email, &u.Name, &u.Role, &u.Language, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
