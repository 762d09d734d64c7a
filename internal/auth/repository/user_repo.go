package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetByFirebaseUID retrieves a user by their Firebase UID
func (r *UserRepository) GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error) {
	query := `
		SELECT user_id, company_id, email, firebase_uid, role, created_at
		FROM app_user
		WHERE firebase_uid = $1
	`

	var user domain.User
	err := r.db.QueryRowContext(ctx, query, uid).Scan(
		&user.UserID,
		&user.CompanyID,
		&user.Email,
		&user.FirebaseUID,
		&user.Role,
		&user.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

// CreateOwner creates a company and its owner account in one transaction.
func (r *UserRepository) CreateOwner(ctx context.Context, companyName string, user *domain.User) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx,
		`INSERT INTO company (company_name) VALUES ($1) RETURNING company_id`,
		companyName,
	).Scan(&user.CompanyID)
	if err != nil {
		return fmt.Errorf("insert company: %w", err)
	}

	err = tx.QueryRowContext(ctx, `
		INSERT INTO app_user (company_id, email, firebase_uid, role)
		VALUES ($1, $2, $3, $4)
		RETURNING user_id, created_at
	`, user.CompanyID, user.Email, user.FirebaseUID, user.Role).Scan(&user.UserID, &user.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return tx.Commit()
}

// ProfileSummary returns display fields for a user. Owners have no profile
// row and get empty values.
func (r *UserRepository) ProfileSummary(ctx context.Context, userID int64) (name, position, post string, err error) {
	query := `
		SELECT COALESCE(p.name, ''), COALESCE(p.position, ''), COALESCE(p.post, '')
		FROM app_user u
		LEFT JOIN user_profile p ON p.user_id = u.user_id
		WHERE u.user_id = $1
	`
	err = r.db.QueryRowContext(ctx, query, userID).Scan(&name, &position, &post)
	if errors.Is(err, sql.ErrNoRows) {
		return "", "", "", domain.ErrUserNotFound
	}
	return name, position, post, err
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
