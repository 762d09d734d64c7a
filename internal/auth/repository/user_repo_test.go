package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
)

func setupUserRepo(t *testing.T) (*UserRepository, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(db), mock
}

func TestUserRepository_GetByFirebaseUID(t *testing.T) {
	repo, mock := setupUserRepo(t)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		now := time.Now()
		mock.ExpectQuery(`SELECT user_id, company_id, email, firebase_uid, role, created_at\s+FROM app_user`).
			WithArgs("fb-1").
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "company_id", "email", "firebase_uid", "role", "created_at"}).
				AddRow(7, 3, "crew@example.com", "fb-1", "crew", now))

		user, err := repo.GetByFirebaseUID(ctx, "fb-1")
		require.NoError(t, err)
		assert.Equal(t, int64(7), user.UserID)
		assert.Equal(t, int64(3), user.CompanyID)
		assert.Equal(t, domain.RoleCrew, user.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM app_user`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		_, err := repo.GetByFirebaseUID(ctx, "missing")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_CreateOwner(t *testing.T) {
	repo, mock := setupUserRepo(t)
	ctx := context.Background()

	t.Run("creates company and owner", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO company`).
			WithArgs("Cafe Mori").
			WillReturnRows(sqlmock.NewRows([]string{"company_id"}).AddRow(3))
		mock.ExpectQuery(`INSERT INTO app_user`).
			WithArgs(int64(3), "owner@example.com", "fb-owner", domain.RoleOwner).
			WillReturnRows(sqlmock.NewRows([]string{"user_id", "created_at"}).AddRow(1, time.Now()))
		mock.ExpectCommit()

		user := &domain.User{Email: "owner@example.com", FirebaseUID: "fb-owner", Role: domain.RoleOwner}
		require.NoError(t, repo.CreateOwner(ctx, "Cafe Mori", user))
		assert.Equal(t, int64(3), user.CompanyID)
		assert.Equal(t, int64(1), user.UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO company`).
			WillReturnRows(sqlmock.NewRows([]string{"company_id"}).AddRow(4))
		mock.ExpectQuery(`INSERT INTO app_user`).
			WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		user := &domain.User{Email: "owner@example.com", FirebaseUID: "fb-2", Role: domain.RoleOwner}
		err := repo.CreateOwner(ctx, "", user)
		assert.ErrorIs(t, err, domain.ErrEmailExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestUserRepository_ProfileSummary(t *testing.T) {
	repo, mock := setupUserRepo(t)

	mock.ExpectQuery(`LEFT JOIN user_profile`).
		WithArgs(int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"name", "position", "post"}).AddRow("Hana", "kitchen", "part_timer"))

	name, position, post, err := repo.ProfileSummary(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Hana", name)
	assert.Equal(t, "kitchen", position)
	assert.Equal(t, "part_timer", post)
	require.NoError(t, mock.ExpectationsWereMet())
}
