package repository

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authdomain "github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

func setupMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestCompanyRepository_Get(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`FROM company WHERE company_id`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"company_id", "company_name", "store_locate", "open_time", "close_time", "target_sales", "labor_cost"}).
				AddRow(3, "Cafe Mori", "Kyoto", "09:00:00", "22:00:00", 500000, 150000))
		mock.ExpectQuery(`FROM company_rest_day`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"rest_day"}).AddRow("2025-07-07").AddRow("2025-07-14"))
		mock.ExpectQuery(`FROM company_position`).
			WithArgs(int64(3)).
			WillReturnRows(sqlmock.NewRows([]string{"position_name"}).AddRow("hall").AddRow("kitchen"))

		p, err := repo.Get(ctx, 3)
		require.NoError(t, err)
		assert.Equal(t, "Cafe Mori", p.Company.CompanyName)
		assert.Equal(t, "09:00:00", p.Company.OpenTime)
		assert.Equal(t, []string{"2025-07-07", "2025-07-14"}, p.RestDays)
		assert.Equal(t, []string{"hall", "kitchen"}, p.Positions)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(`FROM company WHERE company_id`).
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(ctx, 99)
		assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCompanyRepository_RestDaysInRange(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewCompanyRepository(db)

	mock.ExpectQuery(`rest_day >= \$2::date AND rest_day <= \$3::date`).
		WithArgs(int64(3), "2025-07-01", "2025-07-31").
		WillReturnRows(sqlmock.NewRows([]string{"rest_day"}).AddRow("2025-07-07"))

	days, err := repo.RestDays(context.Background(), 3, "2025-07-01", "2025-07-31")
	require.NoError(t, err)
	assert.Equal(t, []string{"2025-07-07"}, days)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCompanyRepository_Update(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewCompanyRepository(db)
	ctx := context.Background()

	profile := &domain.CompanyProfile{
		Company:   domain.Company{CompanyID: 3, CompanyName: "Cafe Mori", OpenTime: "09:00:00", CloseTime: "22:00:00"},
		RestDays:  []string{"2025-07-07"},
		Positions: []string{"hall", "kitchen"},
	}

	t.Run("replaces everything in one transaction", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE company`).
			WithArgs(int64(3), "Cafe Mori", "", "09:00:00", "22:00:00", int64(0), int64(0)).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM company_rest_day`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(`INSERT INTO company_rest_day`).WithArgs(int64(3), "2025-07-07").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`DELETE FROM company_position`).WithArgs(int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`INSERT INTO company_position`).WithArgs(int64(3), "hall").WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectExec(`INSERT INTO company_position`).WithArgs(int64(3), "kitchen").WillReturnResult(sqlmock.NewResult(2, 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Update(ctx, profile))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown company rolls back", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE company`).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		assert.ErrorIs(t, repo.Update(ctx, profile), domain.ErrCompanyNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

var crewRowColumns = []string{"user_id", "company_id", "name", "age", "phone", "position", "evaluate", "experience", "join_company_day", "hour_pay", "post"}

func TestCrewRepository_ListAndGet(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewCrewRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(`FROM user_profile p WHERE p.company_id`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(crewRowColumns).
			AddRow(7, 3, "Hana", 20, "090-1111-2222", "hall", 4, "veteran", "2024-04-01", 1200, "part_timer").
			AddRow(8, 3, "Ren", 19, "090-3333-4444", "kitchen", 2, "beginner", "", 1100, "part_timer"))

	members, err := repo.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Hana", members[0].Name)
	assert.Equal(t, "", members[1].JoinCompanyDay)

	mock.ExpectQuery(`p.user_id = \$2`).
		WithArgs(int64(3), int64(42)).
		WillReturnError(sql.ErrNoRows)
	_, err = repo.Get(ctx, 3, 42)
	assert.ErrorIs(t, err, domain.ErrCrewNotFound)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepository_Create(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewCrewRepository(db)
	ctx := context.Background()

	member := func() *domain.CrewMember {
		return &domain.CrewMember{CompanyID: 3, Name: "Hana", Phone: "090-1111-2222", Evaluate: 3,
			Experience: "beginner", Post: "part_timer", HourPay: 1100}
	}

	t.Run("user and profile", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO app_user`).
			WithArgs(int64(3), "hana@example.com", "fb-hana").
			WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))
		mock.ExpectExec(`INSERT INTO user_profile`).
			WithArgs(int64(7), int64(3), "Hana", 0, "090-1111-2222", "", 3, "beginner", "", int64(1100), "part_timer").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		m := member()
		require.NoError(t, repo.Create(ctx, "hana@example.com", "fb-hana", m))
		assert.Equal(t, int64(7), m.UserID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO app_user`).WillReturnError(&pq.Error{Code: "23505"})
		mock.ExpectRollback()

		err := repo.Create(ctx, "hana@example.com", "fb-hana-2", member())
		assert.ErrorIs(t, err, authdomain.ErrEmailExists)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("profile constraint rolls back user", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO app_user`).WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(8))
		mock.ExpectExec(`INSERT INTO user_profile`).WillReturnError(errors.New("check constraint"))
		mock.ExpectRollback()

		require.Error(t, repo.Create(ctx, "x@example.com", "fb-x", member()))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCrewRepository_Update(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewCrewRepository(db)

	mock.ExpectExec(`UPDATE user_profile`).WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.Update(context.Background(), &domain.CrewMember{UserID: 7, CompanyID: 4})
	assert.ErrorIs(t, err, domain.ErrCrewNotFound, "profile of another company is not touched")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCrewRepository_MemberIDs(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewCrewRepository(db)

	mock.ExpectQuery(`user_id = ANY`).
		WithArgs(int64(3), sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"user_id"}).AddRow(7))

	ids, err := repo.MemberIDs(context.Background(), 3, []int64{7, 99})
	require.NoError(t, err)
	assert.True(t, ids[7])
	assert.False(t, ids[99])
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_InsertSubmitted(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewShiftRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO submitted_shift`).
		WithArgs(int64(7), int64(3), "2025-07-05", "09:00:00", "17:00:00").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(`ON CONFLICT DO NOTHING`).
		WithArgs(int64(7), int64(3), "2025-07-06", "09:00:00", "17:00:00").
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	n, err := repo.InsertSubmitted(context.Background(), 7, 3, []domain.Slot{
		{Day: "2025-07-05", StartTime: "09:00:00", FinishTime: "17:00:00"},
		{Day: "2025-07-06", StartTime: "09:00:00", FinishTime: "17:00:00"},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, n, "duplicates are not counted")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_ListDrafts(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewShiftRepository(db)
	cols := []string{"edit_shift_id", "user_id", "company_id", "day", "start_time", "finish_time"}

	mock.ExpectQuery(`FROM edit_shift WHERE company_id = \$1 ORDER BY day, start_time`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows(cols).
			AddRow(1, 7, 3, "2025-07-05", "09:00:00", "17:00:00").
			AddRow(2, 8, 3, "2025-07-05", "17:00:00", "22:00:00"))

	drafts, err := repo.ListDrafts(context.Background(), 3, "", "")
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, "17:00:00", drafts[1].StartTime)

	mock.ExpectQuery(`day >= \$2::date AND day <= \$3::date`).
		WithArgs(int64(3), "2025-07-01", "2025-07-31").
		WillReturnRows(sqlmock.NewRows(cols))
	drafts, err = repo.ListDrafts(context.Background(), 3, "2025-07-01", "2025-07-31")
	require.NoError(t, err)
	assert.NotNil(t, drafts)
	assert.Empty(t, drafts)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_ApplyDrafts(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewShiftRepository(db)
	ctx := context.Background()

	changes := domain.DraftChanges{
		Delete: []int64{10},
		Update: []domain.EditShift{{EditShiftID: 11, UserID: 7, Day: "2025-07-05", StartTime: "10:00:00", FinishTime: "15:00:00"}},
		Add:    []domain.EditShift{{UserID: 8, Day: "2025-07-06", StartTime: "09:00:00", FinishTime: "13:00:00"}},
	}

	t.Run("applied in order", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM edit_shift`).WithArgs(int64(10), int64(3)).WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`UPDATE edit_shift`).
			WithArgs(int64(11), int64(3), int64(7), "2025-07-05", "10:00:00", "15:00:00").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectQuery(`INSERT INTO edit_shift`).
			WithArgs(int64(8), int64(3), "2025-07-06", "09:00:00", "13:00:00").
			WillReturnRows(sqlmock.NewRows([]string{"edit_shift_id"}).AddRow(12))
		mock.ExpectCommit()

		res, err := repo.ApplyDrafts(ctx, 3, changes)
		require.NoError(t, err)
		assert.Equal(t, domain.DraftResult{Added: 1, Updated: 1, Deleted: 1}, res)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("foreign draft aborts everything", func(t *testing.T) {
		mock.ExpectBegin()
		mock.ExpectExec(`DELETE FROM edit_shift`).WithArgs(int64(10), int64(3)).WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		_, err := repo.ApplyDrafts(ctx, 3, changes)
		assert.ErrorIs(t, err, domain.ErrShiftNotFound)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestShiftRepository_ReplaceDrafts(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewShiftRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM edit_shift`).
		WithArgs(int64(3), "2025-07-01", "2025-07-07").
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectQuery(`INSERT INTO edit_shift`).
		WithArgs(int64(7), int64(3), "2025-07-02", "09:00:00", "17:00:00").
		WillReturnRows(sqlmock.NewRows([]string{"edit_shift_id"}).AddRow(21))
	mock.ExpectCommit()

	out, err := repo.ReplaceDrafts(context.Background(), 3, "2025-07-01", "2025-07-07", []domain.EditShift{
		{UserID: 7, Day: "2025-07-02", StartTime: "09:00:00", FinishTime: "17:00:00"},
	})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, int64(21), out[0].EditShiftID)
	assert.Equal(t, int64(3), out[0].CompanyID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_CompleteDrafts(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewShiftRepository(db)

	mock.ExpectExec(`INSERT INTO decision_shift .* FROM edit_shift WHERE company_id = \$1 AND day > \$2::date ON CONFLICT DO NOTHING`).
		WithArgs(int64(3), "2025-07-01").
		WillReturnResult(sqlmock.NewResult(0, 5))

	n, err := repo.CompleteDrafts(context.Background(), 3, "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, 5, n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_ListDecided(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewShiftRepository(db)

	mock.ExpectQuery(`FROM decision_shift d LEFT JOIN user_profile p`).
		WithArgs(int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"decision_shift_id", "user_id", "company_id", "name", "position", "post", "day", "start_time", "finish_time"}).
			AddRow(1, 7, 3, "Hana", "hall", "part_timer", "2025-07-05", "09:00:00", "17:00:00"))

	shifts, err := repo.ListDecided(context.Background(), 3, "", "")
	require.NoError(t, err)
	require.Len(t, shifts, 1)
	assert.Equal(t, "Hana", shifts[0].Name)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestShiftRepository_PurgeDraftsBefore(t *testing.T) {
	db, mock := setupMock(t)
	repo := NewShiftRepository(db)

	mock.ExpectExec(`DELETE FROM edit_shift WHERE day <`).
		WithArgs("2025-07-01").
		WillReturnResult(sqlmock.NewResult(0, 3))

	n, err := repo.PurgeDraftsBefore(context.Background(), "2025-07-01")
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	require.NoError(t, mock.ExpectationsWereMet())
}
