package gemini

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

type fakeRow struct {
	scan func(dest ...any) error
}

func (r fakeRow) Scan(dest ...any) error { return r.scan(dest...) }

type fakeQuerier struct {
	sql  string
	args []any
	row  fakeRow
}

func (f *fakeQuerier) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	f.sql, f.args = sql, args
	return f.row
}

func TestRepo_Save(t *testing.T) {
	created := time.Date(2025, 7, 10, 9, 0, 0, 0, time.UTC)
	q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
		*dest[0].(*int64) = 5
		*dest[1].(*time.Time) = created
		return nil
	}}}
	r := &Repo{db: q}

	e := &domain.Evaluation{CompanyID: 3, StartDay: "2025-07-01", FinishDay: "2025-07-31", Comment: "ok"}
	require.NoError(t, r.Save(context.Background(), e))

	assert.Equal(t, int64(5), e.EvaluationID)
	assert.Equal(t, created, e.CreatedAt)
	assert.Contains(t, q.sql, "insert into evaluate_decision_shift")
	assert.Equal(t, []any{int64(3), "2025-07-01", "2025-07-31", "ok", "[]"}, q.args)
}

func TestRepo_Latest(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{scan: func(dest ...any) error {
			*dest[0].(*int64) = 5
			*dest[1].(*int64) = 3
			*dest[2].(*string) = "2025-07-01"
			*dest[3].(*string) = "2025-07-31"
			*dest[4].(*string) = "fine"
			*dest[5].(*string) = "[11, 12]"
			return nil
		}}}
		e, err := (&Repo{db: q}).Latest(context.Background(), 3)
		require.NoError(t, err)
		assert.Equal(t, []int64{11, 12}, e.Flagged)
		assert.Equal(t, "fine", e.Comment)
		assert.Equal(t, []any{int64(3)}, q.args)
	})

	t.Run("none", func(t *testing.T) {
		q := &fakeQuerier{row: fakeRow{scan: func(...any) error { return pgx.ErrNoRows }}}
		_, err := (&Repo{db: q}).Latest(context.Background(), 3)
		assert.ErrorIs(t, err, ErrNoEvaluation)
	})
}
