package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

const slotColumns = `
	to_char(day, 'YYYY-MM-DD'), to_char(start_time, 'HH24:MI:SS'), to_char(finish_time, 'HH24:MI:SS')
`

type ShiftRepository struct {
	db *sql.DB
}

func NewShiftRepository(db *sql.DB) *ShiftRepository {
	return &ShiftRepository{db: db}
}

// InsertSubmitted stores availability; exact duplicates are ignored. It
// returns the number of new rows.
func (r *ShiftRepository) InsertSubmitted(ctx context.Context, userID, companyID int64, slots []domain.Slot) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	inserted := 0
	for _, s := range slots {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO submitted_shift (user_id, company_id, day, start_time, finish_time)
			VALUES ($1, $2, $3::date, $4::time, $5::time)
			ON CONFLICT DO NOTHING
		`, userID, companyID, s.Day, s.StartTime, s.FinishTime)
		if err != nil {
			return 0, fmt.Errorf("insert submitted shift: %w", err)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func (r *ShiftRepository) ListSubmitted(ctx context.Context, companyID int64, first, last string) ([]domain.SubmittedShift, error) {
	where, args := dayRange("day", first, last, companyID)
	rows, err := r.db.QueryContext(ctx, `
		SELECT submitted_shift_id, user_id, company_id,`+slotColumns+`
		FROM submitted_shift
		WHERE company_id = $1`+where+`
		ORDER BY day, start_time, user_id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list submitted shifts: %w", err)
	}
	defer rows.Close()

	out := []domain.SubmittedShift{}
	for rows.Next() {
		var s domain.SubmittedShift
		if err := rows.Scan(&s.SubmittedShiftID, &s.UserID, &s.CompanyID, &s.Day, &s.StartTime, &s.FinishTime); err != nil {
			return nil, fmt.Errorf("scan submitted shift: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ListDrafts returns drafts ordered by day and start time, limited to
// [first, last] when those are set.
func (r *ShiftRepository) ListDrafts(ctx context.Context, companyID int64, first, last string) ([]domain.EditShift, error) {
	where, args := dayRange("day", first, last, companyID)
	rows, err := r.db.QueryContext(ctx, `
		SELECT edit_shift_id, user_id, company_id,`+slotColumns+`
		FROM edit_shift
		WHERE company_id = $1`+where+`
		ORDER BY day, start_time, edit_shift_id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	out := []domain.EditShift{}
	for rows.Next() {
		var e domain.EditShift
		if err := rows.Scan(&e.EditShiftID, &e.UserID, &e.CompanyID, &e.Day, &e.StartTime, &e.FinishTime); err != nil {
			return nil, fmt.Errorf("scan draft: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// ApplyDrafts runs deletes, then updates, then inserts in one transaction.
// Updating or deleting a draft of another company fails with
// domain.ErrShiftNotFound and nothing is applied.
func (r *ShiftRepository) ApplyDrafts(ctx context.Context, companyID int64, changes domain.DraftChanges) (domain.DraftResult, error) {
	var result domain.DraftResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	for _, id := range changes.Delete {
		res, err := tx.ExecContext(ctx,
			`DELETE FROM edit_shift WHERE edit_shift_id = $1 AND company_id = $2`,
			id, companyID,
		)
		if err != nil {
			return result, fmt.Errorf("delete draft %d: %w", id, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return result, fmt.Errorf("%w: edit_shift_id %d", domain.ErrShiftNotFound, id)
		}
		result.Deleted++
	}

	for _, e := range changes.Update {
		res, err := tx.ExecContext(ctx, `
			UPDATE edit_shift
			SET user_id = $3, day = $4::date, start_time = $5::time, finish_time = $6::time
			WHERE edit_shift_id = $1 AND company_id = $2
		`, e.EditShiftID, companyID, e.UserID, e.Day, e.StartTime, e.FinishTime)
		if err != nil {
			return result, fmt.Errorf("update draft %d: %w", e.EditShiftID, err)
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return result, fmt.Errorf("%w: edit_shift_id %d", domain.ErrShiftNotFound, e.EditShiftID)
		}
		result.Updated++
	}

	for _, e := range changes.Add {
		if _, err := insertDraft(ctx, tx, companyID, e); err != nil {
			return result, err
		}
		result.Added++
	}

	if err := tx.Commit(); err != nil {
		return domain.DraftResult{}, fmt.Errorf("commit: %w", err)
	}
	return result, nil
}

// ReplaceDrafts deletes the drafts in [first, last] and inserts shifts,
// returning them with their new IDs.
func (r *ShiftRepository) ReplaceDrafts(ctx context.Context, companyID int64, first, last string, shifts []domain.EditShift) ([]domain.EditShift, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		DELETE FROM edit_shift
		WHERE company_id = $1 AND day >= $2::date AND day <= $3::date
	`, companyID, first, last); err != nil {
		return nil, fmt.Errorf("clear drafts: %w", err)
	}

	out := make([]domain.EditShift, 0, len(shifts))
	for _, e := range shifts {
		id, err := insertDraft(ctx, tx, companyID, e)
		if err != nil {
			return nil, err
		}
		e.EditShiftID = id
		e.CompanyID = companyID
		out = append(out, e)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return out, nil
}

// CompleteDrafts copies drafts dated after day into decision shifts,
// skipping exact duplicates, and returns how many were added.
func (r *ShiftRepository) CompleteDrafts(ctx context.Context, companyID int64, day string) (int, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO decision_shift (user_id, company_id, day, start_time, finish_time)
		SELECT user_id, company_id, day, start_time, finish_time
		FROM edit_shift
		WHERE company_id = $1 AND day > $2::date
		ON CONFLICT DO NOTHING
	`, companyID, day)
	if err != nil {
		return 0, fmt.Errorf("complete drafts: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("complete drafts: %w", err)
	}
	return int(n), nil
}

// ListDecided returns confirmed shifts with the member's name, position and
// post, limited to [first, last] when those are set.
func (r *ShiftRepository) ListDecided(ctx context.Context, companyID int64, first, last string) ([]domain.DecisionShift, error) {
	where, args := dayRange("d.day", first, last, companyID)
	rows, err := r.db.QueryContext(ctx, `
		SELECT d.decision_shift_id, d.user_id, d.company_id,
		       COALESCE(p.name, ''), COALESCE(p.position, ''), COALESCE(p.post, ''),
		       to_char(d.day, 'YYYY-MM-DD'), to_char(d.start_time, 'HH24:MI:SS'), to_char(d.finish_time, 'HH24:MI:SS')
		FROM decision_shift d
		LEFT JOIN user_profile p ON p.user_id = d.user_id
		WHERE d.company_id = $1`+where+`
		ORDER BY d.day, d.start_time, d.user_id
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list decision shifts: %w", err)
	}
	defer rows.Close()

	out := []domain.DecisionShift{}
	for rows.Next() {
		var d domain.DecisionShift
		if err := rows.Scan(&d.DecisionShiftID, &d.UserID, &d.CompanyID, &d.Name, &d.Position, &d.Post,
			&d.Day, &d.StartTime, &d.FinishTime); err != nil {
			return nil, fmt.Errorf("scan decision shift: %w", err)
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// PurgeDraftsBefore deletes drafts of every company dated before day.
func (r *ShiftRepository) PurgeDraftsBefore(ctx context.Context, day string) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM edit_shift WHERE day < $1::date`, day)
	if err != nil {
		return 0, fmt.Errorf("purge drafts: %w", err)
	}
	return res.RowsAffected()
}

func insertDraft(ctx context.Context, tx *sql.Tx, companyID int64, e domain.EditShift) (int64, error) {
	var id int64
	err := tx.QueryRowContext(ctx, `
		INSERT INTO edit_shift (user_id, company_id, day, start_time, finish_time)
		VALUES ($1, $2, $3::date, $4::time, $5::time)
		RETURNING edit_shift_id
	`, e.UserID, companyID, e.Day, e.StartTime, e.FinishTime).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("insert draft: %w", err)
	}
	return id, nil
}
