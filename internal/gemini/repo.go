package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

var ErrNoEvaluation = errors.New("no evaluation stored")

// rowQuerier is the part of *pgxpool.Pool the repo needs.
type rowQuerier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repo stores evaluations in evaluate_decision_shift.
type Repo struct {
	db rowQuerier
}

func NewRepo(db *pgxpool.Pool) *Repo { return &Repo{db: db} }

func (r *Repo) Save(ctx context.Context, e *domain.Evaluation) error {
	flagged := e.Flagged
	if flagged == nil {
		flagged = []int64{}
	}
	raw, err := json.Marshal(flagged)
	if err != nil {
		return err
	}

	const q = `
insert into evaluate_decision_shift (company_id, start_day, finish_day, evaluate, flagged)
values ($1, $2::date, $3::date, $4, $5::jsonb)
returning evaluate_decision_shift_id, created_at
`
	if err := r.db.QueryRow(ctx, q, e.CompanyID, e.StartDay, e.FinishDay, e.Comment, string(raw)).
		Scan(&e.EvaluationID, &e.CreatedAt); err != nil {
		return fmt.Errorf("save evaluation: %w", err)
	}
	return nil
}

// Latest returns the most recent evaluation of a company.
func (r *Repo) Latest(ctx context.Context, companyID int64) (*domain.Evaluation, error) {
	const q = `
select evaluate_decision_shift_id, company_id,
       to_char(start_day, 'YYYY-MM-DD'), to_char(finish_day, 'YYYY-MM-DD'),
       evaluate, flagged::text, created_at
from evaluate_decision_shift
where company_id = $1
order by created_at desc, evaluate_decision_shift_id desc
limit 1
`
	var (
		e       domain.Evaluation
		flagged string
	)
	err := r.db.QueryRow(ctx, q, companyID).
		Scan(&e.EvaluationID, &e.CompanyID, &e.StartDay, &e.FinishDay, &e.Comment, &flagged, &e.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNoEvaluation
		}
		return nil, err
	}
	if err := json.Unmarshal([]byte(flagged), &e.Flagged); err != nil {
		return nil, fmt.Errorf("decode flagged shifts: %w", err)
	}
	return &e, nil
}
