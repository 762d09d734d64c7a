package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

type CompanyRepository struct {
	db *sql.DB
}

func NewCompanyRepository(db *sql.DB) *CompanyRepository {
	return &CompanyRepository{db: db}
}

// Get returns the company with all of its rest days and positions.
func (r *CompanyRepository) Get(ctx context.Context, companyID int64) (*domain.CompanyProfile, error) {
	query := `
		SELECT company_id, company_name, COALESCE(store_locate, ''),
		       COALESCE(to_char(open_time, 'HH24:MI:SS'), ''),
		       COALESCE(to_char(close_time, 'HH24:MI:SS'), ''),
		       COALESCE(target_sales, 0), COALESCE(labor_cost, 0)
		FROM company
		WHERE company_id = $1
	`

	var c domain.Company
	err := r.db.QueryRowContext(ctx, query, companyID).Scan(
		&c.CompanyID,
		&c.CompanyName,
		&c.StoreLocate,
		&c.OpenTime,
		&c.CloseTime,
		&c.TargetSales,
		&c.LaborCost,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCompanyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get company: %w", err)
	}

	restDays, err := r.RestDays(ctx, companyID, "", "")
	if err != nil {
		return nil, err
	}

	positions, err := queryStrings(ctx, r.db, `
		SELECT position_name FROM company_position
		WHERE company_id = $1
		ORDER BY company_position_id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list positions: %w", err)
	}

	return &domain.CompanyProfile{Company: c, RestDays: restDays, Positions: positions}, nil
}

// RestDays lists rest days ordered by date, limited to [first, last] when
// those are set.
func (r *CompanyRepository) RestDays(ctx context.Context, companyID int64, first, last string) ([]string, error) {
	where, args := dayRange("rest_day", first, last, companyID)
	days, err := queryStrings(ctx, r.db, `
		SELECT to_char(rest_day, 'YYYY-MM-DD') FROM company_rest_day
		WHERE company_id = $1`+where+`
		ORDER BY rest_day
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("list rest days: %w", err)
	}
	return days, nil
}

// Update replaces the profile, rest days and positions in one transaction.
func (r *CompanyRepository) Update(ctx context.Context, p *domain.CompanyProfile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	c := p.Company
	res, err := tx.ExecContext(ctx, `
		UPDATE company
		SET company_name = $2, store_locate = $3,
		    open_time = NULLIF($4, '')::time, close_time = NULLIF($5, '')::time,
		    target_sales = $6, labor_cost = $7
		WHERE company_id = $1
	`, c.CompanyID, c.CompanyName, c.StoreLocate, c.OpenTime, c.CloseTime, c.TargetSales, c.LaborCost)
	if err != nil {
		return fmt.Errorf("update company: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.ErrCompanyNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM company_rest_day WHERE company_id = $1`, c.CompanyID); err != nil {
		return fmt.Errorf("clear rest days: %w", err)
	}
	for _, day := range p.RestDays {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO company_rest_day (company_id, rest_day) VALUES ($1, $2::date)`,
			c.CompanyID, day,
		); err != nil {
			return fmt.Errorf("insert rest day %s: %w", day, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM company_position WHERE company_id = $1`, c.CompanyID); err != nil {
		return fmt.Errorf("clear positions: %w", err)
	}
	for _, name := range p.Positions {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO company_position (company_id, position_name) VALUES ($1, $2)`,
			c.CompanyID, name,
		); err != nil {
			return fmt.Errorf("insert position %s: %w", name, err)
		}
	}

	return tx.Commit()
}
