package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	authdomain "github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

const crewColumns = `
	p.user_id, p.company_id, p.name, p.age, p.phone, p.position, p.evaluate,
	p.experience, COALESCE(to_char(p.join_company_day, 'YYYY-MM-DD'), ''),
	p.hour_pay, p.post
`

type CrewRepository struct {
	db *sql.DB
}

func NewCrewRepository(db *sql.DB) *CrewRepository {
	return &CrewRepository{db: db}
}

func (r *CrewRepository) List(ctx context.Context, companyID int64) ([]domain.CrewMember, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT`+crewColumns+`
		FROM user_profile p
		WHERE p.company_id = $1
		ORDER BY p.user_id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list crew: %w", err)
	}
	defer rows.Close()

	members := []domain.CrewMember{}
	for rows.Next() {
		m, err := scanCrew(rows)
		if err != nil {
			return nil, err
		}
		members = append(members, *m)
	}
	return members, rows.Err()
}

func (r *CrewRepository) Get(ctx context.Context, companyID, userID int64) (*domain.CrewMember, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT`+crewColumns+`
		FROM user_profile p
		WHERE p.company_id = $1 AND p.user_id = $2
	`, companyID, userID)

	m, err := scanCrew(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrCrewNotFound
	}
	return m, err
}

// Create inserts the crew account and its profile in one transaction.
func (r *CrewRepository) Create(ctx context.Context, email, firebaseUID string, m *domain.CrewMember) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO app_user (company_id, email, firebase_uid, role)
		VALUES ($1, $2, $3, 'crew')
		RETURNING user_id
	`, m.CompanyID, email, firebaseUID).Scan(&m.UserID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return authdomain.ErrEmailExists
		}
		return fmt.Errorf("insert user: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO user_profile
			(user_id, company_id, name, age, phone, position, evaluate, experience, join_company_day, hour_pay, post)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, NULLIF($9, '')::date, $10, $11)
	`, m.UserID, m.CompanyID, m.Name, m.Age, m.Phone, m.Position, m.Evaluate,
		m.Experience, m.JoinCompanyDay, m.HourPay, m.Post)
	if err != nil {
		return fmt.Errorf("insert profile: %w", err)
	}

	return tx.Commit()
}

func (r *CrewRepository) Update(ctx context.Context, m *domain.CrewMember) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE user_profile
		SET name = $3, age = $4, phone = $5, position = $6, evaluate = $7,
		    experience = $8, join_company_day = NULLIF($9, '')::date, hour_pay = $10, post = $11
		WHERE user_id = $1 AND company_id = $2
	`, m.UserID, m.CompanyID, m.Name, m.Age, m.Phone, m.Position, m.Evaluate,
		m.Experience, m.JoinCompanyDay, m.HourPay, m.Post)
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update profile: %w", err)
	}
	if n == 0 {
		return domain.ErrCrewNotFound
	}
	return nil
}

// Summaries lists the profile fields shown beside drafts and decisions.
func (r *CrewRepository) Summaries(ctx context.Context, companyID int64) ([]domain.MemberSummary, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id, name, position, evaluate, hour_pay, post
		FROM user_profile
		WHERE company_id = $1
		ORDER BY user_id
	`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	defer rows.Close()

	out := []domain.MemberSummary{}
	for rows.Next() {
		var s domain.MemberSummary
		if err := rows.Scan(&s.UserID, &s.Name, &s.Position, &s.Evaluate, &s.HourPay, &s.Post); err != nil {
			return nil, fmt.Errorf("scan member: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// MemberIDs returns which of userIDs belong to companyID.
func (r *CrewRepository) MemberIDs(ctx context.Context, companyID int64, userIDs []int64) (map[int64]bool, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT user_id FROM app_user
		WHERE company_id = $1 AND user_id = ANY($2)
	`, companyID, pq.Array(userIDs))
	if err != nil {
		return nil, fmt.Errorf("check members: %w", err)
	}
	defer rows.Close()

	ids := make(map[int64]bool, len(userIDs))
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = true
	}
	return ids, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCrew(row rowScanner) (*domain.CrewMember, error) {
	var m domain.CrewMember
	err := row.Scan(
		&m.UserID,
		&m.CompanyID,
		&m.Name,
		&m.Age,
		&m.Phone,
		&m.Position,
		&m.Evaluate,
		&m.Experience,
		&m.JoinCompanyDay,
		&m.HourPay,
		&m.Post,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
