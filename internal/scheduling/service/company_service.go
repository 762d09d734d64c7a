package service

import (
	"context"

	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

type CompanyStore interface {
	Get(ctx context.Context, companyID int64) (*domain.CompanyProfile, error)
	RestDays(ctx context.Context, companyID int64, first, last string) ([]string, error)
	Update(ctx context.Context, p *domain.CompanyProfile) error
}

type CompanyService struct {
	companies CompanyStore
}

func NewCompanyService(companies CompanyStore) *CompanyService {
	return &CompanyService{companies: companies}
}

func (s *CompanyService) Get(ctx context.Context, companyID int64) (*domain.CompanyProfile, error) {
	return s.companies.Get(ctx, companyID)
}

// Update validates p and replaces the stored profile, rest days and positions.
func (s *CompanyService) Update(ctx context.Context, p *domain.CompanyProfile) error {
	if err := domain.ValidateCompany(p); err != nil {
		return err
	}
	return s.companies.Update(ctx, p)
}
