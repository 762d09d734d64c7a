package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	authdomain "github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/logging"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

type CrewStore interface {
	List(ctx context.Context, companyID int64) ([]domain.CrewMember, error)
	Create(ctx context.Context, email, firebaseUID string, m *domain.CrewMember) error
	Update(ctx context.Context, m *domain.CrewMember) error
	Summaries(ctx context.Context, companyID int64) ([]domain.MemberSummary, error)
	MemberIDs(ctx context.Context, companyID int64, userIDs []int64) (map[int64]bool, error)
}

// Accounts creates and removes login identities. *authservice.AuthService
// satisfies it.
type Accounts interface {
	CreateAccount(ctx context.Context, acct authdomain.NewAccount) (string, error)
	DeleteAccount(ctx context.Context, uid string) error
}

type CrewService struct {
	crew     CrewStore
	accounts Accounts
}

func NewCrewService(crew CrewStore, accounts Accounts) *CrewService {
	return &CrewService{crew: crew, accounts: accounts}
}

func (s *CrewService) List(ctx context.Context, companyID int64) ([]domain.CrewMember, error) {
	return s.crew.List(ctx, companyID)
}

// Create registers a crew login for companyID and stores its profile. The
// login is removed again if the profile cannot be stored.
func (s *CrewService) Create(ctx context.Context, companyID int64, nc domain.NewCrew) (*domain.CreatedCrew, error) {
	nc.Profile.CompanyID = companyID
	if err := domain.ValidateProfile(&nc.Profile); err != nil {
		return nil, err
	}

	uid, err := s.accounts.CreateAccount(ctx, authdomain.NewAccount{
		Email:     nc.Email,
		Password:  nc.Password,
		Role:      authdomain.RoleCrew,
		CompanyID: companyID,
	})
	if err != nil {
		return nil, err
	}

	if err := s.crew.Create(ctx, nc.Email, uid, &nc.Profile); err != nil {
		if delErr := s.accounts.DeleteAccount(ctx, uid); delErr != nil {
			logging.FromContext(ctx).Error("failed to remove crew login after profile error",
				zap.String("firebase_uid", uid), zap.Error(delErr))
		}
		return nil, fmt.Errorf("create crew: %w", err)
	}

	return &domain.CreatedCrew{UserID: nc.Profile.UserID, FirebaseUID: uid, Email: nc.Email}, nil
}

func (s *CrewService) Update(ctx context.Context, m *domain.CrewMember) error {
	if err := domain.ValidateProfile(m); err != nil {
		return err
	}
	return s.crew.Update(ctx, m)
}
