package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"firebase.google.com/go/v4/auth"
	"go.uber.org/zap"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/logging"
)

const minPasswordLength = 6

// IdentityProvider is the part of the Firebase Admin client used to manage
// accounts. *auth.Client satisfies it.
type IdentityProvider interface {
	CreateUser(ctx context.Context, user *auth.UserToCreate) (*auth.UserRecord, error)
	SetCustomUserClaims(ctx context.Context, uid string, customClaims map[string]interface{}) error
	DeleteUser(ctx context.Context, uid string) error
}

type PasswordSigner interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Credentials, error)
}

type UserStore interface {
	GetByFirebaseUID(ctx context.Context, uid string) (*domain.User, error)
	CreateOwner(ctx context.Context, companyName string, user *domain.User) error
	ProfileSummary(ctx context.Context, userID int64) (name, position, post string, err error)
}

type PrincipalStore interface {
	Get(ctx context.Context, firebaseUID string) (*domain.Principal, error)
	Set(ctx context.Context, p *domain.Principal) error
	Delete(ctx context.Context, firebaseUID string) error
}

type AuthService struct {
	users  UserStore
	cache  PrincipalStore
	idp    IdentityProvider
	signer PasswordSigner
}

func NewAuthService(users UserStore, cache PrincipalStore, idp IdentityProvider, signer PasswordSigner) *AuthService {
	return &AuthService{
		users:  users,
		cache:  cache,
		idp:    idp,
		signer: signer,
	}
}

// Login verifies the password with Firebase and returns the matching account.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	creds, err := s.signer.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}

	user, err := s.users.GetByFirebaseUID(ctx, creds.FirebaseUID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			// Firebase knows the account but this service does not.
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return &domain.LoginResult{
		User:         user,
		IDToken:      creds.IDToken,
		RefreshToken: creds.RefreshToken,
		ExpiresIn:    creds.ExpiresIn,
	}, nil
}

// RegisterOwner creates the Firebase account, its role claim, and the company
// and user rows. The Firebase account is removed again if the rows fail.
func (s *AuthService) RegisterOwner(ctx context.Context, req domain.RegisterOwnerRequest) (*domain.User, error) {
	if req.Role == "" {
		req.Role = domain.RoleOwner
	}
	if req.Role != domain.RoleOwner {
		return nil, fmt.Errorf("%w: only owners can register, crew accounts are created by their owner", domain.ErrInvalidRole)
	}
	if err := validateCredentials(req.Email, req.Password); err != nil {
		return nil, err
	}
	if req.Password != req.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}

	uid, err := s.CreateAccount(ctx, domain.NewAccount{Email: req.Email, Password: req.Password, Role: domain.RoleOwner})
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:       strings.TrimSpace(req.Email),
		FirebaseUID: uid,
		Role:        domain.RoleOwner,
	}
	if err := s.users.CreateOwner(ctx, strings.TrimSpace(req.CompanyName), user); err != nil {
		s.rollbackAccount(ctx, uid)
		return nil, err
	}
	return user, nil
}

// CreateAccount creates a Firebase user carrying a role claim and returns its UID.
func (s *AuthService) CreateAccount(ctx context.Context, acct domain.NewAccount) (string, error) {
	if !acct.Role.Valid() {
		return "", domain.ErrInvalidRole
	}
	if err := validateCredentials(acct.Email, acct.Password); err != nil {
		return "", err
	}

	params := (&auth.UserToCreate{}).
		Email(strings.TrimSpace(acct.Email)).
		Password(acct.Password)

	record, err := s.idp.CreateUser(ctx, params)
	if err != nil {
		if auth.IsEmailAlreadyExists(err) {
			return "", domain.ErrEmailExists
		}
		return "", fmt.Errorf("create firebase user: %w", err)
	}

	claims := map[string]interface{}{"role": string(acct.Role)}
	if acct.CompanyID != 0 {
		claims["company_id"] = acct.CompanyID
	}
	if err := s.idp.SetCustomUserClaims(ctx, record.UID, claims); err != nil {
		s.rollbackAccount(ctx, record.UID)
		return "", fmt.Errorf("set role claim: %w", err)
	}
	return record.UID, nil
}

// DeleteAccount removes a Firebase user and its cached principal.
func (s *AuthService) DeleteAccount(ctx context.Context, uid string) error {
	if err := s.idp.DeleteUser(ctx, uid); err != nil {
		return fmt.Errorf("delete firebase user: %w", err)
	}
	return s.cache.Delete(ctx, uid)
}

// ResolvePrincipal maps a verified Firebase UID to an account, through the cache.
func (s *AuthService) ResolvePrincipal(ctx context.Context, firebaseUID string) (*domain.Principal, error) {
	log := logging.FromContext(ctx)

	p, err := s.cache.Get(ctx, firebaseUID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, domain.ErrUserNotFound) {
		log.Warn("principal cache unavailable", zap.Error(err))
	}

	user, err := s.users.GetByFirebaseUID(ctx, firebaseUID)
	if err != nil {
		return nil, err
	}

	p = domain.PrincipalFromUser(user)
	if err := s.cache.Set(ctx, p); err != nil {
		log.Warn("failed to cache principal", zap.Error(err))
	}
	return p, nil
}

type MeView struct {
	UserID    int64       `json:"user_id"`
	CompanyID int64       `json:"company_id"`
	Role      domain.Role `json:"role"`
	Email     string      `json:"email"`
	Name      string      `json:"name"`
	Position  string      `json:"position"`
	Post      string      `json:"post"`
}

func (s *AuthService) Me(ctx context.Context, p *domain.Principal) (*MeView, error) {
	name, position, post, err := s.users.ProfileSummary(ctx, p.UserID)
	if err != nil {
		return nil, err
	}
	return &MeView{
		UserID:    p.UserID,
		CompanyID: p.CompanyID,
		Role:      p.Role,
		Email:     p.Email,
		Name:      name,
		Position:  position,
		Post:      post,
	}, nil
}

func (s *AuthService) rollbackAccount(ctx context.Context, uid string) {
	if err := s.idp.DeleteUser(ctx, uid); err != nil {
		logging.FromContext(ctx).Error("failed to roll back firebase user",
			zap.String("firebase_uid", uid), zap.Error(err))
	}
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(strings.TrimSpace(email)); err != nil {
		return domain.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return domain.ErrWeakPassword
	}
	return nil
}
