package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"github.com/shift-agent/shift-agent/internal/client/apiclient"
	"github.com/shift-agent/shift-agent/internal/client/session"
)

// defaultTokenLifetime applies when neither expires_in nor the token's exp
// claim is available.
const defaultTokenLifetime = time.Hour

var (
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrInvalidEmail     = errors.New("invalid email address")
	ErrNoToken          = errors.New("login response carried no token")
	ErrNotLoggedIn      = errors.New("not logged in")
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Success      bool   `json:"success"`
	FirebaseUID  string `json:"firebase_uid"`
	UserID       int64  `json:"user_id"`
	CompanyID    int64  `json:"company_id"`
	Role         string `json:"role"`
	IDToken      string `json:"id_token"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type RegisterRequest struct {
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
	CompanyName     string `json:"company_name,omitempty"`
}

type RegisterResponse struct {
	Success     bool   `json:"success"`
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
	UserID      int64  `json:"user_id"`
	CompanyID   int64  `json:"company_id"`
}

type Me struct {
	UserID    int64  `json:"user_id"`
	CompanyID int64  `json:"company_id"`
	Role      string `json:"role"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	Position  string `json:"position"`
	Post      string `json:"post"`
}

type AuthService struct {
	client *apiclient.Client
	now    func() time.Time
}

func NewAuthService(client *apiclient.Client) *AuthService {
	return &AuthService{client: client, now: time.Now}
}

// Login exchanges credentials for a session and stores it, replacing any
// previous session.
func (s *AuthService) Login(ctx context.Context, email, password string) (session.Session, error) {
	email = strings.TrimSpace(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return session.Session{}, ErrInvalidEmail
	}

	var resp LoginResponse
	if err := s.client.Post(ctx, "/login", LoginRequest{Email: email, Password: password}, &resp); err != nil {
		return session.Session{}, err
	}

	token := resp.IDToken
	if token == "" {
		token = resp.AccessToken
	}
	if token == "" {
		return session.Session{}, ErrNoToken
	}

	role := session.Role(resp.Role)
	if !role.Valid() {
		return session.Session{}, fmt.Errorf("%w: login response carried role %q", session.ErrInvalidSession, resp.Role)
	}

	tokenType := resp.TokenType
	if tokenType == "" {
		tokenType = "Bearer"
	}

	sess := session.Session{
		UserID:       strconv.FormatInt(resp.UserID, 10),
		CompanyID:    strconv.FormatInt(resp.CompanyID, 10),
		Role:         role,
		Token:        token,
		TokenType:    tokenType,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    s.expiry(resp.ExpiresIn, token),
	}
	if err := s.client.Sessions().SaveSession(ctx, sess); err != nil {
		return session.Session{}, fmt.Errorf("save session: %w", err)
	}
	return sess, nil
}

func (s *AuthService) expiry(expiresIn int64, token string) time.Time {
	if expiresIn > 0 {
		return s.now().Add(time.Duration(expiresIn) * time.Second)
	}

	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err == nil && claims.ExpiresAt != nil {
		return claims.ExpiresAt.Time
	}
	return s.now().Add(defaultTokenLifetime)
}

// Register creates an owner account. It does not log in.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*RegisterResponse, error) {
	req.Email = strings.TrimSpace(req.Email)
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return nil, ErrInvalidEmail
	}
	if req.Password != req.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}
	if req.Role == "" {
		req.Role = string(session.RoleOwner)
	}

	var resp RegisterResponse
	if err := s.client.Post(ctx, "/signin", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Me fetches the caller's profile and caches it next to the session.
func (s *AuthService) Me(ctx context.Context) (*Me, error) {
	var me Me
	if err := s.client.Get(ctx, "/me", nil, &me); err != nil {
		return nil, err
	}
	err := s.client.Sessions().CacheUserInfo(ctx, session.UserInfo{
		Name:     me.Name,
		Email:    me.Email,
		Position: me.Position,
		Post:     me.Post,
	})
	if err != nil {
		s.client.Logger().Debug("caching user info failed", zap.Error(err))
	}
	return &me, nil
}

func (s *AuthService) Logout(ctx context.Context) error {
	return s.client.Sessions().Clear(ctx)
}

// CompanyID returns the company of the logged-in user.
func CompanyID(ctx context.Context, sessions *session.Manager) (int64, error) {
	sess, ok := sessions.Session(ctx)
	if !ok {
		return 0, ErrNotLoggedIn
	}
	id, err := strconv.ParseInt(sess.CompanyID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session company id %q: %w", sess.CompanyID, err)
	}
	return id, nil
}

// UserID returns the id of the logged-in user.
func UserID(ctx context.Context, sessions *session.Manager) (int64, error) {
	sess, ok := sessions.Session(ctx)
	if !ok {
		return 0, ErrNotLoggedIn
	}
	id, err := strconv.ParseInt(sess.UserID, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("session user id %q: %w", sess.UserID, err)
	}
	return id, nil
}
