package session

import (
	"context"
	"errors"
	"time"
)

type Role string

const (
	RoleOwner Role = "owner"
	RoleCrew  Role = "crew"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleCrew
}

var (
	ErrNotFound       = errors.New("session not found")
	ErrInvalidSession = errors.New("invalid session")
)

// Session is the identity returned by a successful login. A zero ExpiresAt
// means the expiry is unknown.
type Session struct {
	UserID       string    `json:"user_id" yaml:"user_id"`
	CompanyID    string    `json:"company_id" yaml:"company_id"`
	Role         Role      `json:"role" yaml:"role"`
	Token        string    `json:"token" yaml:"token"`
	TokenType    string    `json:"token_type,omitempty" yaml:"token_type,omitempty"`
	RefreshToken string    `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at,omitempty" yaml:"expires_at,omitempty"`
}

// UserInfo is profile data cached next to the session for display.
type UserInfo struct {
	Name     string `json:"name" yaml:"name"`
	Email    string `json:"email,omitempty" yaml:"email,omitempty"`
	Position string `json:"position,omitempty" yaml:"position,omitempty"`
	Post     string `json:"post,omitempty" yaml:"post,omitempty"`
}

// Record is the unit a Store persists.
type Record struct {
	Session          Session   `json:"session" yaml:"session"`
	UserInfo         *UserInfo `json:"user_info,omitempty" yaml:"user_info,omitempty"`
	UserInfoCachedAt time.Time `json:"user_info_cached_at,omitempty" yaml:"user_info_cached_at,omitempty"`
}

// Store persists at most one Record. Load returns ErrNotFound when empty and
// Delete succeeds on an empty store.
type Store interface {
	Load(ctx context.Context) (*Record, error)
	Save(ctx context.Context, rec *Record) error
	Delete(ctx context.Context) error
}
