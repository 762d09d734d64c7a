package domain

import "time"

type Role string

const (
	RoleOwner Role = "owner"
	RoleCrew  Role = "crew"
)

func (r Role) Valid() bool {
	return r == RoleOwner || r == RoleCrew
}

// User is an application account. FirebaseUID links it to Firebase Auth.
type User struct {
	UserID      int64     `json:"user_id" db:"user_id"`
	CompanyID   int64     `json:"company_id" db:"company_id"`
	Email       string    `json:"email" db:"email"`
	FirebaseUID string    `json:"firebase_uid" db:"firebase_uid"`
	Role        Role      `json:"role" db:"role"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Principal is the authenticated caller of a request.
type Principal struct {
	UserID      int64  `json:"user_id"`
	CompanyID   int64  `json:"company_id"`
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}

func (p *Principal) IsOwner() bool {
	return p != nil && p.Role == RoleOwner
}

func PrincipalFromUser(u *User) *Principal {
	return &Principal{
		UserID:      u.UserID,
		CompanyID:   u.CompanyID,
		FirebaseUID: u.FirebaseUID,
		Email:       u.Email,
		Role:        u.Role,
	}
}

// RegisterOwnerRequest creates an owner account together with a new company.
type RegisterOwnerRequest struct {
	Email           string
	Password        string
	ConfirmPassword string
	Role            Role
	CompanyName     string
}

// NewAccount is a Firebase identity to create for a given company and role.
type NewAccount struct {
	Email     string
	Password  string
	Role      Role
	CompanyID int64
}

// Credentials is the result of a successful password sign-in.
type Credentials struct {
	FirebaseUID  string
	IDToken      string
	RefreshToken string
	ExpiresIn    int64
}

type LoginResult struct {
	User         *User
	IDToken      string
	RefreshToken string
	ExpiresIn    int64
}
