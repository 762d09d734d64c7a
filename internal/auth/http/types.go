package http

import "github.com/shift-agent/shift-agent/internal/auth/service"

type Handler struct {
	authService  *service.AuthService
	secureCookie bool
}

// New creates the auth handler. secureCookie marks the id_token cookie Secure.
func New(authService *service.AuthService, secureCookie bool) *Handler {
	return &Handler{
		authService:  authService,
		secureCookie: secureCookie,
	}
}

type loginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginResponse struct {
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

type signInRequest struct {
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
	Role            string `json:"role"`
	CompanyName     string `json:"company_name"`
}

type signInResponse struct {
	Success     bool   `json:"success"`
	FirebaseUID string `json:"firebase_uid"`
	Email       string `json:"email"`
	UserID      int64  `json:"user_id"`
	CompanyID   int64  `json:"company_id"`
}
