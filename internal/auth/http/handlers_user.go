package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/auth/middleware"
	"github.com/shift-agent/shift-agent/internal/logging"
)

// Login signs in with email and password and returns the session fields. The
// ID token is also set as an HttpOnly cookie.
func (h *Handler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "email and password are required"})
		return
	}

	res, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, "login", err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.IDTokenCookie, res.IDToken, int(res.ExpiresIn), "/", "", h.secureCookie, true)

	c.JSON(http.StatusOK, loginResponse{
		Success:      true,
		FirebaseUID:  res.User.FirebaseUID,
		UserID:       res.User.UserID,
		CompanyID:    res.User.CompanyID,
		Role:         string(res.User.Role),
		IDToken:      res.IDToken,
		AccessToken:  res.IDToken,
		RefreshToken: res.RefreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    res.ExpiresIn,
	})
}

// SignIn registers an owner account and its company.
func (h *Handler) SignIn(c *gin.Context) {
	var req signInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "email, password and confirm_password are required"})
		return
	}

	user, err := h.authService.RegisterOwner(c.Request.Context(), domain.RegisterOwnerRequest{
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		Role:            domain.Role(req.Role),
		CompanyName:     req.CompanyName,
	})
	if err != nil {
		h.respondError(c, "signin", err)
		return
	}

	c.JSON(http.StatusCreated, signInResponse{
		Success:     true,
		FirebaseUID: user.FirebaseUID,
		Email:       user.Email,
		UserID:      user.UserID,
		CompanyID:   user.CompanyID,
	})
}

// Me returns the current user's account and profile summary.
func (h *Handler) Me(c *gin.Context) {
	p := authctx.PrincipalFrom(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "user not authenticated"})
		return
	}

	me, err := h.authService.Me(c.Request.Context(), p)
	if err != nil {
		h.respondError(c, "me", err)
		return
	}
	c.JSON(http.StatusOK, me)
}

// Logout clears the id_token cookie. Bearer clients simply drop their token.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(middleware.IDTokenCookie, "", -1, "/", "", h.secureCookie, true)
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}

func (h *Handler) respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrInvalidEmail),
		errors.Is(err, domain.ErrPasswordMismatch),
		errors.Is(err, domain.ErrWeakPassword),
		errors.Is(err, domain.ErrInvalidRole):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrSignInUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"detail": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error("auth request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}
