package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/logging"
)

// IDTokenCookie carries the ID token for browser clients.
const IDTokenCookie = "id_token"

// TokenVerifier is satisfied by *auth.Client.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, firebaseUID string) (*domain.Principal, error)
}

// FirebaseAuthMiddleware validates Firebase ID tokens and resolves the caller.
func FirebaseAuthMiddleware(verifier TokenVerifier, resolver PrincipalResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		log := logging.FromContext(ctx)

		token := extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "missing authorization token"})
			return
		}

		decoded, err := verifier.VerifyIDToken(ctx, token)
		if err != nil {
			log.Debug("token verification failed", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "invalid token"})
			return
		}

		p, err := resolver.ResolvePrincipal(ctx, decoded.UID)
		if err != nil {
			if errors.Is(err, domain.ErrUserNotFound) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "unknown user"})
				return
			}
			log.Error("failed to resolve principal", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "failed to resolve user"})
			return
		}

		if claim, ok := decoded.Claims["role"].(string); ok && claim != string(p.Role) {
			log.Warn("role claim does not match account",
				zap.String("claim", claim), zap.String("role", string(p.Role)))
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "role mismatch"})
			return
		}

		authctx.SetPrincipal(c, p)
		c.Request = c.Request.WithContext(logging.ContextWithLogger(ctx,
			log.With(zap.Int64("user_id", p.UserID), zap.String("role", string(p.Role)))))

		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller has one of roles.
func RequireRole(roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		p := authctx.PrincipalFrom(c)
		if p == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "user not authenticated"})
			return
		}
		for _, r := range roles {
			if p.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"detail": "insufficient role"})
	}
}

// extractToken reads the Bearer token, falling back to the id_token cookie.
func extractToken(c *gin.Context) string {
	bearerToken := c.GetHeader("Authorization")
	if len(bearerToken) > 7 && strings.EqualFold(bearerToken[:7], "Bearer ") {
		return strings.TrimSpace(bearerToken[7:])
	}
	if cookie, err := c.Cookie(IDTokenCookie); err == nil {
		return cookie
	}
	return ""
}
