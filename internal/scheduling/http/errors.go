package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	authdomain "github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/logging"
	"github.com/shift-agent/shift-agent/internal/scheduling/domain"
)

func respondError(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrCrewNotFound),
		errors.Is(err, domain.ErrShiftNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": err.Error()})
	case errors.Is(err, domain.ErrInvalidProfile),
		errors.Is(err, domain.ErrInvalidCompany),
		errors.Is(err, domain.ErrInvalidShift),
		errors.Is(err, domain.ErrInvalidRange),
		errors.Is(err, domain.ErrNotCompanyMember),
		errors.Is(err, authdomain.ErrInvalidEmail),
		errors.Is(err, authdomain.ErrWeakPassword):
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
	case errors.Is(err, authdomain.ErrEmailExists):
		c.JSON(http.StatusConflict, gin.H{"detail": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error("request failed", zap.String("op", op), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "internal server error"})
	}
}

// queryCompany reads the optional company_id query parameter and scopes it.
func queryCompany(c *gin.Context) (int64, bool) {
	raw := c.Query("company_id")
	if raw == "" {
		return authctx.ScopeCompany(c, 0)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "company_id must be a positive integer"})
		return 0, false
	}
	return authctx.ScopeCompany(c, id)
}

func bindJSON(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid request body: " + err.Error()})
		return false
	}
	return true
}
