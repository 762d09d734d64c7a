package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
)

const (
	CtxFirebaseUID = "firebase_uid"
	CtxPrincipal   = "principal"
)

// SetPrincipal is called by the auth middleware once the token is verified.
func SetPrincipal(c *gin.Context, p *domain.Principal) {
	c.Set(CtxFirebaseUID, p.FirebaseUID)
	c.Set(CtxPrincipal, p)
}

// PrincipalFrom returns the authenticated caller, or nil outside protected routes.
func PrincipalFrom(c *gin.Context) *domain.Principal {
	v, ok := c.Get(CtxPrincipal)
	if !ok {
		return nil
	}
	p, _ := v.(*domain.Principal)
	return p
}

// UserFirebaseUID extracts the Firebase UID set by the auth middleware.
func UserFirebaseUID(c *gin.Context) string {
	return c.GetString(CtxFirebaseUID)
}

// SameCompany reports whether the caller belongs to companyID.
func SameCompany(c *gin.Context, companyID int64) bool {
	p := PrincipalFrom(c)
	return p != nil && p.CompanyID == companyID
}

// ScopeCompany resolves the company a request acts on. Zero means the caller's
// own company; any other company is rejected with 403. It reports false after
// writing the error response.
func ScopeCompany(c *gin.Context, companyID int64) (int64, bool) {
	p := PrincipalFrom(c)
	if p == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "user not authenticated"})
		return 0, false
	}
	if companyID == 0 {
		return p.CompanyID, true
	}
	if !SameCompany(c, companyID) {
		c.JSON(http.StatusForbidden, gin.H{"detail": "company_id does not match your account"})
		return 0, false
	}
	return companyID, true
}
