package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/auth/domain"
)

type fakeVerifier struct {
	tokens map[string]*auth.Token
}

func (f *fakeVerifier) VerifyIDToken(_ context.Context, idToken string) (*auth.Token, error) {
	if t, ok := f.tokens[idToken]; ok {
		return t, nil
	}
	return nil, errors.New("token has expired")
}

type fakeResolver struct {
	principals map[string]*domain.Principal
}

func (f *fakeResolver) ResolvePrincipal(_ context.Context, uid string) (*domain.Principal, error) {
	if p, ok := f.principals[uid]; ok {
		return p, nil
	}
	return nil, domain.ErrUserNotFound
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	verifier := &fakeVerifier{tokens: map[string]*auth.Token{
		"owner-token":    {UID: "fb-owner", Claims: map[string]interface{}{"role": "owner"}},
		"crew-token":     {UID: "fb-crew", Claims: map[string]interface{}{"role": "crew"}},
		"forged-token":   {UID: "fb-crew", Claims: map[string]interface{}{"role": "owner"}},
		"orphan-token":   {UID: "fb-orphan"},
		"noclaims-token": {UID: "fb-owner"},
	}}
	resolver := &fakeResolver{principals: map[string]*domain.Principal{
		"fb-owner": {UserID: 1, CompanyID: 3, FirebaseUID: "fb-owner", Role: domain.RoleOwner},
		"fb-crew":  {UserID: 7, CompanyID: 3, FirebaseUID: "fb-crew", Role: domain.RoleCrew},
	}}

	r := gin.New()
	protected := r.Group("/", FirebaseAuthMiddleware(verifier, resolver))
	protected.GET("/whoami", func(c *gin.Context) {
		p := authctx.PrincipalFrom(c)
		c.JSON(http.StatusOK, gin.H{"user_id": p.UserID, "uid": authctx.UserFirebaseUID(c)})
	})
	protected.POST("/owner-only", RequireRole(domain.RoleOwner), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return r
}

func TestFirebaseAuthMiddleware(t *testing.T) {
	r := setupRouter()

	cases := []struct {
		name   string
		header string
		cookie string
		want   int
	}{
		{"missing token", "", "", http.StatusUnauthorized},
		{"invalid token", "Bearer garbage", "", http.StatusUnauthorized},
		{"unknown user", "Bearer orphan-token", "", http.StatusUnauthorized},
		{"role claim mismatch", "Bearer forged-token", "", http.StatusForbidden},
		{"valid bearer", "Bearer crew-token", "", http.StatusOK},
		{"lowercase scheme", "bearer crew-token", "", http.StatusOK},
		{"no role claim", "Bearer noclaims-token", "", http.StatusOK},
		{"cookie", "", "owner-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: IDTokenCookie, Value: tc.cookie})
			}
			rr := httptest.NewRecorder()
			r.ServeHTTP(rr, req)

			assert.Equal(t, tc.want, rr.Code)
			if tc.want != http.StatusOK {
				assert.Contains(t, rr.Body.String(), `"detail"`)
			}
		})
	}
}

func TestRequireRole(t *testing.T) {
	r := setupRouter()

	req := httptest.NewRequest(http.MethodPost, "/owner-only", nil)
	req.Header.Set("Authorization", "Bearer crew-token")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	req = httptest.NewRequest(http.MethodPost, "/owner-only", nil)
	req.Header.Set("Authorization", "Bearer owner-token")
	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	assert.Equal(t, http.StatusNoContent, rr.Code)
}
