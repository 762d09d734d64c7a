package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authctx "github.com/shift-agent/shift-agent/internal/auth"
	"github.com/shift-agent/shift-agent/internal/auth/domain"
	"github.com/shift-agent/shift-agent/internal/auth/middleware"
	"github.com/shift-agent/shift-agent/internal/auth/service"
)

type stubIDP struct{}

func (stubIDP) CreateUser(context.Context, *auth.UserToCreate) (*auth.UserRecord, error) {
	return &auth.UserRecord{UserInfo: &auth.UserInfo{UID: "fb-new"}}, nil
}
func (stubIDP) SetCustomUserClaims(context.Context, string, map[string]interface{}) error { return nil }
func (stubIDP) DeleteUser(context.Context, string) error                                 { return nil }

type stubSigner struct{}

func (stubSigner) SignInWithPassword(_ context.Context, email, password string) (*domain.Credentials, error) {
	if email == "owner@example.com" && password == "secret1" {
		return &domain.Credentials{FirebaseUID: "fb-owner", IDToken: "id-token", RefreshToken: "rt", ExpiresIn: 3600}, nil
	}
	return nil, domain.ErrInvalidCredentials
}

type stubUsers struct{}

func (stubUsers) GetByFirebaseUID(_ context.Context, uid string) (*domain.User, error) {
	if uid == "fb-owner" {
		return &domain.User{UserID: 1, CompanyID: 3, Email: "owner@example.com", FirebaseUID: uid, Role: domain.RoleOwner}, nil
	}
	return nil, domain.ErrUserNotFound
}

func (stubUsers) CreateOwner(_ context.Context, _ string, user *domain.User) error {
	if user.Email == "taken@example.com" {
		return domain.ErrEmailExists
	}
	user.UserID, user.CompanyID = 2, 4
	return nil
}

func (stubUsers) ProfileSummary(context.Context, int64) (string, string, string, error) {
	return "", "", "", nil
}

type stubCache struct{}

func (stubCache) Get(context.Context, string) (*domain.Principal, error) { return nil, domain.ErrUserNotFound }
func (stubCache) Set(context.Context, *domain.Principal) error            { return nil }
func (stubCache) Delete(context.Context, string) error                    { return nil }

func setupHandler() *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := New(service.NewAuthService(stubUsers{}, stubCache{}, stubIDP{}, stubSigner{}), false)

	r := gin.New()
	h.RegisterPublic(r)
	protected := r.Group("/", func(c *gin.Context) {
		authctx.SetPrincipal(c, &domain.Principal{UserID: 1, CompanyID: 3, Email: "owner@example.com", Role: domain.RoleOwner})
	})
	h.Register(protected)
	return r
}

func postJSON(r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestLogin(t *testing.T) {
	r := setupHandler()

	t.Run("sets cookie and returns tokens", func(t *testing.T) {
		rr := postJSON(r, "/login", `{"email":"owner@example.com","password":"secret1"}`)
		require.Equal(t, http.StatusOK, rr.Code)

		var body loginResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.True(t, body.Success)
		assert.Equal(t, "id-token", body.IDToken)
		assert.Equal(t, body.IDToken, body.AccessToken)
		assert.Equal(t, "Bearer", body.TokenType)
		assert.Equal(t, "owner", body.Role)
		assert.Equal(t, int64(3), body.CompanyID)

		cookie := rr.Result().Cookies()
		require.Len(t, cookie, 1)
		assert.Equal(t, middleware.IDTokenCookie, cookie[0].Name)
		assert.True(t, cookie[0].HttpOnly)
	})

	t.Run("wrong password", func(t *testing.T) {
		rr := postJSON(r, "/login", `{"email":"owner@example.com","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), `"detail"`)
	})

	t.Run("missing fields", func(t *testing.T) {
		rr := postJSON(r, "/login", `{"email":"owner@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestSignIn(t *testing.T) {
	r := setupHandler()

	rr := postJSON(r, "/signin", `{"email":"new@example.com","password":"secret1","confirm_password":"secret1","company_name":"Cafe"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	var body signInResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "fb-new", body.FirebaseUID)
	assert.Equal(t, int64(4), body.CompanyID)

	rr = postJSON(r, "/signin", `{"email":"taken@example.com","password":"secret1","confirm_password":"secret1"}`)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = postJSON(r, "/signin", `{"email":"new@example.com","password":"secret1","confirm_password":"secret2"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = postJSON(r, "/signin", `{"email":"crew@example.com","password":"secret1","confirm_password":"secret1","role":"crew"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestMeAndLogout(t *testing.T) {
	r := setupHandler()

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code)
	var me service.MeView
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &me))
	assert.Equal(t, domain.RoleOwner, me.Role)
	assert.Equal(t, int64(3), me.CompanyID)

	rr = postJSON(r, "/logout", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.True(t, cookies[0].MaxAge < 0)
}
