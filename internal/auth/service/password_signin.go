package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/shift-agent/shift-agent/internal/auth/domain"
)

const defaultIdentityToolkitURL = "https://identitytoolkit.googleapis.com/v1"

// IdentityToolkitClient signs users in with email and password through the
// Firebase Auth REST API. The Admin SDK has no password sign-in.
type IdentityToolkitClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewIdentityToolkitClient creates a client against baseURL, or the public
// endpoint when baseURL is empty.
func NewIdentityToolkitClient(baseURL, apiKey string) *IdentityToolkitClient {
	if baseURL == "" {
		baseURL = defaultIdentityToolkitURL
	}
	return &IdentityToolkitClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

type signInRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type signInResponse struct {
	LocalID      string `json:"localId"`
	Email        string `json:"email"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    string `json:"expiresIn"`
}

type identityError struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// SignInWithPassword returns domain.ErrInvalidCredentials for unknown users
// and wrong passwords.
func (c *IdentityToolkitClient) SignInWithPassword(ctx context.Context, email, password string) (*domain.Credentials, error) {
	if c.apiKey == "" {
		return nil, domain.ErrSignInUnavailable
	}

	jsonData, err := json.Marshal(signInRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	u := fmt.Sprintf("%s/accounts:signInWithPassword?key=%s", c.baseURL, url.QueryEscape(c.apiKey))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call identity toolkit: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		var ie identityError
		_ = json.Unmarshal(body, &ie)
		if isCredentialError(ie.Error.Message) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity toolkit returned status %d: %s", resp.StatusCode, ie.Error.Message)
	}

	var out signInResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}

	expiresIn, err := strconv.ParseInt(out.ExpiresIn, 10, 64)
	if err != nil {
		expiresIn = 3600
	}

	return &domain.Credentials{
		FirebaseUID:  out.LocalID,
		IDToken:      out.IDToken,
		RefreshToken: out.RefreshToken,
		ExpiresIn:    expiresIn,
	}, nil
}

func isCredentialError(msg string) bool {
	// Messages may carry a suffix such as "TOO_MANY_ATTEMPTS_TRY_LATER : ...".
	code, _, _ := strings.Cut(msg, " ")
	switch code {
	case "EMAIL_NOT_FOUND", "INVALID_PASSWORD", "INVALID_LOGIN_CREDENTIALS", "USER_DISABLED", "INVALID_EMAIL":
		return true
	}
	return false
}
