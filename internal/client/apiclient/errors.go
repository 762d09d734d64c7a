package apiclient

import (
	"encoding/json"
	"fmt"
	"strings"
)

type AuthReason string

const (
	// ReasonExpired means the request was stopped before it was sent.
	ReasonExpired      AuthReason = "expired"
	ReasonUnauthorized AuthReason = "unauthorized"
	ReasonForbidden    AuthReason = "forbidden"
)

// AuthError reports an authorization failure. By the time a caller sees it
// the session has already been cleared.
type AuthError struct {
	Reason AuthReason
	Status int
	Method string
	Path   string
	Detail string
}

func (e *AuthError) Error() string {
	switch e.Reason {
	case ReasonExpired:
		return fmt.Sprintf("%s %s: session expired", e.Method, e.Path)
	default:
		if e.Detail != "" {
			return fmt.Sprintf("%s %s: %s (%d): %s", e.Method, e.Path, e.Reason, e.Status, e.Detail)
		}
		return fmt.Sprintf("%s %s: %s (%d)", e.Method, e.Path, e.Reason, e.Status)
	}
}

// HTTPError is any other non-2xx response.
type HTTPError struct {
	Status  int
	Method  string
	Path    string
	Detail  string
	Message string
	Body    []byte
}

func (e *HTTPError) Error() string {
	msg := e.Detail
	if msg == "" {
		msg = e.Message
	}
	if msg == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, msg)
}

type errorBody struct {
	Detail  json.RawMessage `json:"detail"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

// parseErrorBody extracts detail and message from a backend error body. detail
// may be a string or a list of validation entries carrying "msg".
func parseErrorBody(body []byte) (detail, message string) {
	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		return "", ""
	}

	message = eb.Message
	if message == "" {
		message = eb.Error
	}

	if len(eb.Detail) == 0 || string(eb.Detail) == "null" {
		return "", message
	}

	var s string
	if err := json.Unmarshal(eb.Detail, &s); err == nil {
		return s, message
	}

	var entries []struct {
		Msg string `json:"msg"`
	}
	if err := json.Unmarshal(eb.Detail, &entries); err == nil {
		var msgs []string
		for _, e := range entries {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		if len(msgs) > 0 {
			return strings.Join(msgs, "; "), message
		}
	}

	return string(eb.Detail), message
}
