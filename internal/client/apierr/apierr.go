// Package apierr turns client failures into one line of user-facing text.
package apierr

import (
	"context"
	"errors"
	"net"
	"net/http"
	"syscall"

	"github.com/shift-agent/shift-agent/internal/client/apiclient"
)

const (
	MsgNetwork        = "Could not reach the server. Check your network connection."
	MsgTimeout        = "The request timed out. Please try again."
	MsgSessionExpired = "Your session has expired. Please log in again."
	MsgBadRequest     = "The input is invalid. Please check it and try again."
	MsgUnauthorized   = "Authentication is required. Please log in again."
	MsgForbidden      = "You do not have permission to perform this action."
	MsgNotFound       = "The requested data was not found."
	MsgServer         = "A server error occurred. Please try again later."
	MsgRetry          = "Something went wrong. Please try again."
	MsgFallback       = "An unexpected error occurred."
)

// Message picks, in order: the backend's detail or message, a transport
// classification, the status table, err.Error(), and finally MsgFallback.
func Message(err error) string {
	if err == nil {
		return MsgFallback
	}

	if msg := backendMessage(err); msg != "" {
		return msg
	}

	if isTimeout(err) {
		return MsgTimeout
	}
	if isNetwork(err) {
		return MsgNetwork
	}

	var aerr *apiclient.AuthError
	if errors.As(err, &aerr) {
		if aerr.Reason == apiclient.ReasonExpired {
			return MsgSessionExpired
		}
		return statusMessage(aerr.Status)
	}
	var herr *apiclient.HTTPError
	if errors.As(err, &herr) {
		return statusMessage(herr.Status)
	}

	if s := err.Error(); s != "" {
		return s
	}
	return MsgFallback
}

func backendMessage(err error) string {
	var herr *apiclient.HTTPError
	if errors.As(err, &herr) {
		if herr.Detail != "" {
			return herr.Detail
		}
		return herr.Message
	}
	var aerr *apiclient.AuthError
	if errors.As(err, &aerr) {
		return aerr.Detail
	}
	return ""
}

func statusMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return MsgBadRequest
	case http.StatusUnauthorized:
		return MsgUnauthorized
	case http.StatusForbidden:
		return MsgForbidden
	case http.StatusNotFound:
		return MsgNotFound
	case http.StatusInternalServerError:
		return MsgServer
	default:
		return MsgRetry
	}
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

func isNetwork(err error) bool {
	if errors.Is(err, syscall.ECONNREFUSED) || errors.Is(err, syscall.ECONNRESET) ||
		errors.Is(err, syscall.ENETUNREACH) || errors.Is(err, syscall.EHOSTUNREACH) {
		return true
	}
	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return true
	}
	var dnsErr *net.DNSError
	return errors.As(err, &dnsErr)
}
