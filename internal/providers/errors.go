package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"
)

// ErrMissingCredential is returned when a provider's API key is not set.
var ErrMissingCredential = errors.New("missing API credential")

type statusError struct {
	statusCode int
	body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("API error (status %d): %s", e.statusCode, e.body)
}

// IsAuthError reports whether err stems from a missing or rejected credential.
func IsAuthError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrMissingCredential) {
		return true
	}
	var se *statusError
	if errors.As(err, &se) {
		return isAuthStatus(se.statusCode)
	}
	var oe *openai.Error
	if errors.As(err, &oe) {
		return isAuthStatus(oe.StatusCode)
	}
	var ae *anthropic.Error
	if errors.As(err, &ae) {
		return isAuthStatus(ae.StatusCode)
	}
	var ge genai.APIError
	if errors.As(err, &ge) {
		return isAuthStatus(ge.Code)
	}
	return false
}

func isAuthStatus(code int) bool {
	return code == http.StatusUnauthorized || code == http.StatusForbidden
}

// unavailable is a Reviewer whose construction failed. Every call returns the
// construction error, so a misconfigured collaborator surfaces per request
// instead of preventing startup.
type unavailable struct {
	name string
	err  error
}

// Unavailable returns a Reviewer named name that fails every call with err.
func Unavailable(name string, err error) Reviewer {
	return &unavailable{name: name, err: err}
}

func (u *unavailable) Name() string { return u.name }

func (u *unavailable) Review(ctx context.Context, req ReviewRequest) (ReviewResponse, error) {
	return ReviewResponse{}, u.err
}
