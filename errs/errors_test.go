package errs

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		expected string
	}{
		{"nil error", nil, ""},
		{"validation message verbatim", Validation("password", "Passwords don't match"), "Passwords don't match"},
		{"server message verbatim", &ServerRejected{Status: 409, Message: "Email already in use"}, "Email already in use"},
		{"server without message", &ServerRejected{Status: 500}, "fallback"},
		{"wrapped server message", fmt.Errorf("register: %w", &ServerRejected{Status: 400, Message: "bad"}), "bad"},
		{"auth error", &AuthError{Message: "Login failed. Please check your credentials."}, "Login failed. Please check your credentials."},
		{"fetch error", &FetchError{Op: "fetch posts", Err: errors.New("boom")}, "fallback"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, UserMessage(tc.err, "fallback"))
		})
	}
}

func TestErrorsUnwrap(t *testing.T) {
	cause := errors.New("connection refused")

	assert.ErrorIs(t, &FetchError{Op: "fetch", Err: cause}, cause)
	assert.ErrorIs(t, &AuthError{Message: "login failed", Err: cause}, cause)
	assert.ErrorIs(t, &DecodeError{Err: cause}, cause)

	var rejected *ServerRejected
	assert.True(t, errors.As(&FetchError{Op: "delete", Err: &ServerRejected{Status: 404}}, &rejected))
	assert.Equal(t, 404, rejected.Status)
}
