package auth

import (
	"context"
	"errors"
)

var ErrInvalidCredentials = errors.New("invalid email or password")

// Authenticator checks an email and password against the backend and returns the resulting
// credential.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (Credential, error)
}
