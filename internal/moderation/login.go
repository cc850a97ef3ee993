package moderation

import (
	"context"
	"errors"
	"fmt"

	"github.com/arkhive/arkhive-go/internal/client"
)

// ErrLoginRejected means the service answered and refused the credentials,
// as opposed to being unreachable.
var ErrLoginRejected = errors.New("login rejected")

// Authenticator is the login slice of the data service client.
type Authenticator interface {
	Login(ctx context.Context, email, password string) (*client.LoginResult, error)
}

// Login authenticates an operator and returns the session token. Wrong
// credentials yield ErrLoginRejected; anything else is a transport or
// service failure, so the caller can show a distinguishable error state.
func Login(ctx context.Context, auth Authenticator, email, password string) (string, error) {
	const op = "moderation.Login"

	res, err := auth.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, client.ErrRejected) {
			return "", fmt.Errorf("%s: %w", op, ErrLoginRejected)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}
	if res.Message != "Login successful" {
		return "", fmt.Errorf("%s: %w", op, ErrLoginRejected)
	}
	return res.Token, nil
}
