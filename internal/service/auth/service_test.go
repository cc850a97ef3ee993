package auth

import (
	"context"
	"testing"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/arkhive/arkhive-go/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeAdmins struct {
	admin *domain.Admin
}

func (f fakeAdmins) GetByEmail(ctx context.Context, email string) (*domain.Admin, error) {
	if f.admin == nil || f.admin.Email != email {
		return nil, repository.ErrNotFound
	}
	return f.admin, nil
}

func seededService(t *testing.T, password string) *Service {
	t.Helper()
	hash, err := HashPassword(password)
	require.NoError(t, err)
	return New(
		fakeAdmins{admin: &domain.Admin{ID: 1, Email: "admin@arkhive.com", PasswordHash: hash}},
		Config{JWTSecret: "test-secret", TokenTTL: time.Hour},
	)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	svc := seededService(t, "hunter2")

	token, err := svc.Login(context.Background(), "admin@arkhive.com", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	email, err := svc.VerifyToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin@arkhive.com", email)
}

func TestLoginWrongPassword(t *testing.T) {
	svc := seededService(t, "hunter2")

	_, err := svc.Login(context.Background(), "admin@arkhive.com", "wrong")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	svc := seededService(t, "hunter2")

	_, err := svc.Login(context.Background(), "nobody@arkhive.com", "hunter2")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestVerifyTokenRejectsGarbage(t *testing.T) {
	svc := seededService(t, "hunter2")

	_, err := svc.VerifyToken("not-a-token")

	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyTokenRejectsWrongSecret(t *testing.T) {
	svc := seededService(t, "hunter2")
	token, err := svc.Login(context.Background(), "admin@arkhive.com", "hunter2")
	require.NoError(t, err)

	other := New(fakeAdmins{}, Config{JWTSecret: "different", TokenTTL: time.Hour})
	_, err = other.VerifyToken(token)

	assert.ErrorIs(t, err, ErrInvalidToken)
}
