package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/arkhive/arkhive-go/internal/domain"
	"github.com/arkhive/arkhive-go/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
}

// AdminStore is the slice of the admin repository the service needs.
type AdminStore interface {
	GetByEmail(ctx context.Context, email string) (*domain.Admin, error)
}

type Service struct {
	admins AdminStore
	cfg    Config
}

func New(admins AdminStore, cfg Config) *Service {
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}

	return &Service{admins: admins, cfg: cfg}
}

// Login verifies the operator's credentials and returns a signed session
// token. Unknown email and wrong password both map to ErrInvalidCredentials,
// so the response does not leak which one failed.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	const op = "service.auth.Login"

	admin, err := s.admins.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
		}
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidCredentials)
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   admin.Email,
		"admin": admin.ID,
		"exp":   time.Now().Add(s.cfg.TokenTTL).Unix(),
	})

	signed, err := token.SignedString([]byte(s.cfg.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// VerifyToken validates a session token and returns the operator email.
func (s *Service) VerifyToken(tokenString string) (string, error) {
	const op = "service.auth.VerifyToken"

	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(s.cfg.JWTSecret), nil
	})
	if err != nil || !token.Valid {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return "", fmt.Errorf("%s: %w", op, ErrInvalidToken)
	}

	return sub, nil
}

// HashPassword produces a bcrypt hash for seeding operator accounts.
func HashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
