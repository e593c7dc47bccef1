package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/config"
	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/repository"
	"golang.org/x/crypto/bcrypt"
)

type AuthService interface {
	// Register creates a new account. Self-registration always gets the
	// User role; only an Admin can grant more via SetRole.
	Register(ctx context.Context, name, email, password string) (*domain.User, error)

	// Login checks the credentials and returns a signed access token.
	Login(ctx context.Context, email, password string) (string, *domain.User, error)

	// ValidateToken parses and verifies an access token, returning the
	// identity it carries.
	ValidateToken(token string) (domain.Identity, error)
}

type AuthServiceImpl struct {
	log    *slog.Logger
	users  repository.UserRepository
	secret []byte
	ttl    time.Duration
}

func NewAuthService(log *slog.Logger, users repository.UserRepository, cfg config.Auth) *AuthServiceImpl {
	return &AuthServiceImpl{
		log:    log,
		users:  users,
		secret: []byte(cfg.JWTSecret),
		ttl:    cfg.TokenTTL,
	}
}

func (s *AuthServiceImpl) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	const op = "internal.service.auth.Register"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to hash password: %w", op, err)
	}

	user := &domain.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         domain.RoleUser,
	}

	if err := s.users.Insert(ctx, user); err != nil {
		return nil, err
	}

	log.Info("user registered", slog.String("user_id", user.ID))

	return user, nil
}

func (s *AuthServiceImpl) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	const op = "internal.service.auth.Login"
	log := s.log.With(slog.String("op", op), slog.String("email", email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Same error as a bad password, so login does not leak which
			// emails have accounts.
			return "", nil, apperrors.ErrInvalidCredentials
		}

		return "", nil, fmt.Errorf("%s: failed to get user: %w", op, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, apperrors.ErrInvalidCredentials
	}

	now := time.Now().UTC()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  user.ID,
		"role": string(user.Role),
		"iat":  now.Unix(),
		"exp":  now.Add(s.ttl).Unix(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", nil, fmt.Errorf("%s: failed to sign token: %w", op, err)
	}

	log.Info("user logged in", slog.String("user_id", user.ID))

	return signed, user, nil
}

func (s *AuthServiceImpl) ValidateToken(tokenStr string) (domain.Identity, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}

		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.Identity{}, apperrors.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.Identity{}, apperrors.ErrUnauthorized
	}

	sub, _ := claims["sub"].(string)
	role, _ := claims["role"].(string)

	if sub == "" || role == "" {
		return domain.Identity{}, apperrors.ErrUnauthorized
	}

	return domain.Identity{UserID: sub, Role: domain.Role(role)}, nil
}
