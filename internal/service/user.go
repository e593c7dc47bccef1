package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/repository"
)

type UserService interface {
	// List returns all accounts for the admin user-management view.
	List(ctx context.Context) ([]domain.User, error)

	// SetRole changes an account's role. Route access is restricted to
	// admins by the transport layer.
	SetRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error)
}

type UserServiceImpl struct {
	log   *slog.Logger
	users repository.UserRepository
}

func NewUserService(log *slog.Logger, users repository.UserRepository) *UserServiceImpl {
	return &UserServiceImpl{
		log:   log,
		users: users,
	}
}

func (s *UserServiceImpl) List(ctx context.Context) ([]domain.User, error) {
	const op = "internal.service.user.List"

	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to list users: %w", op, err)
	}

	return users, nil
}

func (s *UserServiceImpl) SetRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	const op = "internal.service.user.SetRole"
	log := s.log.With(slog.String("op", op), slog.String("user_id", userID))

	user, err := s.users.SetRole(ctx, userID, role)
	if err != nil {
		return nil, err
	}

	log.Info("role updated", slog.String("role", string(user.Role)))

	return user, nil
}
