package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/domain"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "created_at"}

type UserRepository struct {
	db  *sqlx.DB
	log *slog.Logger
	sq  sq.StatementBuilderType
}

func NewUserRepository(db *sqlx.DB, log *slog.Logger) *UserRepository {
	return &UserRepository{
		db:  db,
		log: log,
		sq:  sq.StatementBuilder.PlaceholderFormat(sq.Dollar),
	}
}

func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	const op = "internal.repository.postgres.InsertUser"

	query, args, err := r.sq.Insert("users").
		Columns("id", "name", "email", "password_hash", "role").
		Values(user.ID, user.Name, user.Email, user.PasswordHash, user.Role).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build insert query: %w", op, err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&user.CreatedAt); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return &apperrors.EmailTakenError{Email: user.Email}
		}

		return fmt.Errorf("%s: failed to execute insert: %w", op, err)
	}

	return nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetByEmail"

	query, args, err := r.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := r.db.GetContext(ctx, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with email '%s'", op, apperrors.ErrNotFound, email)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepository) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*domain.User, error) {
	const op = "internal.repository.postgres.GetUserByID"

	if ext == nil {
		ext = r.db
	}

	query, args, err := r.sq.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var user domain.User
	if err := sqlx.GetContext(ctx, ext, &user, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepository) LockByID(ctx context.Context, tx *sqlx.Tx, id string) error {
	const op = "internal.repository.postgres.LockByID"

	query, args, err := r.sq.Select("id").
		From("users").
		Where(sq.Eq{"id": id}).
		Suffix("FOR UPDATE").
		ToSql()
	if err != nil {
		return fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var lockedID string
	if err := tx.GetContext(ctx, &lockedID, query, args...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return fmt.Errorf("%s: failed to lock user row: %w", op, err)
	}

	return nil
}

func (r *UserRepository) SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	const op = "internal.repository.postgres.SetRole"

	query, args, err := r.sq.Update("users").
		Set("role", role).
		Where(sq.Eq{"id": id}).
		Suffix("RETURNING " + joinColumns(userColumns)).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build update query: %w", op, err)
	}

	var user domain.User
	if err := r.db.QueryRowxContext(ctx, query, args...).StructScan(&user); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w: user with id '%s'", op, apperrors.ErrNotFound, id)
		}

		return nil, fmt.Errorf("%s: failed to execute update: %w", op, err)
	}

	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]domain.User, error) {
	const op = "internal.repository.postgres.ListUsers"

	query, args, err := r.sq.Select(userColumns...).
		From("users").
		OrderBy("created_at ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%s: failed to build query: %w", op, err)
	}

	var users []domain.User
	if err := r.db.SelectContext(ctx, &users, query, args...); err != nil {
		return nil, fmt.Errorf("%s: failed to execute query: %w", op, err)
	}

	return users, nil
}
