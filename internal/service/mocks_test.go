package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/repository"
	"github.com/stretchr/testify/mock"
)

type TransactorMock struct {
	mock.Mock
}

func (m *TransactorMock) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*sqlx.Tx), args.Error(1)
}

type ActivityQueryRepositoryMock struct {
	mock.Mock
}

var _ repository.ActivityQueryRepository = (*ActivityQueryRepositoryMock)(nil)

func (m *ActivityQueryRepositoryMock) ListByUser(ctx context.Context, ext sqlx.ExtContext, userID string) ([]domain.Activity, error) {
	args := m.Called(ctx, ext, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.Activity), args.Error(1)
}

func (m *ActivityQueryRepositoryMock) GetByID(ctx context.Context, ext sqlx.ExtContext, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityQueryRepositoryMock) ListPending(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ActivityWithSubmitter), args.Error(1)
}

func (m *ActivityQueryRepositoryMock) ListReviewed(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.ActivityWithSubmitter), args.Error(1)
}

func (m *ActivityQueryRepositoryMock) GetStats(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Stats), args.Error(1)
}

type ActivityCommandRepositoryMock struct {
	mock.Mock
}

var _ repository.ActivityCommandRepository = (*ActivityCommandRepositoryMock)(nil)

func (m *ActivityCommandRepositoryMock) Insert(ctx context.Context, tx *sqlx.Tx, activity *domain.Activity) error {
	args := m.Called(ctx, tx, activity)
	return args.Error(0)
}

func (m *ActivityCommandRepositoryMock) Update(ctx context.Context, tx *sqlx.Tx, id int64, description string, date time.Time, hours float64) (*domain.Activity, error) {
	args := m.Called(ctx, tx, id, description, date, hours)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityCommandRepositoryMock) Delete(ctx context.Context, tx *sqlx.Tx, id int64) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *ActivityCommandRepositoryMock) GetByIDWithLock(ctx context.Context, tx *sqlx.Tx, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, tx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityCommandRepositoryMock) SetReview(ctx context.Context, tx *sqlx.Tx, id int64, status domain.ActivityStatus, reviewerID string, comment string) (*domain.Activity, error) {
	args := m.Called(ctx, tx, id, status, reviewerID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.Activity), args.Error(1)
}

type UserRepositoryMock struct {
	mock.Mock
}

var _ repository.UserRepository = (*UserRepositoryMock)(nil)

func (m *UserRepositoryMock) Insert(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *UserRepositoryMock) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) GetByID(ctx context.Context, ext sqlx.ExtContext, id string) (*domain.User, error) {
	args := m.Called(ctx, ext, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) LockByID(ctx context.Context, tx *sqlx.Tx, id string) error {
	args := m.Called(ctx, tx, id)
	return args.Error(0)
}

func (m *UserRepositoryMock) SetRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, id, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *UserRepositoryMock) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}

	return args.Get(0).([]domain.User), args.Error(1)
}
