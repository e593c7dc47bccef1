package http

import (
	"context"

	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/mtsierradev/servicio-social/internal/ledger"
	"github.com/mtsierradev/servicio-social/internal/service"
	"github.com/stretchr/testify/mock"
)

type AuthServiceMock struct {
	mock.Mock
}

var _ service.AuthService = (*AuthServiceMock)(nil)

func (m *AuthServiceMock) Register(ctx context.Context, name, email, password string) (*domain.User, error) {
	args := m.Called(ctx, name, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *AuthServiceMock) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	args := m.Called(ctx, email, password)
	if args.Get(1) == nil {
		return args.String(0), nil, args.Error(2)
	}
	return args.String(0), args.Get(1).(*domain.User), args.Error(2)
}

func (m *AuthServiceMock) ValidateToken(token string) (domain.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Identity), args.Error(1)
}

type ActivityServiceMock struct {
	mock.Mock
}

var _ service.ActivityService = (*ActivityServiceMock)(nil)

func (m *ActivityServiceMock) List(ctx context.Context, userID string) ([]domain.Activity, ledger.Breakdown, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Get(1).(ledger.Breakdown), args.Error(2)
	}
	return args.Get(0).([]domain.Activity), args.Get(1).(ledger.Breakdown), args.Error(2)
}

func (m *ActivityServiceMock) Get(ctx context.Context, actor domain.Identity, id int64) (*domain.Activity, error) {
	args := m.Called(ctx, actor, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityServiceMock) Create(ctx context.Context, actor domain.Identity, in service.ActivityInput) (*domain.Activity, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityServiceMock) Update(ctx context.Context, actor domain.Identity, id int64, in service.ActivityInput) (*domain.Activity, error) {
	args := m.Called(ctx, actor, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ActivityServiceMock) Delete(ctx context.Context, actor domain.Identity, id int64) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

type ReviewServiceMock struct {
	mock.Mock
}

var _ service.ReviewService = (*ReviewServiceMock)(nil)

func (m *ReviewServiceMock) Pending(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityWithSubmitter), args.Error(1)
}

func (m *ReviewServiceMock) History(ctx context.Context) ([]domain.ActivityWithSubmitter, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ActivityWithSubmitter), args.Error(1)
}

func (m *ReviewServiceMock) Approve(ctx context.Context, reviewerID string, activityID int64, comment string) (*domain.Activity, error) {
	args := m.Called(ctx, reviewerID, activityID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

func (m *ReviewServiceMock) Reject(ctx context.Context, reviewerID string, activityID int64, comment string) (*domain.Activity, error) {
	args := m.Called(ctx, reviewerID, activityID, comment)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Activity), args.Error(1)
}

type StatsServiceMock struct {
	mock.Mock
}

var _ service.StatsService = (*StatsServiceMock)(nil)

func (m *StatsServiceMock) Aggregate(ctx context.Context) (*domain.Stats, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Stats), args.Error(1)
}

type UserServiceMock struct {
	mock.Mock
}

var _ service.UserService = (*UserServiceMock)(nil)

func (m *UserServiceMock) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *UserServiceMock) SetRole(ctx context.Context, userID string, role domain.Role) (*domain.User, error) {
	args := m.Called(ctx, userID, role)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}
