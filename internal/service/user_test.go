package service

import (
	"context"
	"log/slog"
	"os"
	"testing"

	"github.com/mtsierradev/servicio-social/internal/apperrors"
	"github.com/mtsierradev/servicio-social/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserServiceImpl_SetRole(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	testCases := []struct {
		name        string
		setupMocks  func(users *UserRepositoryMock)
		expectedErr error
	}{
		{
			name: "Success",
			setupMocks: func(users *UserRepositoryMock) {
				users.On("SetRole", ctx, "user-1", domain.RoleDocente).Return(&domain.User{
					ID:   "user-1",
					Role: domain.RoleDocente,
				}, nil).Once()
			},
		},
		{
			name: "Unknown user",
			setupMocks: func(users *UserRepositoryMock) {
				users.On("SetRole", ctx, "user-1", domain.RoleDocente).Return(nil, apperrors.ErrNotFound).Once()
			},
			expectedErr: apperrors.ErrNotFound,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			usersMock := new(UserRepositoryMock)
			tc.setupMocks(usersMock)

			service := NewUserService(logger, usersMock)
			user, err := service.SetRole(ctx, "user-1", domain.RoleDocente)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, domain.RoleDocente, user.Role)
			}

			usersMock.AssertExpectations(t)
		})
	}
}

func TestUserServiceImpl_List(t *testing.T) {
	ctx := context.Background()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	expected := []domain.User{
		{ID: "user-1", Email: "ana@example.com", Role: domain.RoleUser},
		{ID: "user-2", Email: "luis@example.com", Role: domain.RoleDocente},
	}

	usersMock := new(UserRepositoryMock)
	usersMock.On("List", ctx).Return(expected, nil).Once()

	service := NewUserService(logger, usersMock)
	users, err := service.List(ctx)

	require.NoError(t, err)
	assert.Equal(t, expected, users)
	usersMock.AssertExpectations(t)
}
