package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	customjwt "github.com/magabrotheeeer/elearning-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/password"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	services "github.com/magabrotheeeer/elearning-platform/internal/services/auth"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// Мок для UserRepository
type UserRepoMock struct {
	mock.Mock
}

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func TestAuthServiceRegister(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
		return user.Email == "test@example.com" &&
			user.Name == "testuser" &&
			user.PasswordHash != "" &&
			user.PasswordHash != "password123" &&
			user.Role == models.RoleUser
	})).Return(&models.User{ID: 1, Name: "testuser", Email: "test@example.com", Role: models.RoleUser}, nil).Once()

	svc := services.NewAuthService(repo, customjwt.NewMaker("test-secret", time.Hour))

	user, token, err := svc.Register(context.Background(), "testuser", "test@example.com", "password123", models.RoleUser, "")
	require.NoError(t, err)
	assert.Equal(t, int64(1), user.ID)
	assert.NotEmpty(t, token)
	repo.AssertExpectations(t)
}

func TestAuthServiceRegisterDuplicateEmail(t *testing.T) {
	repo := new(UserRepoMock)
	repo.On("CreateUser", mock.Anything, mock.Anything).
		Return(nil, repository.ErrConflict).Once()

	svc := services.NewAuthService(repo, customjwt.NewMaker("test-secret", time.Hour))

	user, token, err := svc.Register(context.Background(), "testuser", "taken@example.com", "password123", models.RoleUser, "")
	assert.ErrorIs(t, err, repository.ErrConflict)
	assert.Nil(t, user)
	assert.Empty(t, token)
}

func TestAuthServiceLogin(t *testing.T) {
	hash, err := password.GetHash("password123")
	require.NoError(t, err)

	tests := []struct {
		name      string
		email     string
		password  string
		setupMock func(r *UserRepoMock)
		wantErr   error
	}{
		{
			name:     "успешный вход",
			email:    "test@example.com",
			password: "password123",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(&models.User{ID: 1, Email: "test@example.com", PasswordHash: hash, Role: models.RoleUser}, nil).Once()
			},
		},
		{
			name:     "неизвестный email",
			email:    "nobody@example.com",
			password: "password123",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "nobody@example.com").
					Return(nil, repository.ErrNotFound).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "неверный пароль",
			email:    "test@example.com",
			password: "wrong-password",
			setupMock: func(r *UserRepoMock) {
				r.On("GetUserByEmail", mock.Anything, "test@example.com").
					Return(&models.User{ID: 1, Email: "test@example.com", PasswordHash: hash, Role: models.RoleUser}, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(UserRepoMock)
			tt.setupMock(repo)

			svc := services.NewAuthService(repo, customjwt.NewMaker("test-secret", time.Hour))

			user, token, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, user)
				assert.Empty(t, token)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, token)
			// Хэш пароля не покидает сервис
			assert.Empty(t, user.PasswordHash)
			repo.AssertExpectations(t)
		})
	}
}

func TestAuthServiceAuthenticate(t *testing.T) {
	maker := customjwt.NewMaker("test-secret", time.Hour)
	token, err := maker.GenerateToken(5, models.RoleAdmin)
	require.NoError(t, err)

	t.Run("валидный токен", func(t *testing.T) {
		repo := new(UserRepoMock)
		// Роль берется из строки базы, не из claims
		repo.On("GetUser", mock.Anything, int64(5)).
			Return(&models.User{ID: 5, Email: "admin@example.com", Role: models.RoleUser}, nil).Once()

		svc := services.NewAuthService(repo, maker)

		user, err := svc.Authenticate(context.Background(), token)
		require.NoError(t, err)
		assert.Equal(t, int64(5), user.ID)
		assert.Equal(t, models.RoleUser, user.Role)
		repo.AssertExpectations(t)
	})

	t.Run("испорченный токен", func(t *testing.T) {
		repo := new(UserRepoMock)
		svc := services.NewAuthService(repo, maker)

		user, err := svc.Authenticate(context.Background(), "garbage")
		assert.ErrorIs(t, err, services.ErrInvalidToken)
		assert.Nil(t, user)
	})

	t.Run("пользователь удален после выпуска токена", func(t *testing.T) {
		repo := new(UserRepoMock)
		repo.On("GetUser", mock.Anything, int64(5)).
			Return(nil, repository.ErrNotFound).Once()

		svc := services.NewAuthService(repo, maker)

		user, err := svc.Authenticate(context.Background(), token)
		assert.ErrorIs(t, err, repository.ErrNotFound)
		assert.Nil(t, user)
	})

	t.Run("чужой секрет", func(t *testing.T) {
		otherToken, err := customjwt.NewMaker("other-secret", time.Hour).GenerateToken(5, models.RoleUser)
		require.NoError(t, err)

		repo := new(UserRepoMock)
		svc := services.NewAuthService(repo, maker)

		user, err := svc.Authenticate(context.Background(), otherToken)
		assert.True(t, errors.Is(err, services.ErrInvalidToken))
		assert.Nil(t, user)
	})
}
