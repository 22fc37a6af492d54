// Package services содержит логику бизнес-уровня для регистрации,
// аутентификации пользователей и проверки токенов сессии.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/elearning-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/password"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
)

// Ошибки уровня аутентификации.
var (
	// ErrInvalidCredentials пара email-пароль не подошла; текст ответа
	// одинаков для неизвестного email и неверного пароля
	ErrInvalidCredentials = errors.New("incorrect email or password")
	// ErrInvalidToken подпись не сошлась, токен испорчен или просрочен
	ErrInvalidToken = errors.New("invalid token")
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает публичную проекцию.
	CreateUser(ctx context.Context, user models.User) (*models.User, error)

	// GetUserByEmail возвращает пользователя c хэшем пароля по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля
// и возвращает его публичную проекцию вместе с токеном сессии.
// Дубликат email всплывает как repository.ErrConflict.
func (s *AuthService) Register(ctx context.Context, name, email, rawPassword, role, profilePic string) (*models.User, string, error) {
	hashed, err := password.GetHash(rawPassword)
	if err != nil {
		return nil, "", err
	}
	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         role,
		ProfilePic:   profilePic,
	}
	created, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, "", err
	}
	token, err := s.jwtMaker.GenerateToken(created.ID, created.Role)
	if err != nil {
		return nil, "", err
	}
	return created, token, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
// Неизвестный email и неверный пароль неразличимы для клиента.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (*models.User, string, error) {
	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return nil, "", ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.ID, user.Role)
	if err != nil {
		return nil, "", err
	}
	user.PasswordHash = ""
	return user, token, nil
}

// Authenticate проверяет JWT и загружает учетную запись из хранилища.
//
// Роль берется из строки в базе, а не из claims: ровно одно обращение
// к хранилищу на каждый защищенный запрос, без кеширования результата.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	user, err := s.users.GetUser(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}
	return user, nil
}
