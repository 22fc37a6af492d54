// Package services содержит бизнес-логику просмотра и частичного
// обновления учетных записей.
package services

import (
	"context"
	"log/slog"

	"github.com/magabrotheeeer/elearning-platform/internal/lib/password"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// GetUserByEmail возвращает пользователя по email.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	// UpdateUser выполняет частичное обновление по списку разрешённых полей.
	UpdateUser(ctx context.Context, id int64, fields map[string]any) (*models.User, error)
}

// UserService реализует бизнес-логику работы с учетными записями.
type UserService struct {
	repo UserRepository
	log  *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(repo UserRepository, log *slog.Logger) *UserService {
	return &UserService{
		repo: repo,
		log:  log,
	}
}

// View возвращает публичную проекцию пользователя по email.
func (s *UserService) View(ctx context.Context, email string) (*models.User, error) {
	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// Update выполняет частичное обновление пользователя.
//
// Существование строки проверяется до обновления: отсутствие —
// repository.ErrNotFound, нулевое число обновленных строк построитель
// не интерпретирует. Значение поля password хэшируется до записи.
func (s *UserService) Update(ctx context.Context, id int64, fields map[string]any) (*models.User, error) {
	if _, err := s.repo.GetUser(ctx, id); err != nil {
		return nil, err
	}

	if raw, ok := fields["password"].(string); ok {
		hashed, err := password.GetHash(raw)
		if err != nil {
			return nil, err
		}
		fields["password"] = hashed
	}

	updated, err := s.repo.UpdateUser(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated user", slog.Int64("id", id))
	return updated, nil
}
