package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/elearning-platform/internal/models"
)

// publicUserColumns проекция пользователя без хэша пароля.
const publicUserColumns = "id, name, email, role, COALESCE(profile_pic, '')"

// CreateUser сохраняет нового пользователя и возвращает публичную проекцию.
// Дубликат email транслируется в ErrConflict уникальным ограничением базы.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (*models.User, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO users (name, email, password_hash, role, profile_pic)
			  VALUES ($1, $2, $3, $4, NULLIF($5, ''))
			  RETURNING ` + publicUserColumns
	u := &models.User{}
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.ProfilePic).
		Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.ProfilePic); err != nil {
		return nil, classify(op, err)
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по email вместе с хэшем пароля.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, COALESCE(profile_pic, '')
			  FROM users
			  WHERE email = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, email)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ProfilePic); err != nil {
		return nil, classify(op, err)
	}
	return u, nil
}

// GetUser возвращает пользователя по его ID.
func (s *Storage) GetUser(ctx context.Context, id int64) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, email, password_hash, role, COALESCE(profile_pic, '')
			  FROM users
			  WHERE id = $1`
	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, id)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Role, &u.ProfilePic); err != nil {
		return nil, classify(op, err)
	}
	return u, nil
}

// UpdateUser выполняет частичное обновление пользователя по списку
// разрешённых полей и возвращает обновлённую публичную проекцию.
// Существование строки проверяет вызывающая сторона.
func (s *Storage) UpdateUser(ctx context.Context, id int64, fields map[string]any) (*models.User, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := buildUpdate("users", userUpdateColumns, fields, id, publicUserColumns)
	if err != nil {
		return nil, err
	}

	u := &models.User{}
	row := s.DB.QueryRowContext(ctx, query, args...)
	if err := row.Scan(&u.ID, &u.Name, &u.Email, &u.Role, &u.ProfilePic); err != nil {
		return nil, classify(op, err)
	}
	return u, nil
}
