// Package middlewarectx содержит HTTP middleware для проверки токенов сессии
// и ролевого доступа.
//
// Auth извлекает токен из заголовка Authorization или параметра token,
// проверяет его и загружает учетную запись из хранилища; в случае успеха
// идентификатор, email и роль пользователя добавляются в контекст запроса.
// RequireRole дополнительно сверяет роль загруженной учетной записи.
//
// Любой отказ терминален: следующий обработчик не вызывается.
package middlewarectx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/elearning-platform/internal/http/response"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	authservice "github.com/magabrotheeeer/elearning-platform/internal/services/auth"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// UserID — ключ для идентификатора пользователя в контексте
	UserID Key = "user_id"
	// UserEmail — ключ для email пользователя в контексте
	UserEmail Key = "user_email"
	// Role — ключ для роли пользователя в контексте
	Role Key = "role"
)

// Service описывает интерфейс сервиса для проверки токена сессии.
type Service interface {
	Authenticate(ctx context.Context, token string) (*models.User, error)
}

// ExtractToken достает токен из заголовка Authorization (с префиксом
// Bearer или без него) либо из параметра запроса token.
func ExtractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return r.URL.Query().Get("token")
}

// Auth возвращает HTTP middleware, который проверяет токен сессии
// и загружает учетную запись — ровно одно обращение к хранилищу
// на каждый защищенный запрос, без кеширования между запросами.
func Auth(service Service, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.Auth"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			token := ExtractToken(r)
			if token == "" {
				log.Error("missing authorization token")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("a token is required for authentication"))
				return
			}

			user, err := service.Authenticate(r.Context(), token)
			switch {
			case errors.Is(err, authservice.ErrInvalidToken):
				log.Error("invalid token", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid token"))
				return
			case errors.Is(err, repository.ErrNotFound):
				log.Error("token user not found", sl.Err(err))
				w.WriteHeader(http.StatusNotFound)
				render.JSON(w, r, response.Error("user not found"))
				return
			case err != nil:
				log.Error("failed to authenticate request", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), UserID, user.ID)
			ctx = context.WithValue(ctx, UserEmail, user.Email)
			ctx = context.WithValue(ctx, Role, user.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole возвращает middleware, пропускающий дальше только
// пользователей с указанной ролью. Ставится после Auth.
func RequireRole(role string, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.RequireRole"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			current, ok := r.Context().Value(Role).(string)
			if !ok || current == "" {
				log.Error("role missing in request context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}

			if current != role {
				log.Error("access denied", slog.String("required", role), slog.String("actual", current))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("access denied"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
