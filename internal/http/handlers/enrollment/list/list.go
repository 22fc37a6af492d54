// Package list реализует HTTP-обработчик списка записей пользователя
// на курсы. Пустой список — нормальный ответ, не ошибка.
package list

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/elearning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/elearning-platform/internal/http/response"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
)

// Handler обрабатывает запросы списка записей на курсы.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка записей.
type Service interface {
	ListForUser(ctx context.Context, userID int64) ([]*models.EnrollmentWithCourse, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.list"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userID, ok := r.Context().Value(middlewarectx.UserID).(int64)
	if !ok || userID == 0 {
		log.Error("user id not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	enrollments, err := h.service.ListForUser(r.Context(), userID)
	if err != nil {
		log.Error("failed to list enrollments", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("error while listing enrollments"))
		return
	}

	log.Info("enrollments listed",
		slog.Int64("user_id", userID), slog.Int("count", len(enrollments)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"count":       len(enrollments),
		"enrollments": enrollments,
	}))
}
