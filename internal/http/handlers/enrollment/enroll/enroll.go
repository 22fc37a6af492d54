// Package enroll реализует HTTP-обработчик записи пользователя на курс.
// Идентификатор пользователя берётся из контекста аутентификации,
// повторная запись на тот же курс отклоняется конфликтом.
package enroll

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/elearning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/elearning-platform/internal/http/response"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// Handler обрабатывает запросы записи на курс.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики записи на курс.
type Service interface {
	Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.enrollment.enroll"

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

	courseID, err := strconv.ParseInt(chi.URLParam(r, "courseID"), 10, 64)
	if err != nil {
		log.Error("failed to decode course id from url", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("failed to decode course id from url"))
		return
	}

	enrollment, err := h.service.Enroll(r.Context(), userID, courseID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		log.Error("course not found", slog.Int64("course_id", courseID))
		w.WriteHeader(http.StatusNotFound)
		render.JSON(w, r, response.Error("no course found"))
		return
	case errors.Is(err, repository.ErrConflict):
		log.Error("already enrolled",
			slog.Int64("user_id", userID), slog.Int64("course_id", courseID))
		w.WriteHeader(http.StatusConflict)
		render.JSON(w, r, response.Error("user is already enrolled in this course"))
		return
	case err != nil:
		log.Error("failed to enroll", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("error while enrolling"))
		return
	}

	log.Info("user enrolled",
		slog.Int64("user_id", userID), slog.Int64("course_id", courseID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(enrollment))
}
