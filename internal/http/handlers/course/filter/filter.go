// Package filter реализует HTTP-обработчик фильтрации каталога курсов.
// Фильтры приходят как query-параметры, допустимый набор полей
// фиксирован на стороне хранилища.
package filter

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/elearning-platform/internal/http/response"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	courseservice "github.com/magabrotheeeer/elearning-platform/internal/services/course"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// Handler обрабатывает запросы фильтрации курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики фильтрации курсов.
type Service interface {
	Filter(ctx context.Context, page int, filters map[string]string) ([]*models.Course, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.filter"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	page := 1
	if raw := r.URL.Query().Get("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			log.Error("invalid page number", slog.String("page", raw))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("invalid page number"))
			return
		}
		page = parsed
	}

	filters := make(map[string]string)
	for key, values := range r.URL.Query() {
		if key == "page" || len(values) == 0 || values[0] == "" {
			continue
		}
		filters[key] = values[0]
	}

	courses, err := h.service.Filter(r.Context(), page, filters)
	switch {
	case errors.Is(err, repository.ErrUnknownField):
		log.Error("unknown filter field", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("unknown filter field"))
		return
	case err != nil:
		log.Error("failed to filter courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("error while filtering courses"))
		return
	}

	log.Info("courses filtered", slog.Int("count", len(courses)), slog.Int("page", page))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"page":     page,
		"pageSize": courseservice.PageSize,
		"count":    len(courses),
		"courses":  courses,
	}))
}
