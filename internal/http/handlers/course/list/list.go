// Package list реализует HTTP-обработчик постраничного списка курсов.
package list

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/elearning-platform/internal/http/response"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	courseservice "github.com/magabrotheeeer/elearning-platform/internal/services/course"
)

// Handler обрабатывает запросы списка курсов.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики списка курсов.
type Service interface {
	List(ctx context.Context, page int) ([]*models.Course, error)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.list"

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

	courses, err := h.service.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list courses", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("error while listing courses"))
		return
	}

	log.Info("courses listed", slog.Int("count", len(courses)), slog.Int("page", page))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"page":     page,
		"pageSize": courseservice.PageSize,
		"count":    len(courses),
		"courses":  courses,
	}))
}
