// Package createall реализует HTTP-обработчик массовой загрузки курсов.
// Ошибка одной строки не прерывает загрузку остальных, в ответе
// возвращаются счётчики сохранённых и отклонённых курсов.
package createall

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/elearning-platform/internal/http/response"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
)

// Handler обрабатывает запросы массовой загрузки курсов.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики массовой загрузки.
type Service interface {
	CreateAll(ctx context.Context, reqs []models.DummyCourse) (saved, failed int)
}

// New создает новый Handler.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.course.createall"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var reqs []models.DummyCourse
	if err := render.DecodeJSON(r.Body, &reqs); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}
	if len(reqs) == 0 {
		log.Error("empty course list")
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("course list is empty"))
		return
	}

	for i, req := range reqs {
		if err := h.validate.Struct(req); err != nil {
			log.Error("validation failed", slog.Int("index", i), sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
			return
		}
	}

	saved, failed := h.service.CreateAll(r.Context(), reqs)

	log.Info("courses loaded", slog.Int("saved", saved), slog.Int("failed", failed))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"saved":  saved,
		"failed": failed,
	}))
}
