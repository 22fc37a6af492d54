// Package elearning предоставляет маршруты основного приложения.
package elearning

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	coursecreate "github.com/magabrotheeeer/elearning-platform/internal/http/handlers/course/create"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/course/createall"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/course/filter"
	courselist "github.com/magabrotheeeer/elearning-platform/internal/http/handlers/course/list"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/course/read"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/course/remove"
	courseupdate "github.com/magabrotheeeer/elearning-platform/internal/http/handlers/course/update"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/enrollment/enroll"
	enrollmentlist "github.com/magabrotheeeer/elearning-platform/internal/http/handlers/enrollment/list"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/user/login"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/user/register"
	userupdate "github.com/magabrotheeeer/elearning-platform/internal/http/handlers/user/update"
	"github.com/magabrotheeeer/elearning-platform/internal/http/handlers/user/view"
	"github.com/magabrotheeeer/elearning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	authservice "github.com/magabrotheeeer/elearning-platform/internal/services/auth"
	courseservice "github.com/magabrotheeeer/elearning-platform/internal/services/course"
	enrollmentservice "github.com/magabrotheeeer/elearning-platform/internal/services/enrollment"
	userservice "github.com/magabrotheeeer/elearning-platform/internal/services/user"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *authservice.AuthService,
	userService *userservice.UserService,
	courseService *courseservice.CourseService,
	enrollmentService *enrollmentservice.EnrollmentService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/user/sign-up", register.New(logger, authService).ServeHTTP)
		r.Post("/user/sign-in", login.New(logger, authService).ServeHTTP)
		r.Get("/courses", courselist.New(logger, courseService).ServeHTTP)
		r.Get("/courses/filter", filter.New(logger, courseService).ServeHTTP)
		r.Get("/courses/{id}", read.New(logger, courseService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.Auth(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/user/view", view.New(logger, userService).ServeHTTP)
			r.Put("/user/{id}", userupdate.New(logger, userService).ServeHTTP)

			r.Post("/enroll/{courseID}", enroll.New(logger, enrollmentService).ServeHTTP)
			r.Get("/enrollments", enrollmentlist.New(logger, enrollmentService).ServeHTTP)

			// Управление каталогом доступно только администраторам
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireRole(models.RoleAdmin, logger))
				r.Post("/courses", coursecreate.New(logger, courseService).ServeHTTP)
				r.Post("/courses/all", createall.New(logger, courseService).ServeHTTP)
				r.Put("/courses/{id}", courseupdate.New(logger, courseService).ServeHTTP)
				r.Delete("/courses/{id}", remove.New(logger, courseService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
