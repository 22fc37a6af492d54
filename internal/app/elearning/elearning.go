// Package elearning собирает основное HTTP-приложение платформы:
// хранилище с миграциями, кэш, брокер событий, сервисы и сервер.
package elearning

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/elearning-platform/internal/cache"
	"github.com/magabrotheeeer/elearning-platform/internal/config"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/jwt"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/elearning-platform/internal/migrations"
	authservice "github.com/magabrotheeeer/elearning-platform/internal/services/auth"
	courseservice "github.com/magabrotheeeer/elearning-platform/internal/services/course"
	enrollmentservice "github.com/magabrotheeeer/elearning-platform/internal/services/enrollment"
	userservice "github.com/magabrotheeeer/elearning-platform/internal/services/user"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// App основное приложение платформы.
type App struct {
	server     *http.Server
	logger     *slog.Logger
	db         *repository.Storage
	rabbitConn *amqp.Connection
	rabbitCh   *amqp.Channel
}

// New инициализирует все зависимости и готовый к запуску App.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	rabbitConn, err := rabbitmq.Connect(cfg.AddressRabbit, cfg.RetriesRabbit, cfg.DelayRabbit)
	if err != nil {
		return nil, err
	}
	rabbitCh, err := rabbitmq.SetupChannel(rabbitConn)
	if err != nil {
		rabbitConn.Close()
		return nil, err
	}
	publisher := rabbitmq.NewPublisher(rabbitCh)

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := authservice.NewAuthService(db, jwtMaker)
	userService := userservice.NewUserService(db, logger)
	courseService := courseservice.NewCourseService(db, cacheRedis, logger)
	enrollmentService := enrollmentservice.NewEnrollmentService(db, publisher, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, courseService, enrollmentService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server:     srv,
		logger:     logger,
		db:         db,
		rabbitConn: rabbitConn,
		rabbitCh:   rabbitCh,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста
// или ошибки сервера.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.rabbitCh.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq channel", slog.Any("err", cerr))
		}
		if cerr := a.rabbitConn.Close(); cerr != nil {
			a.logger.Error("failed to close rabbitmq connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
