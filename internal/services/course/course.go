// Package services содержит бизнес-логику каталога курсов,
// включая пагинацию, фильтрацию и кеширование карточек.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/elearning-platform/internal/models"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// PageSize размер страницы каталога.
const PageSize = 10

// CourseRepository определяет методы для работы с курсами в хранилище.
type CourseRepository interface {
	// CreateCourse вставляет курс и возвращает созданную строку.
	CreateCourse(ctx context.Context, course models.Course) (*models.Course, error)
	// GetCourse возвращает курс по ID.
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	// ListCourses возвращает страницу каталога.
	ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error)
	// FilterCourses возвращает страницу, отфильтрованную по равенству полей.
	FilterCourses(ctx context.Context, filters map[string]string, limit, offset int) ([]*models.Course, error)
	// UpdateCourse выполняет частичное обновление курса.
	UpdateCourse(ctx context.Context, id int64, fields map[string]any) (*models.Course, error)
	// DeleteCourse удаляет курс и возвращает количество удаленных строк.
	DeleteCourse(ctx context.Context, id int64) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// CourseService реализует бизнес-логику каталога курсов.
type CourseService struct {
	repo  CourseRepository
	cache Cache
	log   *slog.Logger
}

// NewCourseService создает новый экземпляр CourseService.
func NewCourseService(repo CourseRepository, cache Cache, log *slog.Logger) *CourseService {
	return &CourseService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create добавляет курс в каталог и возвращает созданную строку.
func (s *CourseService) Create(ctx context.Context, req models.DummyCourse) (*models.Course, error) {
	created, err := s.repo.CreateCourse(ctx, req.ToCourse())
	if err != nil {
		return nil, err
	}
	s.log.Info("created new course", slog.Int64("id", created.ID))
	return created, nil
}

// CreateAll вставляет пакет курсов, продолжая после сбоев отдельных строк.
// Возвращает количество сохраненных и число отказов: операция не атомарна.
func (s *CourseService) CreateAll(ctx context.Context, reqs []models.DummyCourse) (saved, failed int) {
	for _, req := range reqs {
		if _, err := s.repo.CreateCourse(ctx, req.ToCourse()); err != nil {
			s.log.Error("failed to save course from batch",
				slog.String("name", req.Name), slog.Any("err", err))
			failed++
			continue
		}
		saved++
	}
	return saved, failed
}

// List возвращает страницу каталога. Пустая страница — не ошибка.
func (s *CourseService) List(ctx context.Context, page int) ([]*models.Course, error) {
	offset := (page - 1) * PageSize
	return s.repo.ListCourses(ctx, PageSize, offset)
}

// Filter возвращает страницу каталога, отфильтрованную по равенству
// значений разрешённых полей.
func (s *CourseService) Filter(ctx context.Context, page int, filters map[string]string) ([]*models.Course, error) {
	offset := (page - 1) * PageSize
	return s.repo.FilterCourses(ctx, filters, PageSize, offset)
}

// Read возвращает курс по ID, используя кеш или репозиторий.
func (s *CourseService) Read(ctx context.Context, id int64) (*models.Course, error) {
	var result *models.Course
	cacheKey := fmt.Sprintf("course:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read course from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found && result != nil {
		return result, nil
	}
	result, err = s.repo.GetCourse(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update выполняет частичное обновление курса и обновляет кеш.
// Существование строки проверяется до обновления.
func (s *CourseService) Update(ctx context.Context, id int64, fields map[string]any) (*models.Course, error) {
	if _, err := s.repo.GetCourse(ctx, id); err != nil {
		return nil, err
	}

	updated, err := s.repo.UpdateCourse(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	s.log.Info("updated course", slog.Int64("id", id))

	cacheKey := fmt.Sprintf("course:%d", id)
	if err := s.cache.Set(cacheKey, updated, time.Hour); err != nil {
		s.log.Warn("failed to cache course", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return updated, nil
}

// Delete удаляет курс по ID и инвалидирует кеш.
// Отсутствие строки — repository.ErrNotFound.
func (s *CourseService) Delete(ctx context.Context, id int64) error {
	cacheKey := fmt.Sprintf("course:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove course from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}

	count, err := s.repo.DeleteCourse(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return repository.ErrNotFound
	}
	return nil
}
