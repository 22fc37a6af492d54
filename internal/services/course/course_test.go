package services_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/elearning-platform/internal/models"
	services "github.com/magabrotheeeer/elearning-platform/internal/services/course"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// Мок для CourseRepository
type CourseRepoMock struct {
	mock.Mock
}

func (m *CourseRepoMock) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	args := m.Called(ctx, course)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *CourseRepoMock) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *CourseRepoMock) ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *CourseRepoMock) FilterCourses(ctx context.Context, filters map[string]string, limit, offset int) ([]*models.Course, error) {
	args := m.Called(ctx, filters, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Course), args.Error(1)
}

func (m *CourseRepoMock) UpdateCourse(ctx context.Context, id int64, fields map[string]any) (*models.Course, error) {
	args := m.Called(ctx, id, fields)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Course), args.Error(1)
}

func (m *CourseRepoMock) DeleteCourse(ctx context.Context, id int64) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

// Мок для Cache
type CacheMock struct {
	mock.Mock
}

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func dummyCourse(name string) models.DummyCourse {
	return models.DummyCourse{
		Name:        name,
		Category:    "backend",
		Level:       "beginner",
		Popularity:  "4",
		Duration:    "8 weeks",
		Instructor:  "J. Smith",
		Description: "intro course",
		Price:       "100",
	}
}

func TestCourseServiceListPagination(t *testing.T) {
	tests := []struct {
		name       string
		page       int
		wantOffset int
	}{
		{name: "первая страница", page: 1, wantOffset: 0},
		{name: "третья страница", page: 3, wantOffset: 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(CourseRepoMock)
			repo.On("ListCourses", mock.Anything, services.PageSize, tt.wantOffset).
				Return([]*models.Course{}, nil).Once()

			svc := services.NewCourseService(repo, new(CacheMock), testLogger())

			courses, err := svc.List(context.Background(), tt.page)
			require.NoError(t, err)
			// Пустая страница — валидный результат
			assert.Empty(t, courses)
			repo.AssertExpectations(t)
		})
	}
}

func TestCourseServiceFilterPagination(t *testing.T) {
	repo := new(CourseRepoMock)
	filters := map[string]string{"category": "backend", "level": "beginner"}
	repo.On("FilterCourses", mock.Anything, filters, services.PageSize, 10).
		Return([]*models.Course{{ID: 1, Name: "Go Basics"}}, nil).Once()

	svc := services.NewCourseService(repo, new(CacheMock), testLogger())

	courses, err := svc.Filter(context.Background(), 2, filters)
	require.NoError(t, err)
	assert.Len(t, courses, 1)
	repo.AssertExpectations(t)
}

func TestCourseServiceCreateAll(t *testing.T) {
	repo := new(CourseRepoMock)
	repo.On("CreateCourse", mock.Anything, mock.MatchedBy(func(c models.Course) bool {
		return c.Name == "ok-1" || c.Name == "ok-2"
	})).Return(&models.Course{ID: 1}, nil).Twice()
	repo.On("CreateCourse", mock.Anything, mock.MatchedBy(func(c models.Course) bool {
		return c.Name == "broken"
	})).Return(nil, errors.New("db error")).Once()

	svc := services.NewCourseService(repo, new(CacheMock), testLogger())

	saved, failed := svc.CreateAll(context.Background(), []models.DummyCourse{
		dummyCourse("ok-1"),
		dummyCourse("broken"),
		dummyCourse("ok-2"),
	})

	// Сбой одной строки не прерывает загрузку остальных
	assert.Equal(t, 2, saved)
	assert.Equal(t, 1, failed)
	repo.AssertExpectations(t)
}

func TestCourseServiceReadCacheHit(t *testing.T) {
	repo := new(CourseRepoMock)
	cache := new(CacheMock)
	cache.On("Get", "course:5", mock.Anything).
		Run(func(args mock.Arguments) {
			ptr := args.Get(1).(**models.Course)
			*ptr = &models.Course{ID: 5, Name: "Cached"}
		}).
		Return(true, nil).Once()

	svc := services.NewCourseService(repo, cache, testLogger())

	course, err := svc.Read(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "Cached", course.Name)
	// Репозиторий не вызывается при попадании в кеш
	repo.AssertNotCalled(t, "GetCourse", mock.Anything, mock.Anything)
}

func TestCourseServiceReadCacheMiss(t *testing.T) {
	repo := new(CourseRepoMock)
	cache := new(CacheMock)
	cache.On("Get", "course:5", mock.Anything).Return(false, nil).Once()
	repo.On("GetCourse", mock.Anything, int64(5)).
		Return(&models.Course{ID: 5, Name: "From DB"}, nil).Once()
	cache.On("Set", "course:5", mock.Anything, time.Hour).Return(nil).Once()

	svc := services.NewCourseService(repo, cache, testLogger())

	course, err := svc.Read(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, "From DB", course.Name)
	repo.AssertExpectations(t)
	cache.AssertExpectations(t)
}

func TestCourseServiceUpdateMissingCourse(t *testing.T) {
	repo := new(CourseRepoMock)
	repo.On("GetCourse", mock.Anything, int64(99)).
		Return(nil, repository.ErrNotFound).Once()

	svc := services.NewCourseService(repo, new(CacheMock), testLogger())

	updated, err := svc.Update(context.Background(), 99, map[string]any{"name": "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.Nil(t, updated)
	repo.AssertNotCalled(t, "UpdateCourse", mock.Anything, mock.Anything, mock.Anything)
}

func TestCourseServiceDelete(t *testing.T) {
	t.Run("успешное удаление", func(t *testing.T) {
		repo := new(CourseRepoMock)
		cache := new(CacheMock)
		cache.On("Invalidate", "course:5").Return(nil).Once()
		repo.On("DeleteCourse", mock.Anything, int64(5)).Return(1, nil).Once()

		svc := services.NewCourseService(repo, cache, testLogger())

		require.NoError(t, svc.Delete(context.Background(), 5))
		cache.AssertExpectations(t)
	})

	t.Run("курс не найден", func(t *testing.T) {
		repo := new(CourseRepoMock)
		cache := new(CacheMock)
		cache.On("Invalidate", "course:99").Return(nil).Once()
		repo.On("DeleteCourse", mock.Anything, int64(99)).Return(0, nil).Once()

		svc := services.NewCourseService(repo, cache, testLogger())

		err := svc.Delete(context.Background(), 99)
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}
