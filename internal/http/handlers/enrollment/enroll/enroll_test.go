package enroll

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/elearning-platform/internal/http/middlewarectx"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// MockService реализует интерфейс enroll.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Enrollment), args.Error(1)
}

func TestEnrollHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	tests := []struct {
		name           string
		userID         int64
		courseID       string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:     "успешная запись",
			userID:   1,
			courseID: "2",
			setupMock: func(m *MockService) {
				m.On("Enroll", mock.Anything, int64(1), int64(2)).
					Return(&models.Enrollment{ID: 10, UserID: 1, CourseID: 2}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"user_id":1`,
		},
		{
			name:           "нет пользователя в контексте",
			userID:         0,
			courseID:       "2",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:           "некорректный id курса",
			userID:         1,
			courseID:       "abc",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   `{"status":"Error","error":"failed to decode course id from url"}`,
		},
		{
			name:     "курс не найден",
			userID:   1,
			courseID: "99",
			setupMock: func(m *MockService) {
				m.On("Enroll", mock.Anything, int64(1), int64(99)).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"no course found"}`,
		},
		{
			name:     "повторная запись",
			userID:   1,
			courseID: "2",
			setupMock: func(m *MockService) {
				m.On("Enroll", mock.Anything, int64(1), int64(2)).
					Return(nil, repository.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedBody:   `{"status":"Error","error":"user is already enrolled in this course"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/enroll/"+tt.courseID, nil)
			ctx := context.WithValue(req.Context(), middleware.RequestIDKey, "req-id")
			if tt.userID != 0 {
				ctx = context.WithValue(ctx, middlewarectx.UserID, tt.userID)
			}
			req = req.WithContext(ctx)

			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("courseID", tt.courseID)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))

			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.expectedBody)

			mockService.AssertExpectations(t)
		})
	}
}
