package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/elearning-platform/internal/models"
	authservice "github.com/magabrotheeeer/elearning-platform/internal/services/auth"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// MockAuthService реализует интерфейс middlewarectx.Service
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Authenticate(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestExtractToken(t *testing.T) {
	t.Run("заголовок с префиксом Bearer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer abc123")
		assert.Equal(t, "abc123", ExtractToken(req))
	})

	t.Run("заголовок без префикса", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "abc123")
		assert.Equal(t, "abc123", ExtractToken(req))
	})

	t.Run("параметр запроса", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?token=query-token", nil)
		assert.Equal(t, "query-token", ExtractToken(req))
	})

	t.Run("заголовок приоритетнее параметра", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/?token=query-token", nil)
		req.Header.Set("Authorization", "header-token")
		assert.Equal(t, "header-token", ExtractToken(req))
	})

	t.Run("токен отсутствует", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		assert.Empty(t, ExtractToken(req))
	})
}

func TestAuthMiddleware(t *testing.T) {
	user := &models.User{ID: 1, Email: "test@example.com", Role: models.RoleUser}

	tests := []struct {
		name           string
		token          string
		setupMock      func(*MockAuthService)
		expectedStatus int
		expectedBody   string
		wantNext       bool
	}{
		{
			name:  "валидный токен пропускается дальше",
			token: "valid-token",
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "valid-token").Return(user, nil)
			},
			expectedStatus: http.StatusOK,
			wantNext:       true,
		},
		{
			name:           "без токена",
			token:          "",
			setupMock:      func(_ *MockAuthService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"a token is required for authentication"}`,
		},
		{
			name:  "испорченный токен",
			token: "bad-token",
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "bad-token").
					Return(nil, authservice.ErrInvalidToken)
			},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"invalid token"}`,
		},
		{
			name:  "пользователь удален",
			token: "orphan-token",
			setupMock: func(m *MockAuthService) {
				m.On("Authenticate", mock.Anything, "orphan-token").
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   `{"status":"Error","error":"user not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockAuthService)
			tt.setupMock(mockService)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				// Контекст заполнен данными загруженной учетной записи
				assert.Equal(t, int64(1), r.Context().Value(UserID))
				assert.Equal(t, "test@example.com", r.Context().Value(UserEmail))
				assert.Equal(t, models.RoleUser, r.Context().Value(Role))
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.token != "" {
				req.Header.Set("Authorization", "Bearer "+tt.token)
			}
			w := httptest.NewRecorder()

			Auth(mockService, testLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
			mockService.AssertExpectations(t)
		})
	}
}

func TestRequireRole(t *testing.T) {
	tests := []struct {
		name           string
		ctxRole        any
		requiredRole   string
		expectedStatus int
		expectedBody   string
		wantNext       bool
	}{
		{
			name:           "роль совпадает",
			ctxRole:        models.RoleAdmin,
			requiredRole:   models.RoleAdmin,
			expectedStatus: http.StatusOK,
			wantNext:       true,
		},
		{
			name:           "роль не совпадает",
			ctxRole:        models.RoleUser,
			requiredRole:   models.RoleAdmin,
			expectedStatus: http.StatusForbidden,
			expectedBody:   `{"status":"Error","error":"access denied"}`,
		},
		{
			name:           "роль отсутствует в контексте",
			ctxRole:        nil,
			requiredRole:   models.RoleAdmin,
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.ctxRole != nil {
				req = req.WithContext(context.WithValue(req.Context(), Role, tt.ctxRole))
			}
			w := httptest.NewRecorder()

			RequireRole(tt.requiredRole, testLogger())(next).ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.Equal(t, tt.wantNext, nextCalled)
			if tt.expectedBody != "" {
				assert.Contains(t, w.Body.String(), tt.expectedBody)
			}
		})
	}
}
