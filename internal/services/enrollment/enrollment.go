// Package services содержит бизнес-логику записи пользователей на курсы.
//
// Запись существует для пары пользователь-курс не более чем в одном
// экземпляре; после успешной записи публикуется доменное событие
// для отправки письма-подтверждения.
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/magabrotheeeer/elearning-platform/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/elearning-platform/internal/lib/sl"
	"github.com/magabrotheeeer/elearning-platform/internal/models"
	"github.com/magabrotheeeer/elearning-platform/internal/storage/repository"
)

// EnrollmentRepository определяет методы хранилища для записей на курсы.
type EnrollmentRepository interface {
	// CreateEnrollment вставляет запись и возвращает её.
	CreateEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error)
	// EnrollmentExists проверяет наличие записи для пары пользователь-курс.
	EnrollmentExists(ctx context.Context, userID, courseID int64) (bool, error)
	// ListEnrollmentsForUser возвращает записи пользователя с данными курсов.
	ListEnrollmentsForUser(ctx context.Context, userID int64) ([]*models.EnrollmentWithCourse, error)
	// GetUser возвращает пользователя по ID.
	GetUser(ctx context.Context, id int64) (*models.User, error)
	// GetCourse возвращает курс по ID.
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
}

// EventPublisher публикует доменные события в очередь уведомлений.
type EventPublisher interface {
	Publish(routingKey string, message any) error
}

// EnrollmentService реализует бизнес-логику записи на курсы.
type EnrollmentService struct {
	repo      EnrollmentRepository
	publisher EventPublisher
	log       *slog.Logger
}

// NewEnrollmentService создает новый экземпляр EnrollmentService.
func NewEnrollmentService(repo EnrollmentRepository, publisher EventPublisher, log *slog.Logger) *EnrollmentService {
	return &EnrollmentService{
		repo:      repo,
		publisher: publisher,
		log:       log,
	}
}

// Enroll записывает пользователя на курс.
//
// Отсутствие пользователя или курса — repository.ErrNotFound, повторная
// запись — repository.ErrConflict. Предваряющая проверка дубликата дает
// понятный ответ в обычном случае, уникальное ограничение в базе остается
// авторитетным сигналом конфликта при гонке одинаковых запросов.
// Событие публикуется после фиксации записи; сбой публикации логируется
// и не откатывает запись.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	user, err := s.repo.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	course, err := s.repo.GetCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	exists, err := s.repo.EnrollmentExists(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, repository.ErrConflict
	}

	enrollment, err := s.repo.CreateEnrollment(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}
	s.log.Info("enrolled user into course",
		slog.Int64("user_id", userID), slog.Int64("course_id", courseID))

	event := models.EnrollmentEvent{
		EventID:    uuid.New().String(),
		UserID:     user.ID,
		CourseID:   course.ID,
		UserName:   user.Name,
		Email:      user.Email,
		CourseName: course.Name,
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.publisher.Publish(rabbitmq.RoutingKeyEnrollmentCreated, event); err != nil {
		s.log.Error("failed to publish enrollment event", sl.Err(err))
	}

	return enrollment, nil
}

// ListForUser возвращает все записи пользователя вместе с данными курсов.
// Пользователь без записей — не ошибка, возвращается пустой список.
func (s *EnrollmentService) ListForUser(ctx context.Context, userID int64) ([]*models.EnrollmentWithCourse, error) {
	if _, err := s.repo.GetUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.ListEnrollmentsForUser(ctx, userID)
}
