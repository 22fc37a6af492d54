package repository

import (
	"context"
	"fmt"

	"github.com/magabrotheeeer/elearning-platform/internal/models"
)

// CreateEnrollment вставляет запись пользователя на курс и возвращает её.
//
// Уникальное ограничение на пару (user_id, course_id) закрывает гонку
// между проверкой существования и вставкой: повторная вставка даёт ErrConflict.
func (s *Storage) CreateEnrollment(ctx context.Context, userID, courseID int64) (*models.Enrollment, error) {
	const op = "storage.CreateEnrollment"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO enrollments (user_id, course_id)
			  VALUES ($1, $2)
			  RETURNING id, user_id, course_id`
	e := &models.Enrollment{}
	row := s.DB.QueryRowContext(ctx, query, userID, courseID)
	if err := row.Scan(&e.ID, &e.UserID, &e.CourseID); err != nil {
		return nil, classify(op, err)
	}
	return e, nil
}

// EnrollmentExists проверяет наличие записи для пары пользователь-курс.
func (s *Storage) EnrollmentExists(ctx context.Context, userID, courseID int64) (bool, error) {
	const op = "storage.EnrollmentExists"
	select {
	case <-ctx.Done():
		return false, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM enrollments WHERE user_id = $1 AND course_id = $2)`
	if err := s.DB.QueryRowContext(ctx, query, userID, courseID).Scan(&exists); err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}
	return exists, nil
}

// ListEnrollmentsForUser возвращает все записи пользователя
// вместе с данными курсов (JOIN двух таблиц).
func (s *Storage) ListEnrollmentsForUser(ctx context.Context, userID int64) ([]*models.EnrollmentWithCourse, error) {
	const op = "storage.ListEnrollmentsForUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT e.id, e.user_id, e.course_id,
			      c.id, c.name, c.category, c.level, c.popularity,
			      c.duration, c.instructor, c.description, c.price
			  FROM enrollments e
			  JOIN courses c ON c.id = e.course_id
			  WHERE e.user_id = $1
			  ORDER BY e.id`
	rows, err := s.DB.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.EnrollmentWithCourse
	for rows.Next() {
		var item models.EnrollmentWithCourse
		if err := rows.Scan(&item.ID, &item.UserID, &item.CourseID,
			&item.Course.ID, &item.Course.Name, &item.Course.Category, &item.Course.Level,
			&item.Course.Popularity, &item.Course.Duration, &item.Course.Instructor,
			&item.Course.Description, &item.Course.Price); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
