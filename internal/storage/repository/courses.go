package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/magabrotheeeer/elearning-platform/internal/models"
)

const courseColumns = "id, name, category, level, popularity, duration, instructor, description, price"

func scanCourse(row interface{ Scan(...any) error }, c *models.Course) error {
	return row.Scan(&c.ID, &c.Name, &c.Category, &c.Level, &c.Popularity,
		&c.Duration, &c.Instructor, &c.Description, &c.Price)
}

// CreateCourse вставляет новый курс и возвращает созданную строку.
func (s *Storage) CreateCourse(ctx context.Context, course models.Course) (*models.Course, error) {
	const op = "storage.CreateCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO courses (name, category, level, popularity, duration, instructor, description, price)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING ` + courseColumns
	c := &models.Course{}
	row := s.DB.QueryRowContext(ctx, query,
		course.Name, course.Category, course.Level, course.Popularity,
		course.Duration, course.Instructor, course.Description, course.Price)
	if err := scanCourse(row, c); err != nil {
		return nil, classify(op, err)
	}
	return c, nil
}

// GetCourse возвращает курс по его ID.
func (s *Storage) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	const op = "storage.GetCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + courseColumns + ` FROM courses WHERE id = $1`
	c := &models.Course{}
	if err := scanCourse(s.DB.QueryRowContext(ctx, query, id), c); err != nil {
		return nil, classify(op, err)
	}
	return c, nil
}

// ListCourses возвращает страницу каталога курсов.
func (s *Storage) ListCourses(ctx context.Context, limit, offset int) ([]*models.Course, error) {
	const op = "storage.ListCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + courseColumns + `
			  FROM courses
			  ORDER BY id
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// courseFilterColumns поля, по которым разрешена фильтрация каталога.
var courseFilterColumns = map[string]string{
	"name":       "name",
	"category":   "category",
	"level":      "level",
	"popularity": "popularity",
	"duration":   "duration",
	"instructor": "instructor",
	"price":      "price",
}

// FilterCourses возвращает страницу курсов, отфильтрованную по равенству
// значений разрешённых полей. Ключ вне списка — ErrUnknownField:
// имена колонок не собираются из клиентского ввода.
func (s *Storage) FilterCourses(ctx context.Context, filters map[string]string, limit, offset int) ([]*models.Course, error) {
	const op = "storage.FilterCourses"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	keys := make([]string, 0, len(filters))
	for key := range filters {
		column, ok := courseFilterColumns[key]
		if !ok || column == "" {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrUnknownField, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	conditions := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+2)
	for i, key := range keys {
		conditions = append(conditions, fmt.Sprintf("%s = $%d", courseFilterColumns[key], i+1))
		args = append(args, filters[key])
	}
	args = append(args, limit, offset)

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}
	query := fmt.Sprintf(`SELECT %s FROM courses%s ORDER BY id LIMIT $%d OFFSET $%d`,
		courseColumns, where, len(keys)+1, len(keys)+2)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Course
	for rows.Next() {
		var c models.Course
		if err := scanCourse(rows, &c); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// UpdateCourse выполняет частичное обновление курса и возвращает
// обновлённую строку. Существование проверяет вызывающая сторона.
func (s *Storage) UpdateCourse(ctx context.Context, id int64, fields map[string]any) (*models.Course, error) {
	const op = "storage.UpdateCourse"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query, args, err := buildUpdate("courses", courseUpdateColumns, fields, id, courseColumns)
	if err != nil {
		return nil, err
	}

	c := &models.Course{}
	if err := scanCourse(s.DB.QueryRowContext(ctx, query, args...), c); err != nil {
		return nil, classify(op, err)
	}
	return c, nil
}

// DeleteCourse удаляет курс по ID и возвращает количество удалённых строк.
func (s *Storage) DeleteCourse(ctx context.Context, id int64) (int, error) {
	const op = "storage.DeleteCourse"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM courses WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}
