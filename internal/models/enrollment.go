// Package models содержит доменные структуры записи на курс
// и событие, публикуемое после её создания.
package models

import "time"

// Enrollment связывает пользователя с курсом.
//
// Пара (user_id, course_id) уникальна: один пользователь
// записывается на курс не более одного раза.
type Enrollment struct {
	ID       int64 `json:"id"`
	UserID   int64 `json:"user_id"`
	CourseID int64 `json:"course_id"`
}

// EnrollmentWithCourse представляет запись на курс вместе с данными курса,
// получаемыми JOIN-ом двух таблиц при чтении.
type EnrollmentWithCourse struct {
	Enrollment
	Course Course `json:"course"`
}

// EnrollmentEvent — доменное событие "пользователь записан на курс".
// Публикуется в очередь уведомлений после фиксации записи в хранилище
// и обрабатывается отдельным сервисом отправки писем.
type EnrollmentEvent struct {
	EventID    string    `json:"event_id"`
	UserID     int64     `json:"user_id"`
	CourseID   int64     `json:"course_id"`
	UserName   string    `json:"user_name"`
	Email      string    `json:"email"`
	CourseName string    `json:"course_name"`
	CreatedAt  time.Time `json:"created_at"`
}
