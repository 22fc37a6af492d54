// Package models содержит доменные структуры каталога курсов,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Course представляет курс каталога.
//
// Все содержательные поля — обязательный непустой текст,
// идентификатор назначается хранилищем.
type Course struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Level       string `json:"level"`
	Popularity  string `json:"popularity"`
	Duration    string `json:"duration"`
	Instructor  string `json:"instructor"`
	Description string `json:"description"`
	Price       string `json:"price"`
}

// DummyCourse используется для приёма данных нового курса из JSON-запроса,
// прежде чем конвертировать их в Course.
type DummyCourse struct {
	Name        string `json:"name" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Level       string `json:"level" validate:"required"`
	Popularity  string `json:"popularity" validate:"required"`
	Duration    string `json:"duration" validate:"required"`
	Instructor  string `json:"instructor" validate:"required"`
	Description string `json:"description" validate:"required"`
	Price       string `json:"price" validate:"required"`
}

// ToCourse конвертирует входные данные в доменную модель курса.
func (d DummyCourse) ToCourse() Course {
	return Course{
		Name:        d.Name,
		Category:    d.Category,
		Level:       d.Level,
		Popularity:  d.Popularity,
		Duration:    d.Duration,
		Instructor:  d.Instructor,
		Description: d.Description,
		Price:       d.Price,
	}
}

// DummyCourseUpdate используется для приёма частичного обновления курса.
// Указатели отличают отсутствующее поле от пустого значения.
type DummyCourseUpdate struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Category    *string `json:"category,omitempty" validate:"omitempty,min=1"`
	Level       *string `json:"level,omitempty" validate:"omitempty,min=1"`
	Popularity  *string `json:"popularity,omitempty" validate:"omitempty,min=1"`
	Duration    *string `json:"duration,omitempty" validate:"omitempty,min=1"`
	Instructor  *string `json:"instructor,omitempty" validate:"omitempty,min=1"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=1"`
	Price       *string `json:"price,omitempty" validate:"omitempty,min=1"`
}

// Fields возвращает множество переданных полей для построителя UPDATE.
func (d DummyCourseUpdate) Fields() map[string]any {
	fields := make(map[string]any)
	set := func(key string, val *string) {
		if val != nil {
			fields[key] = *val
		}
	}
	set("name", d.Name)
	set("category", d.Category)
	set("level", d.Level)
	set("popularity", d.Popularity)
	set("duration", d.Duration)
	set("instructor", d.Instructor)
	set("description", d.Description)
	set("price", d.Price)
	return fields
}
