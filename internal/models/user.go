// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля и роль.
// Структуры используются в бизнес‑логике и при работе с хранилищем.
package models

// Роли пользователей системы.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// User представляет зарегистрированного пользователя системы.
//
// PasswordHash никогда не сериализуется в ответы API.
type User struct {
	ID           int64  `json:"id"`          // Уникальный идентификатор пользователя
	Name         string `json:"name"`        // Отображаемое имя
	Email        string `json:"email"`       // Электронная почта (уникальная)
	PasswordHash string `json:"-"`           // Хэш пароля пользователя
	Role         string `json:"role"`        // Роль пользователя, admin или user
	ProfilePic   string `json:"profile_pic"` // Ссылка на аватар (опционально)
}

// IsValidRole проверяет, что роль входит в перечень допустимых.
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleUser
}

// DummyUserUpdate используется для приёма частичного обновления пользователя
// из JSON-запроса. Указатели отличают отсутствующее поле от пустого значения.
type DummyUserUpdate struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=3"`
	Email      *string `json:"email,omitempty" validate:"omitempty,email"`
	Password   *string `json:"password,omitempty" validate:"omitempty,min=8"`
	ProfilePic *string `json:"profile_pic,omitempty" validate:"omitempty"`
}

// Fields возвращает множество переданных полей в виде карты
// имя-поля -> новое-значение для динамического построителя UPDATE.
func (d DummyUserUpdate) Fields() map[string]any {
	fields := make(map[string]any)
	if d.Name != nil {
		fields["name"] = *d.Name
	}
	if d.Email != nil {
		fields["email"] = *d.Email
	}
	if d.Password != nil {
		fields["password"] = *d.Password
	}
	if d.ProfilePic != nil {
		fields["profile_pic"] = *d.ProfilePic
	}
	return fields
}
