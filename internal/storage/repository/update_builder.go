package repository

import (
	"fmt"
	"sort"
	"strings"
)

// Списки разрешённых для обновления полей по сущностям.
// Имя колонки никогда не берётся из клиентского ввода напрямую:
// ключ JSON отображается в колонку только через эти карты.
var (
	userUpdateColumns = map[string]string{
		"name":        "name",
		"email":       "email",
		"password":    "password_hash",
		"profile_pic": "profile_pic",
	}
	courseUpdateColumns = map[string]string{
		"name":        "name",
		"category":    "category",
		"level":       "level",
		"popularity":  "popularity",
		"duration":    "duration",
		"instructor":  "instructor",
		"description": "description",
		"price":       "price",
	}
)

// buildUpdate строит параметризованный частичный UPDATE по произвольному
// подмножеству разрешённых полей.
//
// Поля перебираются в отсортированном порядке, чтобы запрос был
// детерминированным; идентификатор всегда последний позиционный параметр.
// Пустая карта полей — ошибка ErrNoUpdateFields, ключ вне allowed —
// ErrUnknownField. Построитель не делает выводов о существовании строки:
// вызывающая сторона проверяет её заранее.
func buildUpdate(table string, allowed map[string]string, fields map[string]any, id int64, returning string) (string, []any, error) {
	const op = "storage.buildUpdate"

	if len(fields) == 0 {
		return "", nil, fmt.Errorf("%s: %w", op, ErrNoUpdateFields)
	}

	keys := make([]string, 0, len(fields))
	for key := range fields {
		column, ok := allowed[key]
		if !ok || column == "" {
			return "", nil, fmt.Errorf("%s: %w: %s", op, ErrUnknownField, key)
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	assignments := make([]string, 0, len(keys))
	args := make([]any, 0, len(keys)+1)
	for i, key := range keys {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", allowed[key], i+1))
		args = append(args, fields[key])
	}
	args = append(args, id)

	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = $%d RETURNING %s",
		table, strings.Join(assignments, ", "), len(args), returning)
	return query, args, nil
}
