// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, курсами и записями на курсы.
// Предоставляет методы создания, чтения, частичного обновления
// и удаления записей.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки хранилища, по которым слой HTTP выбирает статус ответа.
var (
	// ErrNotFound сущность с указанным идентификатором отсутствует
	ErrNotFound = errors.New("entity not found")
	// ErrConflict нарушение уникальности (email, пара пользователь-курс)
	ErrConflict = errors.New("entity already exists")
	// ErrNoUpdateFields частичное обновление без единого поля
	ErrNoUpdateFields = errors.New("no update fields provided")
	// ErrUnknownField поле вне списка разрешённых для обновления или фильтрации
	ErrUnknownField = errors.New("unknown field")
)

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с пользователями, курсами и записями.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// classify переводит низкоуровневые ошибки драйвера в ошибки хранилища.
//
// Нарушение уникального ограничения — авторитетный сигнал конфликта:
// предваряющая проверка существования не спасает от гонки двух
// одинаковых запросов, ограничение в базе — спасает.
func classify(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return fmt.Errorf("%s: %w", op, ErrConflict)
		case pgerrcode.ForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}
