package database

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// DBConfig конфигурация подключения к БД
type DBConfig struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// ServiceDB обертка над базой данных портала.
// Создается явно при старте процесса и закрывается при остановке
type ServiceDB struct {
	conn *sql.DB
	path string
}

// NewServiceDB создает новое подключение к базе данных с настройками по умолчанию
func NewServiceDB(dbPath string) (*ServiceDB, error) {
	return NewServiceDBWithConfig(dbPath, DBConfig{})
}

// isInMemory определяет, что путь относится к in-memory SQLite
func isInMemory(dbPath string) bool {
	if dbPath == ":memory:" {
		return true
	}

	// Формат file:memdb?mode=memory&cache=shared также хранит БД в памяти
	return strings.HasPrefix(dbPath, "file:") && strings.Contains(dbPath, "mode=memory")
}

// buildDSN добавляет к пути параметры драйвера: внешние ключи и ожидание блокировки
// применяются к каждому соединению пула
func buildDSN(dbPath string) string {
	sep := "?"
	if strings.Contains(dbPath, "?") {
		sep = "&"
	}
	return dbPath + sep + "_foreign_keys=on&_busy_timeout=5000"
}

// NewServiceDBWithConfig создает новое подключение к базе данных с конфигурацией
func NewServiceDBWithConfig(dbPath string, config DBConfig) (*ServiceDB, error) {
	conn, err := sql.Open("sqlite3", buildDSN(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Для in-memory SQLite требуется ровно одно соединение,
	// иначе каждое новое соединение получит пустую БД без таблиц
	if isInMemory(dbPath) {
		config.MaxOpenConns = 1
		config.MaxIdleConns = 1
	}

	if config.MaxOpenConns > 0 {
		conn.SetMaxOpenConns(config.MaxOpenConns)
	} else {
		// SQLite плохо переносит много одновременных писателей
		conn.SetMaxOpenConns(10)
	}

	if config.MaxIdleConns > 0 {
		conn.SetMaxIdleConns(config.MaxIdleConns)
	} else {
		conn.SetMaxIdleConns(3)
	}

	if config.ConnMaxLifetime > 0 {
		conn.SetConnMaxLifetime(config.ConnMaxLifetime)
	} else if !isInMemory(dbPath) {
		conn.SetConnMaxLifetime(5 * time.Minute)
	}

	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if !isInMemory(dbPath) {
		// WAL позволяет читателям работать параллельно с писателем
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			slog.Warn("failed to enable WAL mode", "error", err, "path", dbPath)
		}
	}

	return &ServiceDB{conn: conn, path: dbPath}, nil
}

// Close закрывает подключение к базе данных
func (db *ServiceDB) Close() error {
	return db.conn.Close()
}

// Ping проверяет подключение к базе данных
func (db *ServiceDB) Ping(ctx context.Context) error {
	return db.conn.PingContext(ctx)
}

// GetConnection возвращает указатель на sql.DB для прямого доступа
func (db *ServiceDB) GetConnection() *sql.DB {
	return db.conn
}

// Path возвращает путь к файлу базы данных
func (db *ServiceDB) Path() string {
	return db.path
}
