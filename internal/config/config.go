package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config конфигурация портала
type Config struct {
	// Сервер
	Port           string   `json:"port"`
	AllowedOrigins []string `json:"allowed_origins"`
	SwaggerEnabled bool     `json:"swagger_enabled"`

	// База данных
	DatabasePath string `json:"database_path"`

	// Connection pooling
	MaxOpenConns    int           `json:"max_open_conns"`
	MaxIdleConns    int           `json:"max_idle_conns"`
	ConnMaxLifetime time.Duration `json:"conn_max_lifetime"`

	// Логирование
	LogLevel  string `json:"log_level"`
	LogFormat string `json:"log_format"`

	// Аутентификация
	JWTSecret     string        `json:"-"`
	JWTIssuer     string        `json:"jwt_issuer"`
	JWTTTL        time.Duration `json:"jwt_ttl"`
	AdminUsername string        `json:"admin_username"`
	AdminPassword string        `json:"-"`

	// Защита входа от перебора
	LoginRatePerSec float64 `json:"login_rate_per_sec"`
	LoginBurst      int     `json:"login_burst"`

	// Проверка дубликатов
	DuplicateThreshold   float64 `json:"duplicate_threshold"`
	DuplicateCheckStrict bool    `json:"duplicate_check_strict"`

	// Загрузка PDF
	PDFMaxUploadBytes int64 `json:"pdf_max_upload_bytes"`

	// Напоминания об отгрузке
	ReminderEnabled  bool          `json:"reminder_enabled"`
	ReminderInterval time.Duration `json:"reminder_interval"`
}

// LoadConfig загружает конфигурацию из переменных окружения.
// Не заданные переменные получают значения из GetDefaults
func LoadConfig() (*Config, error) {
	defaults := GetDefaults()

	cfg := &Config{
		Port:           getEnv("SERVER_PORT", defaults.Port),
		AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", defaults.AllowedOrigins),
		SwaggerEnabled: getEnvBool("SWAGGER_ENABLED", defaults.SwaggerEnabled),

		DatabasePath:    getEnv("DATABASE_PATH", defaults.DatabasePath),
		MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", defaults.MaxOpenConns),
		MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", defaults.MaxIdleConns),
		ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", defaults.ConnMaxLifetime),

		LogLevel:  getEnv("LOG_LEVEL", defaults.LogLevel),
		LogFormat: getEnv("LOG_FORMAT", defaults.LogFormat),

		JWTSecret:     getEnv("JWT_SECRET", defaults.JWTSecret),
		JWTIssuer:     getEnv("JWT_ISSUER", defaults.JWTIssuer),
		JWTTTL:        getEnvDuration("JWT_TTL", defaults.JWTTTL),
		AdminUsername: getEnv("ADMIN_USERNAME", defaults.AdminUsername),
		AdminPassword: getEnv("ADMIN_PASSWORD", defaults.AdminPassword),

		LoginRatePerSec: getEnvFloat("LOGIN_RATE_PER_SEC", defaults.LoginRatePerSec),
		LoginBurst:      getEnvInt("LOGIN_BURST", defaults.LoginBurst),

		DuplicateThreshold:   getEnvFloat("DUPLICATE_THRESHOLD", defaults.DuplicateThreshold),
		DuplicateCheckStrict: getEnvBool("DUPLICATE_CHECK_STRICT", defaults.DuplicateCheckStrict),

		PDFMaxUploadBytes: int64(getEnvInt("PDF_MAX_UPLOAD_BYTES", int(defaults.PDFMaxUploadBytes))),

		ReminderEnabled:  getEnvBool("REMINDER_ENABLED", defaults.ReminderEnabled),
		ReminderInterval: getEnvDuration("REMINDER_INTERVAL", defaults.ReminderInterval),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Addr адрес, на котором слушает HTTP сервер
func (c *Config) Addr() string {
	return ":" + c.Port
}

// getEnv получает переменную окружения или возвращает значение по умолчанию
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt получает переменную окружения как int или возвращает значение по умолчанию
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat получает переменную окружения как float64 или возвращает значение по умолчанию
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool получает переменную окружения как bool или возвращает значение по умолчанию
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration получает переменную окружения как Duration или возвращает значение по умолчанию
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// getEnvList разбирает список через запятую
func getEnvList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
