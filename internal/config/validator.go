package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// minJWTSecretLength минимальная длина секрета подписи токенов
const minJWTSecretLength = 16

// minAdminPasswordLength совпадает с требованием к паролям пользователей
const minAdminPasswordLength = 8

// Validate проверяет корректность конфигурации и возвращает все найденные проблемы сразу
func (c *Config) Validate() error {
	var errors []string

	// Валидация порта
	if c.Port == "" {
		errors = append(errors, "port is required")
	} else {
		port, err := strconv.Atoi(c.Port)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid port: %s", c.Port))
		} else if port < 1 || port > 65535 {
			errors = append(errors, fmt.Sprintf("port must be between 1 and 65535, got %d", port))
		}
	}

	if c.DatabasePath == "" {
		errors = append(errors, "database path is required")
	}

	// Валидация connection pooling
	if c.MaxOpenConns < 1 {
		errors = append(errors, "max open connections must be at least 1")
	}
	if c.MaxIdleConns < 1 {
		errors = append(errors, "max idle connections must be at least 1")
	}
	if c.MaxIdleConns > c.MaxOpenConns {
		errors = append(errors, "max idle connections cannot be greater than max open connections")
	}
	if c.ConnMaxLifetime < time.Second {
		errors = append(errors, "connection max lifetime must be at least 1 second")
	}

	// Валидация уровня логирования
	validLogLevels := []string{"DEBUG", "INFO", "WARN", "ERROR"}
	if c.LogLevel != "" && !containsFold(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("invalid log level: %s (valid: %s)",
			c.LogLevel, strings.Join(validLogLevels, ", ")))
	}
	validLogFormats := []string{"json", "text"}
	if c.LogFormat != "" && !containsFold(validLogFormats, c.LogFormat) {
		errors = append(errors, fmt.Sprintf("invalid log format: %s (valid: %s)",
			c.LogFormat, strings.Join(validLogFormats, ", ")))
	}

	// Валидация аутентификации
	if len(c.JWTSecret) < minJWTSecretLength {
		errors = append(errors, fmt.Sprintf("JWT secret must be at least %d characters", minJWTSecretLength))
	}
	if c.JWTTTL < time.Minute {
		errors = append(errors, "JWT TTL must be at least 1 minute")
	}
	if c.AdminUsername != "" && len(c.AdminPassword) < minAdminPasswordLength {
		errors = append(errors, fmt.Sprintf("admin password must be at least %d characters when admin username is set", minAdminPasswordLength))
	}
	if c.LoginRatePerSec <= 0 {
		errors = append(errors, "login rate must be positive")
	}
	if c.LoginBurst < 1 {
		errors = append(errors, "login burst must be at least 1")
	}

	// Порог дубликатов сравнивается строго, поэтому 1 отключил бы проверку
	if c.DuplicateThreshold <= 0 || c.DuplicateThreshold >= 1 {
		errors = append(errors, fmt.Sprintf("duplicate threshold must be between 0 and 1 exclusive, got %g", c.DuplicateThreshold))
	}

	if c.PDFMaxUploadBytes < 1024 {
		errors = append(errors, "PDF max upload size must be at least 1024 bytes")
	}

	if c.ReminderEnabled && c.ReminderInterval < time.Second {
		errors = append(errors, "reminder interval must be at least 1 second")
	}

	if len(errors) > 0 {
		return fmt.Errorf("validation errors: %s", strings.Join(errors, "; "))
	}

	return nil
}

func containsFold(values []string, value string) bool {
	for _, v := range values {
		if strings.EqualFold(v, value) {
			return true
		}
	}
	return false
}

// GetDefaults возвращает конфигурацию по умолчанию.
// JWT секрет не имеет значения по умолчанию и обязателен
func GetDefaults() *Config {
	return &Config{
		Port:                 "8080",
		AllowedOrigins:       []string{"*"},
		SwaggerEnabled:       true,
		DatabasePath:         "portal.db",
		MaxOpenConns:         10,
		MaxIdleConns:         3,
		ConnMaxLifetime:      5 * time.Minute,
		LogLevel:             "INFO",
		LogFormat:            "json",
		JWTIssuer:            "safetyportal",
		JWTTTL:               12 * time.Hour,
		LoginRatePerSec:      0.2,
		LoginBurst:           5,
		DuplicateThreshold:   0.85,
		DuplicateCheckStrict: false,
		PDFMaxUploadBytes:    10 << 20,
		ReminderEnabled:      true,
		ReminderInterval:     time.Minute,
	}
}
