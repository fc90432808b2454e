package user

import (
	"context"
	"time"

	"safetyportal/internal/domain/repositories"
)

// User учетная запись сотрудника
type User = repositories.User

// MinPasswordLength минимальная длина пароля
const MinPasswordLength = 8

// Service интерфейс бизнес-логики пользователей и входа
type Service interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Create(ctx context.Context, req CreateRequest) (*User, error)
	Get(ctx context.Context, id int64) (*User, error)
	List(ctx context.Context) ([]User, error)
	Delete(ctx context.Context, id int64, actorID int64) error
	// EnsureAdmin создает администратора, если в системе еще нет ни одного пользователя
	EnsureAdmin(ctx context.Context, username, password string) (bool, error)
}

// TokenIssuer выпускает токен доступа для пользователя
type TokenIssuer interface {
	Issue(userID int64, username, role string) (token string, expiresAt time.Time, err error)
}

// CreateRequest запрос на создание пользователя
type CreateRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// LoginResult результат успешного входа
type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
