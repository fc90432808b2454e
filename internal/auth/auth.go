// Package auth выпускает и проверяет JWT токены портала и ограничивает доступ по ролям.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrInvalidToken токен не прошел проверку подписи, срока или издателя
	ErrInvalidToken = errors.New("invalid token")
	// ErrMissingToken заголовок Authorization отсутствует или не в формате Bearer
	ErrMissingToken = errors.New("missing bearer token")
)

type contextKey string

const contextKeyAuth contextKey = "auth"

// Context данные аутентифицированного пользователя
type Context struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Expires  int64  `json:"exp,omitempty"`
}

// HasRole проверяет роль пользователя
func (c *Context) HasRole(roles ...string) bool {
	if c == nil {
		return false
	}
	for _, r := range roles {
		if c.Role == r {
			return true
		}
	}
	return false
}

// claims полезная нагрузка токена
type claims struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Manager выпускает и проверяет HS256 токены
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager создает менеджер токенов
func NewManager(secret, issuer string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Manager{secret: []byte(secret), issuer: issuer, ttl: ttl, now: time.Now}
}

// Issue выпускает токен пользователя
func (m *Manager) Issue(userID int64, username, role string) (string, time.Time, error) {
	now := m.now()
	expiresAt := now.Add(m.ttl)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Username: username,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(userID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiresAt, nil
}

// Parse проверяет токен и возвращает контекст пользователя
func (m *Manager) Parse(tokenString string) (*Context, error) {
	parsed := &claims{}
	_, err := jwt.ParseWithClaims(tokenString, parsed, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	},
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	userID, err := strconv.ParseInt(parsed.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: bad subject %q", ErrInvalidToken, parsed.Subject)
	}

	authCtx := &Context{
		UserID:   userID,
		Username: parsed.Username,
		Role:     parsed.Role,
	}
	if parsed.ExpiresAt != nil {
		authCtx.Expires = parsed.ExpiresAt.Unix()
	}
	return authCtx, nil
}

// WithContext добавляет данные пользователя в контекст запроса
func WithContext(ctx context.Context, authCtx *Context) context.Context {
	return context.WithValue(ctx, contextKeyAuth, authCtx)
}

// FromContext извлекает данные пользователя из контекста.
// Для неаутентифицированного запроса возвращает nil
func FromContext(ctx context.Context) *Context {
	if authCtx, ok := ctx.Value(contextKeyAuth).(*Context); ok {
		return authCtx
	}
	return nil
}
