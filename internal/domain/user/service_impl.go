package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"safetyportal/internal/domain/repositories"
)

type service struct {
	repo   repositories.UserRepository
	issuer TokenIssuer
	logger *slog.Logger
	cost   int
}

// NewService создает новый domain service для пользователей
func NewService(repo repositories.UserRepository, issuer TokenIssuer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &service{repo: repo, issuer: issuer, logger: logger, cost: bcrypt.DefaultCost}
}

// Login проверяет пароль и выпускает токен.
// Для неизвестного логина и неверного пароля возвращается одна и та же ошибка
func (s *service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = normalizeUsername(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.InfoContext(ctx, "login failed", "username", username, "reason", "unknown user")
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		s.logger.InfoContext(ctx, "login failed", "username", username, "reason", "wrong password")
		return nil, ErrInvalidCredentials
	}
	if !u.Active {
		return nil, ErrUserInactive
	}

	token, expiresAt, err := s.issuer.Issue(u.ID, u.Username, u.Role)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return &LoginResult{Token: token, ExpiresAt: expiresAt, User: u}, nil
}

// Create создает пользователя с хешированным паролем
func (s *service) Create(ctx context.Context, req CreateRequest) (*User, error) {
	username := normalizeUsername(req.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if len(req.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	role := strings.ToLower(strings.TrimSpace(req.Role))
	if role == "" {
		role = repositories.RoleEmployee
	}
	if role != repositories.RoleAdmin && role != repositories.RoleEmployee {
		return nil, ErrInvalidRole
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u := &User{
		Username:     username,
		PasswordHash: string(hash),
		FullName:     strings.TrimSpace(req.FullName),
		Role:         role,
		Active:       true,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", u.ID, "username", u.Username, "role", u.Role)
	return u, nil
}

// Get возвращает пользователя по ID
func (s *service) Get(ctx context.Context, id int64) (*User, error) {
	if id <= 0 {
		return nil, ErrInvalidUserID
	}

	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return u, nil
}

// List возвращает всех пользователей
func (s *service) List(ctx context.Context) ([]User, error) {
	users, err := s.repo.List(ctx, repositories.ListFilter{})
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// Delete удаляет пользователя. Удалить собственную учетную запись нельзя
func (s *service) Delete(ctx context.Context, id int64, actorID int64) error {
	if id <= 0 {
		return ErrInvalidUserID
	}
	if id == actorID {
		return ErrCannotDeleteSelf
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

// EnsureAdmin создает первого администратора. Возвращает true, если пользователь создан
func (s *service) EnsureAdmin(ctx context.Context, username, password string) (bool, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	if _, err := s.Create(ctx, CreateRequest{
		Username: username,
		Password: password,
		FullName: "Administrator",
		Role:     repositories.RoleAdmin,
	}); err != nil {
		return false, fmt.Errorf("failed to create bootstrap admin: %w", err)
	}
	return true, nil
}

func normalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}
