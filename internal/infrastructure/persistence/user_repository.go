package persistence

import (
	"context"
	"fmt"

	"safetyportal/database"
	"safetyportal/internal/domain/repositories"
)

// userRepository реализация репозитория пользователей
type userRepository struct {
	rowRepository[repositories.User]
}

// NewUserRepository создает новый репозиторий пользователей
func NewUserRepository(serviceDB *database.ServiceDB) repositories.UserRepository {
	return &userRepository{
		rowRepository: rowRepository[repositories.User]{
			serviceDB:    serviceDB,
			entity:       database.Users,
			searchColumn: "username",
			fromRow:      userFromRow,
			toFields:     userFields,
		},
	}
}

// GetByUsername возвращает пользователя по логину
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*repositories.User, error) {
	rows, err := r.serviceDB.List(ctx, database.Users, database.Filter{
		Equals: map[string]any{"username": username},
		Limit:  1,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get user %q: %w", username, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("user %q: %w", username, repositories.ErrNotFound)
	}
	user := userFromRow(rows[0])
	return &user, nil
}

// Count возвращает количество пользователей
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	return r.serviceDB.Count(ctx, database.Users, database.Filter{})
}

func userFromRow(row database.Row) repositories.User {
	return repositories.User{
		ID:           row.ID(),
		Username:     row.String("username"),
		PasswordHash: row.String("password_hash"),
		FullName:     row.String("full_name"),
		Role:         row.String("role"),
		Active:       row.Bool("active"),
		CreatedAt:    row.Time("created_at"),
		UpdatedAt:    row.Time("updated_at"),
	}
}

func userFields(u *repositories.User) database.Fields {
	return database.Fields{
		"username":      u.Username,
		"password_hash": u.PasswordHash,
		"full_name":     u.FullName,
		"role":          u.Role,
		"active":        u.Active,
	}
}
