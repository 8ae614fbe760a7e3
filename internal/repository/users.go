package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"storebot/internal/domain"

	"github.com/jmoiron/sqlx"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Exists(ctx context.Context, chatID int64) (bool, error)
	Add(ctx context.Context, user *domain.User) error
	GetAll(ctx context.Context) ([]domain.User, error)
}

type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a Postgres-backed UserRepository.
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Exists(ctx context.Context, chatID int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM users WHERE chat_id = $1)`
	if err := r.db.GetContext(ctx, &exists, query, chatID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func (r *userRepository) Add(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (chat_id, username, first_name, registered_at)
		VALUES (:chat_id, :username, :first_name, :registered_at)
		ON CONFLICT (chat_id) DO NOTHING
	`
	if _, err := r.db.NamedExecContext(ctx, query, user); err != nil {
		return fmt.Errorf("failed to add user: %w", err)
	}
	return nil
}

func (r *userRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	query := `
		SELECT chat_id, username, first_name, registered_at
		FROM users
		ORDER BY registered_at
	`
	users := []domain.User{}
	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
