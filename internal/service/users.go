package service

import (
	"context"
	"fmt"
	"time"

	"storebot/core/logger"
	"storebot/internal/domain"
	"storebot/internal/repository"

	"log/slog"
)

// Fallback identity fields for Telegram accounts without them.
const (
	PlaceholderUsername  = "no-username"
	PlaceholderFirstName = "anonymous"
)

// Stats summarises the registered audience.
type Stats struct {
	Total           int
	RegisteredToday int
}

// UserService defines the interface for user business logic.
type UserService interface {
	// EnsureRegistered registers the chat if it has not been seen before.
	// The returned flag is true when a new user was created.
	EnsureRegistered(ctx context.Context, chatID int64, username, firstName string) (bool, error)
	Stats(ctx context.Context) (Stats, error)
}

type userService struct {
	users repository.UserRepository
	now   func() time.Time
}

// NewUserService creates a new instance of UserService.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users, now: time.Now}
}

func (s *userService) EnsureRegistered(ctx context.Context, chatID int64, username, firstName string) (bool, error) {
	exists, err := s.users.Exists(ctx, chatID)
	if err != nil {
		return false, fmt.Errorf("failed to check registration: %w", err)
	}
	if exists {
		return false, nil
	}

	if username == "" {
		username = PlaceholderUsername
	}
	if firstName == "" {
		firstName = PlaceholderFirstName
	}

	user := &domain.User{
		ChatID:       chatID,
		Username:     username,
		FirstName:    firstName,
		RegisteredAt: s.now(),
	}
	if err := s.users.Add(ctx, user); err != nil {
		return false, fmt.Errorf("failed to register user: %w", err)
	}

	logger.LogEvent(ctx, logger.SVCUsers, slog.LevelInfo, "user.registered",
		slog.String("status", "ok"),
		slog.Int64("chat_id", chatID),
		slog.String("username", logger.SanitizeLimit(username, 64)),
	)
	return true, nil
}

// Stats counts all users plus those registered during the current server-local day.
func (s *userService) Stats(ctx context.Context) (Stats, error) {
	users, err := s.users.GetAll(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to load users: %w", err)
	}

	now := s.now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	stats := Stats{Total: len(users)}
	for _, u := range users {
		if !u.RegisteredAt.Before(startOfDay) {
			stats.RegisteredToday++
		}
	}
	return stats, nil
}
