package service

import (
	"context"
	"testing"
	"time"

	"storebot/internal/domain"
)

type mockUserRepository struct {
	users map[int64]*domain.User
}

func newMockUserRepository() *mockUserRepository {
	return &mockUserRepository{users: make(map[int64]*domain.User)}
}

func (m *mockUserRepository) Exists(ctx context.Context, chatID int64) (bool, error) {
	_, ok := m.users[chatID]
	return ok, nil
}

func (m *mockUserRepository) Add(ctx context.Context, user *domain.User) error {
	m.users[user.ChatID] = user
	return nil
}

func (m *mockUserRepository) GetAll(ctx context.Context) ([]domain.User, error) {
	out := make([]domain.User, 0, len(m.users))
	for _, u := range m.users {
		out = append(out, *u)
	}
	return out, nil
}

func TestEnsureRegisteredCreatesUserOnce(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo)
	ctx := context.Background()

	created, err := svc.EnsureRegistered(ctx, 100, "runner", "Run")
	if err != nil {
		t.Fatalf("EnsureRegistered: %v", err)
	}
	if !created {
		t.Fatal("first registration reported created=false")
	}

	created, err = svc.EnsureRegistered(ctx, 100, "runner", "Run")
	if err != nil {
		t.Fatalf("EnsureRegistered (repeat): %v", err)
	}
	if created {
		t.Fatal("repeat registration reported created=true")
	}
	if len(repo.users) != 1 {
		t.Fatalf("user count = %d, want 1", len(repo.users))
	}
}

func TestEnsureRegisteredFillsPlaceholders(t *testing.T) {
	repo := newMockUserRepository()
	svc := NewUserService(repo)

	if _, err := svc.EnsureRegistered(context.Background(), 200, "", ""); err != nil {
		t.Fatalf("EnsureRegistered: %v", err)
	}

	u := repo.users[200]
	if u == nil {
		t.Fatal("user was not stored")
	}
	if u.Username != PlaceholderUsername {
		t.Errorf("username = %q, want %q", u.Username, PlaceholderUsername)
	}
	if u.FirstName != PlaceholderFirstName {
		t.Errorf("first name = %q, want %q", u.FirstName, PlaceholderFirstName)
	}
}

func TestStatsCountsTodayByLocalDay(t *testing.T) {
	repo := newMockUserRepository()

	now := time.Date(2024, 5, 14, 15, 30, 0, 0, time.Local)
	svc := &userService{users: repo, now: func() time.Time { return now }}

	repo.users[1] = &domain.User{ChatID: 1, RegisteredAt: now.Add(-2 * time.Hour)}
	repo.users[2] = &domain.User{ChatID: 2, RegisteredAt: now.Add(-15 * time.Hour).Add(-31 * time.Minute)} // yesterday 23:59
	repo.users[3] = &domain.User{ChatID: 3, RegisteredAt: time.Date(2024, 5, 14, 0, 0, 0, 0, time.Local)}
	repo.users[4] = &domain.User{ChatID: 4, RegisteredAt: now.AddDate(0, -1, 0)}

	stats, err := svc.Stats(context.Background())
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if stats.Total != 4 {
		t.Errorf("total = %d, want 4", stats.Total)
	}
	if stats.RegisteredToday != 2 {
		t.Errorf("registered today = %d, want 2", stats.RegisteredToday)
	}
}
