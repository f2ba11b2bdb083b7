package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/promoshare/promocode-backend/internal/models"
	"github.com/promoshare/promocode-backend/internal/repository"
)

// mockAuthStore реализует AuthStore для тестов.
type mockAuthStore struct {
	usersByEmail map[string]*models.User
	usersByID    map[uuid.UUID]*models.User
	sessions     map[string]*models.Session
}

func newMockAuthStore() *mockAuthStore {
	return &mockAuthStore{
		usersByEmail: make(map[string]*models.User),
		usersByID:    make(map[uuid.UUID]*models.User),
		sessions:     make(map[string]*models.Session),
	}
}

func (m *mockAuthStore) Create(ctx context.Context, user *models.User) error {
	user.ID = uuid.New()
	user.CreatedAt = time.Now()
	m.usersByEmail[user.Email] = user
	m.usersByID[user.ID] = user
	return nil
}

func (m *mockAuthStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if user, ok := m.usersByEmail[email]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthStore) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := m.usersByID[id]; ok {
		return user, nil
	}
	return nil, repository.ErrUserNotFound
}

func (m *mockAuthStore) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if user, ok := m.usersByID[userID]; ok {
		now := time.Now()
		user.LastLoginAt = &now
	}
	return nil
}

func (m *mockAuthStore) CreateSession(ctx context.Context, session *models.Session) error {
	session.ID = uuid.New()
	session.CreatedAt = time.Now()
	m.sessions[session.RefreshToken] = session
	return nil
}

func (m *mockAuthStore) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	if session, ok := m.sessions[refreshToken]; ok {
		return session, nil
	}
	return nil, repository.ErrSessionNotFound
}

func (m *mockAuthStore) DeleteSession(ctx context.Context, refreshToken string) error {
	delete(m.sessions, refreshToken)
	return nil
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	repo := newMockAuthStore()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:    "test@example.com",
		Password: "password123",
	}, map[string]string{"ip": "127.0.0.1"})
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if res.User.ID == uuid.Nil {
		t.Fatalf("user ID должен быть установлен")
	}

	if res.User.IsAdmin {
		t.Fatalf("новый пользователь не должен быть администратором")
	}

	if len(repo.sessions) != 1 {
		t.Fatalf("ожидалась одна сессия, получили %d", len(repo.sessions))
	}

	loginRes, err := service.Login(ctx, "test@example.com", "password123", nil)
	if err != nil {
		t.Fatalf("login returned error: %v", err)
	}

	if loginRes.TokenPair.AccessToken == "" {
		t.Fatalf("ожидался access токен")
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newMockAuthStore()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	if _, err := service.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "password123"}, nil); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if _, err := service.Register(ctx, RegisterInput{Email: "dup@example.com", Password: "password123"}, nil); err == nil {
		t.Fatalf("повторная регистрация должна возвращать ошибку")
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newMockAuthStore()
	tokenManager := NewTokenManager("access", "refresh", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	if _, err := service.Register(ctx, RegisterInput{Email: "user@example.com", Password: "password123"}, nil); err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	if _, err := service.Login(ctx, "user@example.com", "wrong-password", nil); err == nil {
		t.Fatalf("логин с неверным паролем должен возвращать ошибку")
	}
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMockAuthStore()
	tokenManager := NewTokenManager("access-secret", "refresh-secret", time.Minute, time.Hour)
	service := NewAuthService(repo, tokenManager)

	ctx := context.Background()
	res, err := service.Register(ctx, RegisterInput{
		Email:    "refresh@example.com",
		Password: "password123",
	}, nil)
	if err != nil {
		t.Fatalf("register returned error: %v", err)
	}

	oldToken := res.TokenPair.RefreshToken
	refreshed, err := service.Refresh(ctx, oldToken, nil)
	if err != nil {
		t.Fatalf("refresh returned error: %v", err)
	}

	if refreshed.TokenPair.RefreshToken == oldToken {
		t.Fatalf("refresh токен должен быть заменён")
	}

	// Токен одноразовый, повторное использование запрещено.
	if _, err := service.Refresh(ctx, oldToken, nil); err == nil {
		t.Fatalf("повторный refresh тем же токеном должен возвращать ошибку")
	}
}
