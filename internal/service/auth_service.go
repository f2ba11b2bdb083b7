package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/promoshare/promocode-backend/internal/models"
	"github.com/promoshare/promocode-backend/internal/repository"
	"github.com/promoshare/promocode-backend/internal/validation"
)

// AuthStore описывает зависимости AuthService от слоя хранилища.
type AuthStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error)
	DeleteSession(ctx context.Context, refreshToken string) error
}

// AuthService инкапсулирует регистрацию и аутентификацию.
type AuthService struct {
	repo         AuthStore
	tokenManager *TokenManager
}

// RegisterInput содержит данные пользователя при регистрации.
type RegisterInput struct {
	Email    string
	Password string
}

// AuthResult возвращает итог регистрации или авторизации.
type AuthResult struct {
	User      *models.User `json:"user"`
	TokenPair *TokenPair   `json:"tokens"`
}

// NewAuthService создаёт сервис аутентификации.
func NewAuthService(repo AuthStore, tokenManager *TokenManager) *AuthService {
	return &AuthService{repo: repo, tokenManager: tokenManager}
}

// Register создаёт нового пользователя и выдаёт токены.
// Новые пользователи никогда не получают признак администратора.
func (s *AuthService) Register(ctx context.Context, in RegisterInput, meta map[string]string) (*AuthResult, error) {
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, invalid("auth service: %w", err)
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, invalid("auth service: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return nil, invalid("auth service: email уже зарегистрирован")
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось захэшировать пароль: %w", err)
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		IsAdmin:      false,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, meta)
}

// Login проверяет учётные данные и выдаёт токены.
func (s *AuthService) Login(ctx context.Context, email, password string, meta map[string]string) (*AuthResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, invalid("auth service: неверные учётные данные")
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, invalid("auth service: неверные учётные данные")
	}

	if err := s.repo.UpdateLastLoginAt(ctx, user.ID); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, meta)
}

// Refresh обменивает refresh токен на новую пару.
// Старая сессия удаляется, токен одноразовый.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, meta map[string]string) (*AuthResult, error) {
	if _, err := s.tokenManager.ParseRefresh(refreshToken); err != nil {
		return nil, invalid("auth service: невалидный refresh токен")
	}

	session, err := s.repo.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return nil, invalid("auth service: сессия не найдена")
		}
		return nil, err
	}

	if time.Now().After(session.ExpiresAt) {
		_ = s.repo.DeleteSession(ctx, refreshToken)
		return nil, invalid("auth service: сессия истекла")
	}

	user, err := s.repo.GetByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.repo.DeleteSession(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user, meta)
}

// Logout удаляет refresh сессию.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.repo.DeleteSession(ctx, refreshToken)
}

// issueTokens выпускает пару токенов и сохраняет refresh сессию.
func (s *AuthService) issueTokens(ctx context.Context, user *models.User, meta map[string]string) (*AuthResult, error) {
	pair, refreshExp, err := s.tokenManager.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("auth service: не удалось выпустить токены: %w", err)
	}

	session := &models.Session{
		UserID:       user.ID,
		RefreshToken: pair.RefreshToken,
		ExpiresAt:    refreshExp,
	}
	if ua := meta["user_agent"]; ua != "" {
		session.UserAgent = &ua
	}
	if ip := meta["ip"]; ip != "" {
		session.IPAddress = &ip
	}

	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &AuthResult{User: user, TokenPair: pair}, nil
}
