package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/promoshare/promocode-backend/internal/models"
)

// ErrUserNotFound возвращается, когда запись пользователя не найдена.
var ErrUserNotFound = errors.New("user not found")

// ErrSessionNotFound возвращается, когда refresh сессия не найдена.
var ErrSessionNotFound = errors.New("session not found")

// UserRepository отвечает за работу с таблицами users и user_sessions.
type UserRepository struct {
	db *sqlx.DB
}

// NewUserRepository создаёт экземпляр репозитория.
func NewUserRepository(db *sqlx.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create создаёт нового пользователя.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (email, password_hash, is_admin)
		VALUES ($1, $2, $3)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(ctx, query, user.Email, user.PasswordHash, user.IsAdmin).
		Scan(&user.ID, &user.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create %w", err)
	}

	return nil
}

// GetByEmail возвращает пользователя по email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, password_hash, is_admin, last_login_at, created_at
		FROM users
		WHERE email = $1
	`
	if err := r.db.GetContext(ctx, &user, query, email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by email %w", err)
	}

	return &user, nil
}

// GetByID возвращает пользователя по идентификатору.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	query := `
		SELECT id, email, password_hash, is_admin, last_login_at, created_at
		FROM users
		WHERE id = $1
	`
	if err := r.db.GetContext(ctx, &user, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user repository: get by id %w", err)
	}

	return &user, nil
}

// UpdateLastLoginAt отмечает время последнего входа.
func (r *UserRepository) UpdateLastLoginAt(ctx context.Context, userID uuid.UUID) error {
	if _, err := r.db.ExecContext(ctx, `UPDATE users SET last_login_at = NOW() WHERE id = $1`, userID); err != nil {
		return fmt.Errorf("user repository: update last login %w", err)
	}
	return nil
}

// CreateSession сохраняет refresh сессию.
func (r *UserRepository) CreateSession(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO user_sessions (user_id, refresh_token, user_agent, ip_address, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	if err := r.db.QueryRowxContext(
		ctx, query,
		session.UserID, session.RefreshToken, session.UserAgent, session.IPAddress, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt); err != nil {
		return fmt.Errorf("user repository: create session %w", err)
	}

	return nil
}

// GetSessionByToken возвращает сессию по refresh токену.
func (r *UserRepository) GetSessionByToken(ctx context.Context, refreshToken string) (*models.Session, error) {
	var session models.Session
	query := `
		SELECT id, user_id, refresh_token, user_agent, ip_address, expires_at, created_at
		FROM user_sessions
		WHERE refresh_token = $1
	`
	if err := r.db.GetContext(ctx, &session, query, refreshToken); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("user repository: get session %w", err)
	}

	return &session, nil
}

// DeleteSession удаляет сессию по refresh токену.
func (r *UserRepository) DeleteSession(ctx context.Context, refreshToken string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE refresh_token = $1`, refreshToken); err != nil {
		return fmt.Errorf("user repository: delete session %w", err)
	}
	return nil
}
