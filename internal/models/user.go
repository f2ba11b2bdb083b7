package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает зарегистрированного пользователя сервиса.
type User struct {
	ID           uuid.UUID  `db:"id" json:"id"`
	Email        string     `db:"email" json:"email"`
	PasswordHash string     `db:"password_hash" json:"-"`
	IsAdmin      bool       `db:"is_admin" json:"is_admin"`
	LastLoginAt  *time.Time `db:"last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `db:"created_at" json:"created_at"`
}

// Session представляет сохранённую refresh сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
