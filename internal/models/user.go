package models

import (
	"time"

	"github.com/google/uuid"
)

// User - модель пользователя в системе.
type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session - результат успешного входа.
type Session struct {
	AccessToken string
	ExpiresAt   time.Time
	User        User
}

// Favorite - отметка "избранное" пользователя для идеи.
type Favorite struct {
	UserID    uuid.UUID
	TipID     int64
	CreatedAt time.Time
}
