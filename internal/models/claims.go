package models

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims - содержимое сессионного токена.
type Claims struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	jwt.RegisteredClaims
}

// SessionUser - данные сессии, отдаваемые клиенту.
type SessionUser struct {
	ID       uuid.UUID `json:"id"`
	Email    string    `json:"email"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

// SessionUser возвращает публичное представление claims.
func (c *Claims) SessionUser() SessionUser {
	return SessionUser{ID: c.UserID, Email: c.Email, Username: c.Username, Role: c.Role}
}
