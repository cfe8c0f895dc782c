package domain

import (
	"errors"
	"time"
)

// User represents a registered account holder.
type User struct {
	CreatedAt      time.Time
	UpdatedAt      time.Time
	ID             string
	Username       string
	Email          string
	HashedPassword string
	Role           Role
	Active         bool
}

// Role represents a user's access level
type Role string

const (
	// RoleUser manages only their own data
	RoleUser Role = "user"

	// RoleAdmin can additionally read operational endpoints
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is a valid role
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAdmin
}

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
