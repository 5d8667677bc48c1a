package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound           = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

type User struct {
	ID           string `json:"user_id"`
	EmailAddress string `json:"email_address"`
	PasswordHash string `json:"-" bson:"-"`
}

type Repository interface {
	Create(ctx context.Context, user *User) error
	FindByEmailAddress(ctx context.Context, emailAddress string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
}
