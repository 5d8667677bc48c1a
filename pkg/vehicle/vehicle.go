package vehicle

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrNotFound     = errors.New("vehicle not found")
	ErrInvalidInput = errors.New("invalid vehicle")
)

type Vehicle struct {
	MongoID primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ID      string             `json:"vehicle_id" bson:"-"`
	UserID  string             `json:"user_id" bson:"user_id"`
	Year    int                `json:"year" bson:"year"`
	Make    string             `json:"make" bson:"make"`
	Model   string             `json:"model" bson:"model"`
}

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	GetByID(ctx context.Context, id string) (*Vehicle, error)
	ListByUser(ctx context.Context, userID string) ([]*Vehicle, error)
	Delete(ctx context.Context, id string) error
}
