package vehicle

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoRepo struct {
	collection *mongo.Collection
}

func NewMongoRepo(db *mongo.Database) *MongoRepo {
	return &MongoRepo{
		collection: db.Collection("vehicles"),
	}
}

func (r *MongoRepo) Create(ctx context.Context, v *Vehicle) error {
	result, err := r.collection.InsertOne(ctx, v)
	if err != nil {
		return fmt.Errorf("insert vehicle: %w", err)
	}

	oid, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return errors.New("failed to convert inserted ID to ObjectID")
	}
	v.MongoID = oid
	v.ID = oid.Hex()
	return nil
}

func (r *MongoRepo) GetByID(ctx context.Context, id string) (*Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var v Vehicle
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&v)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch vehicle: %w", err)
	}

	v.ID = v.MongoID.Hex()
	return &v, nil
}

// ListByUser skips documents that fail to decode.
func (r *MongoRepo) ListByUser(ctx context.Context, userID string) ([]*Vehicle, error) {
	opts := options.Find().SetSort(bson.D{{Key: "year", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	vehicles := make([]*Vehicle, 0)
	for cursor.Next(ctx) {
		var v Vehicle
		if err := cursor.Decode(&v); err != nil {
			continue
		}
		v.ID = v.MongoID.Hex()
		vehicles = append(vehicles, &v)
	}
	return vehicles, cursor.Err()
}

func (r *MongoRepo) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
