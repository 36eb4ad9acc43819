package mongodb

import (
	"context"
	"fmt"

	"github.com/campushub/server/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type RegistrationRepository struct {
	collection *mongo.Collection
}

func (r *RegistrationRepository) Insert(ctx context.Context, reg *storage.Registration) (*storage.Registration, error) {
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, reg); err != nil {
		return nil, fmt.Errorf("insert registration: %w", err)
	}
	return reg, nil
}

func (r *RegistrationRepository) Exists(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	count, err := r.collection.CountDocuments(ctx, bson.M{"event_id": eventID, "user_id": userID}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check registration: %w", err)
	}
	return count > 0, nil
}

func (r *RegistrationRepository) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]storage.Registration, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, options.Find().SetSort(bson.D{{Key: "registered_at", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list registrations: %w", err)
	}
	defer cursor.Close(ctx)

	registrations := make([]storage.Registration, 0)
	if err := cursor.All(ctx, &registrations); err != nil {
		return nil, fmt.Errorf("decode registrations: %w", err)
	}
	return registrations, nil
}
