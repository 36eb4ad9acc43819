package mongodb

import (
	"context"
	"errors"
	"fmt"

	"github.com/campushub/server/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type VenueRepository struct {
	collection *mongo.Collection
}

func (r *VenueRepository) Get(ctx context.Context, id primitive.ObjectID) (*storage.Venue, error) {
	var venue storage.Venue
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&venue)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get venue: %w", err)
	}
	return &venue, nil
}

func (r *VenueRepository) GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]storage.Venue, error) {
	found := make(map[primitive.ObjectID]storage.Venue, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	cursor, err := r.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("list venues: %w", err)
	}
	defer cursor.Close(ctx)

	for cursor.Next(ctx) {
		var venue storage.Venue
		if err := cursor.Decode(&venue); err != nil {
			return nil, fmt.Errorf("decode venue: %w", err)
		}
		found[venue.ID] = venue
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("iterate venues: %w", err)
	}
	return found, nil
}
