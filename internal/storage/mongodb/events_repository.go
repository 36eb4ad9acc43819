package mongodb

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/campushub/server/internal/storage"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type EventRepository struct {
	collection *mongo.Collection
}

func (r *EventRepository) Insert(ctx context.Context, event *storage.Event) (*storage.Event, error) {
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, event); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}
	return event, nil
}

func (r *EventRepository) List(ctx context.Context) ([]storage.Event, error) {
	cursor, err := r.collection.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "start_date", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer cursor.Close(ctx)

	events := make([]storage.Event, 0)
	if err := cursor.All(ctx, &events); err != nil {
		return nil, fmt.Errorf("decode events: %w", err)
	}
	return events, nil
}

func (r *EventRepository) Get(ctx context.Context, id primitive.ObjectID) (*storage.Event, error) {
	var event storage.Event
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Update(ctx context.Context, id primitive.ObjectID, update storage.EventUpdate) (*storage.Event, error) {
	set := bson.M{}
	if update.Title != nil {
		set["title"] = *update.Title
	}
	if update.Description != nil {
		set["description"] = *update.Description
	}
	if update.Type != nil {
		set["type"] = *update.Type
	}
	if update.StartDate != nil {
		set["start_date"] = *update.StartDate
	}
	if update.EndDate != nil {
		set["end_date"] = *update.EndDate
	}
	if update.RegistrationDeadline != nil {
		set["registration_deadline"] = *update.RegistrationDeadline
	}
	if update.MaxParticipants != nil {
		set["max_participants"] = *update.MaxParticipants
	}
	if update.Status != nil {
		set["status"] = *update.Status
	}
	if update.VenueID != nil {
		set["venue_id"] = *update.VenueID
	}
	if update.Coordinators != nil {
		set["coordinators"] = *update.Coordinators
	}
	if update.UpdatedBy != nil {
		set["updated_by"] = *update.UpdatedBy
	}
	set["updated_at"] = time.Now().UTC()

	var event storage.Event
	err := r.collection.FindOneAndUpdate(
		ctx,
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&event)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return &event, nil
}

func (r *EventRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if result.DeletedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (r *EventRepository) IncrementRegistered(ctx context.Context, id primitive.ObjectID, delta int) error {
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$inc": bson.M{"registered_count": delta}})
	if err != nil {
		return fmt.Errorf("increment registered count: %w", err)
	}
	if result.MatchedCount == 0 {
		return storage.ErrNotFound
	}
	return nil
}
