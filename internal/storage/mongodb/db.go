// Package mongodb implements the storage repositories on a MongoDB database.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"github.com/campushub/server/internal/config"
	"github.com/campushub/server/internal/storage"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	usersCollection         = "users"
	eventsCollection        = "events"
	venuesCollection        = "venues"
	registrationsCollection = "registrations"
)

type Repository struct {
	client *mongo.Client
	db     *mongo.Database
}

// Connect dials MongoDB and verifies the connection with a ping before
// returning a repository.
func Connect(ctx context.Context, cfg config.DatabaseConfig) (*Repository, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(ctx)
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	return &Repository{client: client, db: client.Database(cfg.Name)}, nil
}

func NewRepository(client *mongo.Client, database string) (*Repository, error) {
	if client == nil {
		return nil, fmt.Errorf("mongodb repository: client is nil")
	}
	return &Repository{client: client, db: client.Database(database)}, nil
}

func (r *Repository) Users() storage.UserRepository {
	return &UserRepository{collection: r.db.Collection(usersCollection)}
}

func (r *Repository) Events() storage.EventRepository {
	return &EventRepository{collection: r.db.Collection(eventsCollection)}
}

func (r *Repository) Venues() storage.VenueRepository {
	return &VenueRepository{collection: r.db.Collection(venuesCollection)}
}

func (r *Repository) Registrations() storage.RegistrationRepository {
	return &RegistrationRepository{collection: r.db.Collection(registrationsCollection)}
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.client.Ping(ctx, readpref.Primary())
}

func (r *Repository) Close(ctx context.Context) error {
	return r.client.Disconnect(ctx)
}
