package storage

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrNotFound is returned by repositories when a lookup matches no document.
var ErrNotFound = errors.New("not found")

type UserRepository interface {
	// FindByEmail matches case-insensitively (emails are stored lowercased).
	FindByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

type EventRepository interface {
	Insert(ctx context.Context, event *Event) (*Event, error)
	List(ctx context.Context) ([]Event, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Event, error)
	Update(ctx context.Context, id primitive.ObjectID, update EventUpdate) (*Event, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	// IncrementRegistered adjusts registered_count atomically on a single
	// document.
	IncrementRegistered(ctx context.Context, id primitive.ObjectID, delta int) error
}

type VenueRepository interface {
	Get(ctx context.Context, id primitive.ObjectID) (*Venue, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]Venue, error)
}

type RegistrationRepository interface {
	Insert(ctx context.Context, reg *Registration) (*Registration, error)
	Exists(ctx context.Context, eventID, userID primitive.ObjectID) (bool, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]Registration, error)
}

type Repository interface {
	Users() UserRepository
	Events() EventRepository
	Venues() VenueRepository
	Registrations() RegistrationRepository
	Ping(ctx context.Context) error
}
