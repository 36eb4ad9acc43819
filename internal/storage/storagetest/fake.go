// Package storagetest provides an in-memory storage.Repository for tests.
// It honors the same contract as the mongodb implementation, including
// storage.ErrNotFound on missing documents.
package storagetest

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/campushub/server/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Repository struct {
	mu            sync.Mutex
	users         map[primitive.ObjectID]*storage.User
	events        map[primitive.ObjectID]*storage.Event
	venues        map[primitive.ObjectID]*storage.Venue
	registrations map[primitive.ObjectID]*storage.Registration
}

func NewRepository() *Repository {
	return &Repository{
		users:         map[primitive.ObjectID]*storage.User{},
		events:        map[primitive.ObjectID]*storage.Event{},
		venues:        map[primitive.ObjectID]*storage.Venue{},
		registrations: map[primitive.ObjectID]*storage.Registration{},
	}
}

func (r *Repository) Users() storage.UserRepository                 { return (*userRepo)(r) }
func (r *Repository) Events() storage.EventRepository               { return (*eventRepo)(r) }
func (r *Repository) Venues() storage.VenueRepository               { return (*venueRepo)(r) }
func (r *Repository) Registrations() storage.RegistrationRepository { return (*registrationRepo)(r) }
func (r *Repository) Ping(context.Context) error                    { return nil }

// SeedVenue inserts a venue and returns its id.
func (r *Repository) SeedVenue(venue storage.Venue) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if venue.ID.IsZero() {
		venue.ID = primitive.NewObjectID()
	}
	r.venues[venue.ID] = &venue
	return venue.ID
}

// SeedEvent inserts an event and returns its id.
func (r *Repository) SeedEvent(event storage.Event) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	r.events[event.ID] = &event
	return event.ID
}

// SeedUser inserts a user and returns its id.
func (r *Repository) SeedUser(user storage.User) primitive.ObjectID {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	r.users[user.ID] = &user
	return user.ID
}

type userRepo Repository

func (r *userRepo) FindByEmail(_ context.Context, email string) (*storage.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if strings.EqualFold(user.Email, email) {
			clone := *user
			return &clone, nil
		}
	}
	return nil, storage.ErrNotFound
}

func (r *userRepo) Create(_ context.Context, user *storage.User) (*storage.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	clone := *user
	r.users[user.ID] = &clone
	return user, nil
}

type eventRepo Repository

func (r *eventRepo) Insert(_ context.Context, event *storage.Event) (*storage.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if event.ID.IsZero() {
		event.ID = primitive.NewObjectID()
	}
	clone := *event
	r.events[event.ID] = &clone
	return event, nil
}

func (r *eventRepo) List(_ context.Context) ([]storage.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]storage.Event, 0, len(r.events))
	for _, event := range r.events {
		items = append(items, *event)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StartDate.Before(items[j].StartDate) })
	return items, nil
}

func (r *eventRepo) Get(_ context.Context, id primitive.ObjectID) (*storage.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *event
	return &clone, nil
}

func (r *eventRepo) Update(_ context.Context, id primitive.ObjectID, update storage.EventUpdate) (*storage.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	if update.Title != nil {
		event.Title = *update.Title
	}
	if update.Description != nil {
		event.Description = *update.Description
	}
	if update.Type != nil {
		event.Type = *update.Type
	}
	if update.StartDate != nil {
		event.StartDate = *update.StartDate
	}
	if update.EndDate != nil {
		event.EndDate = *update.EndDate
	}
	if update.RegistrationDeadline != nil {
		event.RegistrationDeadline = *update.RegistrationDeadline
	}
	if update.MaxParticipants != nil {
		event.MaxParticipants = *update.MaxParticipants
	}
	if update.Status != nil {
		event.Status = *update.Status
	}
	if update.VenueID != nil {
		event.VenueID = *update.VenueID
	}
	if update.Coordinators != nil {
		event.Coordinators = *update.Coordinators
	}
	if update.UpdatedBy != nil {
		event.UpdatedBy = *update.UpdatedBy
	}
	event.UpdatedAt = time.Now().UTC()
	clone := *event
	return &clone, nil
}

func (r *eventRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok {
		return storage.ErrNotFound
	}
	delete(r.events, id)
	return nil
}

func (r *eventRepo) IncrementRegistered(_ context.Context, id primitive.ObjectID, delta int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event, ok := r.events[id]
	if !ok {
		return storage.ErrNotFound
	}
	event.RegisteredCount += delta
	return nil
}

type venueRepo Repository

func (r *venueRepo) Get(_ context.Context, id primitive.ObjectID) (*storage.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	venue, ok := r.venues[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	clone := *venue
	return &clone, nil
}

func (r *venueRepo) GetByIDs(_ context.Context, ids []primitive.ObjectID) (map[primitive.ObjectID]storage.Venue, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	found := make(map[primitive.ObjectID]storage.Venue, len(ids))
	for _, id := range ids {
		if venue, ok := r.venues[id]; ok {
			found[id] = *venue
		}
	}
	return found, nil
}

type registrationRepo Repository

func (r *registrationRepo) Insert(_ context.Context, reg *storage.Registration) (*storage.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if reg.ID.IsZero() {
		reg.ID = primitive.NewObjectID()
	}
	clone := *reg
	r.registrations[reg.ID] = &clone
	return reg, nil
}

func (r *registrationRepo) Exists(_ context.Context, eventID, userID primitive.ObjectID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, reg := range r.registrations {
		if reg.EventID == eventID && reg.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

func (r *registrationRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]storage.Registration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items := make([]storage.Registration, 0)
	for _, reg := range r.registrations {
		if reg.UserID == userID {
			items = append(items, *reg)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].RegisteredAt.Before(items[j].RegisteredAt) })
	return items, nil
}
