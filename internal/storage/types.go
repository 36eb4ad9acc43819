package storage

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User is a persisted account document. The password hash never leaves the
// storage layer.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	Username     string             `bson:"username"`
	Email        string             `bson:"email"`
	PasswordHash string             `bson:"password_hash"`
	FirstName    string             `bson:"first_name"`
	LastName     string             `bson:"last_name"`
	Role         string             `bson:"role"`
	Department   string             `bson:"department,omitempty"`
	StudentID    string             `bson:"student_id,omitempty"`
	FacultyID    string             `bson:"faculty_id,omitempty"`
	Course       string             `bson:"course,omitempty"`
	Branch       string             `bson:"branch,omitempty"`
	CreatedAt    time.Time          `bson:"created_at"`
}

// Event is the stored event document. Venue is referenced by id, never
// embedded; coordinators and ownership fields hold user references only.
type Event struct {
	ID                   primitive.ObjectID   `bson:"_id,omitempty"`
	Title                string               `bson:"title"`
	Description          string               `bson:"description,omitempty"`
	Type                 string               `bson:"type,omitempty"`
	StartDate            time.Time            `bson:"start_date"`
	EndDate              time.Time            `bson:"end_date"`
	RegistrationDeadline time.Time            `bson:"registration_deadline"`
	MaxParticipants      int                  `bson:"max_participants"`
	RegisteredCount      int                  `bson:"registered_count"`
	Status               string               `bson:"status,omitempty"`
	VenueID              primitive.ObjectID   `bson:"venue_id,omitempty"`
	Coordinators         []primitive.ObjectID `bson:"coordinators,omitempty"`
	CreatedBy            primitive.ObjectID   `bson:"created_by,omitempty"`
	UpdatedBy            primitive.ObjectID   `bson:"updated_by,omitempty"`
	CreatedAt            time.Time            `bson:"created_at"`
	UpdatedAt            time.Time            `bson:"updated_at"`
}

type Venue struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Name     string             `bson:"name"`
	Location string             `bson:"location,omitempty"`
	Capacity int                `bson:"capacity"`
	Address  string             `bson:"address,omitempty"`
	MapLink  string             `bson:"map_link,omitempty"`
}

type Registration struct {
	ID           primitive.ObjectID `bson:"_id,omitempty"`
	EventID      primitive.ObjectID `bson:"event_id"`
	UserID       primitive.ObjectID `bson:"user_id"`
	RegisteredAt time.Time          `bson:"registered_at"`
}

// EventUpdate is a partial update; nil fields are left untouched. Updates are
// single-document writes, so concurrent mutations resolve last-writer-wins at
// the field level with no optimistic-concurrency token.
type EventUpdate struct {
	Title                *string
	Description          *string
	Type                 *string
	StartDate            *time.Time
	EndDate              *time.Time
	RegistrationDeadline *time.Time
	MaxParticipants      *int
	Status               *string
	VenueID              *primitive.ObjectID
	Coordinators         *[]primitive.ObjectID
	UpdatedBy            *primitive.ObjectID
}
