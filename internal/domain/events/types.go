package events

import (
	"time"

	"github.com/campushub/server/internal/storage"
)

// APIEvent is the outward event representation: the stored document with its
// id normalized to a plain string and the venue reference de-referenced to a
// compact snapshot when it resolves. VenueID is always the flat reference
// string; Venue is null when the reference is unresolved or absent.
type APIEvent struct {
	ID                   string     `json:"id"`
	Title                string     `json:"title"`
	Description          string     `json:"description,omitempty"`
	Type                 string     `json:"type,omitempty"`
	StartDate            time.Time  `json:"startDate"`
	EndDate              time.Time  `json:"endDate"`
	RegistrationDeadline time.Time  `json:"registrationDeadline"`
	MaxParticipants      int        `json:"maxParticipants"`
	RegisteredCount      int        `json:"registeredCount"`
	Status               string     `json:"status,omitempty"`
	VenueID              string     `json:"venueId,omitempty"`
	Venue                *VenueInfo `json:"venue"`
	Coordinators         []string   `json:"coordinators"`
	CreatedBy            string     `json:"createdBy,omitempty"`
	UpdatedBy            string     `json:"updatedBy,omitempty"`
	CreatedAt            time.Time  `json:"createdAt"`
	UpdatedAt            time.Time  `json:"updatedAt"`
}

type VenueInfo struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Capacity int    `json:"capacity"`
	Address  string `json:"address,omitempty"`
	MapLink  string `json:"mapLink,omitempty"`
}

// CreateInput is the create-event payload. CreatedBy is only honored as a
// fallback when the caller's own id cannot be stored (see stampCreator).
type CreateInput struct {
	Title                string    `json:"title" validate:"required"`
	Description          string    `json:"description"`
	Type                 string    `json:"type"`
	StartDate            time.Time `json:"startDate" validate:"required"`
	EndDate              time.Time `json:"endDate" validate:"required,gtefield=StartDate"`
	RegistrationDeadline time.Time `json:"registrationDeadline"`
	MaxParticipants      int       `json:"maxParticipants" validate:"gte=0"`
	Status               string    `json:"status"`
	VenueID              string    `json:"venueId"`
	Coordinators         []string  `json:"coordinators"`
	CreatedBy            string    `json:"createdBy"`
}

// UpdateInput carries a partial update; nil fields are untouched.
type UpdateInput struct {
	Title                *string    `json:"title"`
	Description          *string    `json:"description"`
	Type                 *string    `json:"type"`
	StartDate            *time.Time `json:"startDate"`
	EndDate              *time.Time `json:"endDate"`
	RegistrationDeadline *time.Time `json:"registrationDeadline"`
	MaxParticipants      *int       `json:"maxParticipants"`
	Status               *string    `json:"status"`
	VenueID              *string    `json:"venueId"`
	Coordinators         *[]string  `json:"coordinators"`
}

func toAPI(event *storage.Event, venue *storage.Venue) *APIEvent {
	api := &APIEvent{
		ID:                   event.ID.Hex(),
		Title:                event.Title,
		Description:          event.Description,
		Type:                 event.Type,
		StartDate:            event.StartDate,
		EndDate:              event.EndDate,
		RegistrationDeadline: event.RegistrationDeadline,
		MaxParticipants:      event.MaxParticipants,
		RegisteredCount:      event.RegisteredCount,
		Status:               event.Status,
		Coordinators:         make([]string, 0, len(event.Coordinators)),
		CreatedAt:            event.CreatedAt,
		UpdatedAt:            event.UpdatedAt,
	}

	for _, coordinator := range event.Coordinators {
		api.Coordinators = append(api.Coordinators, coordinator.Hex())
	}
	if !event.CreatedBy.IsZero() {
		api.CreatedBy = event.CreatedBy.Hex()
	}
	if !event.UpdatedBy.IsZero() {
		api.UpdatedBy = event.UpdatedBy.Hex()
	}

	if !event.VenueID.IsZero() {
		api.VenueID = event.VenueID.Hex()
	}
	if venue != nil {
		api.Venue = &VenueInfo{
			ID:       venue.ID.Hex(),
			Name:     venue.Name,
			Location: venue.Location,
			Capacity: venue.Capacity,
			Address:  venue.Address,
			MapLink:  venue.MapLink,
		}
	}
	return api
}
