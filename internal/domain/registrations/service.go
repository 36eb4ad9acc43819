// Package registrations handles student signups for events. A registration
// is a single document; the event's registered_count is bumped with an atomic
// single-document increment, which is the only concurrency control in play.
package registrations

import (
	"context"
	"errors"
	"time"

	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/storage"
)

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrDeadlinePassed     = errors.New("registration deadline has passed")
	ErrEventFull          = errors.New("event is full")
	ErrAlreadyRegistered  = errors.New("already registered for this event")
	ErrNotRegistrableUser = errors.New("only persisted users can register for events")
)

type APIRegistration struct {
	ID           string    `json:"id"`
	EventID      string    `json:"eventId"`
	UserID       string    `json:"userId"`
	RegisteredAt time.Time `json:"registeredAt"`
}

type Service struct {
	events        storage.EventRepository
	registrations storage.RegistrationRepository
	now           func() time.Time
}

func NewService(events storage.EventRepository, registrations storage.RegistrationRepository) *Service {
	return &Service{events: events, registrations: registrations, now: time.Now}
}

func (s *Service) Register(ctx context.Context, eventID string, actor auth.Identity) (*APIRegistration, error) {
	userID, ok := actor.StorableID()
	if !ok {
		// The env admin has no user document to register against.
		return nil, ErrNotRegistrableUser
	}
	eventOID, ok := auth.ParseRef(eventID)
	if !ok {
		return nil, ErrEventNotFound
	}

	event, err := s.events.Get(ctx, eventOID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	if !event.RegistrationDeadline.IsZero() && now.After(event.RegistrationDeadline) {
		return nil, ErrDeadlinePassed
	}
	if event.MaxParticipants > 0 && event.RegisteredCount >= event.MaxParticipants {
		return nil, ErrEventFull
	}

	exists, err := s.registrations.Exists(ctx, eventOID, userID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyRegistered
	}

	reg, err := s.registrations.Insert(ctx, &storage.Registration{
		EventID:      eventOID,
		UserID:       userID,
		RegisteredAt: now,
	})
	if err != nil {
		return nil, err
	}
	if err := s.events.IncrementRegistered(ctx, eventOID, 1); err != nil {
		return nil, err
	}

	return toAPI(reg), nil
}

func (s *Service) ListMine(ctx context.Context, actor auth.Identity) ([]APIRegistration, error) {
	userID, ok := actor.StorableID()
	if !ok {
		return []APIRegistration{}, nil
	}

	records, err := s.registrations.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	items := make([]APIRegistration, 0, len(records))
	for i := range records {
		items = append(items, *toAPI(&records[i]))
	}
	return items, nil
}

func toAPI(reg *storage.Registration) *APIRegistration {
	return &APIRegistration{
		ID:           reg.ID.Hex(),
		EventID:      reg.EventID.Hex(),
		UserID:       reg.UserID.Hex(),
		RegisteredAt: reg.RegisteredAt,
	}
}
