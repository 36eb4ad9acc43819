package events

import (
	"context"
	"errors"
	"time"

	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/storage"
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Service owns event mutations and the API projection of stored events.
// Each call is an independent unit of work against the document store; there
// is no in-process shared state across requests.
type Service struct {
	events   storage.EventRepository
	venues   storage.VenueRepository
	validate *validator.Validate
}

func NewService(events storage.EventRepository, venues storage.VenueRepository) *Service {
	return &Service{
		events:   events,
		venues:   venues,
		validate: validator.New(),
	}
}

func (s *Service) Create(ctx context.Context, input CreateInput, actor auth.Identity) (*APIEvent, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, ValidationError{Message: err.Error()}
	}

	now := time.Now().UTC()
	record := &storage.Event{
		Title:                input.Title,
		Description:          input.Description,
		Type:                 input.Type,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		RegistrationDeadline: input.RegistrationDeadline,
		MaxParticipants:      input.MaxParticipants,
		Status:               input.Status,
		Coordinators:         sanitizeCoordinators(input.Coordinators),
		CreatedBy:            stampCreator(actor, input.CreatedBy),
		CreatedAt:            now,
		UpdatedAt:            now,
	}
	if oid, ok := auth.ParseRef(input.VenueID); ok {
		record.VenueID = oid
	}

	created, err := s.events.Insert(ctx, record)
	if err != nil {
		return nil, err
	}
	return s.project(ctx, created)
}

// List returns every event with its venue reference de-referenced. Venues are
// fetched in one batch; a dangling reference yields venue = null with the raw
// reference kept in venueId.
func (s *Service) List(ctx context.Context) ([]APIEvent, error) {
	records, err := s.events.List(ctx)
	if err != nil {
		return nil, err
	}

	venueIDs := make([]primitive.ObjectID, 0, len(records))
	for _, record := range records {
		if !record.VenueID.IsZero() {
			venueIDs = append(venueIDs, record.VenueID)
		}
	}
	venues := map[primitive.ObjectID]storage.Venue{}
	if len(venueIDs) > 0 {
		venues, err = s.venues.GetByIDs(ctx, venueIDs)
		if err != nil {
			return nil, err
		}
	}

	items := make([]APIEvent, 0, len(records))
	for i := range records {
		var venue *storage.Venue
		if resolved, ok := venues[records[i].VenueID]; ok {
			venue = &resolved
		}
		items = append(items, *toAPI(&records[i], venue))
	}
	return items, nil
}

func (s *Service) Get(ctx context.Context, id string) (*APIEvent, error) {
	oid, ok := auth.ParseRef(id)
	if !ok {
		return nil, ErrNotFound
	}
	record, err := s.events.Get(ctx, oid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.project(ctx, record)
}

func (s *Service) Update(ctx context.Context, id string, input UpdateInput, actor auth.Identity) (*APIEvent, error) {
	oid, ok := auth.ParseRef(id)
	if !ok {
		return nil, ErrNotFound
	}
	record, err := s.events.Get(ctx, oid)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if !CanMutate(actor, record, MutationUpdate) {
		return nil, ForbiddenError{Message: updateDeniedMessage}
	}

	update := storage.EventUpdate{
		Title:                input.Title,
		Description:          input.Description,
		Type:                 input.Type,
		StartDate:            input.StartDate,
		EndDate:              input.EndDate,
		RegistrationDeadline: input.RegistrationDeadline,
		MaxParticipants:      input.MaxParticipants,
		Status:               input.Status,
	}
	if input.VenueID != nil {
		if venueOID, ok := auth.ParseRef(*input.VenueID); ok {
			update.VenueID = &venueOID
		}
	}
	if input.Coordinators != nil {
		coordinators := sanitizeCoordinators(*input.Coordinators)
		update.Coordinators = &coordinators
	}
	if updatedBy, ok := actor.StorableID(); ok {
		update.UpdatedBy = &updatedBy
	}

	updated, err := s.events.Update(ctx, oid, update)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.project(ctx, updated)
}

func (s *Service) Delete(ctx context.Context, id string) error {
	oid, ok := auth.ParseRef(id)
	if !ok {
		return ErrNotFound
	}
	if err := s.events.Delete(ctx, oid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *Service) project(ctx context.Context, record *storage.Event) (*APIEvent, error) {
	var venue *storage.Venue
	if !record.VenueID.IsZero() {
		resolved, err := s.venues.Get(ctx, record.VenueID)
		if err != nil && !errors.Is(err, storage.ErrNotFound) {
			return nil, err
		}
		venue = resolved
	}
	return toAPI(record, venue), nil
}
