package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campushub/server/internal/api/middleware"
	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/domain/events"
	"github.com/campushub/server/internal/storage"
	"github.com/campushub/server/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newEventsHandler(repo *storagetest.Repository) *EventsHandler {
	return NewEventsHandler(events.NewService(repo.Events(), repo.Venues()), "test")
}

func withIdentity(req *http.Request, identity auth.Identity) *http.Request {
	return req.WithContext(middleware.ContextWithIdentity(req.Context(), identity))
}

// pathRequest builds a request whose {id} path value resolves like it would
// through the router.
func pathRequest(method, target, id string, body []byte) *http.Request {
	var req *http.Request
	if body != nil {
		req = httptest.NewRequest(method, target, bytes.NewReader(body))
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	req.SetPathValue("id", id)
	return req
}

func TestListEventsVenueProjection(t *testing.T) {
	repo := storagetest.NewRepository()
	venueID := repo.SeedVenue(storage.Venue{Name: "Main Auditorium", Capacity: 400})
	repo.SeedEvent(storage.Event{Title: "Tech Symposium", VenueID: venueID})
	handler := newEventsHandler(repo)

	rec := httptest.NewRecorder()
	handler.List(rec, httptest.NewRequest(http.MethodGet, "/api/v1/events", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var items []events.APIEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	require.NotNil(t, items[0].Venue)
	assert.Equal(t, venueID.Hex(), items[0].VenueID)
	assert.Equal(t, items[0].VenueID, items[0].Venue.ID)
	assert.Equal(t, "Main Auditorium", items[0].Venue.Name)
}

func TestGetEventNotFound(t *testing.T) {
	handler := newEventsHandler(storagetest.NewRepository())

	id := primitive.NewObjectID().Hex()
	rec := httptest.NewRecorder()
	handler.Get(rec, pathRequest(http.MethodGet, "/api/v1/events/"+id, id, nil))

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}

func TestCreateEvent(t *testing.T) {
	repo := storagetest.NewRepository()
	handler := newEventsHandler(repo)
	actorID := primitive.NewObjectID()

	start := time.Date(2026, 10, 1, 10, 0, 0, 0, time.UTC)
	body, _ := json.Marshal(map[string]any{
		"title":        "Orientation",
		"startDate":    start,
		"endDate":      start.Add(2 * time.Hour),
		"coordinators": []string{auth.EnvAdminID, actorID.Hex(), ""},
	})
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body)), auth.Identity{ID: actorID.Hex(), Role: "coordinator"})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var created events.APIEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	assert.Equal(t, actorID.Hex(), created.CreatedBy)
	assert.Equal(t, []string{actorID.Hex()}, created.Coordinators)
}

func TestCreateEventValidation(t *testing.T) {
	handler := newEventsHandler(storagetest.NewRepository())

	body, _ := json.Marshal(map[string]any{"description": "no title"})
	req := withIdentity(httptest.NewRequest(http.MethodPost, "/api/v1/events", bytes.NewReader(body)), auth.Identity{ID: auth.EnvAdminID, Role: "admin"})
	rec := httptest.NewRecorder()
	handler.Create(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateEventForbidden(t *testing.T) {
	repo := storagetest.NewRepository()
	eventID := repo.SeedEvent(storage.Event{
		Title:        "Guarded",
		Coordinators: []primitive.ObjectID{primitive.NewObjectID()},
		CreatedBy:    primitive.NewObjectID(),
	})
	handler := newEventsHandler(repo)

	body, _ := json.Marshal(map[string]any{"title": "Hijacked"})
	req := withIdentity(pathRequest(http.MethodPut, "/api/v1/events/"+eventID.Hex(), eventID.Hex(), body), auth.Identity{ID: primitive.NewObjectID().Hex(), Role: "coordinator"})
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Contains(t, rec.Body.String(), "Only assigned coordinators can update events.")
}

func TestUpdateEventAssignedCoordinator(t *testing.T) {
	repo := storagetest.NewRepository()
	coordinator := primitive.NewObjectID()
	eventID := repo.SeedEvent(storage.Event{
		Title:        "Editable",
		Coordinators: []primitive.ObjectID{coordinator},
	})
	handler := newEventsHandler(repo)

	body, _ := json.Marshal(map[string]any{"title": "Edited"})
	req := withIdentity(pathRequest(http.MethodPut, "/api/v1/events/"+eventID.Hex(), eventID.Hex(), body), auth.Identity{ID: coordinator.Hex(), Role: "coordinator"})
	rec := httptest.NewRecorder()
	handler.Update(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var updated events.APIEvent
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &updated))
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, coordinator.Hex(), updated.UpdatedBy)
}

func TestDeleteEvent(t *testing.T) {
	repo := storagetest.NewRepository()
	eventID := repo.SeedEvent(storage.Event{Title: "Doomed"})
	handler := newEventsHandler(repo)

	rec := httptest.NewRecorder()
	handler.Delete(rec, withIdentity(pathRequest(http.MethodDelete, "/api/v1/events/"+eventID.Hex(), eventID.Hex(), nil), auth.Identity{ID: auth.EnvAdminID, Role: "admin"}))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event deleted")

	rec = httptest.NewRecorder()
	handler.Delete(rec, withIdentity(pathRequest(http.MethodDelete, "/api/v1/events/"+eventID.Hex(), eventID.Hex(), nil), auth.Identity{ID: auth.EnvAdminID, Role: "admin"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "Event not found")
}
