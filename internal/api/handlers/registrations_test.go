package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/domain/registrations"
	"github.com/campushub/server/internal/storage"
	"github.com/campushub/server/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newRegistrationsHandler(repo *storagetest.Repository) *RegistrationsHandler {
	return NewRegistrationsHandler(registrations.NewService(repo.Events(), repo.Registrations()), "test")
}

func TestRegisterForEvent(t *testing.T) {
	repo := storagetest.NewRepository()
	eventID := repo.SeedEvent(storage.Event{Title: "Hackathon", MaxParticipants: 2})
	handler := newRegistrationsHandler(repo)
	student := auth.Identity{ID: primitive.NewObjectID().Hex(), Role: "student"}

	rec := httptest.NewRecorder()
	req := withIdentity(pathRequest(http.MethodPost, "/api/v1/events/"+eventID.Hex()+"/register", eventID.Hex(), nil), student)
	handler.Register(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)
	var reg registrations.APIRegistration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))
	assert.Equal(t, eventID.Hex(), reg.EventID)
	assert.Equal(t, student.ID, reg.UserID)

	// Registering twice is a conflict.
	rec = httptest.NewRecorder()
	req = withIdentity(pathRequest(http.MethodPost, "/api/v1/events/"+eventID.Hex()+"/register", eventID.Hex(), nil), student)
	handler.Register(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRegisterEventNotFound(t *testing.T) {
	handler := newRegistrationsHandler(storagetest.NewRepository())
	student := auth.Identity{ID: primitive.NewObjectID().Hex(), Role: "student"}

	id := primitive.NewObjectID().Hex()
	rec := httptest.NewRecorder()
	handler.Register(rec, withIdentity(pathRequest(http.MethodPost, "/api/v1/events/"+id+"/register", id, nil), student))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterDeadlinePassed(t *testing.T) {
	repo := storagetest.NewRepository()
	eventID := repo.SeedEvent(storage.Event{
		Title:                "Closed",
		RegistrationDeadline: time.Now().UTC().Add(-time.Hour),
	})
	handler := newRegistrationsHandler(repo)
	student := auth.Identity{ID: primitive.NewObjectID().Hex(), Role: "student"}

	rec := httptest.NewRecorder()
	handler.Register(rec, withIdentity(pathRequest(http.MethodPost, "/api/v1/events/"+eventID.Hex()+"/register", eventID.Hex(), nil), student))

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "deadline")
}

func TestListMineRegistrations(t *testing.T) {
	repo := storagetest.NewRepository()
	eventID := repo.SeedEvent(storage.Event{Title: "Workshop"})
	handler := newRegistrationsHandler(repo)
	student := auth.Identity{ID: primitive.NewObjectID().Hex(), Role: "student"}

	rec := httptest.NewRecorder()
	handler.Register(rec, withIdentity(pathRequest(http.MethodPost, "/api/v1/events/"+eventID.Hex()+"/register", eventID.Hex(), nil), student))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = httptest.NewRecorder()
	handler.ListMine(rec, withIdentity(httptest.NewRequest(http.MethodGet, "/api/v1/registrations/mine", nil), student))

	require.Equal(t, http.StatusOK, rec.Code)
	var items []registrations.APIRegistration
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &items))
	require.Len(t, items, 1)
	assert.Equal(t, eventID.Hex(), items[0].EventID)
}

func TestRegisterUnauthenticated(t *testing.T) {
	handler := newRegistrationsHandler(storagetest.NewRepository())

	id := primitive.NewObjectID().Hex()
	rec := httptest.NewRecorder()
	handler.Register(rec, pathRequest(http.MethodPost, "/api/v1/events/"+id+"/register", id, nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
