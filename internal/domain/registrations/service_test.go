package registrations

import (
	"context"
	"testing"
	"time"

	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/storage"
	"github.com/campushub/server/internal/storage/storagetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newTestService(repo *storagetest.Repository) *Service {
	return NewService(repo.Events(), repo.Registrations())
}

func openEvent() storage.Event {
	return storage.Event{
		Title:                "Hackathon",
		RegistrationDeadline: time.Now().Add(72 * time.Hour),
		MaxParticipants:      2,
	}
}

func studentIdentity() auth.Identity {
	return auth.Identity{ID: primitive.NewObjectID().Hex(), Role: "student"}
}

func TestRegister(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)
	eventID := repo.SeedEvent(openEvent())
	actor := studentIdentity()

	reg, err := service.Register(context.Background(), eventID.Hex(), actor)
	require.NoError(t, err)
	assert.Equal(t, eventID.Hex(), reg.EventID)
	assert.Equal(t, actor.ID, reg.UserID)

	event, err := repo.Events().Get(context.Background(), eventID)
	require.NoError(t, err)
	assert.Equal(t, 1, event.RegisteredCount)
}

func TestRegisterTwice(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)
	eventID := repo.SeedEvent(openEvent())
	actor := studentIdentity()

	_, err := service.Register(context.Background(), eventID.Hex(), actor)
	require.NoError(t, err)
	_, err = service.Register(context.Background(), eventID.Hex(), actor)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
}

func TestRegisterDeadlinePassed(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)
	event := openEvent()
	event.RegistrationDeadline = time.Now().Add(-time.Hour)
	eventID := repo.SeedEvent(event)

	_, err := service.Register(context.Background(), eventID.Hex(), studentIdentity())
	assert.ErrorIs(t, err, ErrDeadlinePassed)
}

func TestRegisterEventFull(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)
	event := openEvent()
	event.MaxParticipants = 1
	event.RegisteredCount = 1
	eventID := repo.SeedEvent(event)

	_, err := service.Register(context.Background(), eventID.Hex(), studentIdentity())
	assert.ErrorIs(t, err, ErrEventFull)
}

func TestRegisterUnlimitedCapacity(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)
	event := openEvent()
	event.MaxParticipants = 0
	event.RegisteredCount = 500
	eventID := repo.SeedEvent(event)

	_, err := service.Register(context.Background(), eventID.Hex(), studentIdentity())
	assert.NoError(t, err)
}

func TestRegisterEnvAdmin(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)
	eventID := repo.SeedEvent(openEvent())

	_, err := service.Register(context.Background(), eventID.Hex(), auth.Identity{ID: auth.EnvAdminID, Role: "admin"})
	assert.ErrorIs(t, err, ErrNotRegistrableUser)
}

func TestRegisterMissingEvent(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)

	_, err := service.Register(context.Background(), primitive.NewObjectID().Hex(), studentIdentity())
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestListMine(t *testing.T) {
	repo := storagetest.NewRepository()
	service := newTestService(repo)
	actor := studentIdentity()
	first := repo.SeedEvent(openEvent())
	second := repo.SeedEvent(openEvent())

	_, err := service.Register(context.Background(), first.Hex(), actor)
	require.NoError(t, err)
	_, err = service.Register(context.Background(), second.Hex(), actor)
	require.NoError(t, err)

	mine, err := service.ListMine(context.Background(), actor)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	other, err := service.ListMine(context.Background(), studentIdentity())
	require.NoError(t, err)
	assert.Empty(t, other)
}
