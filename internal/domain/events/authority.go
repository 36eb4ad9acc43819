package events

import (
	"github.com/campushub/server/internal/auth"
	"github.com/campushub/server/internal/storage"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Mutation string

const (
	MutationCreate Mutation = "create"
	MutationUpdate Mutation = "update"
	MutationDelete Mutation = "delete"
)

const updateDeniedMessage = "You do not have permission to update this event. Only assigned coordinators can update events."

// CanMutate decides whether an identity may perform a mutation on an event.
//
// Creation is open to any authenticated identity. Update restricts the
// coordinator role to events it is assigned to or created; every other role
// passes unconditionally. Delete performs no ownership check.
func CanMutate(identity auth.Identity, event *storage.Event, mutation Mutation) bool {
	if mutation != MutationUpdate {
		return true
	}
	if auth.NormalizeRole(identity.Role) != auth.RoleCoordinator {
		return true
	}

	callerID, _ := identity.StorableID()
	for _, coordinator := range event.Coordinators {
		if coordinator == callerID && !callerID.IsZero() {
			return true
		}
	}
	// An unowned event is open to any coordinator; only a recorded creator
	// other than the caller closes it.
	return event.CreatedBy.IsZero() || event.CreatedBy == callerID
}

// stampCreator resolves the createdBy reference for a new event: the caller's
// id when it is storable, else a well-formed createdBy from the request body,
// else unset. The env-admin sentinel is never stored.
func stampCreator(identity auth.Identity, bodyCreatedBy string) primitive.ObjectID {
	if oid, ok := identity.StorableID(); ok {
		return oid
	}
	if oid, ok := auth.ParseRef(bodyCreatedBy); ok {
		return oid
	}
	return primitive.NilObjectID
}

// sanitizeCoordinators drops empties, the env-admin sentinel, and anything
// that is not a well-formed document reference.
func sanitizeCoordinators(ids []string) []primitive.ObjectID {
	if ids == nil {
		return nil
	}
	sanitized := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if oid, ok := auth.ParseRef(id); ok {
			sanitized = append(sanitized, oid)
		}
	}
	return sanitized
}
