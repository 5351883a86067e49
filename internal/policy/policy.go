// Package policy decides who may change posts and comments.
package policy

import (
	"github.com/google/uuid"

	"quillpress/internal/models"
)

// Actor is the authenticated identity performing a request.
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// ActorFor returns the actor for a user.
func ActorFor(u *models.User) Actor {
	return Actor{ID: u.ID, Role: u.Role}
}

// IsAdmin returns true if the actor has the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// CanMutate reports whether actor may modify a resource owned by ownerID:
// the owner themself or any administrator. An anonymous actor never can.
func CanMutate(actor Actor, ownerID uuid.UUID) bool {
	if actor.ID == uuid.Nil {
		return false
	}
	return actor.ID == ownerID || actor.IsAdmin()
}
