package policy

import "github.com/google/uuid"

// ScopeKind names the implicit row restriction a role gets on a resource.
type ScopeKind uint8

const (
	// ScopeNone matches no rows.
	ScopeNone ScopeKind = iota
	ScopeAll
	// ScopeOwnHouses: rows of houses where the actor is an active resident.
	ScopeOwnHouses
	// ScopeSelf: resident records linked to the actor's user.
	ScopeSelf
	// ScopeReported: complaints reported by the actor.
	ScopeReported
)

// RowScope is the resolved restriction for one actor.
type RowScope struct {
	Kind    ScopeKind
	ActorID uuid.UUID
}

// ScopeFor computes the row restriction for listing res. Actors without
// list permission get ScopeNone.
func ScopeFor(a Actor, res Resource) RowScope {
	if !Can(a, ActionList, res) {
		return RowScope{Kind: ScopeNone, ActorID: a.ID}
	}
	return RowScope{Kind: Lookup(a.Role, res).Scope, ActorID: a.ID}
}
