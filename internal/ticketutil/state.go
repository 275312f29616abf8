// Package ticketutil holds the role-conditioned ticket lifecycle rules.
package ticketutil

import "github.com/rafalszulejko/helpdesk-go/internal/models"

// StateSet is a set of lifecycle states.
type StateSet map[models.TicketState]struct{}

// Has reports whether s contains state.
func (s StateSet) Has(state models.TicketState) bool {
	_, ok := s[state]
	return ok
}

func stateSet(states ...models.TicketState) StateSet {
	set := make(StateSet, len(states))
	for _, st := range states {
		set[st] = struct{}{}
	}
	return set
}

// adminTargets: admins may move any ticket to OPEN, PENDING or CLOSED,
// including a self-transition.
var adminTargets = stateSet(models.StateOpen, models.StatePending, models.StateClosed)

// AllowedTransitions returns the states role may move a ticket to from
// current. The function is pure and total: every (state, role) pair maps to
// a set, possibly empty, and unrecognized inputs yield the empty set.
//
// The result is necessary but not sufficient authorization: callers must
// also hold the edit permission, and the mutation boundary re-runs this
// check regardless of what the UI offered.
func AllowedTransitions(current models.TicketState, role models.Role) StateSet {
	switch role {
	case models.RoleEmployee:
		switch current {
		case models.StateNew:
			return stateSet(models.StateOpen)
		case models.StateOpen:
			return stateSet(models.StatePending)
		}
	case models.RoleCustomer:
		if current == models.StatePending {
			return stateSet(models.StateOpen, models.StateSolved)
		}
	case models.RoleAdmin:
		if _, known := models.ParseTicketState(string(current)); known {
			return adminTargets
		}
	}
	return StateSet{}
}

// CanTransition reports whether role may move a ticket from current to next.
func CanTransition(current, next models.TicketState, role models.Role) bool {
	return AllowedTransitions(current, role).Has(next)
}
