package ticketutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

func TestAllowedTransitions(t *testing.T) {
	tests := []struct {
		name    string
		current models.TicketState
		role    models.Role
		want    []models.TicketState
	}{
		{"employee moves NEW to OPEN", models.StateNew, models.RoleEmployee, []models.TicketState{models.StateOpen}},
		{"employee moves OPEN to PENDING", models.StateOpen, models.RoleEmployee, []models.TicketState{models.StatePending}},
		{"employee has no moves from PENDING", models.StatePending, models.RoleEmployee, nil},
		{"employee has no moves from SOLVED", models.StateSolved, models.RoleEmployee, nil},
		{"employee has no moves from CLOSED", models.StateClosed, models.RoleEmployee, nil},
		{"customer reopens or solves PENDING", models.StatePending, models.RoleCustomer, []models.TicketState{models.StateOpen, models.StateSolved}},
		{"customer has no moves from NEW", models.StateNew, models.RoleCustomer, nil},
		{"customer has no moves from CLOSED", models.StateClosed, models.RoleCustomer, nil},
		{"admin moves OPEN anywhere including itself", models.StateOpen, models.RoleAdmin, []models.TicketState{models.StateOpen, models.StatePending, models.StateClosed}},
		{"admin moves SOLVED to the admin targets", models.StateSolved, models.RoleAdmin, []models.TicketState{models.StateOpen, models.StatePending, models.StateClosed}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllowedTransitions(tt.current, tt.role)
			assert.Len(t, got, len(tt.want))
			for _, want := range tt.want {
				assert.True(t, got.Has(want), "expected %s in allowed set", want)
			}
		})
	}
}

func TestAllowedTransitionsTotality(t *testing.T) {
	// Never panics, always returns a set, for recognized and garbage inputs.
	states := append([]models.TicketState{"", "BOGUS", "new"}, models.AllTicketStates...)
	roles := append([]models.Role{"", "superuser"}, models.AllRoles...)

	for _, state := range states {
		for _, role := range roles {
			set := AllowedTransitions(state, role)
			assert.NotNil(t, set)
		}
	}

	// Unrecognized state or unset role always yields the empty set.
	assert.Empty(t, AllowedTransitions("BOGUS", models.RoleAdmin))
	assert.Empty(t, AllowedTransitions(models.StateNew, ""))
	assert.Empty(t, AllowedTransitions("", models.RoleEmployee))
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(models.StateNew, models.StateOpen, models.RoleEmployee))
	assert.False(t, CanTransition(models.StateNew, models.StateClosed, models.RoleEmployee))
	assert.True(t, CanTransition(models.StatePending, models.StateSolved, models.RoleCustomer))
	assert.False(t, CanTransition(models.StatePending, models.StateClosed, models.RoleCustomer))
	assert.True(t, CanTransition(models.StateClosed, models.StateOpen, models.RoleAdmin))
}
