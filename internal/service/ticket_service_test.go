package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
)

func actorWith(userID string, role models.Role, perms ...models.Permission) Actor {
	set := make(auth.PermissionSet, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return Actor{UserID: userID, Role: role, Permissions: set}
}

func seedTicket(t *testing.T, repo *repository.MemoryTicketRepository, state models.TicketState) *models.Ticket {
	t.Helper()
	ticket := &models.Ticket{Title: "Printer on fire", Description: "3rd floor", State: state, CreatedBy: "customer-1"}
	require.NoError(t, repo.Create(context.Background(), ticket))
	return ticket
}

func TestTicketServiceChangeState(t *testing.T) {
	ctx := context.Background()

	t.Run("employee moves NEW to OPEN", func(t *testing.T) {
		repo := repository.NewMemoryTicketRepository()
		svc := NewTicketService(repo)
		ticket := seedTicket(t, repo, models.StateNew)
		actor := actorWith("emp-1", models.RoleEmployee, models.PermissionTicketStateEdit)

		updated, err := svc.ChangeState(ctx, actor, ticket.ID, "open")
		require.NoError(t, err)
		assert.Equal(t, models.StateOpen, updated.State)
	})

	t.Run("employee cannot close NEW directly even when requested", func(t *testing.T) {
		repo := repository.NewMemoryTicketRepository()
		svc := NewTicketService(repo)
		ticket := seedTicket(t, repo, models.StateNew)
		actor := actorWith("emp-1", models.RoleEmployee, models.PermissionTicketStateEdit)

		_, err := svc.ChangeState(ctx, actor, ticket.ID, "CLOSED")
		assert.ErrorIs(t, err, ErrInvalidTransition)

		// Ticket stays untouched.
		current, err := repo.GetByID(ctx, ticket.ID)
		require.NoError(t, err)
		assert.Equal(t, models.StateNew, current.State)
	})

	t.Run("edit permission is required before any transition", func(t *testing.T) {
		repo := repository.NewMemoryTicketRepository()
		svc := NewTicketService(repo)
		ticket := seedTicket(t, repo, models.StateNew)
		actor := actorWith("emp-1", models.RoleEmployee, models.PermissionTicketView)

		_, err := svc.ChangeState(ctx, actor, ticket.ID, "OPEN")
		assert.ErrorIs(t, err, auth.ErrDenied)
	})

	t.Run("customer resolves PENDING to SOLVED", func(t *testing.T) {
		repo := repository.NewMemoryTicketRepository()
		svc := NewTicketService(repo)
		ticket := seedTicket(t, repo, models.StatePending)
		actor := actorWith("customer-1", models.RoleCustomer, models.PermissionTicketStateEdit)

		updated, err := svc.ChangeState(ctx, actor, ticket.ID, "solved")
		require.NoError(t, err)
		assert.Equal(t, models.StateSolved, updated.State)
	})

	t.Run("unknown state is a validation error", func(t *testing.T) {
		repo := repository.NewMemoryTicketRepository()
		svc := NewTicketService(repo)
		ticket := seedTicket(t, repo, models.StateNew)
		actor := actorWith("adm-1", models.RoleAdmin, models.PermissionTicketStateEdit)

		_, err := svc.ChangeState(ctx, actor, ticket.ID, "ARCHIVED")
		assert.True(t, IsValidation(err))
	})

	t.Run("missing ticket propagates not found", func(t *testing.T) {
		svc := NewTicketService(repository.NewMemoryTicketRepository())
		actor := actorWith("adm-1", models.RoleAdmin, models.PermissionTicketStateEdit)

		_, err := svc.ChangeState(ctx, actor, "no-such-ticket", "OPEN")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestTicketServiceCreate(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTicketRepository()
	svc := NewTicketService(repo)

	t.Run("create starts in NEW with the actor as creator", func(t *testing.T) {
		actor := actorWith("customer-1", models.RoleCustomer, models.PermissionTicketListCreate)

		ticket, err := svc.Create(ctx, actor, models.TicketCreateRequest{Title: "VPN down"})
		require.NoError(t, err)
		assert.Equal(t, models.StateNew, ticket.State)
		assert.Equal(t, "customer-1", ticket.CreatedBy)
		assert.NotEmpty(t, ticket.ID)
	})

	t.Run("create without permission is denied", func(t *testing.T) {
		actor := actorWith("customer-1", models.RoleCustomer, models.PermissionTicketView)

		_, err := svc.Create(ctx, actor, models.TicketCreateRequest{Title: "VPN down"})
		assert.ErrorIs(t, err, auth.ErrDenied)
	})
}

func TestTicketServiceListOwn(t *testing.T) {
	ctx := context.Background()
	repo := repository.NewMemoryTicketRepository()
	svc := NewTicketService(repo)

	seedTicket(t, repo, models.StateNew)
	mine := &models.Ticket{Title: "Mine", State: models.StateOpen, CreatedBy: "emp-1"}
	require.NoError(t, repo.Create(ctx, mine))

	t.Run("returns only the actor's tickets", func(t *testing.T) {
		actor := actorWith("emp-1", models.RoleEmployee, models.PermissionTicketListView)

		tickets, err := svc.ListOwn(ctx, actor)
		require.NoError(t, err)
		require.Len(t, tickets, 1)
		assert.Equal(t, "Mine", tickets[0].Title)
	})

	t.Run("without the list permission the listing is denied", func(t *testing.T) {
		actor := actorWith("emp-1", models.RoleEmployee, models.PermissionTicketView)

		_, err := svc.ListOwn(ctx, actor)
		assert.ErrorIs(t, err, auth.ErrDenied)
	})
}
