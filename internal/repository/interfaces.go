package repository

import (
	"context"
	"errors"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// ErrNotFound is returned when a referenced row does not exist.
var ErrNotFound = errors.New("not found")

// TicketStore is the persistence surface for tickets.
type TicketStore interface {
	Create(ctx context.Context, t *models.Ticket) error
	GetByID(ctx context.Context, id string) (*models.Ticket, error)
	UpdateState(ctx context.Context, id string, state models.TicketState) (*models.Ticket, error)
	UpdateAssignee(ctx context.Context, id string, assignee *string) error
	ListByCreator(ctx context.Context, userID string) ([]models.Ticket, error)
}

// MessageStore is the append-only persistence surface for ticket messages.
type MessageStore interface {
	Insert(ctx context.Context, m *models.Message) error
	ListByTicket(ctx context.Context, ticketID string, includeInternal bool) ([]models.Message, error)
}

// MetadataStore covers metadata types, dictionary entries and values.
type MetadataStore interface {
	GetType(ctx context.Context, name string) (*models.MetadataType, error)
	ListTypes(ctx context.Context) ([]models.MetadataType, error)
	DictValues(ctx context.Context, typeName string) ([]string, error)
	GetValue(ctx context.Context, ticketID, typeName string) (*models.MetadataValue, error)
	UpsertValue(ctx context.Context, v *models.MetadataValue) error
	ListValues(ctx context.Context, ticketID string) ([]models.MetadataValue, error)
}

// TicketTypeStore reads the ticket-type taxonomy.
type TicketTypeStore interface {
	List(ctx context.Context) ([]models.TicketType, error)
	GetByID(ctx context.Context, id string) (*models.TicketType, error)
	MetadataTypesFor(ctx context.Context, ticketTypeID string) ([]string, error)
}

// DirectoryStore reads the user, team and customer directory tables.
type DirectoryStore interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	GetCustomer(ctx context.Context, userID string) (*models.CustomerUser, error)
	ListTeams(ctx context.Context) ([]models.Team, error)
	ListTeamMembers(ctx context.Context, teamID string) ([]string, error)
	GetOrg(ctx context.Context, orgID string) (*models.CustomerOrg, error)
}

// RolePermissionStore is the source of truth for authorization decisions.
type RolePermissionStore interface {
	GetPermissionsForRole(ctx context.Context, role models.Role) ([]models.Permission, error)
	ListAll(ctx context.Context) ([]models.RolePermission, error)
	Grant(ctx context.Context, role models.Role, permission models.Permission) error
	Revoke(ctx context.Context, role models.Role, permission models.Permission) error
}
