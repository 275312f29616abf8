package models

// Role is the coarse-grained actor category. The set is closed: roles are
// defined by the system and assigned to a user by the identity provider,
// never client-side.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// AllRoles lists every role the system knows about.
var AllRoles = []Role{RoleCustomer, RoleEmployee, RoleAdmin}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleCustomer, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Permission is a fine-grained named capability in dotted form
// (domain.resource.action). Permissions are matched exactly; no hierarchy
// is interpreted at runtime.
type Permission string

const (
	// Ticket permissions
	PermissionTicketView            Permission = "ticket.view"
	PermissionTicketListView        Permission = "ticket.list.view"
	PermissionTicketListSearch      Permission = "ticket.list.search"
	PermissionTicketListCreate      Permission = "ticket.list.create"
	PermissionTicketChatView        Permission = "ticket.chat.view"
	PermissionTicketChatReply       Permission = "ticket.chat.reply"
	PermissionTicketChatInternal    Permission = "ticket.chat.internal"
	PermissionTicketAssigneeView    Permission = "ticket.assignee.view"
	PermissionTicketAssigneeEdit    Permission = "ticket.assignee.edit"
	PermissionTicketInfoView        Permission = "ticket.info.view"
	PermissionTicketInfoEdit        Permission = "ticket.info.edit"
	PermissionTicketMetadataView    Permission = "ticket.metadata.view"
	PermissionTicketMetadataEdit    Permission = "ticket.metadata.edit"
	PermissionTicketCustomerContext Permission = "ticket.customercontext.view"
	PermissionTicketStateView       Permission = "ticket.state.view"
	PermissionTicketStateEdit       Permission = "ticket.state.edit"
	PermissionTicketDetails         Permission = "ticket.details"
	PermissionTicketTeamView        Permission = "ticket.team.view"

	// Customer and organization permissions
	PermissionCustomerView        Permission = "customer.view"
	PermissionCustomerDetailsView Permission = "customer.details.view"
	PermissionCustomerDetailsEdit Permission = "customer.details.edit"
	PermissionCustomerContextView Permission = "customer.context.view"
	PermissionOrgView             Permission = "org.view"
	PermissionOrgDetailsView      Permission = "org.details.view"
	PermissionTeamView            Permission = "team.view"

	// Admin permissions
	PermissionAdminView           Permission = "admin.view"
	PermissionAdminTicketTypeView Permission = "admin.tickettype.view"
	PermissionAdminTicketTypeEdit Permission = "admin.tickettype.edit"
	PermissionAdminMetadataView   Permission = "admin.metadata.view"
	PermissionAdminMetadataEdit   Permission = "admin.metadata.edit"
	PermissionAdminRoleView       Permission = "admin.role.view"
	PermissionAdminRoleEdit       Permission = "admin.role.edit"
	PermissionAdminUsersView      Permission = "admin.users.view"
	PermissionAdminUsersEdit      Permission = "admin.users.edit"
	PermissionAdminTeamsView      Permission = "admin.teams.view"
	PermissionAdminTeamsEdit      Permission = "admin.teams.edit"
)

// AllPermissions enumerates the closed permission vocabulary. Every guarded
// route or action names exactly one of these.
var AllPermissions = []Permission{
	PermissionTicketView,
	PermissionTicketListView,
	PermissionTicketListSearch,
	PermissionTicketListCreate,
	PermissionTicketChatView,
	PermissionTicketChatReply,
	PermissionTicketChatInternal,
	PermissionTicketAssigneeView,
	PermissionTicketAssigneeEdit,
	PermissionTicketInfoView,
	PermissionTicketInfoEdit,
	PermissionTicketMetadataView,
	PermissionTicketMetadataEdit,
	PermissionTicketCustomerContext,
	PermissionTicketStateView,
	PermissionTicketStateEdit,
	PermissionTicketDetails,
	PermissionTicketTeamView,
	PermissionCustomerView,
	PermissionCustomerDetailsView,
	PermissionCustomerDetailsEdit,
	PermissionCustomerContextView,
	PermissionOrgView,
	PermissionOrgDetailsView,
	PermissionTeamView,
	PermissionAdminView,
	PermissionAdminTicketTypeView,
	PermissionAdminTicketTypeEdit,
	PermissionAdminMetadataView,
	PermissionAdminMetadataEdit,
	PermissionAdminRoleView,
	PermissionAdminRoleEdit,
	PermissionAdminUsersView,
	PermissionAdminUsersEdit,
	PermissionAdminTeamsView,
	PermissionAdminTeamsEdit,
}

// Valid reports whether p belongs to the closed permission vocabulary.
func (p Permission) Valid() bool {
	for _, known := range AllPermissions {
		if p == known {
			return true
		}
	}
	return false
}

// RolePermission is a role -> permission edge. Uniqueness is on the pair;
// duplicate edges carry no additional meaning.
type RolePermission struct {
	ID         int        `json:"id" db:"id"`
	Role       Role       `json:"role" db:"role"`
	Permission Permission `json:"permission" db:"permission"`
}
