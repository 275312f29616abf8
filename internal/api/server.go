// Package api exposes the helpdesk over HTTP: ticket CRUD, the ticket
// chat, metadata, and the admin role management surface. Authorization is
// enforced per route; a denied request is answered as if the route did not
// exist.
package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rafalszulejko/helpdesk-go/internal/agent"
	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/middleware"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
	"github.com/rafalszulejko/helpdesk-go/internal/service"
)

// DefaultAgentTimeout bounds one background agent run triggered by an
// agent_prompt message.
const DefaultAgentTimeout = 2 * time.Minute

type Server struct {
	resolver    *auth.Resolver
	guard       *auth.Guard
	authMW      *middleware.AuthMiddleware
	tickets     *service.TicketService
	messages    *service.MessageService
	metadata    *service.MetadataService
	permissions *service.PermissionService
	directory   *service.DirectoryService
	runner      *agent.Runner

	agentTimeout time.Duration
}

type ServerOptions struct {
	Resolver    *auth.Resolver
	Tickets     *service.TicketService
	Messages    *service.MessageService
	Metadata    *service.MetadataService
	Permissions *service.PermissionService
	Directory   *service.DirectoryService
	Runner      *agent.Runner

	// AgentTimeout overrides DefaultAgentTimeout when positive.
	AgentTimeout time.Duration
}

func NewServer(opts ServerOptions) *Server {
	timeout := opts.AgentTimeout
	if timeout <= 0 {
		timeout = DefaultAgentTimeout
	}
	return &Server{
		resolver:     opts.Resolver,
		guard:        auth.NewGuard(opts.Resolver),
		authMW:       middleware.NewAuthMiddleware(opts.Resolver),
		tickets:      opts.Tickets,
		messages:     opts.Messages,
		metadata:     opts.Metadata,
		permissions:  opts.Permissions,
		directory:    opts.Directory,
		runner:       opts.Runner,
		agentTimeout: timeout,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api", s.authMW.RequireAuth())
	{
		api.POST("/messages", s.handlePostMessage)

		api.GET("/tickets", s.authMW.RequirePermission(models.PermissionTicketListView), s.handleListTickets)
		api.POST("/tickets", s.authMW.RequirePermission(models.PermissionTicketListCreate), s.handleCreateTicket)
		api.GET("/tickets/:id", s.authMW.RequirePermission(models.PermissionTicketView), s.handleGetTicket)
		api.GET("/tickets/:id/messages", s.authMW.RequirePermission(models.PermissionTicketChatView), s.handleTicketMessages)
		api.POST("/tickets/:id/state", s.authMW.RequirePermission(models.PermissionTicketStateEdit), s.handleChangeState)
		api.PUT("/tickets/:id/assignee", s.authMW.RequirePermission(models.PermissionTicketAssigneeEdit), s.handleAssign)
		api.GET("/tickets/:id/metadata", s.authMW.RequirePermission(models.PermissionTicketMetadataView), s.handleTicketMetadata)

		api.GET("/metadata/types", s.authMW.RequirePermission(models.PermissionAdminMetadataView), s.handleMetadataTypes)

		api.GET("/ticket-types", s.authMW.RequirePermission(models.PermissionTicketInfoView), s.handleListTicketTypes)
		api.GET("/ticket-types/:id", s.authMW.RequirePermission(models.PermissionTicketInfoView), s.handleGetTicketType)
		api.GET("/teams", s.authMW.RequirePermission(models.PermissionTeamView), s.handleListTeams)
		api.GET("/teams/:id/members", s.authMW.RequirePermission(models.PermissionTicketTeamView), s.handleTeamMembers)
		api.GET("/users/:id", s.authMW.RequirePermission(models.PermissionAdminUsersView), s.handleGetProfile)
		api.GET("/customers/:id", s.authMW.RequirePermission(models.PermissionCustomerDetailsView), s.handleCustomerContext)

		admin := api.Group("", s.authMW.RequirePermission(models.PermissionAdminView))
		{
			admin.GET("/admin/roles", s.authMW.RequirePermission(models.PermissionAdminRoleView), s.handleListRoles)
			admin.GET("/admin/permissions", s.authMW.RequirePermission(models.PermissionAdminRoleView), s.handleListPermissions)
			admin.GET("/admin/role-permissions", s.authMW.RequirePermission(models.PermissionAdminRoleView), s.handleListAssignments)
			admin.POST("/admin/role-permissions", s.authMW.RequirePermission(models.PermissionAdminRoleEdit), s.handleGrant)
			admin.DELETE("/admin/role-permissions", s.authMW.RequirePermission(models.PermissionAdminRoleEdit), s.handleRevoke)
		}
	}

	return r
}

// actor builds the service-layer principal for the current request.
func (s *Server) actor(c *gin.Context) service.Actor {
	return service.Actor{
		UserID:      middleware.UserID(c),
		Role:        middleware.Role(c),
		Permissions: middleware.Permissions(c),
	}
}

// writeError maps service errors onto HTTP responses. Authorization and
// existence failures are indistinguishable on the wire.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, service.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Invalid state transition"})
	case errors.Is(err, auth.ErrDenied), errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
