package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

func (s *Server) handleCreateTicket(c *gin.Context) {
	var req models.TicketCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	ticket, err := s.tickets.Create(c.Request.Context(), s.actor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticket)
}

func (s *Server) handleListTickets(c *gin.Context) {
	tickets, err := s.tickets.ListOwn(c.Request.Context(), s.actor(c))
	if err != nil {
		writeError(c, err)
		return
	}
	if tickets == nil {
		tickets = []models.Ticket{}
	}
	c.JSON(http.StatusOK, gin.H{"tickets": tickets})
}

func (s *Server) handleGetTicket(c *gin.Context) {
	ticket, err := s.tickets.Get(c.Request.Context(), s.actor(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) handleChangeState(c *gin.Context) {
	var req models.TicketStateChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.NewState == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	ticket, err := s.tickets.ChangeState(c.Request.Context(), s.actor(c), c.Param("id"), req.NewState)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, ticket)
}

func (s *Server) handleAssign(c *gin.Context) {
	var req struct {
		Assignee *string `json:"assignee"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := s.tickets.Assign(c.Request.Context(), s.actor(c), c.Param("id"), req.Assignee); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleTicketMetadata(c *gin.Context) {
	values, err := s.metadata.Values(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if values == nil {
		values = []models.MetadataValue{}
	}
	c.JSON(http.StatusOK, gin.H{"metadata": values})
}

func (s *Server) handleMetadataTypes(c *gin.Context) {
	types, err := s.metadata.Types(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"types": types})
}
