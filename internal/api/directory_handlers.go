package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

func (s *Server) handleListTicketTypes(c *gin.Context) {
	types, err := s.directory.TicketTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if types == nil {
		types = []models.TicketType{}
	}
	c.JSON(http.StatusOK, gin.H{"ticket_types": types})
}

func (s *Server) handleGetTicketType(c *gin.Context) {
	tt, bindings, err := s.directory.TicketType(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if bindings == nil {
		bindings = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"ticket_type": tt, "metadata_types": bindings})
}

func (s *Server) handleListTeams(c *gin.Context) {
	teams, err := s.directory.Teams(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if teams == nil {
		teams = []models.Team{}
	}
	c.JSON(http.StatusOK, gin.H{"teams": teams})
}

func (s *Server) handleTeamMembers(c *gin.Context) {
	members, err := s.directory.TeamMembers(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if members == nil {
		members = []string{}
	}
	c.JSON(http.StatusOK, gin.H{"members": members})
}

func (s *Server) handleGetProfile(c *gin.Context) {
	profile, err := s.directory.Profile(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (s *Server) handleCustomerContext(c *gin.Context) {
	customer, org, err := s.directory.CustomerContext(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customer": customer, "org": org})
}
