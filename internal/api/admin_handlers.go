package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

type rolePermissionRequest struct {
	Role       string `json:"role"`
	Permission string `json:"permission"`
}

func (s *Server) handleListRoles(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"roles": s.permissions.Roles()})
}

func (s *Server) handleListPermissions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"permissions": s.permissions.Permissions()})
}

func (s *Server) handleListAssignments(c *gin.Context) {
	assignments, err := s.permissions.Assignments(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	if assignments == nil {
		assignments = []models.RolePermission{}
	}
	c.JSON(http.StatusOK, gin.H{"assignments": assignments})
}

func (s *Server) handleGrant(c *gin.Context) {
	var req rolePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" || req.Permission == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := s.permissions.Grant(c.Request.Context(), models.Role(req.Role), models.Permission(req.Permission)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleRevoke(c *gin.Context) {
	var req rolePermissionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Role == "" || req.Permission == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if err := s.permissions.Revoke(c.Request.Context(), models.Role(req.Role), models.Permission(req.Permission)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
