package api

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rafalszulejko/helpdesk-go/internal/middleware"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// handlePostMessage accepts a new chat message. An agent_prompt message
// additionally kicks off a background agent run on the ticket; the run's
// outcome never affects this response, the prompt is already persisted.
func (s *Server) handlePostMessage(c *gin.Context) {
	var req models.MessageCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	if req.TicketID == "" || strings.TrimSpace(req.Content) == "" || req.Type == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing required fields"})
		return
	}

	msgType, ok := models.ParseMessageType(req.Type)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}

	required := models.PermissionTicketChatReply
	if msgType == models.MessageInternal {
		required = models.PermissionTicketChatInternal
	}
	if err := s.guard.CheckSet(middleware.Permissions(c), required); err != nil {
		writeError(c, err)
		return
	}
	// Agent records are written by the runner, never posted directly.
	if msgType == models.MessageAgentResponse {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid message type"})
		return
	}

	userID := middleware.UserID(c)
	var author *string
	if userID != "" {
		author = &userID
	}

	msg, err := s.messages.Post(c.Request.Context(), req, author)
	if err != nil {
		writeError(c, err)
		return
	}

	if msgType == models.MessageAgentPrompt && s.runner != nil {
		actor := s.actor(c)
		prompt := msg.Content
		ticketID := msg.TicketID
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), s.agentTimeout)
			defer cancel()
			if err := s.runner.Run(ctx, actor, ticketID, prompt); err != nil {
				log.Printf("agent run for ticket %s failed: %v", ticketID, err)
			}
		}()
	}

	c.JSON(http.StatusCreated, msg)
}

// handleTicketMessages returns the ticket's chat history. Internal and
// agent messages are included only for readers holding the internal-chat
// permission.
func (s *Server) handleTicketMessages(c *gin.Context) {
	messages, err := s.messages.History(c.Request.Context(), middleware.Permissions(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if messages == nil {
		messages = []models.Message{}
	}
	c.JSON(http.StatusOK, gin.H{"messages": messages})
}
