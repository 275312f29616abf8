package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafalszulejko/helpdesk-go/internal/auth"
	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
)

const testSecret = "middleware-test-secret"

func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenReader) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryRolePermissionRepository()
	require.NoError(t, store.Grant(context.Background(), models.RoleEmployee, models.PermissionTicketView))
	require.NoError(t, store.Grant(context.Background(), models.RoleEmployee, models.PermissionTicketChatView))
	require.NoError(t, store.Grant(context.Background(), models.RoleCustomer, models.PermissionTicketView))

	tokens := auth.NewTokenReader(testSecret)
	m := NewAuthMiddleware(auth.NewResolver(tokens, store))

	r := gin.New()
	r.Use(m.RequireAuth())
	r.GET("/tickets", m.RequirePermission(models.PermissionTicketView), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user": UserID(c)})
	})
	r.GET("/chat", m.RequirePermission(models.PermissionTicketChatView), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r, tokens
}

func signToken(t *testing.T, tokens *auth.TokenReader, role models.Role, ttl time.Duration) string {
	t.Helper()
	token, err := tokens.Sign("user-1", "user@example.com", role, ttl)
	require.NoError(t, err)
	return token
}

func TestRequirePermission(t *testing.T) {
	r, tokens := newTestRouter(t)

	t.Run("grants the route when the role holds the permission", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, models.RoleEmployee, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "user-1")
	})

	t.Run("missing permission reads as not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/chat", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, models.RoleCustomer, time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("anonymous request reads as not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("expired token reads as not found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, tokens, models.RoleEmployee, -time.Hour))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("cookie token is accepted", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: signToken(t, tokens, models.RoleEmployee, time.Hour)})
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("tampered token reads as not found", func(t *testing.T) {
		other := auth.NewTokenReader("some-other-secret")
		token, err := other.Sign("user-1", "user@example.com", models.RoleAdmin, time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/tickets", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
