package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

type stubStore struct {
	perms map[models.Role][]models.Permission
	err   error
}

func (s *stubStore) GetPermissionsForRole(_ context.Context, role models.Role) ([]models.Permission, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.perms[role], nil
}

const testSecret = "test-secret-key"

func signedToken(t *testing.T, role models.Role, ttl time.Duration) string {
	t.Helper()
	reader := NewTokenReader(testSecret)
	token, err := reader.Sign("user-1", "user@example.com", role, ttl)
	require.NoError(t, err)
	return token
}

func TestResolver(t *testing.T) {
	store := &stubStore{perms: map[models.Role][]models.Permission{
		models.RoleCustomer: {models.PermissionTicketView},
		models.RoleEmployee: {models.PermissionTicketView, models.PermissionTicketChatInternal},
	}}
	resolver := NewResolver(NewTokenReader(testSecret), store)

	t.Run("resolves role permissions as a set", func(t *testing.T) {
		token := signedToken(t, models.RoleEmployee, time.Hour)

		perms, err := resolver.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Len(t, perms, 2)
		assert.True(t, perms.Has(models.PermissionTicketView))
		assert.True(t, perms.Has(models.PermissionTicketChatInternal))
	})

	t.Run("role with no edges resolves to empty set", func(t *testing.T) {
		token := signedToken(t, models.RoleAdmin, time.Hour)

		perms, err := resolver.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("missing token yields empty set", func(t *testing.T) {
		perms, err := resolver.Resolve(context.Background(), "")
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("expired token yields empty set", func(t *testing.T) {
		token := signedToken(t, models.RoleEmployee, -time.Minute)

		perms, err := resolver.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("token signed with wrong key yields empty set", func(t *testing.T) {
		other := NewTokenReader("some-other-key")
		token, err := other.Sign("user-1", "user@example.com", models.RoleAdmin, time.Hour)
		require.NoError(t, err)

		perms, err := resolver.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("unknown role claim yields empty set", func(t *testing.T) {
		token := signedToken(t, models.Role("superuser"), time.Hour)

		perms, err := resolver.Resolve(context.Background(), token)
		require.NoError(t, err)
		assert.Empty(t, perms)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		broken := NewResolver(NewTokenReader(testSecret), &stubStore{err: errors.New("connection refused")})
		token := signedToken(t, models.RoleEmployee, time.Hour)

		_, err := broken.Resolve(context.Background(), token)
		assert.Error(t, err)
	})
}

func TestGuard(t *testing.T) {
	store := &stubStore{perms: map[models.Role][]models.Permission{
		models.RoleCustomer: {models.PermissionTicketView},
	}}
	guard := NewGuard(NewResolver(NewTokenReader(testSecret), store))
	ctx := context.Background()

	t.Run("no required permission allows unconditionally", func(t *testing.T) {
		assert.NoError(t, guard.Check(ctx, "", ""))
		assert.NoError(t, guard.Check(ctx, "garbage-token", ""))
	})

	t.Run("customer with ticket.view only is denied ticket.list.create", func(t *testing.T) {
		token := signedToken(t, models.RoleCustomer, time.Hour)

		assert.NoError(t, guard.Check(ctx, token, models.PermissionTicketView))
		assert.ErrorIs(t, guard.Check(ctx, token, models.PermissionTicketListCreate), ErrDenied)
	})

	t.Run("bad session denies every non-empty permission", func(t *testing.T) {
		for _, token := range []string{"", "not-a-jwt", signedToken(t, models.RoleCustomer, -time.Hour)} {
			assert.ErrorIs(t, guard.Check(ctx, token, models.PermissionTicketView), ErrDenied)
		}
	})

	t.Run("store failure denies, never allows", func(t *testing.T) {
		broken := NewGuard(NewResolver(NewTokenReader(testSecret), &stubStore{err: errors.New("store down")}))
		token := signedToken(t, models.RoleCustomer, time.Hour)

		assert.ErrorIs(t, broken.Check(ctx, token, models.PermissionTicketView), ErrDenied)
	})

	t.Run("CheckSet matches resolved set", func(t *testing.T) {
		perms := PermissionSet{models.PermissionTicketView: {}}
		assert.NoError(t, guard.CheckSet(perms, models.PermissionTicketView))
		assert.ErrorIs(t, guard.CheckSet(perms, models.PermissionAdminView), ErrDenied)
		assert.ErrorIs(t, guard.CheckSet(nil, models.PermissionTicketView), ErrDenied)
	})
}
