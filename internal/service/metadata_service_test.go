package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
)

func priorityRepo() *repository.MemoryMetadataRepository {
	repo := repository.NewMemoryMetadataRepository()
	repo.AddType(models.MetadataTypePriority, models.MetadataDictKind, "LOW", "NORMAL", "HIGH", "URGENT")
	repo.AddType("CONTACT", models.MetadataTextKind)
	return repo
}

func TestMetadataServiceSetValue(t *testing.T) {
	ctx := context.Background()

	t.Run("accepts a dictionary value", func(t *testing.T) {
		svc := NewMetadataService(priorityRepo())

		mv, err := svc.SetValue(ctx, "ticket-1", models.MetadataTypePriority, "URGENT")
		require.NoError(t, err)
		assert.Equal(t, "URGENT", mv.Value)
	})

	t.Run("rejects a value outside the dictionary with the valid list", func(t *testing.T) {
		svc := NewMetadataService(priorityRepo())

		_, err := svc.SetValue(ctx, "ticket-1", models.MetadataTypePriority, "CRITICAL")
		require.Error(t, err)
		assert.True(t, IsValidation(err))
		assert.Equal(t, "Invalid priority value. Valid values are: LOW, NORMAL, HIGH, URGENT", err.Error())
	})

	t.Run("TEXT kind accepts any value", func(t *testing.T) {
		svc := NewMetadataService(priorityRepo())

		mv, err := svc.SetValue(ctx, "ticket-1", "CONTACT", "call after 5pm")
		require.NoError(t, err)
		assert.Equal(t, "call after 5pm", mv.Value)
	})

	t.Run("unknown metadata type is not found", func(t *testing.T) {
		svc := NewMetadataService(priorityRepo())

		_, err := svc.SetValue(ctx, "ticket-1", "SEVERITY", "HIGH")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})

	t.Run("setting the same value twice keeps a single row", func(t *testing.T) {
		repo := priorityRepo()
		svc := NewMetadataService(repo)

		_, err := svc.SetValue(ctx, "ticket-1", models.MetadataTypePriority, "HIGH")
		require.NoError(t, err)
		_, err = svc.SetValue(ctx, "ticket-1", models.MetadataTypePriority, "HIGH")
		require.NoError(t, err)

		values, err := repo.ListValues(ctx, "ticket-1")
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.Equal(t, "HIGH", values[0].Value)
	})

	t.Run("upsert replaces the previous value", func(t *testing.T) {
		repo := priorityRepo()
		svc := NewMetadataService(repo)

		_, err := svc.SetValue(ctx, "ticket-1", models.MetadataTypePriority, "LOW")
		require.NoError(t, err)
		_, err = svc.SetValue(ctx, "ticket-1", models.MetadataTypePriority, "URGENT")
		require.NoError(t, err)

		values, err := repo.ListValues(ctx, "ticket-1")
		require.NoError(t, err)
		require.Len(t, values, 1)
		assert.Equal(t, "URGENT", values[0].Value)
	})
}
