package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
)

// MetadataService enforces the typed custom-field rules: values for a
// DICT-kind type must come from that type's dictionary.
type MetadataService struct {
	metadata repository.MetadataStore
}

func NewMetadataService(metadata repository.MetadataStore) *MetadataService {
	return &MetadataService{metadata: metadata}
}

// SetValue validates value against the metadata type and upserts it for
// the ticket. For DICT types an out-of-dictionary value is rejected with a
// message listing the legal values, in dictionary order.
func (s *MetadataService) SetValue(ctx context.Context, ticketID, typeName, value string) (*models.MetadataValue, error) {
	mt, err := s.metadata.GetType(ctx, typeName)
	if err != nil {
		return nil, err
	}

	if mt.Kind == models.MetadataDictKind {
		valid, err := s.metadata.DictValues(ctx, typeName)
		if err != nil {
			return nil, fmt.Errorf("fetching dictionary for %s: %w", typeName, err)
		}
		if !contains(valid, value) {
			return nil, NewValidationError(fmt.Sprintf(
				"Invalid %s value. Valid values are: %s",
				strings.ToLower(typeName), strings.Join(valid, ", ")))
		}
	}

	mv := &models.MetadataValue{
		TicketID:     ticketID,
		MetadataType: typeName,
		Value:        value,
	}
	if err := s.metadata.UpsertValue(ctx, mv); err != nil {
		return nil, fmt.Errorf("upserting metadata value: %w", err)
	}
	return mv, nil
}

// Values returns the ticket's metadata key/value pairs.
func (s *MetadataService) Values(ctx context.Context, ticketID string) ([]models.MetadataValue, error) {
	return s.metadata.ListValues(ctx, ticketID)
}

// Types returns all declared metadata types.
func (s *MetadataService) Types(ctx context.Context) ([]models.MetadataType, error) {
	return s.metadata.ListTypes(ctx)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
