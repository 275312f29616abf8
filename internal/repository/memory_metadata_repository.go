package repository

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// MemoryMetadataRepository is an in-memory MetadataStore for tests.
type MemoryMetadataRepository struct {
	mu     sync.RWMutex
	types  map[string]models.MetadataType
	dicts  map[string][]string
	values map[string]models.MetadataValue // keyed by ticketID + "/" + typeName
}

func NewMemoryMetadataRepository() *MemoryMetadataRepository {
	return &MemoryMetadataRepository{
		types:  make(map[string]models.MetadataType),
		dicts:  make(map[string][]string),
		values: make(map[string]models.MetadataValue),
	}
}

// AddType registers a metadata type with its dictionary values. Test setup
// helper.
func (r *MemoryMetadataRepository) AddType(name string, kind models.MetadataKind, dictValues ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.types[name] = models.MetadataType{Name: name, Kind: kind, CreatedAt: time.Now().UTC()}
	if len(dictValues) > 0 {
		r.dicts[name] = append([]string(nil), dictValues...)
	}
}

func (r *MemoryMetadataRepository) GetType(_ context.Context, name string) (*models.MetadataType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mt, ok := r.types[name]
	if !ok {
		return nil, ErrNotFound
	}
	return &mt, nil
}

func (r *MemoryMetadataRepository) ListTypes(_ context.Context) ([]models.MetadataType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]models.MetadataType, 0, len(r.types))
	for _, mt := range r.types {
		out = append(out, mt)
	}
	return out, nil
}

func (r *MemoryMetadataRepository) DictValues(_ context.Context, typeName string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return append([]string(nil), r.dicts[typeName]...), nil
}

func (r *MemoryMetadataRepository) GetValue(_ context.Context, ticketID, typeName string) (*models.MetadataValue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mv, ok := r.values[ticketID+"/"+typeName]
	if !ok {
		return nil, ErrNotFound
	}
	return &mv, nil
}

func (r *MemoryMetadataRepository) UpsertValue(_ context.Context, v *models.MetadataValue) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := v.TicketID + "/" + v.MetadataType
	if existing, ok := r.values[key]; ok {
		existing.Value = v.Value
		r.values[key] = existing
		return nil
	}

	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	if v.CreatedAt.IsZero() {
		v.CreatedAt = time.Now().UTC()
	}
	r.values[key] = *v
	return nil
}

func (r *MemoryMetadataRepository) ListValues(_ context.Context, ticketID string) ([]models.MetadataValue, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []models.MetadataValue
	for _, mv := range r.values {
		if mv.TicketID == ticketID {
			out = append(out, mv)
		}
	}
	return out, nil
}
