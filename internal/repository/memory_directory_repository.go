package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
)

// MemoryDirectoryRepository is an in-memory TicketTypeStore and
// DirectoryStore for tests.
type MemoryDirectoryRepository struct {
	mu           sync.RWMutex
	types        []models.TicketType
	typeBindings map[string][]string
	profiles     map[string]models.UserProfile
	customers    map[string]models.CustomerUser
	orgs         map[string]models.CustomerOrg
	teams        []models.Team
	members      map[string][]string
}

func NewMemoryDirectoryRepository() *MemoryDirectoryRepository {
	return &MemoryDirectoryRepository{
		typeBindings: make(map[string][]string),
		profiles:     make(map[string]models.UserProfile),
		customers:    make(map[string]models.CustomerUser),
		orgs:         make(map[string]models.CustomerOrg),
		members:      make(map[string][]string),
	}
}

// AddTicketType registers a taxonomy entry with its metadata bindings.
// Test helper.
func (r *MemoryDirectoryRepository) AddTicketType(tt models.TicketType, metadataTypes ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = append(r.types, tt)
	r.typeBindings[tt.ID] = metadataTypes
}

// AddProfile registers an employee profile. Test helper.
func (r *MemoryDirectoryRepository) AddProfile(p models.UserProfile) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.profiles[p.ID] = p
}

// AddCustomer registers a customer with an optional org. Test helper.
func (r *MemoryDirectoryRepository) AddCustomer(c models.CustomerUser, org *models.CustomerOrg) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.UserID] = c
	if org != nil {
		r.orgs[org.ID] = *org
	}
}

// AddTeam registers a team with its members. Test helper.
func (r *MemoryDirectoryRepository) AddTeam(t models.Team, memberIDs ...string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.teams = append(r.teams, t)
	r.members[t.ID] = memberIDs
}

func (r *MemoryDirectoryRepository) List(_ context.Context) ([]models.TicketType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.TicketType, len(r.types))
	copy(out, r.types)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryDirectoryRepository) GetByID(_ context.Context, id string) (*models.TicketType, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tt := range r.types {
		if tt.ID == id {
			out := tt
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryDirectoryRepository) MetadataTypesFor(_ context.Context, ticketTypeID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.typeBindings[ticketTypeID]...), nil
}

func (r *MemoryDirectoryRepository) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.profiles[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (r *MemoryDirectoryRepository) GetCustomer(_ context.Context, userID string) (*models.CustomerUser, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.customers[userID]
	if !ok {
		return nil, ErrNotFound
	}
	return &c, nil
}

func (r *MemoryDirectoryRepository) ListTeams(_ context.Context) ([]models.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Team, len(r.teams))
	copy(out, r.teams)
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *MemoryDirectoryRepository) ListTeamMembers(_ context.Context, teamID string) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.members[teamID]...), nil
}

func (r *MemoryDirectoryRepository) GetOrg(_ context.Context, orgID string) (*models.CustomerOrg, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	org, ok := r.orgs[orgID]
	if !ok {
		return nil, ErrNotFound
	}
	return &org, nil
}
