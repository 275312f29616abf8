package service

import (
	"context"

	"github.com/rafalszulejko/helpdesk-go/internal/models"
	"github.com/rafalszulejko/helpdesk-go/internal/repository"
)

// DirectoryService reads the taxonomy and directory tables for the
// presentation layer. Identity issuance is out of scope here; these rows
// mirror what the identity provider already knows.
type DirectoryService struct {
	types repository.TicketTypeStore
	users repository.DirectoryStore
}

func NewDirectoryService(types repository.TicketTypeStore, users repository.DirectoryStore) *DirectoryService {
	return &DirectoryService{types: types, users: users}
}

func (s *DirectoryService) TicketTypes(ctx context.Context) ([]models.TicketType, error) {
	return s.types.List(ctx)
}

// TicketType returns one taxonomy entry with the metadata type names bound
// to it.
func (s *DirectoryService) TicketType(ctx context.Context, id string) (*models.TicketType, []string, error) {
	tt, err := s.types.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	bindings, err := s.types.MetadataTypesFor(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	return tt, bindings, nil
}

func (s *DirectoryService) Teams(ctx context.Context) ([]models.Team, error) {
	return s.users.ListTeams(ctx)
}

func (s *DirectoryService) TeamMembers(ctx context.Context, teamID string) ([]string, error) {
	return s.users.ListTeamMembers(ctx, teamID)
}

func (s *DirectoryService) Profile(ctx context.Context, userID string) (*models.UserProfile, error) {
	return s.users.GetProfile(ctx, userID)
}

// CustomerContext returns a customer directory entry together with its
// organization, when one is linked.
func (s *DirectoryService) CustomerContext(ctx context.Context, userID string) (*models.CustomerUser, *models.CustomerOrg, error) {
	customer, err := s.users.GetCustomer(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if customer.OrgID == nil {
		return customer, nil, nil
	}
	org, err := s.users.GetOrg(ctx, *customer.OrgID)
	if err != nil {
		return nil, nil, err
	}
	return customer, org, nil
}
