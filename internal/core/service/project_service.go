package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
	"github.com/rexxailabs/client-projects-api/internal/core/ports"
)

// ProjectService implements CRUD for projects. Every operation resolves
// ownership through the parent client before touching a project row.
type ProjectService struct {
	projects ports.ProjectRepository
	clients  ports.ClientRepository
	logger   zerolog.Logger
}

func NewProjectService(projects ports.ProjectRepository, clients ports.ClientRepository, logger zerolog.Logger) *ProjectService {
	return &ProjectService{projects: projects, clients: clients, logger: logger}
}

// Create verifies that the referenced client belongs to ownerID before
// inserting. A missing or foreign client is ErrClientNotFound; no project
// row is created in that case.
func (s *ProjectService) Create(ctx context.Context, input ports.CreateProjectInput, ownerID string) (*domain.Project, error) {
	if _, err := s.clients.FindByID(ctx, input.ClientID, ownerID); err != nil {
		return nil, err
	}

	status := input.Status
	if status == "" {
		status = domain.StatusPending
	}

	now := time.Now().UTC()
	created, err := s.projects.Create(ctx, &domain.Project{
		ClientID:     input.ClientID,
		Name:         input.Name,
		Description:  input.Description,
		Status:       status,
		StartDate:    input.StartDate,
		DeliveryDate: input.DeliveryDate,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to create project")
		return nil, err
	}
	s.logger.Info().Str("project_id", created.ID).Str("client_id", input.ClientID).Msg("project created")
	return created, nil
}

// ListFiltered returns the caller's projects, newest first. With a clientId
// filter the client's ownership is verified first; without one the scope is
// the set of all clients owned by the caller — resolved per call, never
// from a stored owner field on the project.
func (s *ProjectService) ListFiltered(ctx context.Context, ownerID string, filters ports.ProjectFilters) ([]*ports.ProjectWithClient, error) {
	var clientIDs []string
	names := make(map[string]string)

	if filters.ClientID != "" {
		client, err := s.clients.FindByID(ctx, filters.ClientID, ownerID)
		if err != nil {
			return nil, err
		}
		clientIDs = []string{client.ID}
		names[client.ID] = client.Name
	} else {
		owned, err := s.clients.ListByOwner(ctx, ownerID)
		if err != nil {
			return nil, err
		}
		if len(owned) == 0 {
			return []*ports.ProjectWithClient{}, nil
		}
		clientIDs = make([]string, 0, len(owned))
		for _, c := range owned {
			clientIDs = append(clientIDs, c.ID)
			names[c.ID] = c.Name
		}
	}

	projects, err := s.projects.List(ctx, ports.ListProjectsFilter{
		ClientIDs: clientIDs,
		Status:    filters.Status,
	})
	if err != nil {
		return nil, err
	}

	out := make([]*ports.ProjectWithClient, 0, len(projects))
	for _, p := range projects {
		out = append(out, &ports.ProjectWithClient{
			Project: p,
			Client:  ports.ClientSummary{ID: p.ClientID, Name: names[p.ClientID]},
		})
	}
	return out, nil
}

// GetByID fetches the project and walks the ownership chain through its
// parent client. A missing project and a project whose client belongs to
// someone else are both ErrProjectNotFound.
func (s *ProjectService) GetByID(ctx context.Context, id, ownerID string) (*ports.ProjectWithClient, error) {
	project, err := s.projects.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	client, err := s.clients.FindByID(ctx, project.ClientID, ownerID)
	if err != nil {
		if errors.Is(err, domain.ErrClientNotFound) {
			return nil, domain.ErrProjectNotFound
		}
		return nil, err
	}

	return &ports.ProjectWithClient{
		Project: project,
		Client:  ports.ClientSummary{ID: client.ID, Name: client.Name},
	}, nil
}

// Update re-verifies chain ownership before applying the partial update.
func (s *ProjectService) Update(ctx context.Context, id string, input ports.UpdateProjectInput, ownerID string) (*domain.Project, error) {
	if _, err := s.GetByID(ctx, id, ownerID); err != nil {
		return nil, err
	}
	return s.projects.Update(ctx, id, input)
}

// Delete re-verifies chain ownership before removing the project.
func (s *ProjectService) Delete(ctx context.Context, id, ownerID string) error {
	if _, err := s.GetByID(ctx, id, ownerID); err != nil {
		return err
	}
	if err := s.projects.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("project_id", id).Msg("project deleted")
	return nil
}
