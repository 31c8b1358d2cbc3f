package ports

import (
	"context"
	"time"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
)

// CreateProjectInput carries pre-validated data for creating a project.
type CreateProjectInput struct {
	Name         string
	Description  string
	ClientID     string
	Status       domain.ProjectStatus // empty defaults to PENDING
	StartDate    *time.Time
	DeliveryDate *time.Time
}

// ProjectFilters are the optional list filters. A non-empty ClientID is
// ownership-verified before use.
type ProjectFilters struct {
	ClientID string
	Status   domain.ProjectStatus
}

// ClientSummary is the parent-client view embedded in project results.
type ClientSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectWithClient pairs a project with a summary of its parent client.
type ProjectWithClient struct {
	Project *domain.Project
	Client  ClientSummary
}

// ProjectService is the transitively owner-scoped CRUD surface for
// projects. Ownership is resolved through the parent client on every call;
// all not-found and not-owned conditions collapse to ErrProjectNotFound
// (or ErrClientNotFound where the client reference itself is at fault).
type ProjectService interface {
	Create(ctx context.Context, input CreateProjectInput, ownerID string) (*domain.Project, error)
	ListFiltered(ctx context.Context, ownerID string, filters ProjectFilters) ([]*ProjectWithClient, error)
	GetByID(ctx context.Context, id, ownerID string) (*ProjectWithClient, error)
	Update(ctx context.Context, id string, input UpdateProjectInput, ownerID string) (*domain.Project, error)
	Delete(ctx context.Context, id, ownerID string) error
}
