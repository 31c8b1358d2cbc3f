package ports

import (
	"context"
	"time"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
)

// ListProjectsFilter scopes a project listing. ClientIDs is always set by
// the service layer to the caller's owned clients (or the single verified
// client) — never from raw request input.
type ListProjectsFilter struct {
	ClientIDs []string
	Status    domain.ProjectStatus // optional: empty = all statuses
}

// UpdateProjectInput carries the partial fields of a project update. Nil
// pointers mean "leave unchanged"; ClearStartDate/ClearDeliveryDate unset a
// previously stored date.
type UpdateProjectInput struct {
	Name              *string
	Description       *string
	Status            *domain.ProjectStatus
	StartDate         *time.Time
	DeliveryDate      *time.Time
	ClearStartDate    bool
	ClearDeliveryDate bool
}

// ProjectRepository defines persistence operations for projects. Ownership
// is not checked here: the service layer resolves it through the parent
// client before every call.
type ProjectRepository interface {
	Create(ctx context.Context, project *domain.Project) (*domain.Project, error)
	// List returns projects matching filter, newest-created first.
	List(ctx context.Context, filter ListProjectsFilter) ([]*domain.Project, error)
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	Update(ctx context.Context, id string, input UpdateProjectInput) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
	// DeleteByClientID removes all projects of a client (cascade on client
	// deletion). Returns the number of projects removed.
	DeleteByClientID(ctx context.Context, clientID string) (int64, error)
}
