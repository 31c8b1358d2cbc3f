package ports

import (
	"context"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
)

// CreateClientInput carries pre-validated data for creating a client. The
// owner is never part of the input: it is stamped from the authenticated
// identity by the service.
type CreateClientInput struct {
	Name  string
	Email string
	Phone string
}

// DeleteClientResult reports what a cascade deletion removed.
type DeleteClientResult struct {
	Client          *domain.Client
	ProjectsDeleted int64
}

// ClientService is the owner-scoped CRUD surface for clients. Every
// operation takes the caller's user id explicitly; a client that does not
// exist and a client owned by someone else are both ErrClientNotFound.
type ClientService interface {
	Create(ctx context.Context, input CreateClientInput, ownerID string) (*domain.Client, error)
	ListForOwner(ctx context.Context, ownerID string) ([]*domain.Client, error)
	GetByID(ctx context.Context, id, ownerID string) (*domain.Client, error)
	Update(ctx context.Context, id string, input UpdateClientInput, ownerID string) (*domain.Client, error)
	// Delete removes the client and cascades to its projects.
	Delete(ctx context.Context, id, ownerID string) (*DeleteClientResult, error)
}
