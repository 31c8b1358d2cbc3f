package ports

import (
	"context"

	"github.com/rexxailabs/client-projects-api/internal/core/domain"
)

// UpdateClientInput carries the partial fields of a client update. Nil
// pointers mean "leave unchanged".
type UpdateClientInput struct {
	Name  *string
	Email *string
	Phone *string
}

// ClientRepository defines persistence operations for clients. Every read
// and write is filtered by owner id in the query itself, so "missing" and
// "not owned" are indistinguishable at this layer already.
type ClientRepository interface {
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	ListByOwner(ctx context.Context, ownerID string) ([]*domain.Client, error)
	// FindByID retrieves a client only when it exists AND belongs to
	// ownerID; otherwise domain.ErrClientNotFound.
	FindByID(ctx context.Context, id, ownerID string) (*domain.Client, error)
	Update(ctx context.Context, id string, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id string) error
}
