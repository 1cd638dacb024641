package template

import (
	"context"

	"github.com/ignite/template-hub/internal/domain"
)

// Repository defines the data access contract for templates.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single template. Returns ErrNotFound if no template with
	// that id exists in the workspace.
	Get(ctx context.Context, workspaceID, id string) (*domain.Template, error)

	// List returns templates in the workspace matching the filter, ordered by
	// name, plus the total count before pagination.
	List(ctx context.Context, workspaceID string, filter ListFilter) ([]domain.Template, int, error)

	// Create inserts a new template. Returns ErrNameTaken if the workspace
	// already holds a template with the same name. The uniqueness check and
	// the insert must be atomic.
	Create(ctx context.Context, t *domain.Template) error

	// Update replaces a template's name and content. Returns ErrNotFound if
	// the id is absent from the workspace, ErrNameTaken on a name collision
	// with a different template in the same workspace.
	Update(ctx context.Context, t *domain.Template) error

	// Delete removes a template. Returns ErrReferenced while any campaign
	// references it; the reference check and the delete must be atomic with
	// respect to concurrent campaign creation. Returns ErrNotFound if the id
	// is absent.
	Delete(ctx context.Context, workspaceID, id string) error
}

// ListFilter controls pagination and filtering for template lists.
type ListFilter struct {
	Search string
	Limit  int
	Offset int
}
