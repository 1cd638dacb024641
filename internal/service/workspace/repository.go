package workspace

import (
	"context"

	"github.com/ignite/template-hub/internal/domain"
)

// Repository defines the data access contract for workspaces.
type Repository interface {
	// Get returns a single workspace. Returns ErrNotFound if the id is absent.
	Get(ctx context.Context, id string) (*domain.Workspace, error)

	// List returns all workspaces ordered by name.
	List(ctx context.Context) ([]domain.Workspace, error)

	// Create inserts a new workspace. Returns ErrNameTaken on a name
	// collision; workspace names are globally unique.
	Create(ctx context.Context, w *domain.Workspace) error
}
