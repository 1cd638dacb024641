package campaign

import (
	"context"

	"github.com/ignite/template-hub/internal/domain"
)

// Repository defines the data access contract for campaigns.
// Implementations must be safe for concurrent use.
type Repository interface {
	// Get returns a single campaign. Returns ErrNotFound if it doesn't exist
	// in the workspace.
	Get(ctx context.Context, workspaceID, id string) (*domain.Campaign, error)

	// List returns campaigns matching the filter, ordered by created_at DESC,
	// plus the total count before pagination.
	List(ctx context.Context, workspaceID string, filter ListFilter) ([]domain.Campaign, int, error)

	// Create inserts a new campaign. Returns ErrTemplateMissing if the
	// referenced template does not exist in the campaign's workspace.
	Create(ctx context.Context, c *domain.Campaign) error

	// Delete removes a campaign. Returns ErrNotDeletable unless the campaign
	// is draft or cancelled, ErrNotFound if the id is absent.
	Delete(ctx context.Context, workspaceID, id string) error

	// UpdateStatus transitions a campaign's status.
	UpdateStatus(ctx context.Context, workspaceID, id string, status domain.CampaignStatus) error
}

// ListFilter controls pagination and filtering for campaign lists.
type ListFilter struct {
	Status     string
	TemplateID string
	Limit      int
	Offset     int
}
