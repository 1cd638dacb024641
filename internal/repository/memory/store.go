// Package memory provides in-memory repository implementations backed by a
// single shared store. The store enforces the same cross-entity rules as the
// Postgres schema: per-workspace template name uniqueness and the campaign ->
// template reference that blocks deletes. Used by unit tests and local
// development.
package memory

import (
	"sync"

	"github.com/ignite/template-hub/internal/domain"
)

// Store holds all entities behind one mutex so the reference guard sees a
// consistent view, the same way a database transaction would.
type Store struct {
	mu         sync.Mutex
	workspaces map[string]*domain.Workspace
	templates  map[string]*domain.Template
	campaigns  map[string]*domain.Campaign
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{
		workspaces: make(map[string]*domain.Workspace),
		templates:  make(map[string]*domain.Template),
		campaigns:  make(map[string]*domain.Campaign),
	}
}

// Templates returns the template repository view of the store.
func (s *Store) Templates() *TemplateRepo { return &TemplateRepo{s: s} }

// Campaigns returns the campaign repository view of the store.
func (s *Store) Campaigns() *CampaignRepo { return &CampaignRepo{s: s} }

// Workspaces returns the workspace repository view of the store.
func (s *Store) Workspaces() *WorkspaceRepo { return &WorkspaceRepo{s: s} }
