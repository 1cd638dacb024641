// Package workspace manages the tenancy boundary that owns templates and
// campaigns.
package workspace

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/template-hub/internal/domain"
)

// Service implements workspace business logic.
type Service struct {
	repo Repository
}

// NewService creates a workspace service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single workspace.
func (s *Service) Get(ctx context.Context, id string) (*domain.Workspace, error) {
	return s.repo.Get(ctx, id)
}

// List returns all workspaces.
func (s *Service) List(ctx context.Context) ([]domain.Workspace, error) {
	return s.repo.List(ctx)
}

// Create validates and persists a new workspace.
func (s *Service) Create(ctx context.Context, name string) (*domain.Workspace, error) {
	if name == "" {
		return nil, ErrNameRequired
	}

	now := time.Now()
	w := &domain.Workspace{
		ID:        uuid.New().String(),
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}
