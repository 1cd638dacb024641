package campaign

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/template-hub/internal/domain"
)

// Service implements campaign business logic. All public methods are safe
// for concurrent use if the underlying repository is concurrency-safe.
type Service struct {
	repo Repository
}

// NewService creates a campaign service backed by the given repository.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Get returns a single campaign.
func (s *Service) Get(ctx context.Context, workspaceID, id string) (*domain.Campaign, error) {
	return s.repo.Get(ctx, workspaceID, id)
}

// List returns campaigns matching the filter.
func (s *Service) List(ctx context.Context, workspaceID string, f ListFilter) ([]domain.Campaign, int, error) {
	return s.repo.List(ctx, workspaceID, f)
}

// CreateInput holds the fields for creating a new campaign.
type CreateInput struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	TemplateID string `json:"template_id"`
}

// Create validates and persists a new campaign in draft status. The
// referenced template must exist in the same workspace.
func (s *Service) Create(ctx context.Context, workspaceID string, input CreateInput) (*domain.Campaign, error) {
	if input.Name == "" {
		return nil, ErrNameRequired
	}
	if input.TemplateID == "" {
		return nil, ErrTemplateRequired
	}

	now := time.Now()
	c := &domain.Campaign{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		TemplateID:  input.TemplateID,
		Name:        input.Name,
		Subject:     input.Subject,
		Status:      domain.CampaignDraft,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a campaign (only draft/cancelled).
func (s *Service) Delete(ctx context.Context, workspaceID, id string) error {
	return s.repo.Delete(ctx, workspaceID, id)
}

// Cancel transitions a campaign to cancelled, releasing its template
// reference for deletion once the row itself is removed.
func (s *Service) Cancel(ctx context.Context, workspaceID, id string) error {
	c, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return err
	}
	if c.IsTerminal() {
		return ErrInvalidTransition
	}
	if err := s.repo.UpdateStatus(ctx, workspaceID, id, domain.CampaignCancelled); err != nil {
		return err
	}
	log.Printf("[campaign.Service] campaign %s cancelled", id)
	return nil
}
