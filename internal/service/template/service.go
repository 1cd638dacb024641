package template

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/render"
	"github.com/ignite/template-hub/internal/tags"
)

// maxNameLen matches the VARCHAR width of the templates.name column.
const maxNameLen = 255

// Service implements template business logic. Every write request follows
// Validate -> Normalize -> Persist; validation failures never reach storage,
// and normalization runs exactly once, on raw user input.
// All public methods are safe for concurrent use if the underlying
// repository is concurrency-safe.
type Service struct {
	repo   Repository
	engine *render.Engine
	scope  string
}

// NewService creates a template service. scope is the namespace applied to
// bare placeholder tags, typically "content".
func NewService(repo Repository, engine *render.Engine, scope string) *Service {
	return &Service{repo: repo, engine: engine, scope: scope}
}

// Get returns a single template.
func (s *Service) Get(ctx context.Context, workspaceID, id string) (*domain.Template, error) {
	return s.repo.Get(ctx, workspaceID, id)
}

// List returns templates in the workspace matching the filter.
func (s *Service) List(ctx context.Context, workspaceID string, f ListFilter) ([]domain.Template, int, error) {
	return s.repo.List(ctx, workspaceID, f)
}

// WriteInput holds the fields for creating or updating a template. Updates
// are full replaces: both fields are required on every write.
type WriteInput struct {
	Name    string `json:"name"`
	Content string `json:"content"`
}

// Create validates, normalizes, and persists a new template.
func (s *Service) Create(ctx context.Context, workspaceID string, input WriteInput) (*domain.Template, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	now := time.Now()
	t := &domain.Template{
		ID:          uuid.New().String(),
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Content:     tags.Normalize(input.Content, s.scope),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return nil, fieldError("name", ErrNameTaken.Error())
		}
		return nil, fmt.Errorf("create template: %w", err)
	}
	return t, nil
}

// Update validates, normalizes, and persists a full replacement of a
// template's name and content. The stored (already normalized) content is
// discarded, so tags are never namespaced twice.
func (s *Service) Update(ctx context.Context, workspaceID, id string, input WriteInput) (*domain.Template, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	t := &domain.Template{
		ID:          id,
		WorkspaceID: workspaceID,
		Name:        input.Name,
		Content:     tags.Normalize(input.Content, s.scope),
		UpdatedAt:   time.Now(),
	}

	if err := s.repo.Update(ctx, t); err != nil {
		if errors.Is(err, ErrNameTaken) {
			return nil, fieldError("name", ErrNameTaken.Error())
		}
		return nil, err
	}

	s.engine.Evict(id)
	return s.repo.Get(ctx, workspaceID, id)
}

// Delete removes a template. While any campaign references it, the delete is
// rejected with a field-level error on "template".
func (s *Service) Delete(ctx context.Context, workspaceID, id string) error {
	if err := s.repo.Delete(ctx, workspaceID, id); err != nil {
		if errors.Is(err, ErrReferenced) {
			return fieldError("template", ErrReferenced.Error())
		}
		return err
	}
	s.engine.Evict(id)
	return nil
}

// Preview renders a template's stored content against sample data. The data
// map is nested under the tag scope so normalized placeholders resolve.
func (s *Service) Preview(ctx context.Context, workspaceID, id string, data map[string]interface{}) (string, error) {
	t, err := s.repo.Get(ctx, workspaceID, id)
	if err != nil {
		return "", err
	}

	out, err := s.engine.Render(t.ID, t.Content, map[string]interface{}{s.scope: data})
	if err != nil {
		log.Printf("[template.Service] preview of %s failed: %v", id, err)
		return "", fieldError("content", "template failed to render")
	}
	return out, nil
}

// validate checks write input before any storage call.
func (s *Service) validate(input WriteInput) error {
	verr := NewValidationError()
	if input.Name == "" {
		verr.Add("name", "name is required")
	} else if len(input.Name) > maxNameLen {
		verr.Add("name", fmt.Sprintf("name must be at most %d characters", maxNameLen))
	}
	if input.Content == "" {
		verr.Add("content", "content is required")
	} else if err := s.engine.Parse(input.Content); err != nil {
		verr.Add("content", "content contains invalid template syntax")
	}
	if verr.HasErrors() {
		return verr
	}
	return nil
}
