package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/service/template"
)

// TemplateRepo implements template.Repository against the in-memory store.
type TemplateRepo struct{ s *Store }

func (r *TemplateRepo) Get(_ context.Context, workspaceID, id string) (*domain.Template, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.templates[id]
	if !ok || t.WorkspaceID != workspaceID {
		return nil, template.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *TemplateRepo) List(_ context.Context, workspaceID string, f template.ListFilter) ([]domain.Template, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if f.Offset < 0 {
		f.Offset = 0
	}

	var out []domain.Template
	for _, t := range r.s.templates {
		if t.WorkspaceID != workspaceID {
			continue
		}
		if f.Search != "" && !strings.Contains(strings.ToLower(t.Name), strings.ToLower(f.Search)) {
			continue
		}
		out = append(out, *t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })

	total := len(out)
	if f.Offset >= len(out) {
		return nil, total, nil
	}
	end := f.Offset + f.Limit
	if end > len(out) || f.Limit <= 0 {
		end = len(out)
	}
	return out[f.Offset:end], total, nil
}

func (r *TemplateRepo) Create(_ context.Context, t *domain.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.nameTaken(t.WorkspaceID, t.Name, "") {
		return template.ErrNameTaken
	}
	cp := *t
	r.s.templates[cp.ID] = &cp
	return nil
}

func (r *TemplateRepo) Update(_ context.Context, t *domain.Template) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	existing, ok := r.s.templates[t.ID]
	if !ok || existing.WorkspaceID != t.WorkspaceID {
		return template.ErrNotFound
	}
	if r.nameTaken(t.WorkspaceID, t.Name, t.ID) {
		return template.ErrNameTaken
	}
	existing.Name = t.Name
	existing.Content = t.Content
	existing.UpdatedAt = t.UpdatedAt
	return nil
}

func (r *TemplateRepo) Delete(_ context.Context, workspaceID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.templates[id]
	if !ok || t.WorkspaceID != workspaceID {
		return template.ErrNotFound
	}
	for _, c := range r.s.campaigns {
		if c.TemplateID == id {
			return template.ErrReferenced
		}
	}
	delete(r.s.templates, id)
	return nil
}

// nameTaken reports whether another template in the workspace already uses
// the name. Caller must hold the store lock.
func (r *TemplateRepo) nameTaken(workspaceID, name, excludeID string) bool {
	for _, t := range r.s.templates {
		if t.WorkspaceID == workspaceID && t.Name == name && t.ID != excludeID {
			return true
		}
	}
	return false
}
