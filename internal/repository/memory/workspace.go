package memory

import (
	"context"
	"sort"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/service/workspace"
)

// WorkspaceRepo implements workspace.Repository against the in-memory store.
type WorkspaceRepo struct{ s *Store }

func (r *WorkspaceRepo) Get(_ context.Context, id string) (*domain.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	w, ok := r.s.workspaces[id]
	if !ok {
		return nil, workspace.ErrNotFound
	}
	cp := *w
	return &cp, nil
}

func (r *WorkspaceRepo) List(_ context.Context) ([]domain.Workspace, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []domain.Workspace
	for _, w := range r.s.workspaces {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *WorkspaceRepo) Create(_ context.Context, w *domain.Workspace) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.workspaces {
		if existing.Name == w.Name {
			return workspace.ErrNameTaken
		}
	}
	cp := *w
	r.s.workspaces[cp.ID] = &cp
	return nil
}
