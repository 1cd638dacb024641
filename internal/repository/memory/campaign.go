package memory

import (
	"context"
	"sort"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against the in-memory store.
type CampaignRepo struct{ s *Store }

func (r *CampaignRepo) Get(_ context.Context, workspaceID, id string) (*domain.Campaign, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[id]
	if !ok || c.WorkspaceID != workspaceID {
		return nil, campaign.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (r *CampaignRepo) List(_ context.Context, workspaceID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if f.Offset < 0 {
		f.Offset = 0
	}

	var out []domain.Campaign
	for _, c := range r.s.campaigns {
		if c.WorkspaceID != workspaceID {
			continue
		}
		if f.Status != "" && string(c.Status) != f.Status {
			continue
		}
		if f.TemplateID != "" && c.TemplateID != f.TemplateID {
			continue
		}
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })

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

func (r *CampaignRepo) Create(_ context.Context, c *domain.Campaign) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.templates[c.TemplateID]
	if !ok || t.WorkspaceID != c.WorkspaceID {
		return campaign.ErrTemplateMissing
	}
	cp := *c
	r.s.campaigns[cp.ID] = &cp
	return nil
}

func (r *CampaignRepo) Delete(_ context.Context, workspaceID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[id]
	if !ok || c.WorkspaceID != workspaceID {
		return campaign.ErrNotFound
	}
	if c.Status != domain.CampaignDraft && c.Status != domain.CampaignCancelled {
		return campaign.ErrNotDeletable
	}
	delete(r.s.campaigns, id)
	return nil
}

func (r *CampaignRepo) UpdateStatus(_ context.Context, workspaceID, id string, status domain.CampaignStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.campaigns[id]
	if !ok || c.WorkspaceID != workspaceID {
		return campaign.ErrNotFound
	}
	c.Status = status
	return nil
}
