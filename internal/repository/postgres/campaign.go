package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/service/campaign"
)

// CampaignRepo implements campaign.Repository against PostgreSQL.
type CampaignRepo struct{ db *sql.DB }

// NewCampaignRepo creates a Postgres-backed campaign repository.
func NewCampaignRepo(db *sql.DB) *CampaignRepo { return &CampaignRepo{db: db} }

func (r *CampaignRepo) Get(ctx context.Context, workspaceID, id string) (*domain.Campaign, error) {
	c := &domain.Campaign{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, template_id, name, COALESCE(subject,''),
		       status, scheduled_at, created_at, updated_at
		FROM campaigns
		WHERE id = $1 AND workspace_id = $2
	`, id, workspaceID).Scan(
		&c.ID, &c.WorkspaceID, &c.TemplateID, &c.Name, &c.Subject,
		&c.Status, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, campaign.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get campaign: %w", err)
	}
	return c, nil
}

func (r *CampaignRepo) List(ctx context.Context, workspaceID string, f campaign.ListFilter) ([]domain.Campaign, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	countQ := `SELECT COUNT(*) FROM campaigns WHERE workspace_id = $1`
	args := []interface{}{workspaceID}
	idx := 2

	if f.Status != "" {
		countQ += fmt.Sprintf(" AND status = $%d", idx)
		args = append(args, f.Status)
		idx++
	}
	if f.TemplateID != "" {
		countQ += fmt.Sprintf(" AND template_id = $%d", idx)
		args = append(args, f.TemplateID)
		idx++
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count campaigns: %w", err)
	}

	listQ := `
		SELECT id, workspace_id, template_id, name, COALESCE(subject,''),
		       status, scheduled_at, created_at, updated_at
		FROM campaigns
		WHERE workspace_id = $1`
	if f.Status != "" {
		listQ += " AND status = $2"
	}
	if f.TemplateID != "" {
		listQ += fmt.Sprintf(" AND template_id = $%d", idx-1)
	}
	listQ += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d OFFSET $%d", idx, idx+1)
	args = append(args, limit, offset)

	rows, err := r.db.QueryContext(ctx, listQ, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list campaigns: %w", err)
	}
	defer rows.Close()

	var out []domain.Campaign
	for rows.Next() {
		var c domain.Campaign
		if err := rows.Scan(
			&c.ID, &c.WorkspaceID, &c.TemplateID, &c.Name, &c.Subject,
			&c.Status, &c.ScheduledAt, &c.CreatedAt, &c.UpdatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan campaign: %w", err)
		}
		out = append(out, c)
	}
	return out, total, rows.Err()
}

func (r *CampaignRepo) Create(ctx context.Context, c *domain.Campaign) error {
	// The insert requires the referenced template to live in the same
	// workspace; the subselect plus the foreign key make a dangling or
	// cross-workspace reference impossible.
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO campaigns (id, workspace_id, template_id, name, subject, status, scheduled_at, created_at, updated_at)
		SELECT $1, $2, t.id, $4, $5, $6, $7, $8, $9
		FROM templates t
		WHERE t.id = $3 AND t.workspace_id = $2
	`, c.ID, c.WorkspaceID, c.TemplateID, c.Name, c.Subject, c.Status, c.ScheduledAt, c.CreatedAt, c.UpdatedAt)
	if isForeignKeyViolation(err) {
		return campaign.ErrTemplateMissing
	}
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("create campaign: %w", err)
	}
	if n == 0 {
		return campaign.ErrTemplateMissing
	}
	return nil
}

func (r *CampaignRepo) Delete(ctx context.Context, workspaceID, id string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM campaigns
		WHERE id = $1 AND workspace_id = $2 AND status IN ('draft', 'cancelled')
	`, id, workspaceID)
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete campaign: %w", err)
	}
	if n == 0 {
		// Distinguish missing from non-deletable.
		var exists bool
		if err := r.db.QueryRowContext(ctx, `
			SELECT EXISTS(SELECT 1 FROM campaigns WHERE id = $1 AND workspace_id = $2)
		`, id, workspaceID).Scan(&exists); err != nil {
			return fmt.Errorf("delete campaign: %w", err)
		}
		if exists {
			return campaign.ErrNotDeletable
		}
		return campaign.ErrNotFound
	}
	return nil
}

func (r *CampaignRepo) UpdateStatus(ctx context.Context, workspaceID, id string, status domain.CampaignStatus) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE campaigns SET status = $1, updated_at = NOW()
		WHERE id = $2 AND workspace_id = $3
	`, status, id, workspaceID)
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update campaign status: %w", err)
	}
	if n == 0 {
		return campaign.ErrNotFound
	}
	return nil
}
