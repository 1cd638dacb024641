// Package postgres implements the service repository interfaces against
// PostgreSQL. Uniqueness and referential integrity are enforced by the
// database itself (the composite unique index on (workspace_id, name) and
// the RESTRICT foreign key from campaigns), so concurrent requests cannot
// race past the business rules.
package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/service/template"
)

// Postgres error codes surfaced as typed errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// TemplateRepo implements template.Repository against PostgreSQL.
type TemplateRepo struct{ db *sql.DB }

// NewTemplateRepo creates a Postgres-backed template repository.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

func (r *TemplateRepo) Get(ctx context.Context, workspaceID, id string) (*domain.Template, error) {
	t := &domain.Template{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, workspace_id, name, content, created_at, updated_at
		FROM templates
		WHERE id = $1 AND workspace_id = $2
	`, id, workspaceID).Scan(&t.ID, &t.WorkspaceID, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, template.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get template: %w", err)
	}
	return t, nil
}

func (r *TemplateRepo) List(ctx context.Context, workspaceID string, f template.ListFilter) ([]domain.Template, int, error) {
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	offset := f.Offset
	if offset < 0 {
		offset = 0
	}

	countQ := `SELECT COUNT(*) FROM templates WHERE workspace_id = $1`
	args := []interface{}{workspaceID}
	if f.Search != "" {
		countQ += ` AND name ILIKE $2`
		args = append(args, "%"+f.Search+"%")
	}

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count templates: %w", err)
	}

	listQ := `
		SELECT id, workspace_id, name, content, created_at, updated_at
		FROM templates
		WHERE workspace_id = $1`
	if f.Search != "" {
		listQ += ` AND name ILIKE $2
		ORDER BY name
		LIMIT $3 OFFSET $4`
		args = append(args, limit, offset)
	} else {
		listQ += `
		ORDER BY name
		LIMIT $2 OFFSET $3`
		args = append(args, limit, offset)
	}

	rows, err := r.db.QueryContext(ctx, listQ, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list templates: %w", err)
	}
	defer rows.Close()

	var out []domain.Template
	for rows.Next() {
		var t domain.Template
		if err := rows.Scan(&t.ID, &t.WorkspaceID, &t.Name, &t.Content, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan template: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *TemplateRepo) Create(ctx context.Context, t *domain.Template) error {
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO templates (id, workspace_id, name, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`, t.ID, t.WorkspaceID, t.Name, t.Content, t.CreatedAt, t.UpdatedAt).
		Scan(&t.CreatedAt, &t.UpdatedAt)
	if isUniqueViolation(err) {
		return template.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("create template: %w", err)
	}
	return nil
}

func (r *TemplateRepo) Update(ctx context.Context, t *domain.Template) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE templates
		SET name = $1, content = $2, updated_at = $3
		WHERE id = $4 AND workspace_id = $5
	`, t.Name, t.Content, t.UpdatedAt, t.ID, t.WorkspaceID)
	if isUniqueViolation(err) {
		return template.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update template: %w", err)
	}
	if n == 0 {
		return template.ErrNotFound
	}
	return nil
}

// Delete removes a template unless a campaign references it. The existence
// check and the delete run in one transaction; the RESTRICT foreign key on
// campaigns.template_id closes the window against a campaign inserted
// between the two statements.
func (r *TemplateRepo) Delete(ctx context.Context, workspaceID, id string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer tx.Rollback()

	var referenced bool
	err = tx.QueryRowContext(ctx, `
		SELECT EXISTS(SELECT 1 FROM campaigns WHERE template_id = $1)
	`, id).Scan(&referenced)
	if err != nil {
		return fmt.Errorf("check references: %w", err)
	}
	if referenced {
		return template.ErrReferenced
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM templates WHERE id = $1 AND workspace_id = $2
	`, id, workspaceID)
	if isForeignKeyViolation(err) {
		return template.ErrReferenced
	}
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete template: %w", err)
	}
	if n == 0 {
		return template.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		if isForeignKeyViolation(err) {
			return template.ErrReferenced
		}
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

func isUniqueViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && string(pqErr.Code) == pgUniqueViolation
}

func isForeignKeyViolation(err error) bool {
	pqErr, ok := err.(*pq.Error)
	return ok && string(pqErr.Code) == pgForeignKeyViolation
}
