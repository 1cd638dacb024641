package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/ignite/template-hub/internal/domain"
	"github.com/ignite/template-hub/internal/service/workspace"
)

// WorkspaceRepo implements workspace.Repository against PostgreSQL.
type WorkspaceRepo struct{ db *sql.DB }

// NewWorkspaceRepo creates a Postgres-backed workspace repository.
func NewWorkspaceRepo(db *sql.DB) *WorkspaceRepo { return &WorkspaceRepo{db: db} }

func (r *WorkspaceRepo) Get(ctx context.Context, id string) (*domain.Workspace, error) {
	w := &domain.Workspace{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, name, created_at, updated_at FROM workspaces WHERE id = $1
	`, id).Scan(&w.ID, &w.Name, &w.CreatedAt, &w.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, workspace.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get workspace: %w", err)
	}
	return w, nil
}

func (r *WorkspaceRepo) List(ctx context.Context) ([]domain.Workspace, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, created_at, updated_at FROM workspaces ORDER BY name
	`)
	if err != nil {
		return nil, fmt.Errorf("list workspaces: %w", err)
	}
	defer rows.Close()

	var out []domain.Workspace
	for rows.Next() {
		var w domain.Workspace
		if err := rows.Scan(&w.ID, &w.Name, &w.CreatedAt, &w.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan workspace: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

func (r *WorkspaceRepo) Create(ctx context.Context, w *domain.Workspace) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO workspaces (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
	`, w.ID, w.Name, w.CreatedAt, w.UpdatedAt)
	if isUniqueViolation(err) {
		return workspace.ErrNameTaken
	}
	if err != nil {
		return fmt.Errorf("create workspace: %w", err)
	}
	return nil
}
