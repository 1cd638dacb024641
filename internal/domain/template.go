package domain

import "time"

// Template is a named, reusable message body owned by a single workspace.
// Content is stored with placeholder tags already normalized; the raw input
// the user typed is not retained.
//
// Name is unique within a workspace, never globally. Two workspaces may each
// hold a template called "Welcome".
type Template struct {
	ID          string    `json:"id" db:"id"`
	WorkspaceID string    `json:"workspace_id" db:"workspace_id"`
	Name        string    `json:"name" db:"name"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}
