package domain

import "time"

// Workspace is the tenancy boundary. Every template and campaign belongs to
// exactly one workspace, and template name uniqueness is scoped to it.
type Workspace struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
