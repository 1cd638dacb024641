package workspace

import "errors"

// Sentinel errors for the workspace service layer.
var (
	ErrNameRequired = errors.New("name is required")
	ErrNotFound     = errors.New("workspace not found")
	ErrNameTaken    = errors.New("workspace name already in use")
)
