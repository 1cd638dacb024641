package campaign

import "errors"

// Sentinel errors for the campaign service layer.
var (
	ErrNameRequired      = errors.New("name is required")
	ErrTemplateRequired  = errors.New("template_id is required")
	ErrNotFound          = errors.New("campaign not found")
	ErrTemplateMissing   = errors.New("campaign template does not exist in this workspace")
	ErrNotDeletable      = errors.New("only draft or cancelled campaigns can be deleted")
	ErrInvalidTransition = errors.New("invalid status transition")
)
