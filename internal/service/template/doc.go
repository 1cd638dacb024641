// Package template implements workspace-scoped template management.
//
// The service layer contains all business logic for creating, updating, and
// deleting templates: input validation, placeholder tag normalization, and
// surfacing persistence conflicts as field-level errors. It depends on the
// repository interface defined in this package and should never import from
// api/.
//
// Repository implementations live in repository/postgres/ and
// repository/memory/.
package template
