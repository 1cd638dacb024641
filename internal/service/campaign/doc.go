// Package campaign implements campaign management for the template hub.
//
// A campaign references a workspace template for its body. The reference is
// what blocks template deletion: while a campaign row points at a template,
// the template repository refuses to remove it. This package owns the
// referencing side of that contract.
//
// Repository implementations live in repository/postgres/ and
// repository/memory/.
package campaign
