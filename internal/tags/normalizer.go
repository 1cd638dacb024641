// Package tags rewrites user-supplied placeholder syntax into the canonical,
// scope-namespaced form the render engine expects.
//
// Raw template content arrives with bare placeholders like {{ content }} or
// {{ first_name }}. Before a template is persisted, each bare identifier is
// namespaced under the template's scope: {{ content }} becomes
// {{ content.content }} when the scope is "content". Render-time data is
// always nested one level under the scope name, so an un-namespaced variable
// would never resolve.
//
// Normalization is applied exactly once per write path, to raw user input at
// create and at update. It is never re-applied to stored content: a second
// pass would leave dotted variables alone (they are skipped), but the write
// paths do not rely on that.
package tags

import (
	"regexp"
	"strings"
)

// tagPattern matches a bare-identifier placeholder, with or without a filter
// chain: {{ ident }} or {{ ident | filter: "arg" }}. Dotted paths ({{ a.b }})
// and control tags ({% if %}) deliberately do not match and pass through
// untouched.
var tagPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)\s*(\|[^{}]*)?\}\}`)

// Normalize rewrites every bare placeholder in content into its
// scope-namespaced form, carrying any filter chain along unchanged.
// Non-placeholder text is returned byte-for-byte.
func Normalize(content, scope string) string {
	if scope == "" {
		return content
	}
	return tagPattern.ReplaceAllStringFunc(content, func(match string) string {
		parts := tagPattern.FindStringSubmatch(match)
		name, filters := parts[1], strings.TrimSpace(parts[2])
		if isReservedWord(name) {
			return match
		}
		if filters != "" {
			return "{{ " + scope + "." + name + " " + filters + " }}"
		}
		return "{{ " + scope + "." + name + " }}"
	})
}

// isReservedWord reports whether a name is a Liquid literal that must not be
// namespaced.
func isReservedWord(name string) bool {
	switch strings.ToLower(name) {
	case "true", "false", "nil", "null", "empty", "blank", "forloop":
		return true
	}
	return false
}
