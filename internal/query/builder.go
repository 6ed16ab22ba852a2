// internal/query/builder.go
package query

import (
	"strconv"
	"strings"
)

// Builder accumulates WHERE predicates together with their bound values.
// Each predicate template holds exactly one '?' marker; Render swaps the
// markers for positional placeholders ($1, $2, ...) in append order. Values
// never reach the SQL text.
type Builder struct {
	predicates []string
	args       []any
}

// Where appends one predicate and its value.
func (b *Builder) Where(template string, value any) *Builder {
	b.predicates = append(b.predicates, template)
	b.args = append(b.args, value)
	return b
}

// Len reports how many predicates have been added.
func (b *Builder) Len() int {
	return len(b.predicates)
}

// Render returns the AND-joined predicates and the values in matching order.
func (b *Builder) Render() (string, []any) {
	if len(b.predicates) == 0 {
		return "", nil
	}

	rendered := make([]string, len(b.predicates))
	for i, p := range b.predicates {
		rendered[i] = strings.Replace(p, "?", "$"+strconv.Itoa(i+1), 1)
	}

	args := make([]any, len(b.args))
	copy(args, b.args)
	return strings.Join(rendered, " AND "), args
}
