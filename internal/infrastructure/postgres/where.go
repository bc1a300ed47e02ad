package postgres

import (
	"fmt"
	"strings"

	"github.com/oksasatya/go-jobboard-api/internal/domain/repository"
)

// where accumulates AND-ed predicates with positional arguments.
type where struct {
	clauses []string
	args    []any
}

// add appends a predicate. format refers to the new argument with %[1]d and
// may use it more than once.
func (w *where) add(format string, v any) {
	w.args = append(w.args, v)
	w.clauses = append(w.clauses, fmt.Sprintf(format, len(w.args)))
}

func (w *where) String() string {
	if len(w.clauses) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(w.clauses, " AND ")
}

// page renders LIMIT/OFFSET and returns the full argument list.
func (w *where) page(p repository.Page) (string, []any) {
	args := append([]any{}, w.args...)
	var sb strings.Builder
	if p.Limit > 0 {
		args = append(args, p.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if p.Offset > 0 {
		args = append(args, p.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}
	return sb.String(), args
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func contains(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
