package sqlite

import (
	"regexp"
	"strings"

	"github.com/edgekit/actorsql/dialect"
)

// validIdentifierRe validates SQL identifiers (alphanumeric, underscores, dots for schema.name)
var validIdentifierRe = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_.]*$`)

// isValidIdentifier checks if the string is a valid SQL identifier.
func isValidIdentifier(s string) bool {
	return s != "" && len(s) <= 128 && validIdentifierRe.MatchString(s)
}

// QueryCompiler renders statements into SQLite-specific compiled queries.
// SQLite uses "?" positional placeholders and double-quoted identifiers.
type QueryCompiler struct{}

// NewQueryCompiler returns the SQLite query compiler.
func NewQueryCompiler() *QueryCompiler { return &QueryCompiler{} }

// CompileRaw pairs SQL text with its positional parameters. The text is
// taken as already SQLite-specific; no rewriting happens here.
func (*QueryCompiler) CompileRaw(sql string, args ...any) dialect.CompiledQuery {
	return dialect.CompiledQuery{SQL: sql, Parameters: args}
}

// QuoteIdentifier quotes a table or column name with double quotes,
// doubling any embedded quote. Dotted names are quoted per part so that
// schema.table references stay addressable. Arbitrary names are quoted
// rather than rejected, since SQLite accepts any quoted identifier.
func (*QueryCompiler) QuoteIdentifier(name string) string {
	if isValidIdentifier(name) && !strings.Contains(name, ".") {
		return `"` + name + `"`
	}
	parts := strings.Split(name, ".")
	for i, p := range parts {
		parts[i] = `"` + strings.ReplaceAll(p, `"`, `""`) + `"`
	}
	return strings.Join(parts, ".")
}

// Placeholder returns SQLite's positional placeholder. The index is
// ignored: SQLite binds "?" placeholders in order of appearance.
func (*QueryCompiler) Placeholder(int) string { return "?" }

var _ dialect.QueryCompiler = (*QueryCompiler)(nil)
