// Package naming maps SQL Server identifiers to their PostgreSQL names.
package naming

import (
	"regexp"
	"strings"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/fkgraph"
)

var (
	acronymBoundary = regexp.MustCompile(`([A-Z]+)([A-Z][a-z])`)
	wordBoundary    = regexp.MustCompile(`([a-z0-9])([A-Z])`)
	underscoreRun   = regexp.MustCompile(`_+`)
	needsQuoting    = regexp.MustCompile(`[^a-z0-9_]|^[0-9]`)
)

// SnakeCase converts PascalCase / camelCase to snake_case. Names that are
// already lowercase are returned unchanged.
func SnakeCase(name string) string {
	name = strings.Trim(name, "[]\"")
	if name == strings.ToLower(name) {
		return name
	}
	s := acronymBoundary.ReplaceAllString(name, "${1}_${2}")
	s = wordBoundary.ReplaceAllString(s, "${1}_${2}")
	s = underscoreRun.ReplaceAllString(s, "_")
	return strings.ToLower(s)
}

// objectPrefixes are SQL Server naming prefixes with no meaning on the
// PostgreSQL side.
var objectPrefixes = []string{"sp_", "usp_", "fn_", "vw_", "ix_", "pk_", "fk_", "uk_", "ck_"}

// StripPrefix removes one leading object prefix, case-insensitively. A name
// that is nothing but the prefix is returned unchanged.
func StripPrefix(name string) string {
	lower := strings.ToLower(name)
	for _, p := range objectPrefixes {
		if strings.HasPrefix(lower, p) && len(name) > len(p) {
			return name[len(p):]
		}
	}
	return name
}

// Mapper renames schemas and converts identifiers for the PostgreSQL side.
type Mapper struct {
	SchemaMap map[string]string
}

func NewMapper(schemaMap map[string]string) *Mapper {
	m := make(map[string]string, len(schemaMap))
	for from, to := range schemaMap {
		m[strings.ToLower(from)] = to
	}
	return &Mapper{SchemaMap: m}
}

func (m *Mapper) Schema(schema string) string {
	if to, ok := m.SchemaMap[strings.ToLower(schema)]; ok {
		return to
	}
	return SnakeCase(schema)
}

// Table maps a qualified schema.table name.
func (m *Mapper) Table(qualified string) string {
	schema := fkgraph.SchemaOf(qualified)
	table := SnakeCase(fkgraph.TableOf(qualified))
	if schema == "" {
		return table
	}
	return m.Schema(schema) + "." + table
}

// Constraint maps a constraint name, dropping a conventional type prefix
// such as FK_ or PK_.
func (m *Mapper) Constraint(name string) string {
	return SnakeCase(StripPrefix(strings.Trim(name, "[]\"")))
}

func (m *Mapper) Column(name string) string {
	return SnakeCase(name)
}

func (m *Mapper) Columns(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = m.Column(n)
	}
	return out
}

// Quote double-quotes an identifier only when PostgreSQL would need it.
func Quote(ident string) string {
	if ident == "" || needsQuoting.MatchString(ident) || reserved[ident] {
		return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
	}
	return ident
}

// QuoteQualified quotes each dot-separated part.
func QuoteQualified(qualified string) string {
	parts := strings.Split(qualified, ".")
	for i, p := range parts {
		parts[i] = Quote(p)
	}
	return strings.Join(parts, ".")
}

// reserved holds the PostgreSQL reserved keywords that show up as column or
// table names in the source schema.
var reserved = map[string]bool{
	"all": true, "analyse": true, "analyze": true, "and": true, "any": true,
	"array": true, "as": true, "asc": true, "case": true, "cast": true,
	"check": true, "collate": true, "column": true, "constraint": true,
	"create": true, "default": true, "desc": true, "distinct": true, "do": true,
	"else": true, "end": true, "except": true, "false": true, "for": true,
	"foreign": true, "from": true, "grant": true, "group": true, "having": true,
	"in": true, "into": true, "limit": true, "not": true, "null": true,
	"offset": true, "on": true, "only": true, "or": true, "order": true,
	"primary": true, "references": true, "select": true, "table": true,
	"then": true, "to": true, "true": true, "union": true, "unique": true,
	"user": true, "using": true, "when": true, "where": true, "with": true,
}
