package naming

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/fkgraph"
)

// MapFile is the naming conversion map written by the naming-map command.
const MapFile = "naming-conversion-map.csv"

const (
	ObjectTable      = "table"
	ObjectColumn     = "column"
	ObjectConstraint = "constraint"
)

var mapHeader = []string{
	"object_type",
	"sqlserver_name",
	"postgresql_name",
	"schema_sqlserver",
	"schema_postgresql",
	"notes",
}

// MapEntry is one row of the naming conversion map. Column names are
// written as table.column.
type MapEntry struct {
	ObjectType       string
	SQLServerName    string
	PostgreSQLName   string
	SchemaSQLServer  string
	SchemaPostgreSQL string
	Notes            string
}

func (e MapEntry) record() []string {
	return []string{
		e.ObjectType,
		e.SQLServerName,
		e.PostgreSQLName,
		e.SchemaSQLServer,
		e.SchemaPostgreSQL,
		e.Notes,
	}
}

// Entries lists every table, FK column and named constraint in g with its
// PostgreSQL name: tables first, then columns, then constraints, each sorted.
func (m *Mapper) Entries(g *fkgraph.Graph) []MapEntry {
	var entries []MapEntry

	tables := g.SortedTables()
	for _, t := range tables {
		entries = append(entries, m.entry(ObjectTable, t, fkgraph.TableOf(t), fkgraph.TableOf(m.Table(t))))
	}

	columns := make(map[string]map[string]struct{})
	addColumns := func(table string, cols []string) {
		if columns[table] == nil {
			columns[table] = make(map[string]struct{})
		}
		for _, c := range cols {
			columns[table][c] = struct{}{}
		}
	}
	var constraints []fkgraph.Edge
	for _, child := range g.ChildTables() {
		for _, e := range g.Adjacency[child] {
			addColumns(e.Child, e.ChildColumns)
			addColumns(e.Parent, e.ParentColumns)
			if e.Name != nil {
				constraints = append(constraints, e)
			}
		}
	}

	for _, t := range tables {
		cols := make([]string, 0, len(columns[t]))
		for c := range columns[t] {
			cols = append(cols, c)
		}
		sort.Strings(cols)

		pgTable := fkgraph.TableOf(m.Table(t))
		for _, c := range cols {
			entries = append(entries, m.entry(ObjectColumn, t,
				fkgraph.TableOf(t)+"."+c, pgTable+"."+m.Column(c)))
		}
	}

	sort.SliceStable(constraints, func(i, j int) bool {
		return *constraints[i].Name < *constraints[j].Name
	})
	for _, e := range constraints {
		entry := m.entry(ObjectConstraint, e.Child, *e.Name, m.Constraint(*e.Name))
		if StripPrefix(*e.Name) != *e.Name {
			entry.Notes = "prefix removed, " + entry.Notes
		}
		entries = append(entries, entry)
	}

	return entries
}

func (m *Mapper) entry(objectType, qualified, from, to string) MapEntry {
	schema := fkgraph.SchemaOf(qualified)
	e := MapEntry{
		ObjectType:      objectType,
		SQLServerName:   from,
		PostgreSQLName:  to,
		SchemaSQLServer: schema,
		Notes:           "unchanged",
	}
	if schema != "" {
		e.SchemaPostgreSQL = m.Schema(schema)
	}
	if from != to {
		e.Notes = "snake_case"
	}
	return e
}

// WriteMap writes entries as CSV with a header row.
func WriteMap(w io.Writer, entries []MapEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(mapHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, e := range entries {
		if err := cw.Write(e.record()); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", e.SQLServerName, err)
		}
	}
	cw.Flush()
	return cw.Error()
}
