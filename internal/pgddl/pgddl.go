// Package pgddl writes PostgreSQL scripts derived from the FK graph: the
// constraints themselves in dependency order, and orphan-row checks to run
// after data has been loaded. Scripts are only generated, never executed.
package pgddl

import (
	"fmt"
	"sort"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"github.com/Lumos-Labs-HQ/fkgraph/internal/fkgraph"
	"github.com/Lumos-Labs-HQ/fkgraph/internal/naming"
)

const (
	ConstraintsFile  = "fk_constraints_pg.sql"
	OrphanChecksFile = "fk_orphan_checks.sql"
)

type Generator struct {
	analysis *fkgraph.Analysis
	mapper   *naming.Mapper
}

func NewGenerator(a *fkgraph.Analysis, m *naming.Mapper) *Generator {
	if m == nil {
		m = naming.NewMapper(nil)
	}
	return &Generator{analysis: a, mapper: m}
}

// orderedEdges returns every edge, children grouped by ascending level.
func (g *Generator) orderedEdges() []fkgraph.Edge {
	var edges []fkgraph.Edge
	for _, table := range g.analysis.MigrationOrder() {
		edges = append(edges, g.analysis.Graph.Adjacency[table]...)
	}
	return edges
}

func (g *Generator) constraintName(e fkgraph.Edge) string {
	if e.Name == nil {
		return ""
	}
	return g.mapper.Constraint(*e.Name)
}

func (g *Generator) columnList(cols []string) string {
	mapped := g.mapper.Columns(cols)
	for i, c := range mapped {
		mapped[i] = naming.Quote(c)
	}
	return strings.Join(mapped, ", ")
}

// AlterTable renders one edge as a PostgreSQL ADD CONSTRAINT statement.
func (g *Generator) AlterTable(e fkgraph.Edge) string {
	var b strings.Builder
	fmt.Fprintf(&b, "ALTER TABLE %s\n    ADD ", naming.QuoteQualified(g.mapper.Table(e.Child)))
	if name := g.constraintName(e); name != "" {
		fmt.Fprintf(&b, "CONSTRAINT %s ", naming.Quote(name))
	}
	fmt.Fprintf(&b, "FOREIGN KEY (%s)\n    REFERENCES %s (%s)",
		g.columnList(e.ChildColumns),
		naming.QuoteQualified(g.mapper.Table(e.Parent)),
		g.columnList(e.ParentColumns))
	if e.OnDelete.IsSet() {
		fmt.Fprintf(&b, "\n    ON DELETE %s", e.OnDelete)
	}
	if e.OnUpdate.IsSet() {
		fmt.Fprintf(&b, "\n    ON UPDATE %s", e.OnUpdate)
	}
	b.WriteString(";")
	return b.String()
}

// Constraints renders all FK constraints, one block per dependency level.
func (g *Generator) Constraints() string {
	var b strings.Builder
	b.WriteString("-- Foreign key constraints in dependency order\n")
	b.WriteString("-- Generated by fkgraph; review before applying.\n")

	level := -1
	for _, e := range g.orderedEdges() {
		if lv := g.analysis.Levels.Level[e.Child]; lv != level {
			level = lv
			fmt.Fprintf(&b, "\n-- Level %d\n", level)
		}
		b.WriteString("\n")
		b.WriteString(g.AlterTable(e))
		b.WriteString("\n")
	}
	return b.String()
}

// OrphanCheck builds a query counting child rows whose key has no parent row.
func (g *Generator) OrphanCheck(e fkgraph.Edge) (string, error) {
	child := naming.QuoteQualified(g.mapper.Table(e.Child))
	parent := naming.QuoteQualified(g.mapper.Table(e.Parent))
	childCols := g.mapper.Columns(e.ChildColumns)
	parentCols := g.mapper.Columns(e.ParentColumns)

	join := make([]string, len(childCols))
	notNull := sq.And{}
	for i := range childCols {
		c := "c." + naming.Quote(childCols[i])
		join[i] = fmt.Sprintf("%s = p.%s", c, naming.Quote(parentCols[i]))
		notNull = append(notNull, sq.NotEq{c: nil})
	}

	label := g.constraintName(e)
	if label == "" {
		label = g.mapper.Table(e.Child) + " -> " + g.mapper.Table(e.Parent)
	}

	query, _, err := sq.Select().
		Column(fmt.Sprintf("'%s' AS fk_name", strings.ReplaceAll(label, "'", "''"))).
		Column("COUNT(*) AS orphan_rows").
		From(child + " c").
		LeftJoin(fmt.Sprintf("%s p ON %s", parent, strings.Join(join, " AND "))).
		Where(notNull).
		Where(sq.Eq{"p." + naming.Quote(parentCols[0]): nil}).
		PlaceholderFormat(sq.Dollar).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("failed to build orphan check for %s: %w", label, err)
	}
	return query + ";", nil
}

// OrphanChecks renders one orphan query per edge, parents first.
func (g *Generator) OrphanChecks() (string, error) {
	var b strings.Builder
	b.WriteString("-- Orphan row checks: every query should return orphan_rows = 0\n")
	b.WriteString("-- Generated by fkgraph; run after data load, before adding constraints.\n")

	for _, e := range g.orderedEdges() {
		q, err := g.OrphanCheck(e)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "\n-- %s -> %s\n%s\n", e.Child, e.Parent, q)
	}
	return b.String(), nil
}

// LevelPlan is the tables to load at one dependency level.
type LevelPlan struct {
	Level  int
	Tables []string
}

// Plan groups the mapped table names by level, ascending.
func (g *Generator) Plan() []LevelPlan {
	groups := g.analysis.Levels.ByLevel()
	levels := make([]int, 0, len(groups))
	for lv := range groups {
		levels = append(levels, lv)
	}
	sort.Ints(levels)

	plan := make([]LevelPlan, 0, len(levels))
	for _, lv := range levels {
		tables := make([]string, len(groups[lv]))
		for i, t := range groups[lv] {
			tables[i] = g.mapper.Table(t)
		}
		plan = append(plan, LevelPlan{Level: lv, Tables: tables})
	}
	return plan
}
