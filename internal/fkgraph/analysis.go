package fkgraph

import "sort"

// DefaultTopN is how many hub tables the report ranks.
const DefaultTopN = 15

// Analysis bundles everything derived from a Graph for reporting.
type Analysis struct {
	Graph           *Graph
	Reverse         map[string][]Reference
	Roots           []string
	Leaves          []string
	Levels          Levels
	ReferenceCounts map[string]int
}

type Options struct {
	MaxIterations int
}

func Analyze(g *Graph, opts Options) *Analysis {
	reverse := g.ReverseIndex()
	return &Analysis{
		Graph:           g,
		Reverse:         reverse,
		Roots:           g.Roots(),
		Leaves:          g.Leaves(reverse),
		Levels:          SolveLevels(g, opts.MaxIterations),
		ReferenceCounts: ReferenceCounts(reverse),
	}
}

// Hub is a table ranked by how many FK edges point at it.
type Hub struct {
	Table      string
	References int
	Level      int
}

// Hubs returns the n most referenced tables, ties broken by name.
func (a *Analysis) Hubs(n int) []Hub {
	if n <= 0 {
		n = DefaultTopN
	}
	hubs := make([]Hub, 0, len(a.ReferenceCounts))
	for t, c := range a.ReferenceCounts {
		hubs = append(hubs, Hub{Table: t, References: c, Level: a.Levels.Level[t]})
	}
	sort.Slice(hubs, func(i, j int) bool {
		if hubs[i].References != hubs[j].References {
			return hubs[i].References > hubs[j].References
		}
		return hubs[i].Table < hubs[j].Table
	})
	if len(hubs) > n {
		hubs = hubs[:n]
	}
	return hubs
}

// TablesAtLevel returns the tables of one level, most referenced first.
func (a *Analysis) TablesAtLevel(level int) []string {
	tables := a.Levels.ByLevel()[level]
	sort.SliceStable(tables, func(i, j int) bool {
		return a.ReferenceCounts[tables[i]] > a.ReferenceCounts[tables[j]]
	})
	return tables
}

// Children returns the distinct tables referencing table, sorted.
func (a *Analysis) Children(table string) []string {
	seen := make(map[string]struct{})
	for _, r := range a.Reverse[table] {
		seen[r.Child] = struct{}{}
	}
	return sortedKeys(seen)
}

// MigrationOrder lists every table, parents before children: by level, then name.
func (a *Analysis) MigrationOrder() []string {
	order := a.Graph.SortedTables()
	sort.SliceStable(order, func(i, j int) bool {
		return a.Levels.Level[order[i]] < a.Levels.Level[order[j]]
	})
	return order
}
