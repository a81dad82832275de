package fkgraph

import "sort"

// Graph is the FK adjacency structure plus the indices derived while building it.
type Graph struct {
	Adjacency       map[string][]Edge
	Tables          map[string]struct{}
	CrossSchema     []Edge
	SelfReferencing []Edge
	Diagnostics     []Diagnostic
}

func newGraph() *Graph {
	return &Graph{
		Adjacency: make(map[string][]Edge),
		Tables:    make(map[string]struct{}),
	}
}

// Builder accumulates parsed FK files into a Graph.
type Builder struct {
	parser *Parser
	graph  *Graph
}

func NewBuilder(parser *Parser) *Builder {
	if parser == nil {
		parser = NewParser(DefaultSchema)
	}
	return &Builder{parser: parser, graph: newGraph()}
}

// Add parses one file. Unparseable content is recorded as a diagnostic and
// reported back through the result; it never stops the build.
func (b *Builder) Add(file, content string) ParseResult {
	res := b.parser.Parse(content)
	if !res.OK() {
		b.Fail(file, res.Reason)
		return res
	}
	b.AddEdge(res.Edge)
	return res
}

func (b *Builder) AddEdge(e Edge) {
	g := b.graph
	g.Adjacency[e.Child] = append(g.Adjacency[e.Child], e)
	g.Tables[e.Child] = struct{}{}
	g.Tables[e.Parent] = struct{}{}

	if e.IsCrossSchema() {
		g.CrossSchema = append(g.CrossSchema, e)
	}
	if e.IsSelfReferencing() {
		g.SelfReferencing = append(g.SelfReferencing, e)
	}
}

// Fail records a file that could not be read or parsed.
func (b *Builder) Fail(file, reason string) {
	b.graph.Diagnostics = append(b.graph.Diagnostics, Diagnostic{File: file, Reason: reason})
}

func (b *Builder) Graph() *Graph {
	return b.graph
}

// EdgeCount counts every edge, including duplicates to the same parent.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, edges := range g.Adjacency {
		n += len(edges)
	}
	return n
}

func (g *Graph) SortedTables() []string {
	return sortedKeys(g.Tables)
}

func (g *Graph) ChildTables() []string {
	return sortedKeys(g.Adjacency)
}

// Parents returns the distinct parents of table, sorted.
func (g *Graph) Parents(table string) []string {
	seen := make(map[string]struct{})
	for _, e := range g.Adjacency[table] {
		seen[e.Parent] = struct{}{}
	}
	return sortedKeys(seen)
}

// ReverseIndex maps each parent to the edges that reference it. Children are
// visited in sorted order and their edges in insertion order.
func (g *Graph) ReverseIndex() map[string][]Reference {
	reverse := make(map[string][]Reference)
	for _, child := range g.ChildTables() {
		for _, e := range g.Adjacency[child] {
			reverse[e.Parent] = append(reverse[e.Parent], Reference{
				Child:         child,
				Name:          e.Name,
				ChildColumns:  e.ChildColumns,
				ParentColumns: e.ParentColumns,
				OnDelete:      e.OnDelete,
				OnUpdate:      e.OnUpdate,
			})
		}
	}
	return reverse
}

// Roots are tables with no outgoing FK edges.
func (g *Graph) Roots() []string {
	var roots []string
	for t := range g.Tables {
		if _, ok := g.Adjacency[t]; !ok {
			roots = append(roots, t)
		}
	}
	sort.Strings(roots)
	return roots
}

// Leaves are tables that no other table references.
func (g *Graph) Leaves(reverse map[string][]Reference) []string {
	var leaves []string
	for t := range g.Tables {
		if _, ok := reverse[t]; !ok {
			leaves = append(leaves, t)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// ReferenceCounts is the number of incoming edges per parent.
func ReferenceCounts(reverse map[string][]Reference) map[string]int {
	counts := make(map[string]int, len(reverse))
	for parent, refs := range reverse {
		counts[parent] = len(refs)
	}
	return counts
}

// AdjacencyList is the serializable child -> edges form of the graph.
func (g *Graph) AdjacencyList() map[string][]AdjacencyEntry {
	out := make(map[string][]AdjacencyEntry, len(g.Adjacency))
	for child, edges := range g.Adjacency {
		entries := make([]AdjacencyEntry, 0, len(edges))
		for _, e := range edges {
			entries = append(entries, e.entry())
		}
		out[child] = entries
	}
	return out
}

// FromAdjacencyList rebuilds a graph from a previously written adjacency list.
func FromAdjacencyList(list map[string][]AdjacencyEntry) *Graph {
	b := NewBuilder(nil)
	children := make([]string, 0, len(list))
	for child := range list {
		children = append(children, child)
	}
	sort.Strings(children)

	for _, child := range children {
		for _, entry := range list[child] {
			b.AddEdge(Edge{
				Child:         child,
				Parent:        entry.ParentTable,
				Name:          entry.FKName,
				ChildColumns:  entry.ChildCols,
				ParentColumns: entry.ParentCols,
				OnDelete:      entry.OnDelete,
				OnUpdate:      entry.OnUpdate,
			})
		}
	}
	return b.Graph()
}

func (g *Graph) Summary() Summary {
	s := Summary{
		TotalFKCount:       g.EdgeCount(),
		TotalChildTables:   len(g.Adjacency),
		TotalUniqueTables:  len(g.Tables),
		AllTables:          g.SortedTables(),
		CrossSchemaFKs:     []CrossSchemaFK{},
		SelfReferencingFKs: []SelfReferencingFK{},
	}

	for _, e := range g.CrossSchema {
		s.CrossSchemaFKs = append(s.CrossSchemaFKs, CrossSchemaFK{
			Child:  e.Child,
			Parent: e.Parent,
			FKName: e.Name,
		})
	}
	for _, e := range g.SelfReferencing {
		s.SelfReferencingFKs = append(s.SelfReferencingFKs, SelfReferencingFK{
			Table:      e.Child,
			FKName:     e.Name,
			ChildCols:  e.ChildColumns,
			ParentCols: e.ParentColumns,
		})
	}
	s.CrossSchemaCount = len(s.CrossSchemaFKs)
	s.SelfReferencingCount = len(s.SelfReferencingFKs)
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
