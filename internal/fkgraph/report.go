package fkgraph

import (
	"fmt"
	"strings"
)

// RenderMarkdown renders the dependency tree document. Empty analyses still
// produce every section, each with zero entries.
func RenderMarkdown(a *Analysis, topN int) string {
	if topN <= 0 {
		topN = DefaultTopN
	}

	var b strings.Builder
	line := func(format string, args ...interface{}) {
		fmt.Fprintf(&b, format, args...)
		b.WriteByte('\n')
	}

	line("# FK Dependency Tree Analysis")
	line("")

	line("## Root Tables (Level 0 - No FK Dependencies)")
	line("**Count:** %d", len(a.Roots))
	line("")
	for _, t := range a.Roots {
		line("- **%s** (%d FK references)", t, a.ReferenceCounts[t])
		if children := a.Children(t); len(children) > 0 {
			line("  - Children: %s", strings.Join(children, ", "))
		}
	}
	line("")

	maxLevel := a.Levels.Max()
	line("## Dependency Levels (0 to %d)", maxLevel)
	line("")
	if !a.Levels.Converged && len(a.Graph.Adjacency) > 0 {
		line("> Levels did not converge after %d passes; values are best effort.", a.Levels.Iterations)
		line("")
	}

	isRoot := make(map[string]bool, len(a.Roots))
	for _, t := range a.Roots {
		isRoot[t] = true
	}
	var levelZero []string
	for _, t := range a.TablesAtLevel(0) {
		if !isRoot[t] {
			levelZero = append(levelZero, t)
		}
	}
	if len(levelZero) > 0 {
		line("### Level 0 (%d tables with self references only)", len(levelZero))
		line("")
		for _, t := range levelZero {
			a.writeLevelEntry(line, t)
		}
	}
	for lv := 1; lv <= maxLevel; lv++ {
		tables := a.TablesAtLevel(lv)
		line("### Level %d (%d tables)", lv, len(tables))
		line("")
		for _, t := range tables {
			a.writeLevelEntry(line, t)
		}
	}

	line("## Leaf Tables (Never Referenced)")
	line("**Count:** %d", len(a.Leaves))
	line("")
	for _, t := range a.Leaves {
		line("- **%s**", t)
		if parents := a.Graph.Parents(t); len(parents) > 0 {
			line("  - Parents: %s", strings.Join(parents, ", "))
		}
	}
	line("")

	line("## Top %d Most Referenced Tables (Hub Tables)", topN)
	line("")
	for i, h := range a.Hubs(topN) {
		line("%d. **%s** - %d FK references (Level %d)", i+1, h.Table, h.References, h.Level)
	}

	if len(a.Levels.Cycles) > 0 {
		line("")
		line("## Cycles")
		line("**Count:** %d", len(a.Levels.Cycles))
		line("")
		for _, c := range a.Levels.Cycles {
			line("- %s", strings.Join(c, " <-> "))
		}
	}

	if len(a.Graph.Diagnostics) > 0 {
		line("")
		line("## Unparseable Files")
		line("**Count:** %d", len(a.Graph.Diagnostics))
		line("")
		for _, d := range a.Graph.Diagnostics {
			line("- `%s`: %s", d.File, d.Reason)
		}
	}

	return b.String()
}

func (a *Analysis) writeLevelEntry(line func(string, ...interface{}), table string) {
	line("- **%s** (%d FK references)", table, a.ReferenceCounts[table])
	line("  - Parents: %s", strings.Join(a.Graph.Parents(table), ", "))
	if cascades := a.cascades(table); len(cascades) > 0 {
		line("  - Cascades: %s", strings.Join(cascades, ", "))
	}
	line("")
}

func (a *Analysis) cascades(table string) []string {
	var out []string
	for _, e := range a.Graph.Adjacency[table] {
		var actions []string
		if e.OnDelete.IsSet() {
			actions = append(actions, "DELETE "+string(e.OnDelete))
		}
		if e.OnUpdate.IsSet() {
			actions = append(actions, "UPDATE "+string(e.OnUpdate))
		}
		if len(actions) > 0 {
			out = append(out, fmt.Sprintf("%s (%s)", e.Parent, strings.Join(actions, ", ")))
		}
	}
	return out
}
