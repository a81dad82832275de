package fkgraph

import "sort"

// DefaultMaxIterations bounds the relaxation passes on cyclic input.
const DefaultMaxIterations = 100

// Levels is the outcome of SolveLevels.
type Levels struct {
	Level      map[string]int
	Iterations int
	Converged  bool
	// Cycles lists the tables of each FK cycle (self references excluded),
	// each sorted, ordered by first table.
	Cycles [][]string
}

func (l Levels) Max() int {
	highest := 0
	for _, lv := range l.Level {
		if lv > highest {
			highest = lv
		}
	}
	return highest
}

// ByLevel groups tables by their level; each group is sorted by name.
func (l Levels) ByLevel() map[int][]string {
	groups := make(map[int][]string)
	for t, lv := range l.Level {
		groups[lv] = append(groups[lv], t)
	}
	for lv := range groups {
		sort.Strings(groups[lv])
	}
	return groups
}

// SolveLevels assigns every table a level strictly above its parents by
// relaxing from the roots until nothing changes or maxIterations passes ran.
// A table referencing itself is not its own parent here.
func SolveLevels(g *Graph, maxIterations int) Levels {
	if maxIterations <= 0 {
		maxIterations = DefaultMaxIterations
	}

	parents := make(map[string][]string, len(g.Adjacency))
	for child := range g.Adjacency {
		for _, p := range g.Parents(child) {
			if p != child {
				parents[child] = append(parents[child], p)
			}
		}
	}

	level := make(map[string]int, len(g.Tables))
	for _, root := range g.Roots() {
		level[root] = 0
	}

	children := g.ChildTables()
	result := Levels{Level: level}

	for result.Iterations < maxIterations {
		result.Iterations++
		changed := false

		for _, child := range children {
			maxParent := -1
			for _, p := range parents[child] {
				if lv, ok := level[p]; ok && lv > maxParent {
					maxParent = lv
				}
			}
			candidate := maxParent + 1
			if cur, ok := level[child]; !ok || candidate > cur {
				level[child] = candidate
				changed = true
			}
		}

		if !changed {
			result.Converged = true
			break
		}
	}

	for t := range g.Tables {
		if _, ok := level[t]; !ok {
			level[t] = 0
		}
	}

	result.Cycles = findCycles(g.SortedTables(), parents)
	return result
}

// findCycles returns the strongly connected components with more than one
// table (Tarjan).
func findCycles(tables []string, parents map[string][]string) [][]string {
	index := make(map[string]int)
	low := make(map[string]int)
	onStack := make(map[string]bool)
	var stack []string
	var cycles [][]string
	next := 0

	var connect func(string)
	connect = func(v string) {
		index[v] = next
		low[v] = next
		next++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range parents[v] {
			if _, seen := index[w]; !seen {
				connect(w)
				low[v] = min(low[v], low[w])
			} else if onStack[w] {
				low[v] = min(low[v], index[w])
			}
		}

		if low[v] != index[v] {
			return
		}
		var component []string
		for {
			w := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			onStack[w] = false
			component = append(component, w)
			if w == v {
				break
			}
		}
		if len(component) > 1 {
			sort.Strings(component)
			cycles = append(cycles, component)
		}
	}

	for _, t := range tables {
		if _, seen := index[t]; !seen {
			connect(t)
		}
	}

	sort.Slice(cycles, func(i, j int) bool { return cycles[i][0] < cycles[j][0] })
	return cycles
}
