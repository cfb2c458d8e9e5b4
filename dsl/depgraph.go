package dsl

import "sort"

// DepGraph is the step-dependency relation of a single workflow as an
// explicit directed graph: one edge per StepRef argument, directed from the
// referencing step to the referenced step. It is built once from the flat
// step list (steps nested in conditional branches are out of scope) and is
// shared by the validator's cycle detection and the graph generator's
// reference-edge construction.
type DepGraph struct {
	steps map[int]*Step
	edges map[int][]int // step number -> referenced step numbers, in encounter order
	order []int         // step numbers in encounter order
}

// BuildDepGraph extracts the dependency graph from a workflow's flat step
// list.
func BuildDepGraph(wf *Workflow) *DepGraph {
	g := &DepGraph{
		steps: make(map[int]*Step),
		edges: make(map[int][]int),
	}
	for _, step := range wf.Steps() {
		if _, seen := g.steps[step.Number]; !seen {
			g.order = append(g.order, step.Number)
		}
		g.steps[step.Number] = step
		for _, ref := range stepRefs(step.Command.Args) {
			g.edges[step.Number] = append(g.edges[step.Number], ref)
		}
	}
	return g
}

// Has reports whether the graph contains a step with the given number.
func (g *DepGraph) Has(number int) bool {
	_, ok := g.steps[number]
	return ok
}

// References returns the step numbers referenced by the given step, in
// argument encounter order.
func (g *DepGraph) References(number int) []int {
	return g.edges[number]
}

// Numbers returns all step numbers in source encounter order.
func (g *DepGraph) Numbers() []int {
	return g.order
}

// SortedNumbers returns all step numbers in ascending order.
func (g *DepGraph) SortedNumbers() []int {
	sorted := make([]int, len(g.order))
	copy(sorted, g.order)
	sort.Ints(sorted)
	return sorted
}

// HasCycle runs depth-first search with a recursion stack over every
// unvisited step and reports whether any reference chain returns to its
// origin. Edges into steps that do not exist are ignored; unresolved
// references are a separate validation finding.
func (g *DepGraph) HasCycle() bool {
	visited := make(map[int]bool)
	onStack := make(map[int]bool)

	for _, number := range g.order {
		if !visited[number] {
			if g.cycleDFS(number, visited, onStack) {
				return true
			}
		}
	}
	return false
}

func (g *DepGraph) cycleDFS(number int, visited, onStack map[int]bool) bool {
	visited[number] = true
	onStack[number] = true

	for _, ref := range g.edges[number] {
		if !g.Has(ref) {
			continue
		}
		if !visited[ref] {
			if g.cycleDFS(ref, visited, onStack) {
				return true
			}
		} else if onStack[ref] {
			// Back edge into the recursion stack: cycle.
			return true
		}
	}

	onStack[number] = false
	return false
}

// stepRefs collects every step number referenced anywhere in the given
// argument expressions, descending into binary chains and property
// accesses.
func stepRefs(args []Expr) []int {
	var refs []int
	var walk func(Expr)
	walk = func(e Expr) {
		switch v := e.(type) {
		case *StepRef:
			refs = append(refs, v.Number)
		case *Binary:
			walk(v.Left)
			walk(v.Right)
		case *PropertyAccess:
			walk(v.Object)
		case *Comparison:
			walk(v.Left)
			walk(v.Right)
		}
	}
	for _, arg := range args {
		walk(arg)
	}
	return refs
}
