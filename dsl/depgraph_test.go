package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildGraph(t *testing.T, source string) *DepGraph {
	t.Helper()
	prog := mustParse(t, source)
	require.NotEmpty(t, prog.Workflows)
	return BuildDepGraph(&prog.Workflows[0])
}

func TestDepGraph_Edges(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: log(step 1)
		step 3: send_email("user@example.com", step 1, step 2)
	}`)

	assert.True(t, g.Has(1))
	assert.True(t, g.Has(3))
	assert.False(t, g.Has(4))

	assert.Empty(t, g.References(1))
	assert.Equal(t, []int{1}, g.References(2))
	assert.Equal(t, []int{1, 2}, g.References(3))
}

func TestDepGraph_RefsInsideNestedExpressions(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: log("result: " + step 1.data)
	}`)

	assert.Equal(t, []int{1}, g.References(2))
}

func TestDepGraph_OrderAndSortedNumbers(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 3: log("c")
		step 1: log("a")
		step 2: log("b")
	}`)

	assert.Equal(t, []int{3, 1, 2}, g.Numbers())
	assert.Equal(t, []int{1, 2, 3}, g.SortedNumbers())
	assert.Equal(t, []int{3, 1, 2}, g.Numbers(), "sorting must not reorder the graph")
}

func TestDepGraph_NoCycle(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: log(step 1)
		step 3: notify("ops", step 2)
	}`)

	assert.False(t, g.HasCycle())
}

func TestDepGraph_TwoStepCycle(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 1: log(step 2)
		step 2: log(step 1)
	}`)

	assert.True(t, g.HasCycle())
}

func TestDepGraph_SelfLoop(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 1: log(step 1)
	}`)

	assert.True(t, g.HasCycle())
}

func TestDepGraph_LongerCycle(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 1: log(step 3)
		step 2: log(step 1)
		step 3: log(step 2)
	}`)

	assert.True(t, g.HasCycle())
}

func TestDepGraph_MissingTargetIgnored(t *testing.T) {
	// A reference to a step that does not exist is an unresolved
	// reference, not a cycle.
	g := buildGraph(t, `workflow "W" {
		step 1: log(step 9)
	}`)

	assert.False(t, g.HasCycle())
}

func TestDepGraph_DiamondIsNotACycle(t *testing.T) {
	g := buildGraph(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: log(step 1)
		step 3: log(step 1)
		step 4: notify("ops", step 2, step 3)
	}`)

	assert.False(t, g.HasCycle())
}
