package graph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/trademinutes/tradeflow/dsl"
)

// ErrNoWorkflow is returned when a graph is requested for a program that
// contains no workflows.
var ErrNoWorkflow = errors.New("graph: program contains no workflow")

// Layout constants for the diagonal node grid.
const (
	startX   = 100.0
	startY   = 100.0
	spacingX = 200.0
	spacingY = 100.0
)

// commandColors selects node backgrounds per built-in command.
var commandColors = map[string]string{
	"print":      "#4ade80",
	"log":        "#22d3ee",
	"fetch":      "#60a5fa",
	"send_email": "#f472b6",
	"notify":     "#facc15",
}

const defaultColor = "#e5e7eb"

// Generate projects the program's first workflow into a Graph. Only
// workflows[0] is rendered; multi-workflow programs are not supported by
// the visualization surface. Steps nested inside conditional branches are
// not rendered, mirroring the validator's flat dependency scan.
// The program is read, never mutated, and a fresh Graph is returned per
// call.
func Generate(prog *dsl.Program) (*Graph, error) {
	if len(prog.Workflows) == 0 {
		return nil, ErrNoWorkflow
	}
	wf := &prog.Workflows[0]
	deps := dsl.BuildDepGraph(wf)

	g := &Graph{
		Name:  wf.Name,
		Nodes: []Node{},
		Edges: []Edge{},
	}

	steps := make(map[int]*dsl.Step)
	for _, step := range wf.Steps() {
		steps[step.Number] = step
	}

	sorted := deps.SortedNumbers()
	for i, number := range sorted {
		g.Nodes = append(g.Nodes, buildNode(steps[number], i))
	}

	// One sequential edge between each consecutive pair of sorted steps,
	// always present regardless of data dependency.
	for i := 1; i < len(sorted); i++ {
		g.Edges = append(g.Edges, sequentialEdge(sorted[i-1], sorted[i]))
	}

	// One reference edge per StepRef argument, directed from the
	// referenced step to the referencing step.
	for _, number := range sorted {
		for _, ref := range deps.References(number) {
			g.Edges = append(g.Edges, referenceEdge(ref, number))
		}
	}

	return g, nil
}

func buildNode(step *dsl.Step, index int) Node {
	args := make([]string, 0, len(step.Command.Args))
	for _, arg := range step.Command.Args {
		args = append(args, FormatExpr(arg))
	}

	background, ok := commandColors[step.Command.Name]
	if !ok {
		background = defaultColor
	}

	return Node{
		ID: nodeID(step.Number),
		Position: Position{
			X: startX + float64(index)*spacingX,
			Y: startY + float64(index)*spacingY,
		},
		Data: NodeData{
			Label:       fmt.Sprintf("Step %d", step.Number),
			StepNumber:  step.Number,
			Command:     step.Command.Name,
			Arguments:   args,
			Description: Describe(&step.Command),
		},
		Style: NodeStyle{
			Background:   background,
			Border:       "1px solid #ccc",
			BorderRadius: "8px",
			Padding:      "10px",
			MinWidth:     "150px",
		},
	}
}

func sequentialEdge(from, to int) Edge {
	return Edge{
		ID:       fmt.Sprintf("edge-%d-%d", from, to),
		Source:   nodeID(from),
		Target:   nodeID(to),
		Type:     "smoothstep",
		Kind:     EdgeSequential,
		Animated: false,
		Style:    EdgeStyle{Stroke: "#333", StrokeWidth: 2},
	}
}

func referenceEdge(from, to int) Edge {
	return Edge{
		ID:       fmt.Sprintf("ref-edge-%d-%d", from, to),
		Source:   nodeID(from),
		Target:   nodeID(to),
		Kind:     EdgeReference,
		Animated: true,
		Label:    "data flow",
		Style:    EdgeStyle{Stroke: "#ff6b6b", StrokeWidth: 2, StrokeDasharray: "5,5"},
	}
}

// Describe renders a command's canonical re-serialization,
// "name(arg1, arg2)".
func Describe(cmd *dsl.Command) string {
	s := cmd.Name + "("
	for i, arg := range cmd.Args {
		if i > 0 {
			s += ", "
		}
		s += FormatExpr(arg)
	}
	return s + ")"
}

// FormatExpr renders an expression back to DSL surface syntax.
func FormatExpr(e dsl.Expr) string {
	switch v := e.(type) {
	case *dsl.StringLit:
		return strconv.Quote(v.Value)
	case *dsl.NumberLit:
		return strconv.FormatFloat(v.Value, 'f', -1, 64)
	case *dsl.Ident:
		return v.Name
	case *dsl.StepRef:
		return fmt.Sprintf("step %d", v.Number)
	case *dsl.PropertyAccess:
		return FormatExpr(v.Object) + "." + v.Property
	case *dsl.Binary:
		return FormatExpr(v.Left) + " " + v.Op + " " + FormatExpr(v.Right)
	case *dsl.Comparison:
		return FormatExpr(v.Left) + " " + v.Op + " " + FormatExpr(v.Right)
	default:
		return ""
	}
}
