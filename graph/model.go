package graph

import "fmt"

// Graph is the node/edge visualization projection of a single workflow.
// The JSON shape is a wire contract: frontend consumers depend on the
// exact id patterns and style fields emitted here.
type Graph struct {
	Name  string `json:"name,omitempty"`
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// Node is one workflow step on the visual canvas.
type Node struct {
	ID       string    `json:"id"` // "step-{n}"
	Position Position  `json:"position"`
	Data     NodeData  `json:"data"`
	Style    NodeStyle `json:"style"`
}

// Position is the node's canvas placement.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData carries the step's identity and its canonical re-serialization.
type NodeData struct {
	Label       string   `json:"label"` // "Step {n}"
	StepNumber  int      `json:"stepNumber"`
	Command     string   `json:"command"`
	Arguments   []string `json:"arguments"`
	Description string   `json:"description"` // "name(arg1, arg2)"
}

// NodeStyle is the node's inline CSS.
type NodeStyle struct {
	Background   string `json:"background"`
	Border       string `json:"border"`
	BorderRadius string `json:"borderRadius"`
	Padding      string `json:"padding"`
	MinWidth     string `json:"minWidth"`
}

// EdgeKind distinguishes execution-order edges from data-dependency edges.
type EdgeKind string

const (
	// EdgeSequential connects each consecutive pair of steps in number
	// order, regardless of data dependency.
	EdgeSequential EdgeKind = "sequential"
	// EdgeReference connects a referenced step to the step consuming its
	// result.
	EdgeReference EdgeKind = "reference"
)

// Edge is a connection between two nodes.
type Edge struct {
	ID       string    `json:"id"`
	Source   string    `json:"source"`
	Target   string    `json:"target"`
	Type     string    `json:"type,omitempty"` // "smoothstep" for sequential edges
	Kind     EdgeKind  `json:"kind"`
	Animated bool      `json:"animated"`
	Label    string    `json:"label,omitempty"`
	Style    EdgeStyle `json:"style"`
}

// EdgeStyle is the edge's inline stroke styling.
type EdgeStyle struct {
	Stroke          string `json:"stroke"`
	StrokeWidth     int    `json:"strokeWidth"`
	StrokeDasharray string `json:"strokeDasharray,omitempty"`
}

// nodeID formats the canonical node id for a step number.
func nodeID(step int) string {
	return fmt.Sprintf("step-%d", step)
}
