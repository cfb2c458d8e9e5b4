package graph

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// ConversionError reports a structurally unusable graph model.
type ConversionError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConversionError) Error() string {
	return "graph: cannot convert to DSL: " + e.Reason
}

// defaultWorkflowName is used when the graph carries no workflow name.
const defaultWorkflowName = "Converted Workflow"

var commandPattern = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_]*)\((.*)\)$`)

// ToDSL performs the best-effort inverse projection of a Graph back to DSL
// source text. Only a flat `workflow { step N: cmd(args) }` block is
// reconstructed from node descriptions and "data flow" reference edges;
// variable declarations and conditional structure are not reproduced. The
// forward path is deliberately richer than this reverse path.
func ToDSL(g *Graph) (string, error) {
	if g == nil {
		return "", &ConversionError{Reason: "graph is nil"}
	}
	if g.Nodes == nil {
		return "", &ConversionError{Reason: "missing nodes collection"}
	}
	if g.Edges == nil {
		return "", &ConversionError{Reason: "missing edges collection"}
	}

	name := g.Name
	if name == "" {
		name = defaultWorkflowName
	}

	// Reference-edge sources per target node, used to re-tag arguments
	// whose literal value matches a referenced step number.
	refs := make(map[string]map[int]bool)
	for _, edge := range g.Edges {
		if edge.Label != "data flow" {
			continue
		}
		source, ok := stepNumberOf(edge.Source)
		if !ok {
			continue
		}
		if refs[edge.Target] == nil {
			refs[edge.Target] = make(map[int]bool)
		}
		refs[edge.Target][source] = true
	}

	nodes := make([]Node, len(g.Nodes))
	copy(nodes, g.Nodes)
	sort.Slice(nodes, func(i, j int) bool {
		return nodes[i].Data.StepNumber < nodes[j].Data.StepNumber
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "workflow %q {\n", name)
	for _, node := range nodes {
		command, args, ok := parseDescription(node.Data.Description)
		if !ok {
			continue
		}
		for i, arg := range args {
			if n, err := strconv.Atoi(arg); err == nil && refs[node.ID][n] {
				args[i] = fmt.Sprintf("step %d", n)
			}
		}
		fmt.Fprintf(&sb, "  step %d: %s(%s)\n", node.Data.StepNumber, command, strings.Join(args, ", "))
	}
	sb.WriteString("}\n")

	return sb.String(), nil
}

// parseDescription matches a node description back to its command name and
// argument strings.
func parseDescription(description string) (string, []string, bool) {
	m := commandPattern.FindStringSubmatch(strings.TrimSpace(description))
	if m == nil {
		return "", nil, false
	}
	return m[1], splitArgs(m[2]), true
}

// splitArgs splits a formatted argument list on top-level commas,
// respecting quoted strings.
func splitArgs(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var args []string
	var current strings.Builder
	var quote rune
	escaped := false

	for _, c := range s {
		switch {
		case escaped:
			current.WriteRune(c)
			escaped = false
		case quote != 0 && c == '\\':
			current.WriteRune(c)
			escaped = true
		case quote != 0:
			current.WriteRune(c)
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			current.WriteRune(c)
			quote = c
		case c == ',':
			args = append(args, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(c)
		}
	}
	args = append(args, strings.TrimSpace(current.String()))
	return args
}

// stepNumberOf extracts the step number from a "step-{n}" node id.
func stepNumberOf(id string) (int, bool) {
	rest, ok := strings.CutPrefix(id, "step-")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}
	return n, true
}
