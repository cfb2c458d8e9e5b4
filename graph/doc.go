// Package graph projects a validated workflow AST into a directed-graph
// visualization model with React-Flow-compatible JSON, and performs the
// best-effort inverse projection from a graph back to DSL source text.
package graph
