// Package tradeflow provides the top-level entry point combining the DSL
// front end with validation and graph generation.
//
// Usage:
//
//	import "github.com/trademinutes/tradeflow"
//
//	result := tradeflow.ParseDSL(source)
//	if result.Success {
//	    // result.Graph holds the React Flow projection
//	}
//
// The individual stages live in the dsl, graph, and executor packages; use
// them directly when finer control is needed.
package tradeflow

import (
	"github.com/trademinutes/tradeflow/dsl"
	"github.com/trademinutes/tradeflow/graph"
)

// ParseResult is the normalized outcome of the parse → validate → generate
// pipeline.
type ParseResult struct {
	Success    bool         `json:"success"`
	Graph      *graph.Graph `json:"reactFlowData,omitempty"`
	Validation dsl.Result   `json:"validation"`
	Program    *dsl.Program `json:"-"`
	Error      string       `json:"error,omitempty"`
}

// ParseDSL runs the full front-end pipeline over workflow source text. Any
// lexical or syntax failure is caught and normalized into an invalid
// result rather than returned as an error; the graph is only generated
// when validation passes and the program contains a workflow.
func ParseDSL(source string) *ParseResult {
	prog, err := dsl.Parse(source)
	if err != nil {
		return &ParseResult{
			Success: false,
			Error:   err.Error(),
			Validation: dsl.Result{
				Valid:  false,
				Errors: []string{err.Error()},
			},
		}
	}

	validation := dsl.Validate(prog)
	result := &ParseResult{
		Success:    validation.Valid,
		Validation: validation,
		Program:    prog,
	}
	if !validation.Valid {
		return result
	}

	g, err := graph.Generate(prog)
	if err != nil {
		// A valid program with no workflow (declarations only) has no
		// graph projection; the parse itself still succeeds.
		return result
	}
	result.Graph = g
	return result
}
