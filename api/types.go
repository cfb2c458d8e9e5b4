package api

import (
	"github.com/trademinutes/tradeflow/executor"
	"github.com/trademinutes/tradeflow/graph"
)

// SourceRequest carries workflow source text to parse, validate, or
// execute.
type SourceRequest struct {
	Source string `json:"source"`
}

// ConvertRequest carries a graph model to convert back to DSL text.
type ConvertRequest struct {
	Graph *graph.Graph `json:"graph"`
}

// ConvertResponse is the converted DSL source.
type ConvertResponse struct {
	Source string `json:"source"`
}

// ExecuteResponse is the simulated execution trace of one run.
type ExecuteResponse struct {
	Trace *executor.Trace `json:"trace"`
}

// ErrorResponse is the uniform error body.
type ErrorResponse struct {
	Message string `json:"message"`
}
