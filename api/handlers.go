package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/trademinutes/tradeflow"
	"github.com/trademinutes/tradeflow/dsl"
	"github.com/trademinutes/tradeflow/executor"
	"github.com/trademinutes/tradeflow/graph"
)

// HandleParse runs the full parse → validate → generate pipeline and
// returns the normalized result. Parse failures return 200 with
// success=false; the pipeline itself never errors out.
func (s *Service) HandleParse(w http.ResponseWriter, r *http.Request) {
	source, ok := s.readSource(w, r)
	if !ok {
		return
	}

	result := tradeflow.ParseDSL(source)
	s.recordParse(result)

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// HandleValidate parses and validates without generating a graph.
func (s *Service) HandleValidate(w http.ResponseWriter, r *http.Request) {
	source, ok := s.readSource(w, r)
	if !ok {
		return
	}

	prog, err := s.parseProgram(source)
	if err != nil {
		json.NewEncoder(w).Encode(dsl.Result{Valid: false, Errors: []string{err.Error()}})
		return
	}

	json.NewEncoder(w).Encode(dsl.Validate(prog))
}

// HandleConvert converts a graph model back to DSL source text.
func (s *Service) HandleConvert(w http.ResponseWriter, r *http.Request) {
	var req ConvertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	source, err := graph.ToDSL(req.Graph)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	json.NewEncoder(w).Encode(ConvertResponse{Source: source})
}

// HandleExecute parses and runs the program, returning the simulated
// execution trace. Validation findings do not block execution; the
// interpreter is permissive by design.
func (s *Service) HandleExecute(w http.ResponseWriter, r *http.Request) {
	source, ok := s.readSource(w, r)
	if !ok {
		return
	}

	prog, err := s.parseProgram(source)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	exec := executor.New().
		WithLogger(s.logger).
		WithVariableTrace(s.cfg.Executor.TraceVariables)
	trace := exec.Execute(prog)
	if s.collector != nil {
		s.collector.RecordExecution(len(trace.Steps))
	}

	json.NewEncoder(w).Encode(ExecuteResponse{Trace: trace})
}

// HandleHealth reports liveness.
func (s *Service) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

// parseProgram parses source text honoring the configured strict mode.
func (s *Service) parseProgram(source string) (*dsl.Program, error) {
	tokens, err := dsl.NewLexer(source).Tokenize()
	if err != nil {
		return nil, err
	}
	parser := dsl.NewParser(tokens)
	parser.Strict = s.cfg.Parser.Strict
	return parser.Parse()
}

func (s *Service) readSource(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req SourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return "", false
	}
	if req.Source == "" {
		writeError(w, http.StatusBadRequest, "source is required")
		return "", false
	}
	return req.Source, true
}

func (s *Service) recordParse(result *tradeflow.ParseResult) {
	if s.collector == nil {
		return
	}
	switch {
	case result.Error != "":
		s.collector.RecordParse("error")
	case !result.Validation.Valid:
		s.collector.RecordParse("invalid")
	default:
		s.collector.RecordParse("success")
	}
	if result.Error != "" {
		s.logger.Debug("parse failed", zap.String("error", result.Error))
	}
}
