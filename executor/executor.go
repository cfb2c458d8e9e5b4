package executor

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trademinutes/tradeflow/dsl"
)

// Executor walks a program's AST, maintaining a variable environment and a
// per-step result table, and simulates every command effect. One Execute
// call owns its state exclusively; the environment and result table must
// not be shared across concurrent executions.
type Executor struct {
	logger       *zap.Logger
	logVariables bool

	variables   map[string]any
	stepResults map[int]*StepResult
	trace       *Trace
}

// New creates an executor that logs nothing. Use WithLogger for a
// structured execution log.
func New() *Executor {
	return &Executor{logger: zap.NewNop(), logVariables: true}
}

// WithLogger sets the structured logger used for the execution trace.
func (e *Executor) WithLogger(logger *zap.Logger) *Executor {
	e.logger = logger.With(zap.String("component", "executor"))
	return e
}

// WithVariableTrace controls whether variable bindings are written to the
// debug log. Bindings are always recorded in the returned trace.
func (e *Executor) WithVariableTrace(enabled bool) *Executor {
	e.logVariables = enabled
	return e
}

// Execute runs the whole program: first every top-level variable
// declaration in source order (later declarations of the same name
// overwrite earlier ones), then each workflow's body in order. It never
// fails: unknown commands degrade to a generic record and unresolved
// references evaluate to nil. The returned trace is scoped to this call
// and not persisted.
func (e *Executor) Execute(prog *dsl.Program) *Trace {
	// Fresh state per run; accumulator state never leaks across calls.
	e.variables = make(map[string]any)
	e.stepResults = make(map[int]*StepResult)
	e.trace = &Trace{
		RunID:     uuid.NewString(),
		Variables: []VarBinding{},
		Steps:     []StepRecord{},
	}

	logger := e.logger.With(zap.String("run_id", e.trace.RunID))
	logger.Info("execution started",
		zap.Int("variables", len(prog.Variables)),
		zap.Int("workflows", len(prog.Workflows)))

	for i := range prog.Variables {
		e.executeVariable(logger, &prog.Variables[i])
	}
	for i := range prog.Workflows {
		e.executeWorkflow(logger, &prog.Workflows[i])
	}

	logger.Info("execution finished", zap.Int("steps", len(e.trace.Steps)))
	return e.trace
}

func (e *Executor) executeVariable(logger *zap.Logger, decl *dsl.VarDecl) {
	value := e.evaluate(decl.Value)
	e.variables[decl.Name] = value
	e.trace.Variables = append(e.trace.Variables, VarBinding{Name: decl.Name, Value: value})
	if e.logVariables {
		logger.Debug("variable bound",
			zap.String("keyword", decl.Keyword),
			zap.String("name", decl.Name),
			zap.String("value", formatValue(value)))
	}
}

func (e *Executor) executeWorkflow(logger *zap.Logger, wf *dsl.Workflow) {
	wfLogger := logger.With(zap.String("workflow", wf.Name))
	wfLogger.Info("workflow started")

	for _, stmt := range wf.Body {
		switch s := stmt.(type) {
		case *dsl.Step:
			e.executeStep(wfLogger, wf.Name, s)
		case *dsl.Conditional:
			e.executeConditional(wfLogger, wf.Name, s)
		}
	}
}

func (e *Executor) executeStep(logger *zap.Logger, workflow string, step *dsl.Step) {
	result := e.executeCommand(&step.Command)
	e.stepResults[step.Number] = result
	e.trace.Steps = append(e.trace.Steps, StepRecord{
		Workflow: workflow,
		Number:   step.Number,
		Command:  step.Command.Name,
		Result:   result,
	})
	logger.Info("step executed",
		zap.Int("step", step.Number),
		zap.String("command", step.Command.Name),
		zap.String("status", result.Status))
}

// executeConditional evaluates the guard and runs exactly one branch
// through the same step routine, so nested structures execute uniformly.
func (e *Executor) executeConditional(logger *zap.Logger, workflow string, cond *dsl.Conditional) {
	taken := e.evaluateCondition(cond.Condition)
	logger.Debug("conditional evaluated", zap.Bool("condition", taken))

	steps := cond.IfSteps
	if !taken {
		steps = cond.ElseSteps
	}
	for _, step := range steps {
		e.executeStep(logger, workflow, step)
	}
}

// executeCommand dispatches a command to its hard-coded effect simulator.
// No command ever fails; unknown names produce a generic completed record.
func (e *Executor) executeCommand(cmd *dsl.Command) *StepResult {
	args := make([]any, 0, len(cmd.Args))
	for _, arg := range cmd.Args {
		args = append(args, e.evaluate(arg))
	}

	switch cmd.Name {
	case "print", "log":
		return &StepResult{
			Type:   cmd.Name,
			Status: "success",
			Output: joinArgs(args),
		}

	case "fetch":
		url := "https://api.example.com"
		if len(args) > 0 {
			url = formatValue(args[0])
		}
		return &StepResult{
			Type:   "fetch",
			Status: "success",
			URL:    url,
			Data:   fmt.Sprintf(`{"data": "Sample data from %s"}`, url),
		}

	case "send_email":
		to := "user@example.com"
		if len(args) > 0 {
			to = formatValue(args[0])
		}
		var data any
		if len(args) > 1 {
			data = args[1]
		}
		return &StepResult{
			Type:   "send_email",
			Status: "sent",
			To:     to,
			Data:   data,
		}

	case "notify":
		var to, message string
		if len(args) > 0 {
			to = formatValue(args[0])
		}
		if len(args) > 1 {
			message = formatValue(args[1])
		}
		return &StepResult{
			Type:    "notify",
			Status:  "sent",
			To:      to,
			Message: message,
		}

	default:
		formatted := make([]string, 0, len(args))
		for _, arg := range args {
			formatted = append(formatted, formatValue(arg))
		}
		return &StepResult{
			Type:   cmd.Name,
			Status: "completed",
			Data:   formatted,
		}
	}
}

func (e *Executor) evaluateCondition(cond *dsl.Comparison) bool {
	if cond == nil {
		return false
	}
	left := e.evaluate(cond.Left)
	right := e.evaluate(cond.Right)
	return compare(left, cond.Op, right)
}

// evaluate resolves an expression to a runtime value. Undefined variables
// and unresolved step references evaluate to nil rather than raising.
func (e *Executor) evaluate(expr dsl.Expr) any {
	switch v := expr.(type) {
	case *dsl.StringLit:
		return v.Value
	case *dsl.NumberLit:
		return v.Value
	case *dsl.Ident:
		return e.variables[v.Name]
	case *dsl.Binary:
		return add(e.evaluate(v.Left), e.evaluate(v.Right))
	case *dsl.StepRef:
		if result, ok := e.stepResults[v.Number]; ok {
			return result
		}
		return nil
	case *dsl.PropertyAccess:
		object := e.evaluate(v.Object)
		if result, ok := object.(*StepResult); ok {
			return result.Property(v.Property)
		}
		return nil
	case *dsl.Comparison:
		return compare(e.evaluate(v.Left), v.Op, e.evaluate(v.Right))
	default:
		return nil
	}
}

func joinArgs(args []any) string {
	parts := make([]string, 0, len(args))
	for _, arg := range args {
		parts = append(parts, formatValue(arg))
	}
	return strings.Join(parts, " ")
}
