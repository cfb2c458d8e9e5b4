package dsl

import "fmt"

// builtinCommands is the fixed set of command names with dedicated
// execution semantics. Any other name validates with a warning and
// executes generically.
var builtinCommands = map[string]bool{
	"print":      true,
	"log":        true,
	"fetch":      true,
	"send_email": true,
	"notify":     true,
}

// Result is the outcome of validating a Program. Errors and warnings
// accumulate across the whole AST in a single pass; Valid is strictly
// len(Errors) == 0.
type Result struct {
	Valid    bool     `json:"isValid"`
	Errors   []string `json:"errors"`
	Warnings []string `json:"warnings"`
}

// Validate performs all semantic checks over the AST and returns a fresh
// Result. It never fails and never mutates the tree; workflows are checked
// independently of each other.
func Validate(prog *Program) Result {
	v := &validator{}
	for i := range prog.Workflows {
		v.validateWorkflow(&prog.Workflows[i])
	}
	return Result{
		Valid:    len(v.errors) == 0,
		Errors:   v.errors,
		Warnings: v.warnings,
	}
}

// validator accumulates findings for a single Validate call. It is never
// reused across calls.
type validator struct {
	errors   []string
	warnings []string
}

func (v *validator) errorf(format string, args ...any) {
	v.errors = append(v.errors, fmt.Sprintf(format, args...))
}

func (v *validator) warnf(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validateWorkflow(wf *Workflow) {
	if wf.Name == "" {
		v.errorf("Workflow is missing a name")
		return
	}

	steps := wf.Steps()
	if len(steps) == 0 && len(wf.Body) == 0 {
		v.warnf("Workflow %q has no steps", wf.Name)
		return
	}

	// Duplicate step numbers, set-membership scan over the flat list.
	seen := make(map[int]bool)
	for _, step := range steps {
		if seen[step.Number] {
			v.errorf("Duplicate step number %d in workflow %q", step.Number, wf.Name)
		}
		seen[step.Number] = true
	}

	graph := BuildDepGraph(wf)

	for _, step := range steps {
		v.validateStep(wf, step, graph)
	}
	for _, stmt := range wf.Body {
		if cond, ok := stmt.(*Conditional); ok {
			v.validateConditional(wf, cond, graph)
		}
	}

	// Cycle detection over the flat step list only; references inside
	// conditional branches are not part of the dependency graph.
	if graph.HasCycle() {
		v.errorf("Circular reference detected in workflow %q", wf.Name)
	}
}

func (v *validator) validateStep(wf *Workflow, step *Step, graph *DepGraph) {
	if step.Number <= 0 {
		v.errorf("Step in workflow %q has an invalid step number %d", wf.Name, step.Number)
	}
	v.validateCommand(wf, step.Number, &step.Command, graph)
}

// validateConditional checks branch steps' commands and references. Branch
// steps do not participate in duplicate-number or cycle checks.
func (v *validator) validateConditional(wf *Workflow, cond *Conditional, graph *DepGraph) {
	for _, step := range cond.IfSteps {
		v.validateStep(wf, step, graph)
	}
	for _, step := range cond.ElseSteps {
		v.validateStep(wf, step, graph)
	}
}

func (v *validator) validateCommand(wf *Workflow, stepNumber int, cmd *Command, graph *DepGraph) {
	if cmd.Name == "" {
		v.errorf("Step %d in workflow %q is missing a command", stepNumber, wf.Name)
		return
	}
	if !builtinCommands[cmd.Name] {
		v.warnf("Unknown command %q in step %d of workflow %q", cmd.Name, stepNumber, wf.Name)
	}

	for _, ref := range stepRefs(cmd.Args) {
		switch {
		case ref == stepNumber:
			v.errorf("Step %d in workflow %q references itself", stepNumber, wf.Name)
		case !graph.Has(ref):
			v.errorf("Step %d in workflow %q references non-existent step %d", stepNumber, wf.Name, ref)
		case ref > stepNumber:
			v.warnf("Step %d in workflow %q references later step %d (forward reference)", stepNumber, wf.Name, ref)
		}
	}
}
