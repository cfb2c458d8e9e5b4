package dsl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParser_FlatWorkflow(t *testing.T) {
	source := `workflow "MyFlow" {
		step 1: fetch("https://api.com")
		step 2: summarize(step 1)
		step 3: send_email("user@example.com", step 2)
	}`

	prog, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, prog.Workflows, 1)

	wf := prog.Workflows[0]
	assert.Equal(t, "MyFlow", wf.Name)
	require.Len(t, wf.Body, 3)

	step1 := wf.Body[0].(*Step)
	assert.Equal(t, 1, step1.Number)
	assert.Equal(t, "fetch", step1.Command.Name)
	require.Len(t, step1.Command.Args, 1)
	assert.Equal(t, &StringLit{Value: "https://api.com"}, step1.Command.Args[0])

	step2 := wf.Body[1].(*Step)
	assert.Equal(t, "summarize", step2.Command.Name)
	assert.Equal(t, &StepRef{Number: 1}, step2.Command.Args[0])

	step3 := wf.Body[2].(*Step)
	require.Len(t, step3.Command.Args, 2)
	assert.Equal(t, &StepRef{Number: 2}, step3.Command.Args[1])
}

func TestParser_VariableDeclarations(t *testing.T) {
	source := `let url = "https://api.com"
	var count = 3
	const greeting = "hi" + " there"`

	prog, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, prog.Variables, 3)

	assert.Equal(t, VarDecl{Keyword: "let", Name: "url", Value: &StringLit{Value: "https://api.com"}}, prog.Variables[0])
	assert.Equal(t, "var", prog.Variables[1].Keyword)
	assert.Equal(t, &NumberLit{Value: 3}, prog.Variables[1].Value)

	binary, ok := prog.Variables[2].Value.(*Binary)
	require.True(t, ok)
	assert.Equal(t, "+", binary.Op)
}

func TestParser_BinaryLeftAssociative(t *testing.T) {
	prog, err := Parse(`let s = "a" + "b" + "c"`)
	require.NoError(t, err)

	outer, ok := prog.Variables[0].Value.(*Binary)
	require.True(t, ok)
	// ("a" + "b") + "c"
	inner, ok := outer.Left.(*Binary)
	require.True(t, ok)
	assert.Equal(t, &StringLit{Value: "a"}, inner.Left)
	assert.Equal(t, &StringLit{Value: "c"}, outer.Right)
}

func TestParser_StepReferenceWithProperty(t *testing.T) {
	prog, err := Parse(`workflow "W" { step 2: notify("ops", step 1.status) }`)
	require.NoError(t, err)

	step := prog.Workflows[0].Body[0].(*Step)
	access, ok := step.Command.Args[1].(*PropertyAccess)
	require.True(t, ok)
	assert.Equal(t, "status", access.Property)
	assert.Equal(t, &StepRef{Number: 1}, access.Object)
}

func TestParser_Conditional(t *testing.T) {
	source := `workflow "W" {
		step 1: fetch("https://api.com")
		if (step 1.status == "success") {
			step 2: notify("ops", "fetched")
		} else {
			step 3: log("failed")
		}
	}`

	prog, err := Parse(source)
	require.NoError(t, err)

	cond, ok := prog.Workflows[0].Body[1].(*Conditional)
	require.True(t, ok)
	assert.Equal(t, "==", cond.Condition.Op)
	require.Len(t, cond.IfSteps, 1)
	require.Len(t, cond.ElseSteps, 1)
	assert.Equal(t, 2, cond.IfSteps[0].Number)
	assert.Equal(t, 3, cond.ElseSteps[0].Number)
}

func TestParser_ConditionalWithoutElse(t *testing.T) {
	source := `workflow "W" {
		step 1: fetch("https://api.com")
		if (step 1.status != "success") {
			step 2: log("failed")
		}
	}`

	prog, err := Parse(source)
	require.NoError(t, err)

	cond := prog.Workflows[0].Body[1].(*Conditional)
	require.Len(t, cond.IfSteps, 1)
	assert.Empty(t, cond.ElseSteps)
}

func TestParser_CommandKeywordNames(t *testing.T) {
	// Built-in command names lex as keywords but still parse in command
	// position.
	prog, err := Parse(`workflow "W" { step 1: print("hello") step 2: send_email("a@b.c") }`)
	require.NoError(t, err)

	assert.Equal(t, "print", prog.Workflows[0].Body[0].(*Step).Command.Name)
	assert.Equal(t, "send_email", prog.Workflows[0].Body[1].(*Step).Command.Name)
}

func TestParser_PermissiveTopLevel(t *testing.T) {
	// Unknown tokens between top-level constructs are skipped.
	source := `garbage here
	workflow "W" { step 1: log("ok") }`

	prog, err := Parse(source)
	require.NoError(t, err)
	require.Len(t, prog.Workflows, 1)
	assert.Equal(t, "W", prog.Workflows[0].Name)
}

func TestParser_StrictTopLevel(t *testing.T) {
	tokens, err := NewLexer(`garbage workflow "W" { step 1: log("ok") }`).Tokenize()
	require.NoError(t, err)

	parser := NewParser(tokens)
	parser.Strict = true
	_, err = parser.Parse()
	require.Error(t, err)

	var synErr *SyntaxError
	require.ErrorAs(t, err, &synErr)
	assert.Equal(t, "garbage", synErr.Got)
}

func TestParser_SyntaxErrors(t *testing.T) {
	tests := []struct {
		name     string
		source   string
		expected string
	}{
		{"missing workflow name", `workflow { step 1: log("x") }`, "workflow name string"},
		{"missing colon", `workflow "W" { step 1 log("x") }`, "':'"},
		{"missing step number", `workflow "W" { step : log("x") }`, "step number"},
		{"missing close paren", `workflow "W" { step 1: log("x" }`, "')'"},
		{"missing close brace", `workflow "W" { step 1: log("x")`, "'}'"},
		{"missing comparison operator", `workflow "W" { if (step 1) { step 2: log("x") } else { } }`, "comparison operator"},
		{"missing equals", `let a "x"`, "'='"},
		{"missing expression", `let a = ,`, "expression"},
		{"fractional step number", `workflow "W" { step 1.5: log("x") }`, "integer step number"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.source)
			require.Error(t, err)

			var synErr *SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tt.expected, synErr.Expected)
		})
	}
}

func TestParser_NoPartialAST(t *testing.T) {
	prog, err := Parse(`workflow "W" { step 1: log("ok") } workflow "X" { step `)
	require.Error(t, err)
	assert.Nil(t, prog)
}

func TestParser_DeclarationOrderPreserved(t *testing.T) {
	prog, err := Parse(`let a = 1
	let b = 2
	let a = 3`)
	require.NoError(t, err)

	require.Len(t, prog.Variables, 3)
	assert.Equal(t, "a", prog.Variables[0].Name)
	assert.Equal(t, "b", prog.Variables[1].Name)
	assert.Equal(t, "a", prog.Variables[2].Name)
}
