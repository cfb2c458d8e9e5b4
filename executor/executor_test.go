package executor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trademinutes/tradeflow/dsl"
)

func runSource(t *testing.T, source string) *Trace {
	t.Helper()
	prog, err := dsl.Parse(source)
	require.NoError(t, err)
	return New().Execute(prog)
}

func TestExecute_Variables(t *testing.T) {
	trace := runSource(t, `
		let url = "https://api.com"
		var count = 1 + 2
		const greeting = "hello " + "world"
	`)

	require.Len(t, trace.Variables, 3)
	assert.Equal(t, VarBinding{Name: "url", Value: "https://api.com"}, trace.Variables[0])
	assert.Equal(t, VarBinding{Name: "count", Value: 3.0}, trace.Variables[1])
	assert.Equal(t, VarBinding{Name: "greeting", Value: "hello world"}, trace.Variables[2])
}

func TestExecute_LastWriteWins(t *testing.T) {
	trace := runSource(t, `
		let name = "first"
		let name = "second"
		workflow "W" {
			step 1: print(name)
		}
	`)

	require.Len(t, trace.Steps, 1)
	assert.Equal(t, "second", trace.Steps[0].Result.Output)
}

func TestExecute_VariableReferencesEarlierVariable(t *testing.T) {
	trace := runSource(t, `
		let base = "https://api.com"
		let endpoint = base + "/users"
	`)

	require.Len(t, trace.Variables, 2)
	assert.Equal(t, "https://api.com/users", trace.Variables[1].Value)
}

func TestExecute_PrintAndLog(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: print("hello", "world")
		step 2: log("count:", 42)
	}`)

	require.Len(t, trace.Steps, 2)

	first := trace.Steps[0]
	assert.Equal(t, "W", first.Workflow)
	assert.Equal(t, 1, first.Number)
	assert.Equal(t, "print", first.Command)
	assert.Equal(t, "print", first.Result.Type)
	assert.Equal(t, "success", first.Result.Status)
	assert.Equal(t, "hello world", first.Result.Output)

	assert.Equal(t, "count: 42", trace.Steps[1].Result.Output)
}

func TestExecute_Fetch(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: fetch("https://api.com/users")
	}`)

	result := trace.Steps[0].Result
	assert.Equal(t, "fetch", result.Type)
	assert.Equal(t, "success", result.Status)
	assert.Equal(t, "https://api.com/users", result.URL)
	assert.Equal(t, `{"data": "Sample data from https://api.com/users"}`, result.Data)
}

func TestExecute_FetchDefaultURL(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: fetch()
	}`)

	assert.Equal(t, "https://api.example.com", trace.Steps[0].Result.URL)
}

func TestExecute_SendEmail(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: send_email("ops@example.com", step 1)
	}`)

	result := trace.Steps[1].Result
	assert.Equal(t, "send_email", result.Type)
	assert.Equal(t, "sent", result.Status)
	assert.Equal(t, "ops@example.com", result.To)
	require.IsType(t, &StepResult{}, result.Data)
	assert.Equal(t, "fetch", result.Data.(*StepResult).Type)
}

func TestExecute_Notify(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: notify("oncall", "pipeline done")
	}`)

	result := trace.Steps[0].Result
	assert.Equal(t, "notify", result.Type)
	assert.Equal(t, "sent", result.Status)
	assert.Equal(t, "oncall", result.To)
	assert.Equal(t, "pipeline done", result.Message)
}

func TestExecute_UnknownCommand(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: summarize("a", 2)
	}`)

	result := trace.Steps[0].Result
	assert.Equal(t, "summarize", result.Type)
	assert.Equal(t, "completed", result.Status)
	assert.Equal(t, []string{"a", "2"}, result.Data)
}

func TestExecute_StepReference(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: log("payload: " + step 1.data)
	}`)

	assert.Equal(t, `payload: {"data": "Sample data from https://api.com"}`, trace.Steps[1].Result.Output)
}

func TestExecute_PropertyProjection(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: log(step 1.status, step 1.url)
	}`)

	assert.Equal(t, "success https://api.com", trace.Steps[1].Result.Output)
}

func TestExecute_UnknownPropertyFallsBackToData(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: fetch("https://api.com")
		step 2: log(step 1.payload)
	}`)

	assert.Equal(t, `{"data": "Sample data from https://api.com"}`, trace.Steps[1].Result.Output)
}

func TestExecute_UnresolvedReferenceIsNil(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: log("got: " + step 9)
	}`)

	assert.Equal(t, "got: ", trace.Steps[0].Result.Output)
}

func TestExecute_ConditionalTakesIfBranch(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		step 1: fetch("https://api.com")
		if (step 1.status == "success") {
			step 2: notify("oncall", "ok")
		} else {
			step 3: notify("oncall", "failed")
		}
	}`)

	require.Len(t, trace.Steps, 2)
	assert.Equal(t, 2, trace.Steps[1].Number)
	assert.Equal(t, "ok", trace.Steps[1].Result.Message)
}

func TestExecute_ConditionalTakesElseBranch(t *testing.T) {
	trace := runSource(t, `
		let threshold = 10
		workflow "W" {
			if (threshold > 100) {
				step 1: print("big")
			} else {
				step 2: print("small")
			}
		}
	`)

	require.Len(t, trace.Steps, 1)
	assert.Equal(t, "small", trace.Steps[0].Result.Output)
}

func TestExecute_ConditionalWithoutElseSkips(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		if (1 > 2) {
			step 1: print("never")
		}
	}`)

	assert.Empty(t, trace.Steps)
}

func TestExecute_BranchResultsVisibleToLaterSteps(t *testing.T) {
	trace := runSource(t, `workflow "W" {
		if (1 < 2) {
			step 1: fetch("https://api.com")
		}
		step 2: log(step 1.status)
	}`)

	require.Len(t, trace.Steps, 2)
	assert.Equal(t, "success", trace.Steps[1].Result.Output)
}

func TestExecute_FreshStatePerRun(t *testing.T) {
	prog, err := dsl.Parse(`workflow "W" {
		step 1: print("x")
	}`)
	require.NoError(t, err)

	exec := New()
	first := exec.Execute(prog)
	second := exec.Execute(prog)

	assert.NotEqual(t, first.RunID, second.RunID)
	assert.Len(t, second.Steps, 1)
	assert.NotEmpty(t, second.RunID)
}

func TestExecute_MultipleWorkflowsRunInOrder(t *testing.T) {
	trace := runSource(t, `
		workflow "A" {
			step 1: print("a")
		}
		workflow "B" {
			step 1: print("b")
		}
	`)

	require.Len(t, trace.Steps, 2)
	assert.Equal(t, "A", trace.Steps[0].Workflow)
	assert.Equal(t, "B", trace.Steps[1].Workflow)
}
