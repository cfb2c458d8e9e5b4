package executor

import (
	"fmt"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/trademinutes/tradeflow/dsl"
)

func TestValueSemanticsProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("numeric addition agrees with float sum", prop.ForAll(
		func(a, b float64) bool {
			result, ok := add(a, b).(float64)
			return ok && result == a+b
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("a string operand always concatenates", prop.ForAll(
		func(s string, n float64) bool {
			result, ok := add(s, n).(string)
			return ok && result == s+formatValue(n)
		},
		gen.AlphaString(),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.Property("!= is the negation of ==", prop.ForAll(
		func(a, b string) bool {
			return compare(a, "==", b) != compare(a, "!=", b)
		},
		gen.AlphaString(),
		gen.AlphaString(),
	))

	properties.Property("relational operators are consistent", prop.ForAll(
		func(a, b float64) bool {
			lt := compare(a, "<", b)
			gt := compare(a, ">", b)
			le := compare(a, "<=", b)
			ge := compare(a, ">=", b)
			if lt && gt {
				return false
			}
			return le == (lt || a == b) && ge == (gt || a == b)
		},
		gen.Float64Range(-1e6, 1e6),
		gen.Float64Range(-1e6, 1e6),
	))

	properties.TestingRun(t)
}

func TestExecuteProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	commandGen := gen.OneConstOf("print", "log", "fetch", "send_email", "notify", "archive")

	properties.Property("one record per flat step, in source order", prop.ForAll(
		func(commands []string) bool {
			var sb strings.Builder
			sb.WriteString("workflow \"Generated\" {\n")
			for i, command := range commands {
				fmt.Fprintf(&sb, "  step %d: %s(\"arg\")\n", i+1, command)
			}
			sb.WriteString("}\n")

			prog, err := dsl.Parse(sb.String())
			if err != nil {
				return false
			}
			trace := New().Execute(prog)
			if len(trace.Steps) != len(commands) {
				return false
			}
			for i, record := range trace.Steps {
				if record.Number != i+1 || record.Command != commands[i] {
					return false
				}
				if record.Result == nil || record.Result.Status == "" {
					return false
				}
			}
			return trace.RunID != ""
		},
		gen.SliceOf(commandGen),
	))

	properties.TestingRun(t)
}
