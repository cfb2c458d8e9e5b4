package executor

import (
	"fmt"
	"strconv"
)

// Runtime values are dynamically typed: string, float64, *StepResult, or
// nil. The helpers below implement the coercion rules explicitly rather
// than relying on any native operator semantics.

// formatValue renders a runtime value's string form. Integral floats
// render without a decimal point, so "x" + 1 concatenates to "x1".
func formatValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	case *StepResult:
		if val.Data != nil {
			return formatValue(val.Data)
		}
		return val.Output
	default:
		return fmt.Sprintf("%v", val)
	}
}

// toFloat64 attempts numeric coercion of a runtime value.
func toFloat64(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case string:
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

// add implements the dual `+` semantics: if either operand's runtime value
// is textual the result is the concatenation of both operands' string
// forms; otherwise, when both are numeric, the result is their numeric
// sum.
func add(left, right any) any {
	_, leftText := left.(string)
	_, rightText := right.(string)
	if !leftText && !rightText {
		lf, lok := toFloat64(left)
		rf, rok := toFloat64(right)
		if lok && rok {
			return lf + rf
		}
	}
	return formatValue(left) + formatValue(right)
}

// compare evaluates a comparison operator over two runtime values. For
// == and != the coercion rule is numeric-first: when both sides coerce to
// numbers they compare numerically, otherwise their string forms compare.
// The relational operators coerce both sides to numbers, with values that
// do not parse treated as zero.
func compare(left any, op string, right any) bool {
	if op == "==" || op == "!=" {
		lf, lok := toFloat64(left)
		rf, rok := toFloat64(right)
		var equal bool
		if lok && rok {
			equal = lf == rf
		} else {
			equal = formatValue(left) == formatValue(right)
		}
		if op == "==" {
			return equal
		}
		return !equal
	}

	lf, _ := toFloat64(left)
	rf, _ := toFloat64(right)
	switch op {
	case ">":
		return lf > rf
	case "<":
		return lf < rf
	case ">=":
		return lf >= rf
	case "<=":
		return lf <= rf
	}
	return false
}

// truthy reports the truthiness of a runtime value: non-empty, not "0",
// not "false".
func truthy(v any) bool {
	s := formatValue(v)
	return s != "" && s != "0" && s != "false"
}
