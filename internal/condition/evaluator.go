// Package condition evaluates jurisdiction rule condition trees against a
// scenario record.
//
// Rules arrive as data, authored outside this codebase, so evaluation
// fails closed: an unknown operator, a malformed node, or a wrong operand
// count makes the condition false rather than returning an error. A
// malformed rule silently does not apply; it never aborts a calculation.
package condition

import (
	"strings"

	"github.com/Veraticus/dealcalc/internal/model"
)

// Evaluate reports whether a condition tree holds for the given record.
// The empty condition is unconditionally true.
func Evaluate(c model.Condition, record map[string]any) bool {
	if c.IsEmpty() {
		return true
	}

	switch c.Op {
	case "and":
		for _, arg := range c.Args {
			if !Evaluate(arg, record) {
				return false
			}
		}
		return true
	case "or":
		for _, arg := range c.Args {
			if Evaluate(arg, record) {
				return true
			}
		}
		return false
	case "==", "!=", ">", ">=", "<", "<=":
		return compare(c, record)
	default:
		// Unknown operator, bare var, or bare literal in condition
		// position: fail closed.
		return false
	}
}

// operand is a resolved comparison operand. explicitNull distinguishes a
// literal null written by the rule author from a field path that simply
// did not resolve.
type operand struct {
	value        any
	explicitNull bool
}

func compare(c model.Condition, record map[string]any) bool {
	if len(c.Args) != 2 {
		return false
	}

	left, lok := resolve(c.Args[0], record)
	right, rok := resolve(c.Args[1], record)
	if !lok || !rok {
		return false
	}

	// Null handling: a missing field compares false against everything
	// except an explicit null check.
	if left.value == nil || right.value == nil {
		switch c.Op {
		case "==":
			return left.value == nil && right.value == nil
		case "!=":
			if left.explicitNull || right.explicitNull {
				return (left.value == nil) != (right.value == nil)
			}
			return false
		default:
			return false
		}
	}

	if lf, lnum := asNumber(left.value); lnum {
		if rf, rnum := asNumber(right.value); rnum {
			return compareNumbers(c.Op, lf, rf)
		}
		return false
	}

	switch c.Op {
	case "==":
		return equal(left.value, right.value)
	case "!=":
		return !equal(left.value, right.value)
	default:
		// Ordered comparison is numeric-only.
		return false
	}
}

// resolve turns a condition leaf into a comparison value. Nested operator
// nodes are not values; they make the comparison fail closed.
func resolve(c model.Condition, record map[string]any) (operand, bool) {
	switch {
	case c.IsVar:
		return operand{value: lookupPath(record, c.VarPath)}, true
	case c.IsLit:
		return operand{value: c.Lit, explicitNull: c.Lit == nil}, true
	default:
		return operand{}, false
	}
}

// lookupPath walks a dotted field path through nested maps. A missing or
// non-map intermediate yields nil, the "undefined" value.
func lookupPath(record map[string]any, path string) any {
	if path == "" {
		return nil
	}
	var current any = record
	for _, segment := range strings.Split(path, ".") {
		m, ok := current.(map[string]any)
		if !ok {
			return nil
		}
		current, ok = m[segment]
		if !ok {
			return nil
		}
	}
	return current
}

func compareNumbers(op string, left, right float64) bool {
	switch op {
	case "==":
		return left == right
	case "!=":
		return left != right
	case ">":
		return left > right
	case ">=":
		return left >= right
	case "<":
		return left < right
	case "<=":
		return left <= right
	default:
		return false
	}
}

func asNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// equal compares same-typed values: strings by equality, booleans by
// equality. Mismatched types are never equal.
func equal(left, right any) bool {
	switch l := left.(type) {
	case string:
		r, ok := right.(string)
		return ok && l == r
	case bool:
		r, ok := right.(bool)
		return ok && l == r
	default:
		return false
	}
}
