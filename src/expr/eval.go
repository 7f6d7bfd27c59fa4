package expr

import (
	"fmt"
	"math"
	"strconv"
)

// Scope is the flat variable namespace an expression is evaluated against:
// field name -> current answer value. Unanswered fields must be absent, not
// nil — referencing an absent field is an evaluation error, which is what
// drives the fail-open/undefined behavior upstream.
type Scope map[string]any

// Evaluate parses and evaluates src against scope.
func Evaluate(src string, scope Scope) (any, error) {
	n, err := Parse(src)
	if err != nil {
		return nil, err
	}
	return EvalNode(n, scope)
}

// EvalNode evaluates a parsed expression tree against scope.
func EvalNode(n Node, scope Scope) (any, error) {
	switch x := n.(type) {
	case NumberLit:
		return x.Value, nil
	case StringLit:
		return x.Value, nil
	case BoolLit:
		return x.Value, nil
	case NullLit:
		return nil, nil
	case Ident:
		v, ok := scope[x.Name]
		if !ok {
			return nil, fmt.Errorf("unknown identifier %q", x.Name)
		}
		return v, nil
	case Unary:
		return evalUnary(x, scope)
	case Binary:
		return evalBinary(x, scope)
	}
	return nil, fmt.Errorf("unsupported expression node %T", n)
}

func evalUnary(u Unary, scope Scope) (any, error) {
	v, err := EvalNode(u.X, scope)
	if err != nil {
		return nil, err
	}
	switch u.Op {
	case "!":
		return !Truthy(v), nil
	case "-":
		n, ok := toNumber(v)
		if !ok {
			return nil, fmt.Errorf("operand of unary '-' is not a number")
		}
		return -n, nil
	}
	return nil, fmt.Errorf("unsupported unary operator %q", u.Op)
}

func evalBinary(b Binary, scope Scope) (any, error) {
	// && and || short-circuit and keep JS semantics of returning the
	// deciding operand, so chained conditions compose the way form authors
	// expect from the web builder.
	if b.Op == "&&" || b.Op == "||" {
		l, err := EvalNode(b.L, scope)
		if err != nil {
			return nil, err
		}
		if b.Op == "&&" && !Truthy(l) {
			return l, nil
		}
		if b.Op == "||" && Truthy(l) {
			return l, nil
		}
		return EvalNode(b.R, scope)
	}

	l, err := EvalNode(b.L, scope)
	if err != nil {
		return nil, err
	}
	r, err := EvalNode(b.R, scope)
	if err != nil {
		return nil, err
	}

	switch b.Op {
	case "==":
		return looseEqual(l, r), nil
	case "!=":
		return !looseEqual(l, r), nil
	case "===":
		return strictEqual(l, r), nil
	case "!==":
		return !strictEqual(l, r), nil
	case ">", ">=", "<", "<=":
		ln, lok := toNumber(l)
		rn, rok := toNumber(r)
		if !lok || !rok {
			// fall back to lexicographic comparison for two strings
			ls, lval := l.(string)
			rs, rval := r.(string)
			if lval && rval {
				return compareStrings(b.Op, ls, rs), nil
			}
			return nil, fmt.Errorf("operands of %q are not comparable", b.Op)
		}
		return compareNumbers(b.Op, ln, rn), nil
	case "+", "-", "*", "/", "%":
		return arithmetic(b.Op, l, r)
	}
	return nil, fmt.Errorf("unsupported operator %q", b.Op)
}

func arithmetic(op string, l, r any) (any, error) {
	// "+" concatenates when either side is a non-numeric string
	if op == "+" {
		if ls, ok := l.(string); ok {
			if _, numeric := toNumber(l); !numeric {
				return ls + stringify(r), nil
			}
		}
		if rs, ok := r.(string); ok {
			if _, numeric := toNumber(r); !numeric {
				return stringify(l) + rs, nil
			}
		}
	}

	ln, lok := toNumber(l)
	rn, rok := toNumber(r)
	if !lok || !rok {
		return nil, fmt.Errorf("operands of %q are not numeric", op)
	}
	switch op {
	case "+":
		return ln + rn, nil
	case "-":
		return ln - rn, nil
	case "*":
		return ln * rn, nil
	case "/":
		if rn == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return ln / rn, nil
	case "%":
		if rn == 0 {
			return nil, fmt.Errorf("division by zero")
		}
		return math.Mod(ln, rn), nil
	}
	return nil, fmt.Errorf("unsupported operator %q", op)
}

func compareNumbers(op string, l, r float64) bool {
	switch op {
	case ">":
		return l > r
	case ">=":
		return l >= r
	case "<":
		return l < r
	default:
		return l <= r
	}
}

func compareStrings(op, l, r string) bool {
	switch op {
	case ">":
		return l > r
	case ">=":
		return l >= r
	case "<":
		return l < r
	default:
		return l <= r
	}
}

// strictEqual mirrors ===: no cross-type coercion.
func strictEqual(l, r any) bool {
	if l == nil || r == nil {
		return l == nil && r == nil
	}
	if ln, ok := toStrictNumber(l); ok {
		rn, rok := toStrictNumber(r)
		return rok && ln == rn
	}
	if ls, ok := l.(string); ok {
		rs, rok := r.(string)
		return rok && ls == rs
	}
	if lb, ok := l.(bool); ok {
		rb, rok := r.(bool)
		return rok && lb == rb
	}
	return false
}

// looseEqual mirrors ==: numeric coercion first, then string compare.
func looseEqual(l, r any) bool {
	if l == nil && r == nil {
		return true
	}
	if l == nil || r == nil {
		return false
	}
	ln, lok := toNumber(l)
	rn, rok := toNumber(r)
	if lok && rok {
		return ln == rn
	}
	return stringify(l) == stringify(r)
}

// Truthy applies JavaScript truthiness: nil, false, 0, NaN and "" are falsy.
func Truthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case float64:
		return x != 0 && !math.IsNaN(x)
	case int:
		return x != 0
	case int64:
		return x != 0
	case string:
		return x != ""
	default:
		return true
	}
}

// toStrictNumber accepts only genuine numeric values.
func toStrictNumber(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	}
	return 0, false
}

// toNumber additionally coerces numeric strings, since HTML form answers
// arrive as strings.
func toNumber(v any) (float64, bool) {
	if n, ok := toStrictNumber(v); ok {
		return n, true
	}
	if s, ok := v.(string); ok && s != "" {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n, true
		}
	}
	return 0, false
}

func stringify(v any) string {
	if v == nil {
		return ""
	}
	if f, ok := toStrictNumber(v); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return fmt.Sprintf("%v", v)
}

// EvaluateVisibility resolves a showIf expression. An empty expression is
// always visible, and a broken expression is visible too: an authoring
// mistake must never hide required content silently.
func EvaluateVisibility(src string, scope Scope) bool {
	if src == "" {
		return true
	}
	v, err := Evaluate(src, scope)
	if err != nil {
		return true
	}
	return Truthy(v)
}

// EvaluateFormula resolves a computed-field formula. ok is false when the
// formula fails to parse, references an unanswered field or produces NaN;
// the caller renders the undefined sentinel and retries when dependencies
// change.
func EvaluateFormula(src string, scope Scope) (any, bool) {
	if src == "" {
		return nil, false
	}
	v, err := Evaluate(src, scope)
	if err != nil {
		return nil, false
	}
	if f, ok := v.(float64); ok && (math.IsNaN(f) || math.IsInf(f, 0)) {
		return nil, false
	}
	return v, true
}
