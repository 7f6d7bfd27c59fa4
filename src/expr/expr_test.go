package expr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvaluateArithmetic(t *testing.T) {
	scope := Scope{"a": float64(5), "b": float64(2)}

	t.Run("Precedence", func(t *testing.T) {
		v, err := Evaluate("a + b * 3", scope)
		assert.NoError(t, err)
		assert.Equal(t, float64(11), v)
	})

	t.Run("Parentheses", func(t *testing.T) {
		v, err := Evaluate("(a + b) * 3", scope)
		assert.NoError(t, err)
		assert.Equal(t, float64(21), v)
	})

	t.Run("UnaryMinus", func(t *testing.T) {
		v, err := Evaluate("-a + 1", scope)
		assert.NoError(t, err)
		assert.Equal(t, float64(-4), v)
	})

	t.Run("Modulo", func(t *testing.T) {
		v, err := Evaluate("a % b", scope)
		assert.NoError(t, err)
		assert.Equal(t, float64(1), v)
	})

	t.Run("DivisionByZero", func(t *testing.T) {
		_, err := Evaluate("a / 0", scope)
		assert.Error(t, err)
	})

	t.Run("NumericStringCoercion", func(t *testing.T) {
		v, err := Evaluate("n * 2", Scope{"n": "21"})
		assert.NoError(t, err)
		assert.Equal(t, float64(42), v)
	})

	t.Run("StringConcatenation", func(t *testing.T) {
		v, err := Evaluate("'ward ' + n", Scope{"n": float64(3)})
		assert.NoError(t, err)
		assert.Equal(t, "ward 3", v)
	})
}

func TestEvaluateComparisons(t *testing.T) {
	t.Run("LooseEqualityCoerces", func(t *testing.T) {
		v, err := Evaluate("x == 5", Scope{"x": "5"})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("StrictEqualityDoesNot", func(t *testing.T) {
		v, err := Evaluate("x === 5", Scope{"x": "5"})
		assert.NoError(t, err)
		assert.Equal(t, false, v)
	})

	t.Run("StrictEquality", func(t *testing.T) {
		v, err := Evaluate("x === 'yes'", Scope{"x": "yes"})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("NotEqual", func(t *testing.T) {
		v, err := Evaluate("x != 'no'", Scope{"x": "yes"})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("NumericOrdering", func(t *testing.T) {
		v, err := Evaluate("age >= 18", Scope{"age": float64(21)})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("StringOrdering", func(t *testing.T) {
		v, err := Evaluate("a < b", Scope{"a": "apple", "b": "banana"})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("NullLiteral", func(t *testing.T) {
		v, err := Evaluate("x == null", Scope{"x": nil})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})
}

func TestEvaluateLogical(t *testing.T) {
	t.Run("AndShortCircuits", func(t *testing.T) {
		// right side references an unknown field; must never be reached
		v, err := Evaluate("false && missing > 1", Scope{})
		assert.NoError(t, err)
		assert.Equal(t, false, v)
	})

	t.Run("OrShortCircuits", func(t *testing.T) {
		v, err := Evaluate("true || missing > 1", Scope{})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("AndReturnsDecidingOperand", func(t *testing.T) {
		v, err := Evaluate("a && b", Scope{"a": float64(1), "b": "yes"})
		assert.NoError(t, err)
		assert.Equal(t, "yes", v)
	})

	t.Run("Not", func(t *testing.T) {
		v, err := Evaluate("!x", Scope{"x": ""})
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})

	t.Run("Chained", func(t *testing.T) {
		scope := Scope{"type": "clinic", "beds": float64(25)}
		v, err := Evaluate("type == 'clinic' && beds > 10 || beds > 100", scope)
		assert.NoError(t, err)
		assert.Equal(t, true, v)
	})
}

func TestEvaluateErrors(t *testing.T) {
	t.Run("UnknownIdentifier", func(t *testing.T) {
		_, err := Evaluate("age > 18", Scope{})
		assert.Error(t, err)
	})

	t.Run("ParseError", func(t *testing.T) {
		_, err := Evaluate("age >", Scope{"age": float64(5)})
		assert.Error(t, err)
	})

	t.Run("DanglingParen", func(t *testing.T) {
		_, err := Evaluate("(a + 1", Scope{"a": float64(1)})
		assert.Error(t, err)
	})
}

func TestTruthy(t *testing.T) {
	assert.False(t, Truthy(nil))
	assert.False(t, Truthy(false))
	assert.False(t, Truthy(float64(0)))
	assert.False(t, Truthy(""))
	assert.True(t, Truthy(true))
	assert.True(t, Truthy(float64(0.5)))
	assert.True(t, Truthy("no"))
}

func TestEvaluateVisibility(t *testing.T) {
	t.Run("EmptyIsVisible", func(t *testing.T) {
		assert.True(t, EvaluateVisibility("", Scope{}))
	})

	t.Run("FalseCondition", func(t *testing.T) {
		assert.False(t, EvaluateVisibility("x == 'yes'", Scope{"x": "no"}))
	})

	t.Run("TrueCondition", func(t *testing.T) {
		assert.True(t, EvaluateVisibility("x == 'yes'", Scope{"x": "yes"}))
	})

	// an unanswered field is absent from scope, so the reference fails and
	// the question stays visible
	t.Run("UnknownFieldFailsOpen", func(t *testing.T) {
		assert.True(t, EvaluateVisibility("age > 18", Scope{}))
	})

	t.Run("BrokenExpressionFailsOpen", func(t *testing.T) {
		assert.True(t, EvaluateVisibility("age >", Scope{"age": float64(30)}))
	})
}

func TestEvaluateFormula(t *testing.T) {
	t.Run("Resolves", func(t *testing.T) {
		v, ok := EvaluateFormula("a * 2", Scope{"a": float64(5)})
		assert.True(t, ok)
		assert.Equal(t, float64(10), v)
	})

	t.Run("UnknownFieldIsUndefined", func(t *testing.T) {
		_, ok := EvaluateFormula("a * 2", Scope{})
		assert.False(t, ok)
	})

	t.Run("DivisionByZeroIsUndefined", func(t *testing.T) {
		_, ok := EvaluateFormula("a / b", Scope{"a": float64(1), "b": float64(0)})
		assert.False(t, ok)
	})

	t.Run("EmptyFormulaIsUndefined", func(t *testing.T) {
		_, ok := EvaluateFormula("", Scope{})
		assert.False(t, ok)
	})
}

func TestIdentifiers(t *testing.T) {
	n, err := Parse("a + b * 2 > c && !d")
	assert.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b", "c", "d"}, Identifiers(n))
}
