package hexvm

import (
	"math"
	"testing"
)

func patternNames(ps []*Pattern) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func assertPatterns(t *testing.T, got []*Pattern, want ...*Pattern) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v (len %d), want %v (len %d)", patternNames(got), len(got), patternNames(want), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("at index %d: got %s, want %s (full got=%v want=%v)", i, got[i].Name, want[i].Name, patternNames(got), patternNames(want))
		}
	}
}

// The six shorthand-compiler literal scenarios, traced by hand against the
// recursive lowering rules before being locked in here.

func TestPatternsEmpty(t *testing.T) {
	assertPatterns(t, Patterns())
}

func TestPatternsEmptySequence(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{}), VacantReflection)
}

func TestPatternsNestedEmptySequence(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{[]interface{}{}}), VacantReflection, SinglesPurification)
}

func TestPatternsSingletonPattern(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{MindsReflection}), Introspection, MindsReflection, Retrospection)
}

func TestPatternsNestedSingletonPattern(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{[]interface{}{MindsReflection}}),
		Introspection, MindsReflection, Retrospection, SinglesPurification)
}

func TestPatternsBareMustEscape(t *testing.T) {
	assertPatterns(t, Patterns(Introspection), Introspection)
}

func TestPatternsSingletonMustEscape(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{Introspection}), Consideration, Introspection, SinglesPurification)
}

func TestPatternsMustEscapeThenPlain(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{Introspection, MindsReflection}),
		Introspection, Consideration, Introspection, MindsReflection, Retrospection)
}

func TestPatternsNestedSingletonMustEscape(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{[]interface{}{Introspection}}),
		Consideration, Introspection, SinglesPurification, SinglesPurification)
}

func TestPatternsNestedMustEscapeThenPlain(t *testing.T) {
	assertPatterns(t, Patterns([]interface{}{[]interface{}{Introspection}, MindsReflection}),
		Introspection, Consideration, Consideration, Consideration, Introspection, SinglesPurification, MindsReflection, Retrospection)
}

func TestPatternsVectorSpecialConstants(t *testing.T) {
	assertPatterns(t, Patterns(Vector3{X: 2 * math.Pi, Y: math.Pi, Z: math.E}),
		CirclesReflection, ArcsReflection, EulersReflection, VectorExaltation)
}

func TestPatternsVectorAxisConstants(t *testing.T) {
	assertPatterns(t, Patterns(Vector3{X: 1}), VectorPlusXRefl)
	assertPatterns(t, Patterns(Vector3{Y: -1}), VectorMinusYRefl)
	assertPatterns(t, Patterns(Vector3{}), VectorZeroRefl)
}

func TestPatternsNullBoolNumber(t *testing.T) {
	got := Patterns(nil, true, false, 1)
	if len(got) != 4 {
		t.Fatalf("got %d patterns, want 4", len(got))
	}
	assertPatterns(t, got[:3], NullaryReflection, TrueReflection, FalseReflection)
	if got[3].Name != "Numerical Reflection" {
		t.Fatalf("got[3] = %s, want Numerical Reflection", got[3].Name)
	}
}

func TestPatternsOutOfRangeNumberPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic lowering an out-of-range number literal")
		}
	}()
	Patterns(MaxNumberLiteral + 1)
}
