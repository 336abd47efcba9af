package hexvm

import (
	"fmt"
	"math"
)

// constTolerance is how close a host literal must be to a named math
// constant (2π, π, e) for the shorthand compiler to recognise it as one.
const constTolerance = 1e-9

// Patterns lowers a heterogeneous literal tree (Patterns, nested
// sequences, numbers, bools, nil, Vector3) into the flat Pattern sequence
// the VM executes, quoting literals via the escape machinery and emitting
// list-construction patterns for nested sequences.
func Patterns(items ...interface{}) []*Pattern {
	return lower(items, 1)
}

func lower(items []interface{}, escapeCount int) []*Pattern {
	var out []*Pattern
	for _, it := range items {
		out = append(out, lowerOne(it, escapeCount)...)
	}
	return out
}

func lowerOne(item interface{}, escapeCount int) []*Pattern {
	switch v := item.(type) {
	case nil:
		return []*Pattern{NullaryReflection}
	case bool:
		if v {
			return []*Pattern{TrueReflection}
		}
		return []*Pattern{FalseReflection}
	case int:
		return lowerNumber(float64(v))
	case int64:
		return lowerNumber(float64(v))
	case float32:
		return lowerNumber(float64(v))
	case float64:
		return lowerNumber(v)
	case Vector3:
		return lowerVector(v, escapeCount)
	case []interface{}:
		return lowerSequence(v, escapeCount)
	case *Pattern:
		if v.MustEscape && escapeCount > 1 {
			out := make([]*Pattern, 0, escapeCount)
			for i := 0; i < escapeCount-1; i++ {
				out = append(out, Consideration)
			}
			out = append(out, v)
			return out
		}
		return []*Pattern{v}
	default:
		panic(fmt.Sprintf("hexvm: patterns(): unsupported literal of type %T", item))
	}
}

// lowerSequence lowers one nested literal sequence ("[...]" in the literal
// tree) into the patterns that build its equivalent List at run time.
//
// An empty sequence collapses straight to Vacant Reflection. A singleton
// sequence uses Single's Purification in two cases: when its element is a
// mustEscape pattern, which is emitted behind Consideration escapes (the
// "CONSIDER x SINGLES" form), and when its element is itself a nested
// sequence, whose own compilation already absorbs the extra list-nesting
// depth and so is not doubled again here. Any other singleton element, and
// two or more elements, take the general Introspection ... Retrospection
// form.
func lowerSequence(xs []interface{}, escapeCount int) []*Pattern {
	switch len(xs) {
	case 0:
		return []*Pattern{VacantReflection}
	case 1:
		x := xs[0]
		if nested, ok := x.([]interface{}); ok {
			inner := lowerSequence(nested, escapeCount)
			out := make([]*Pattern, 0, len(inner)+1)
			out = append(out, inner...)
			out = append(out, SinglesPurification)
			return out
		}
		if p, ok := x.(*Pattern); ok && p.MustEscape {
			inner := lowerOne(x, escapeCount*2)
			out := make([]*Pattern, 0, len(inner)+1)
			out = append(out, inner...)
			out = append(out, SinglesPurification)
			return out
		}
		inner := lowerOne(x, escapeCount*2)
		out := make([]*Pattern, 0, len(inner)+2)
		out = append(out, Introspection)
		out = append(out, inner...)
		out = append(out, Retrospection)
		return out
	default:
		inner := lower(xs, escapeCount*2)
		out := make([]*Pattern, 0, len(inner)+2)
		out = append(out, Introspection)
		out = append(out, inner...)
		out = append(out, Retrospection)
		return out
	}
}

func nearly(a, b float64) bool { return math.Abs(a-b) < constTolerance }

func lowerNumber(n float64) []*Pattern {
	switch {
	case nearly(n, 2*math.Pi):
		return []*Pattern{CirclesReflection}
	case nearly(n, math.Pi):
		return []*Pattern{ArcsReflection}
	case nearly(n, math.E):
		return []*Pattern{EulersReflection}
	}
	shape, err := NumberPattern(n)
	if err != nil {
		panic(err)
	}
	return []*Pattern{&Pattern{Shape: shape, Name: "Numerical Reflection", Action: pushConstAction(Double(n))}}
}

func nearlyVec(v, target Vector3) bool {
	return nearly(v.X, target.X) && nearly(v.Y, target.Y) && nearly(v.Z, target.Z)
}

func lowerVector(v Vector3, escapeCount int) []*Pattern {
	switch {
	case nearlyVec(v, Vector3{X: 1}):
		return []*Pattern{VectorPlusXRefl}
	case nearlyVec(v, Vector3{X: -1}):
		return []*Pattern{VectorMinusXRefl}
	case nearlyVec(v, Vector3{Y: 1}):
		return []*Pattern{VectorPlusYRefl}
	case nearlyVec(v, Vector3{Y: -1}):
		return []*Pattern{VectorMinusYRefl}
	case nearlyVec(v, Vector3{Z: 1}):
		return []*Pattern{VectorPlusZRefl}
	case nearlyVec(v, Vector3{Z: -1}):
		return []*Pattern{VectorMinusZRefl}
	case nearlyVec(v, Vector3{}):
		return []*Pattern{VectorZeroRefl}
	}
	return lower([]interface{}{v.X, v.Y, v.Z, VectorExaltation}, escapeCount)
}
