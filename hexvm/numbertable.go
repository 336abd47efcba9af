package hexvm

import "fmt"

// MinNumberLiteral and MaxNumberLiteral bound the static number-table
// artefact Numerical Reflection is built from.
const (
	MinNumberLiteral = -2000
	MaxNumberLiteral = 2000
)

// numberAngles derives the (unique, deterministic) angle sequence for an
// integer literal: a leading sign turn, then the binary digits of the
// magnitude with the implicit leading one stripped, one RIGHT_BACK per 1
// bit and one LEFT_BACK per 0 bit. Zero is the sign turn alone followed by
// FORWARD. Because the sign is folded into the angle sequence itself
// (Pattern equality ignores StartDir), every integer in range gets a
// shape distinct from every other, including its negation.
func numberAngles(n int) []HexAngle {
	angles := make([]HexAngle, 0, 18)
	if n >= 0 {
		angles = append(angles, RIGHT)
	} else {
		angles = append(angles, LEFT)
	}
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if abs == 0 {
		return append(angles, FORWARD)
	}
	bits := bitsMSBFirst(abs)
	for i, b := range bits {
		if i == 0 {
			continue // implicit leading one
		}
		if b == 1 {
			angles = append(angles, RIGHT_BACK)
		} else {
			angles = append(angles, LEFT_BACK)
		}
	}
	return angles
}

func bitsMSBFirst(v int) []int {
	if v == 0 {
		return []int{0}
	}
	var bits []int
	for v > 0 {
		bits = append([]int{v & 1}, bits...)
		v >>= 1
	}
	return bits
}

// NumberPattern returns the canonical shape for a Numerical Reflection
// literal, or a domain error if n is out of [MinNumberLiteral,
// MaxNumberLiteral] or not representable as an integer.
func NumberPattern(n float64) (*HexPattern, error) {
	i := int(n)
	if float64(i) != n {
		return nil, &ParseError{fmt.Errorf("hexvm: %v is not an integer, Numerical Reflection requires one", n)}
	}
	if i < MinNumberLiteral || i > MaxNumberLiteral {
		return nil, &ParseError{fmt.Errorf("hexvm: %d is out of the Numerical Reflection range [%d, %d]", i, MinNumberLiteral, MaxNumberLiteral)}
	}
	return &HexPattern{StartDir: E, Angles: numberAngles(i)}, nil
}
