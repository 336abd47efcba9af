package hexvm

import (
	"hash/fnv"
	"math"
)

var shortDirByCode = map[string]HexDir{
	"ne": NE, "e": E, "se": SE, "sw": SW, "w": W, "nw": NW,
}

// builtinShape builds a HexPattern from the compact dir-code notation
// (ne/e/se/sw/w/nw) used by this file's built-in action table; it panics
// on a malformed literal since these are fixed at init time, never derived
// from untrusted input.
func builtinShape(dir, angles string) *HexPattern {
	d, ok := shortDirByCode[dir]
	if !ok {
		panic("hexvm: unknown builtin direction code " + dir)
	}
	as := make([]HexAngle, len(angles))
	for i := 0; i < len(angles); i++ {
		a, ok := angleByChar[angles[i]]
		if !ok {
			panic("hexvm: unknown builtin angle code " + string(angles[i]))
		}
		as[i] = a
	}
	return &HexPattern{StartDir: d, Angles: as}
}

// derivedShape deterministically manufactures a shape for a built-in
// whose concrete hex-grid literal spec.md does not spell out (the stack
// literals beyond the escape/list/caster/vector set); it is stable across
// runs but otherwise arbitrary.
func derivedShape(seed string) *HexPattern {
	h := fnv.New32a()
	_, _ = h.Write([]byte(seed))
	sum := h.Sum32()
	dir := HexDir(sum % 6)
	n := 4 + int(sum%5)
	angles := make([]HexAngle, n)
	x := sum
	for i := range angles {
		x = x*1664525 + 1013904223
		angles[i] = HexAngle(x % 6)
	}
	return &HexPattern{StartDir: dir, Angles: angles}
}

func mishapResult(m *Mishap) CastResult {
	return CastResult{ResolutionType: ERRORED, Sound: SoundMishap, Mishap: m}
}

func parenIotas(entries []ParenEntry) []Iota {
	out := make([]Iota, len(entries))
	for i, e := range entries {
		out[i] = e.Iota
	}
	return out
}

// Introspection opens a quotation, or nests one level deeper.
var Introspection = &Pattern{Shape: builtinShape("w", "qqq"), Name: "Introspection", MustEscape: true, Action: introspectionAction}

func introspectionAction(vm *VM, env Environment, self *Pattern) CastResult {
	if vm.ParenCount() == 0 {
		return CastResult{Diff: []Change{{EscapeIntro: true}}, ResolutionType: EVALUATED, Sound: SoundSpell}
	}
	return CastResult{Diff: []Change{{EscapePush: self, EscapeIntro: true}}, ResolutionType: ESCAPED, Sound: SoundSpell}
}

// Retrospection closes a quotation, materialising it as a List, or unnests
// one level.
var Retrospection = &Pattern{Shape: builtinShape("e", "eee"), Name: "Retrospection", MustEscape: true, Action: retrospectionAction}

func retrospectionAction(vm *VM, env Environment, self *Pattern) CastResult {
	switch {
	case vm.ParenCount() == 0:
		return mishapResult(&Mishap{Kind: MishapTooManyCloseParens, Message: "Retrospection with no open quotation"})
	case vm.ParenCount() == 1:
		list := &List{Items: parenIotas(vm.Parenthesized())}
		return CastResult{Diff: []Change{{EscapeRetro: true, StackPush: []Iota{list}}}, ResolutionType: EVALUATED, Sound: SoundSpell}
	default:
		return CastResult{Diff: []Change{{EscapeRetro: true, EscapePush: self}}, ResolutionType: ESCAPED, Sound: SoundSpell}
	}
}

// Consideration one-shot-quotes the next incoming iota regardless of type.
var Consideration = &Pattern{Shape: builtinShape("w", "qqqaw"), Name: "Consideration", MustEscape: true, Action: considerationAction}

func considerationAction(vm *VM, env Environment, self *Pattern) CastResult {
	return CastResult{Diff: []Change{{EscapeConsider: BoolPtr(true)}}, ResolutionType: EVALUATED, Sound: SoundSpell}
}

// VacantReflection pushes an empty List.
var VacantReflection = &Pattern{Shape: builtinShape("ne", "qqaeaae"), Name: "Vacant Reflection", Action: vacantReflAction}

func vacantReflAction(vm *VM, env Environment, self *Pattern) CastResult {
	return CastResult{Diff: []Change{{StackPush: []Iota{&List{}}}}, ResolutionType: EVALUATED, Sound: SoundSpell}
}

// SinglesPurification pops one iota and pushes a singleton List of it.
var SinglesPurification = &Pattern{Shape: builtinShape("e", "adeeed"), Name: "Single's Purification", Action: singlesPurifAction}

func singlesPurifAction(vm *VM, env Environment, self *Pattern) CastResult {
	vals, mishap := Get(vm, nil)
	if mishap != nil {
		return mishapResult(mishap)
	}
	return CastResult{Diff: []Change{{StackPop: 1, StackPush: []Iota{&List{Items: []Iota{vals[0]}}}}}, ResolutionType: EVALUATED, Sound: SoundSpell}
}

// MindsReflection pushes the environment's caster.
var MindsReflection = &Pattern{Shape: builtinShape("ne", "qaq"), Name: "Mind's Reflection", Action: mindsReflAction}

func mindsReflAction(vm *VM, env Environment, self *Pattern) CastResult {
	return CastResult{Diff: []Change{{StackPush: []Iota{env.Caster()}}}, ResolutionType: EVALUATED, Sound: SoundSpell}
}

// TrueReflection, FalseReflection and NullaryReflection push the
// corresponding constant.
var (
	TrueReflection    = &Pattern{Shape: derivedShape("TrueReflection"), Name: "True Reflection", Action: pushConstAction(Boolean(true))}
	FalseReflection   = &Pattern{Shape: derivedShape("FalseReflection"), Name: "False Reflection", Action: pushConstAction(Boolean(false))}
	NullaryReflection = &Pattern{Shape: derivedShape("NullaryReflection"), Name: "Nullary Reflection", Action: pushConstAction(TheNull)}

	VectorPlusXRefl  = &Pattern{Shape: derivedShape("VectorPlusX"), Name: "Vector Reflection +X", Action: pushConstAction(Vector3{X: 1})}
	VectorMinusXRefl = &Pattern{Shape: derivedShape("VectorMinusX"), Name: "Vector Reflection -X", Action: pushConstAction(Vector3{X: -1})}
	VectorPlusYRefl  = &Pattern{Shape: derivedShape("VectorPlusY"), Name: "Vector Reflection +Y", Action: pushConstAction(Vector3{Y: 1})}
	VectorMinusYRefl = &Pattern{Shape: derivedShape("VectorMinusY"), Name: "Vector Reflection -Y", Action: pushConstAction(Vector3{Y: -1})}
	VectorPlusZRefl  = &Pattern{Shape: derivedShape("VectorPlusZ"), Name: "Vector Reflection +Z", Action: pushConstAction(Vector3{Z: 1})}
	VectorMinusZRefl = &Pattern{Shape: derivedShape("VectorMinusZ"), Name: "Vector Reflection -Z", Action: pushConstAction(Vector3{Z: -1})}
	VectorZeroRefl   = &Pattern{Shape: derivedShape("VectorZero"), Name: "Vector Reflection Zero", Action: pushConstAction(Vector3{})}

	CirclesReflection = &Pattern{Shape: derivedShape("CirclesReflection"), Name: "Circle's Reflection", Action: pushConstAction(Double(2 * math.Pi))}
	ArcsReflection    = &Pattern{Shape: derivedShape("ArcsReflection"), Name: "Arc's Reflection", Action: pushConstAction(Double(math.Pi))}
	EulersReflection  = &Pattern{Shape: derivedShape("EulersReflection"), Name: "Euler's Reflection", Action: pushConstAction(Double(math.E))}
)

func pushConstAction(v Iota) Action {
	return func(vm *VM, env Environment, self *Pattern) CastResult {
		return CastResult{Diff: []Change{{StackPush: []Iota{v}}}, ResolutionType: EVALUATED, Sound: SoundSpell}
	}
}

// VectorExaltation pops (x,y,z Double), top is z, and pushes Vector3(x,y,z).
var VectorExaltation = &Pattern{Shape: builtinShape("e", "eqqqqq"), Name: "Vector Exaltation", Action: vectorExalAction}

func vectorExalAction(vm *VM, env Environment, self *Pattern) CastResult {
	vals, mishap := Get(vm, DoubleType, DoubleType, DoubleType)
	if mishap != nil {
		return mishapResult(mishap)
	}
	x := float64(vals[0].(Double))
	y := float64(vals[1].(Double))
	z := float64(vals[2].(Double))
	return CastResult{Diff: []Change{{StackPop: 3, StackPush: []Iota{Vector3{X: x, Y: y, Z: z}}}}, ResolutionType: EVALUATED, Sound: SoundSpell}
}

// HermesGambit pops one iota and pushes a HermesFrame sequencing it
// (its elements, if it's a List; itself alone otherwise).
var HermesGambit = &Pattern{Shape: builtinShape("se", "deaqq"), Name: "Hermes' Gambit", Action: hermesGambitAction}

func hermesGambitAction(vm *VM, env Environment, self *Pattern) CastResult {
	vals, mishap := Get(vm, nil)
	if mishap != nil {
		return mishapResult(mishap)
	}
	x := vals[0]
	var frame *HermesFrame
	if l, ok := x.(*List); ok {
		frame = NewHermesFrame(l.Items, false)
	} else {
		frame = NewHermesFrame([]Iota{x}, false)
	}
	return CastResult{Diff: []Change{{StackPop: 1, FramePush: []ContinuationFrame{frame}}}, ResolutionType: EVALUATED, Sound: SoundHermes}
}

// ThothGambit pops (instrs List, datums List), top is datums, and pushes a
// ThothFrame that folds instrs over datums.
var ThothGambit = &Pattern{Shape: builtinShape("ne", "dadad"), Name: "Thoth's Gambit", Action: thothGambitAction}

func thothGambitAction(vm *VM, env Environment, self *Pattern) CastResult {
	vals, mishap := Get(vm, ListType, ListType)
	if mishap != nil {
		return mishapResult(mishap)
	}
	instrs := vals[0].(*List)
	datums := vals[1].(*List)
	frame := NewThothFrame(datums.Items, instrs.Items)
	return CastResult{Diff: []Change{{StackPop: 2, FramePush: []ContinuationFrame{frame}}}, ResolutionType: EVALUATED, Sound: SoundThoth}
}

// IrisGambit captures the current frame stack as a Continuation, pushes
// that continuation onto the stack, then behaves like Hermes' Gambit.
var IrisGambit = &Pattern{Shape: builtinShape("nw", "qwaqde"), Name: "Iris' Gambit", Action: irisGambitAction}

func irisGambitAction(vm *VM, env Environment, self *Pattern) CastResult {
	vals, mishap := Get(vm, nil)
	if mishap != nil {
		return mishapResult(mishap)
	}
	x := vals[0]
	cont := &Continuation{Frames: vm.Frames()}
	var frame *HermesFrame
	if l, ok := x.(*List); ok {
		frame = NewHermesFrame(l.Items, false)
	} else {
		frame = NewHermesFrame([]Iota{x}, false)
	}
	return CastResult{
		Diff:           []Change{{StackPop: 1, StackPush: []Iota{cont}, FramePush: []ContinuationFrame{frame}}},
		ResolutionType: EVALUATED,
		Sound:          SoundHermes,
	}
}

// NumericalReflection returns the Pattern for the integer literal n,
// built from the static number-table artefact (numbertable.go).
func NumericalReflection(n int) *Pattern {
	shape, err := NumberPattern(float64(n))
	if err != nil {
		panic(err)
	}
	v := Double(n)
	return &Pattern{Shape: shape, Name: "Numerical Reflection", Action: pushConstAction(v)}
}

// Registry resolves hex-grid shapes to the Pattern that implements them,
// the runtime's "built-in action registry".
type Registry struct {
	byShape map[string]*Pattern
}

func shapeKey(p *HexPattern) string {
	buf := make([]byte, len(p.Angles))
	for i, a := range p.Angles {
		buf[i] = angleChars[a]
	}
	return string(buf)
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byShape: make(map[string]*Pattern)}
}

// Register adds a pattern to the registry, keyed by its orientation-
// invariant shape.
func (r *Registry) Register(p *Pattern) {
	r.byShape[shapeKey(p.Shape)] = p
}

// Lookup finds the registered Pattern matching shape's angle sequence, if
// any.
func (r *Registry) Lookup(shape *HexPattern) (*Pattern, bool) {
	p, ok := r.byShape[shapeKey(shape)]
	return p, ok
}

// DefaultRegistry returns a Registry populated with every built-in action
// and every Numerical Reflection literal in range.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	for _, p := range []*Pattern{
		Introspection, Retrospection, Consideration,
		VacantReflection, SinglesPurification, MindsReflection,
		TrueReflection, FalseReflection, NullaryReflection,
		VectorPlusXRefl, VectorMinusXRefl, VectorPlusYRefl, VectorMinusYRefl, VectorPlusZRefl, VectorMinusZRefl, VectorZeroRefl,
		CirclesReflection, ArcsReflection, EulersReflection,
		VectorExaltation, HermesGambit, ThothGambit, IrisGambit,
	} {
		r.Register(p)
	}
	for n := MinNumberLiteral; n <= MaxNumberLiteral; n++ {
		r.Register(NumericalReflection(n))
	}
	return r
}
