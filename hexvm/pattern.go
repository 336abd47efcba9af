package hexvm

// Environment is the host-supplied collaborator a VM consults for
// anything outside its own value/stack/frame state: the casting entity,
// and a sink for side effects attached to CastResults. The interpreter
// core never touches it beyond this interface.
type Environment interface {
	Caster() Iota
	// SideEffect records a deferred effect produced by an action; the
	// host interprets it after the step that produced it completes.
	SideEffect(effect interface{})
}

// ResolutionType classifies how an execute step resolved.
type ResolutionType int

const (
	UNRESOLVED ResolutionType = iota
	EVALUATED
	ESCAPED
	UNDONE
	ERRORED
	INVALID
)

func (r ResolutionType) String() string {
	switch r {
	case UNRESOLVED:
		return "UNRESOLVED"
	case EVALUATED:
		return "EVALUATED"
	case ESCAPED:
		return "ESCAPED"
	case UNDONE:
		return "UNDONE"
	case ERRORED:
		return "ERRORED"
	case INVALID:
		return "INVALID"
	default:
		return "UNKNOWN"
	}
}

// Success reports whether a resolution counts as a non-error outcome.
func (r ResolutionType) Success() bool {
	switch r {
	case EVALUATED, ESCAPED, UNDONE:
		return true
	default:
		return false
	}
}

// ColorPair is the (dark, light) RGB hex pair associated with a
// resolution, per the runtime's display palette.
type ColorPair struct {
	Dark, Light string
}

var resolutionColors = map[ResolutionType]ColorPair{
	UNRESOLVED: {"7F7F7F", "CCCCCC"},
	EVALUATED:  {"7385DE", "FECBE6"},
	ESCAPED:    {"DDCC73", "FFFAE5"},
	UNDONE:     {"B26B6B", "CCA88E"},
	ERRORED:    {"DE6262", "FFC7A0"},
	INVALID:    {"B26B6B", "CCA88E"},
}

// Colors returns the resolution's colour pair.
func (r ResolutionType) Colors() ColorPair { return resolutionColors[r] }

// Sound is an opaque priority-tagged tag a CastResult carries for the host
// to interpret; the core never plays anything itself.
type Sound int

const (
	SoundNothing Sound = iota
	SoundNormalExecute
	SoundSpell
	SoundHermes
	SoundThoth
	SoundMute
	SoundMishap
)

var soundPriority = map[Sound]int{
	SoundNothing:       -1 << 30,
	SoundNormalExecute: 0,
	SoundSpell:         1000,
	SoundHermes:        2000,
	SoundThoth:         2500,
	SoundMute:          3000,
	SoundMishap:        4000,
}

// GreaterOf returns the higher-priority of two sounds.
func GreaterOf(a, b Sound) Sound {
	if soundPriority[a] >= soundPriority[b] {
		return a
	}
	return b
}

// MishapKind tags the reason a Mishap was raised.
type MishapKind int

const (
	MishapNone MishapKind = iota
	MishapTooFewArgs
	MishapWrongType
	MishapUnescapedValue
	MishapTooManyCloseParens
)

// Mishap is a runtime misuse report: it never unwinds frames, it's simply
// carried in a CastResult.
type Mishap struct {
	Kind    MishapKind
	Message string
}

func (m *Mishap) Error() string { return m.Message }

// CastResult is the outcome of executing one iota against a VM.
type CastResult struct {
	Cast           Iota
	Diff           []Change
	SideEffects    []interface{}
	ResolutionType ResolutionType
	Sound          Sound
	Mishap         *Mishap
}

// Action is the behaviour a Pattern performs when executed. self is the
// Pattern iota being executed, needed by the escape-control builtins that
// push themselves into the parenthesized buffer. An Action may ignore any
// or all of its arguments for a constant result.
type Action func(vm *VM, env Environment, self *Pattern) CastResult

// ConstantAction returns an Action that always produces the same diff and
// resolution, for the stack-literal built-ins.
func ConstantAction(resolution ResolutionType, sound Sound, diff ...Change) Action {
	return func(vm *VM, env Environment, self *Pattern) CastResult {
		return CastResult{Diff: diff, ResolutionType: resolution, Sound: sound}
	}
}

// Pattern is an iota that binds a hex-walk to an action.
type Pattern struct {
	Shape      *HexPattern
	Name       string
	Action     Action
	MustEscape bool
}

func (p *Pattern) IsTruthy() bool { return true }
func (p *Pattern) IotaEquals(other Iota) bool {
	o, ok := other.(*Pattern)
	return ok && p.Shape.Equals(o.Shape)
}
func (p *Pattern) Type() *IotaType     { return PatternTypeTag }
func (p *Pattern) Display() []Fragment { return []Fragment{*p.Shape} }

// Get performs the typed stack access described by the runtime's get(...)
// builtin: it returns the top len(types) iotas of vm's stack (deepest
// first) without removing them, raising a mishap if there aren't enough or
// any type tag mismatches. A nil type in types skips the check for that
// slot. Callers pop the values through their own StackPop change.
func Get(vm *VM, types ...*IotaType) ([]Iota, *Mishap) {
	n := len(types)
	if n > len(vm.stack) {
		return nil, &Mishap{Kind: MishapTooFewArgs, Message: "not enough values on the stack"}
	}
	base := len(vm.stack) - n
	out := make([]Iota, n)
	for i := 0; i < n; i++ {
		v := vm.stack[base+i]
		if types[i] != nil && v.Type() != types[i] {
			return nil, &Mishap{Kind: MishapWrongType, Message: "wrong type on the stack"}
		}
		out[i] = v
	}
	return out, nil
}
