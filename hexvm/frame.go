package hexvm

// ContinuationFrame is a continuation record on the VM's frame stack,
// executed top-first.
type ContinuationFrame interface {
	// Evaluate computes (without mutating vm) the CastResult of running
	// one more step of this frame.
	Evaluate(vm *VM, env Environment) CastResult
	CapturesBreak() bool
	// RestoreStack is invoked during a break-unwind on every frame popped
	// past, with the then-current stack, so it can publish partial state.
	RestoreStack(stack []Iota) Change
}

// HermesFrame sequences a fixed list of iotas, executing one per step.
type HermesFrame struct {
	Patterns    []Iota
	CapturesBrk bool
}

// NewHermesFrame wraps values in a frame that executes them in order.
func NewHermesFrame(values []Iota, capturesBreak bool) *HermesFrame {
	cp := make([]Iota, len(values))
	copy(cp, values)
	return &HermesFrame{Patterns: cp, CapturesBrk: capturesBreak}
}

func (f *HermesFrame) CapturesBreak() bool { return f.CapturesBrk }

func (f *HermesFrame) RestoreStack(stack []Iota) Change {
	return Change{}
}

func (f *HermesFrame) Evaluate(vm *VM, env Environment) CastResult {
	head := f.Patterns[0]
	rest := f.Patterns[1:]

	transition := Change{FramePop: 1}
	if len(rest) > 0 {
		transition.FramePush = []ContinuationFrame{NewHermesFrame(rest, f.CapturesBrk)}
	}

	// head must see vm as it stands after this frame's own transition —
	// in particular, Iris' Gambit reads vm.Frames() to capture a
	// continuation, and that continuation must resume the rest of this
	// sequence, not re-trigger Iris' Gambit itself.
	post := vm.clone()
	transition.Apply(post)
	result := post.Execute(head, env)
	diff := make([]Change, 0, len(result.Diff)+1)
	diff = append(diff, transition)
	diff = append(diff, result.Diff...)

	return CastResult{
		Cast:           result.Cast,
		Diff:           diff,
		SideEffects:    result.SideEffects,
		ResolutionType: result.ResolutionType,
		Sound:          result.Sound,
		Mishap:         result.Mishap,
	}
}

// ThothFrame folds code over a fixed list of data, accumulating one stack
// snapshot per iteration. baseStack/acc are owned mutable state belonging
// solely to this frame instance; frames are pushed and popped, never
// aliased, so mutating them in place is safe.
type ThothFrame struct {
	Data      []Iota
	Code      []Iota
	baseStack []Iota
	haveBase  bool
	acc       []Iota
}

// NewThothFrame starts a fresh fold over data, running code each
// iteration.
func NewThothFrame(data, code []Iota) *ThothFrame {
	return &ThothFrame{Data: append([]Iota(nil), data...), Code: append([]Iota(nil), code...)}
}

func (f *ThothFrame) CapturesBreak() bool { return true }

func (f *ThothFrame) RestoreStack(stack []Iota) Change {
	f.acc = append(f.acc, stack...)
	base := f.baseStack
	if !f.haveBase {
		base = nil
	}
	accCopy := append([]Iota(nil), f.acc...)
	return Change{StackSet: StackSetOf(append([]Iota(nil), base...)), StackPush: []Iota{&List{Items: accCopy}}}
}

func (f *ThothFrame) Evaluate(vm *VM, env Environment) CastResult {
	var base []Iota
	if !f.haveBase {
		base = append([]Iota(nil), vm.stack...)
		f.baseStack = base
		f.haveBase = true
	} else {
		f.acc = append(f.acc, vm.stack...)
		base = f.baseStack
	}

	if len(f.Data) > 0 {
		head := f.Data[0]
		rest := f.Data[1:]
		next := &ThothFrame{Data: rest, Code: f.Code, baseStack: base, haveBase: true, acc: f.acc}
		diff := Change{
			FramePop:  1,
			StackSet:  StackSetOf(append([]Iota(nil), base...)),
			StackPush: []Iota{head},
			FramePush: []ContinuationFrame{next, NewHermesFrame(f.Code, false)},
		}
		return CastResult{Diff: []Change{diff}, ResolutionType: EVALUATED, Sound: SoundThoth}
	}

	accCopy := append([]Iota(nil), f.acc...)
	diff := Change{
		FramePop:  1,
		StackSet:  StackSetOf(append([]Iota(nil), base...)),
		StackPush: []Iota{&List{Items: accCopy}},
	}
	return CastResult{Diff: []Change{diff}, ResolutionType: EVALUATED, Sound: SoundThoth}
}
