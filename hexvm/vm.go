package hexvm

import "github.com/golang/glog"

// VM is the immutable-tuple runtime state: a value stack, a continuation
// (frame) stack, and the escape/quotation state machine. Its zero value
// via NewVM is the initial state of a fresh caster.
type VM struct {
	stack         []Iota
	frames        []ContinuationFrame
	parenCount    int
	parenthesized []ParenEntry
	escapeNext    bool
}

// NewVM returns a fresh VM with an empty stack and frame stack.
func NewVM() *VM {
	return &VM{}
}

func (vm *VM) Stack() []Iota { return append([]Iota(nil), vm.stack...) }

func (vm *VM) Frames() []ContinuationFrame { return append([]ContinuationFrame(nil), vm.frames...) }

func (vm *VM) ParenCount() int { return vm.parenCount }

func (vm *VM) Parenthesized() []ParenEntry {
	return append([]ParenEntry(nil), vm.parenthesized...)
}

func (vm *VM) EscapeNext() bool { return vm.escapeNext }

// clone copies the VM tuple so a frame can preview post-transition state
// (e.g. its own frames after a FramePop/FramePush) without mutating the
// real vm, which callers apply the diff to later.
func (vm *VM) clone() *VM {
	return &VM{
		stack:         append([]Iota(nil), vm.stack...),
		frames:        append([]ContinuationFrame(nil), vm.frames...),
		parenCount:    vm.parenCount,
		parenthesized: append([]ParenEntry(nil), vm.parenthesized...),
		escapeNext:    vm.escapeNext,
	}
}

// Execute resolves iota into a CastResult, following the dispatch rule:
// invoke its action when appropriate, else quote it (push to the stack or
// into the current parenthesized buffer), else report it as invalid. It
// does not mutate vm; callers apply the returned Diff.
func (vm *VM) Execute(iota Iota, env Environment) CastResult {
	if p, ok := iota.(*Pattern); ok && p.Action != nil && !vm.escapeNext && (vm.parenCount == 0 || p.MustEscape) {
		result := p.Action(vm, env, p)
		result.Cast = iota
		return result
	}

	if vm.escapeNext || vm.parenCount > 0 {
		var diff Change
		if vm.parenCount > 0 {
			diff = Change{EscapePush: iota}
		} else {
			// Consideration's one-shot escapeNext must be cleared here:
			// a bare StackPush leaves escapeNext untouched per
			// Change.Apply, which would quote every later iota too.
			diff = Change{StackPush: []Iota{iota}, EscapeConsider: BoolPtr(false)}
		}
		return CastResult{Cast: iota, Diff: []Change{diff}, ResolutionType: ESCAPED, Sound: SoundNormalExecute}
	}

	glog.Warningf("hexvm: invalid iota executed outside a quotation: %v", iota)
	return CastResult{
		Cast:           iota,
		ResolutionType: INVALID,
		Sound:          SoundMishap,
		Mishap:         &Mishap{Kind: MishapUnescapedValue, Message: "value cannot execute outside a quotation"},
	}
}

// Step runs one evaluation of the top frame, applying its diff to vm.
// Returns false when there is no frame left to step.
func (vm *VM) Step(env Environment) (*CastResult, bool) {
	if len(vm.frames) == 0 {
		return nil, false
	}
	top := vm.frames[len(vm.frames)-1]
	result := top.Evaluate(vm, env)
	ApplyAll(vm, result.Diff)
	return &result, true
}

// drain steps the VM until its frame stack is quiescent.
func (vm *VM) drain(env Environment) []CastResult {
	var out []CastResult
	for {
		r, ok := vm.Step(env)
		if !ok {
			return out
		}
		out = append(out, *r)
	}
}

// Run feeds a stream of external iotas to the VM, draining frame work to
// quiescence before and after each one.
func (vm *VM) Run(env Environment, iotas ...Iota) []CastResult {
	var out []CastResult
	for _, it := range iotas {
		out = append(out, vm.drain(env)...)
		result := vm.Execute(it, env)
		ApplyAll(vm, result.Diff)
		out = append(out, result)
		if result.Mishap != nil {
			glog.Warningf("hexvm: mishap executing %v: %s", it, result.Mishap.Message)
		}
	}
	out = append(out, vm.drain(env)...)
	return out
}

// ExecuteJump replaces the frame stack wholesale with a captured
// continuation, e.g. to resume after Iris' Gambit.
func (vm *VM) ExecuteJump(continuation *Continuation) CastResult {
	frames := append([]ContinuationFrame(nil), continuation.Frames...)
	return CastResult{
		Diff:           []Change{{FrameSet: FrameSetOf(frames)}},
		ResolutionType: EVALUATED,
		Sound:          SoundHermes,
	}
}

// Break unwinds frames from the top until one that captures break is
// reached, invoking RestoreStack on each popped frame with the
// then-current stack. Unlike Execute, Break applies its own diffs
// immediately: each frame's restore depends on the state left by the
// previous one, so there is no single deferred diff to hand back.
func (vm *VM) Break() CastResult {
	var diffs []Change
	for len(vm.frames) > 0 {
		top := vm.frames[len(vm.frames)-1]
		restore := top.RestoreStack(append([]Iota(nil), vm.stack...))
		pop := Change{FramePop: 1}
		restore.Apply(vm)
		pop.Apply(vm)
		diffs = append(diffs, restore, pop)
		if top.CapturesBreak() {
			break
		}
	}
	return CastResult{Diff: diffs, ResolutionType: EVALUATED, Sound: SoundNormalExecute}
}
