package hexvm

import "testing"

func TestChangeApplyOrderParenResetsOnClose(t *testing.T) {
	vm := NewVM()
	Change{EscapeIntro: true}.Apply(vm)
	if vm.ParenCount() != 1 {
		t.Fatalf("parenCount = %d, want 1", vm.ParenCount())
	}
	Change{EscapePush: Double(1)}.Apply(vm)
	if len(vm.Parenthesized()) != 1 {
		t.Fatalf("parenthesized = %v, want 1 entry", vm.Parenthesized())
	}
	Change{EscapeRetro: true}.Apply(vm)
	if vm.ParenCount() != 0 {
		t.Fatalf("parenCount = %d, want 0", vm.ParenCount())
	}
	if len(vm.Parenthesized()) != 0 {
		t.Fatalf("parenthesized should reset to empty once parenCount hits 0, got %v", vm.Parenthesized())
	}
}

// Change.Apply's own rule (§4.1 step 3) only clears escapeNext when
// EscapeConsider is set or an EscapePush fired; a bare StackPush leaves it
// alone. That's a low-level property of Change, not a license for callers:
// VM.Execute must pass EscapeConsider(false) alongside a quoting StackPush
// whenever escapeNext needs to be consumed (see TestVMConsiderationIsOneShot).
func TestChangeApplyEscapeConsiderOnlyClearedExplicitly(t *testing.T) {
	vm := NewVM()
	Change{EscapeConsider: BoolPtr(true)}.Apply(vm)
	if !vm.EscapeNext() {
		t.Fatal("escapeNext should be true after EscapeConsider(true)")
	}
	Change{StackPush: []Iota{Double(1)}}.Apply(vm)
	if !vm.EscapeNext() {
		t.Fatal("a plain StackPush with no EscapeConsider should not clear escapeNext")
	}
}

func TestChangeApplyStackMove(t *testing.T) {
	vm := NewVM()
	Change{StackPush: []Iota{Double(1), Double(2), Double(3)}}.Apply(vm)
	Change{StackMove: &StackMove{From: 0, To: 2}}.Apply(vm)
	want := []Iota{Double(2), Double(3), Double(1)}
	got := vm.Stack()
	for i := range want {
		if !got[i].IotaEquals(want[i]) {
			t.Fatalf("stack = %v, want %v", got, want)
		}
	}
}

func TestChangeApplyStackPopPanicsOnUnderflow(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected a panic popping more than the stack holds")
		}
	}()
	vm := NewVM()
	Change{StackPop: 1}.Apply(vm)
}

func TestApplyAllSequential(t *testing.T) {
	vm := NewVM()
	ApplyAll(vm, []Change{
		{StackPush: []Iota{Double(1)}},
		{StackPush: []Iota{Double(2)}},
		{StackPop: 1},
	})
	got := vm.Stack()
	if len(got) != 1 || !got[0].IotaEquals(Double(1)) {
		t.Fatalf("stack = %v, want [Double(1)]", got)
	}
}
