package env

import "github.com/astavie/hexcast/hexvm"

// StaticEnvironment is a hexvm.Environment with a fixed caster entity and a
// log of side effects produced while a program runs.
type StaticEnvironment struct {
	caster   hexvm.Iota
	Types    *TypeRegistry
	Entities *EntityRegistry
	effects  []interface{}
}

// NewStaticEnvironment returns an environment whose caster is fixed at
// construction time.
func NewStaticEnvironment(caster hexvm.Iota) *StaticEnvironment {
	return &StaticEnvironment{
		caster:   caster,
		Types:    NewTypeRegistry(),
		Entities: NewEntityRegistry(),
	}
}

func (e *StaticEnvironment) Caster() hexvm.Iota { return e.caster }

// SideEffect appends a deferred effect to the log; the host drains it with
// Effects after a run completes.
func (e *StaticEnvironment) SideEffect(effect interface{}) {
	e.effects = append(e.effects, effect)
}

// Effects returns and clears the accumulated side-effect log.
func (e *StaticEnvironment) Effects() []interface{} {
	out := e.effects
	e.effects = nil
	return out
}
