package env

import (
	"testing"

	"github.com/astavie/hexcast/hexvm"
)

func TestStaticEnvironmentCaster(t *testing.T) {
	caster := &hexvm.Entity{Name: "Astavie"}
	e := NewStaticEnvironment(caster)
	if e.Caster() != hexvm.Iota(caster) {
		t.Fatalf("Caster() = %v, want %v", e.Caster(), caster)
	}
}

func TestStaticEnvironmentEffectsDrain(t *testing.T) {
	e := NewStaticEnvironment(&hexvm.Entity{Name: "Astavie"})
	e.SideEffect("one")
	e.SideEffect("two")
	got := e.Effects()
	if len(got) != 2 || got[0] != "one" || got[1] != "two" {
		t.Fatalf("Effects() = %v, want [one two]", got)
	}
	if got := e.Effects(); len(got) != 0 {
		t.Fatalf("Effects() after drain = %v, want empty", got)
	}
}

func TestTypeRegistryDefineAndLookup(t *testing.T) {
	r := NewTypeRegistry()
	r.Define("Player", nil)
	if _, ok := r.Lookup("Player"); !ok {
		t.Fatal("expected Player to be registered")
	}
	if _, ok := r.Lookup("Zombie"); ok {
		t.Fatal("did not expect Zombie to be registered")
	}
}

func TestEntityRegistrySpawnAndLookup(t *testing.T) {
	types := NewTypeRegistry()
	playerType := types.Define("Player", nil)
	entities := NewEntityRegistry()
	entities.Spawn("Astavie", playerType, nil)
	e, ok := entities.Lookup("Astavie")
	if !ok || e.EntityType != playerType {
		t.Fatalf("Lookup(Astavie) = %v, %v; want an entity of type Player", e, ok)
	}
}
