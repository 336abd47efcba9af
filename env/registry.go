// Package env provides a host Environment for hexvm: a caster entity plus
// a registry of entity types and named entities a running program can
// refer to, and a side-effect log a host can drain after a run.
package env

import "github.com/astavie/hexcast/hexvm"

// TypeRegistry holds the entity types known to a host, keyed by name.
type TypeRegistry struct {
	byName map[string]*hexvm.EntityType
}

// NewTypeRegistry returns an empty type registry.
func NewTypeRegistry() *TypeRegistry {
	return &TypeRegistry{byName: make(map[string]*hexvm.EntityType)}
}

// Define registers a named entity type, replacing any previous definition
// under the same name.
func (r *TypeRegistry) Define(name string, props map[string]hexvm.Iota) *hexvm.EntityType {
	t := &hexvm.EntityType{Name: name, Props: props}
	r.byName[name] = t
	return t
}

// Lookup finds a previously defined entity type by name.
func (r *TypeRegistry) Lookup(name string) (*hexvm.EntityType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// EntityRegistry holds the live entities a host exposes to a program,
// keyed by name.
type EntityRegistry struct {
	byName map[string]*hexvm.Entity
}

// NewEntityRegistry returns an empty entity registry.
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{byName: make(map[string]*hexvm.Entity)}
}

// Spawn registers a named entity of the given type, replacing any previous
// entity under the same name.
func (r *EntityRegistry) Spawn(name string, entityType *hexvm.EntityType, props map[string]hexvm.Iota) *hexvm.Entity {
	e := &hexvm.Entity{EntityType: entityType, Name: name, Props: props}
	r.byName[name] = e
	return e
}

// Lookup finds a previously spawned entity by name.
func (r *EntityRegistry) Lookup(name string) (*hexvm.Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}
