package entity

import (
	"reflect"

	"github.com/jacentio/vendia/tree"
)

// Entity is the base interface for all identity-mapped types.
type Entity interface {
	tree.Noder

	// ID returns the identifier assigned at construction.
	ID() ID

	// IsNull reports whether the entity carries NullID.
	IsNull() bool

	// EntityType returns the entity type name (e.g., "product").
	EntityType() string
}

// Nullable is implemented by entity types that expose a distinguished Null
// instance. Null must be callable on the zero value of T (e.g. a nil pointer).
type Nullable[T any] interface {
	Entity
	Null() T
}

// Base is embedded by concrete entities. It supplies the identifier, the
// identifier-based equality and the tree node.
type Base struct {
	tree.Node
	id ID
}

// NewBase returns a Base carrying id.
func NewBase(id ID) Base {
	return Base{id: id}
}

// ID returns the entity identifier.
func (b *Base) ID() ID {
	return b.id
}

// IsNull reports whether the entity carries NullID.
func (b *Base) IsNull() bool {
	return b.id.IsNull()
}

// AddChild appends child to the entity's node. Null entities are shared
// sentinels and never take children.
func (b *Base) AddChild(child tree.Noder) bool {
	if b.IsNull() {
		return false
	}
	return b.Node.AddChild(child)
}

// RemoveChild detaches child from the entity's node. It returns false for a
// null entity.
func (b *Base) RemoveChild(child tree.Noder) bool {
	if b.IsNull() {
		return false
	}
	return b.Node.RemoveChild(child)
}

// Equal compares by identifier when other is an entity. This takes
// precedence over the positional equality of the embedded node; plain nodes
// still compare by depth and index.
func (b *Base) Equal(other tree.Noder) bool {
	if IsNil(other) {
		return false
	}
	if e, ok := other.(Entity); ok {
		return b.id == e.ID()
	}
	return b.Node.Equal(other)
}

// Equal reports whether a and b carry the same identifier. Nil entities are
// only equal to each other.
func Equal(a, b Entity) bool {
	if IsNil(a) || IsNil(b) {
		return IsNil(a) && IsNil(b)
	}
	return a.ID() == b.ID()
}

// IsNull reports whether e is nil or a null entity.
func IsNull(e Entity) bool {
	return IsNil(e) || e.IsNull()
}

// NullOf returns the Null instance of T.
func NullOf[T Nullable[T]]() T {
	var zero T
	return zero.Null()
}

// OrNull returns e, or T's Null instance when e is nil or null.
func OrNull[T Nullable[T]](e T) T {
	if IsNull(e) {
		return NullOf[T]()
	}
	return e
}

// Key returns the type-qualified reference of e (e.g., "product#3").
func Key(e Entity) string {
	if IsNil(e) {
		return ""
	}
	return e.EntityType() + "#" + e.ID().String()
}

// IsNil reports whether v is nil or a nil pointer, map, slice, func or chan.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
