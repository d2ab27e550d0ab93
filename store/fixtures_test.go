package store_test

import (
	"testing"

	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/store"
	"github.com/jacentio/vendia/tree"
)

// --- Test Entity Types ---

// gadget is a plain entity with a builder.
type gadget struct {
	entity.Base
	name string
}

var nullGadget = &gadget{Base: entity.NewBase(entity.NullID)}

func (*gadget) EntityType() string { return "gadget" }
func (*gadget) Null() *gadget      { return nullGadget }

func newGadget(id entity.ID, name string) *gadget {
	return tree.Bind(&gadget{Base: entity.NewBase(id), name: name})
}

type gadgetBuilder struct {
	name string
}

func newGadgetBuilder() *gadgetBuilder { return &gadgetBuilder{} }

func (b *gadgetBuilder) WithName(name string) *gadgetBuilder {
	b.name = name
	return b
}

func (b *gadgetBuilder) Build(id entity.ID) *gadget {
	return newGadget(id, b.name)
}

// gizmo is a second entity type, never registered by default.
type gizmo struct {
	entity.Base
}

var nullGizmo = &gizmo{Base: entity.NewBase(entity.NullID)}

func (*gizmo) EntityType() string { return "gizmo" }
func (*gizmo) Null() *gizmo       { return nullGizmo }

type gizmoBuilder struct{}

func (gizmoBuilder) Build(id entity.ID) *gizmo {
	return tree.Bind(&gizmo{Base: entity.NewBase(id)})
}

// nullBuilder always produces the Null gadget.
type nullBuilder struct{}

func (nullBuilder) Build(entity.ID) *gadget { return nullGadget }

// fixedBuilder ignores the allocated identifier.
type fixedBuilder struct{ id entity.ID }

func (b fixedBuilder) Build(entity.ID) *gadget { return newGadget(b.id, "fixed") }

// newWorld returns a store and a factory with gadget registered.
func newWorld(t *testing.T) (*store.Store, *store.Factory) {
	t.Helper()
	s := store.New(store.DefaultConfig(), nil)
	reg := store.NewRegistry()
	if err := store.Register[*gadget](reg, newGadgetBuilder); err != nil {
		t.Fatalf("register gadget: %v", err)
	}
	return s, store.NewFactory(s, reg, nil)
}
