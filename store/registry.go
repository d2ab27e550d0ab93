package store

import (
	"fmt"
	"reflect"
	"slices"
	"sync"

	"github.com/jacentio/vendia/entity"
)

// Builder produces a finished entity from previously supplied configuration.
// Concrete builders add fluent setters and are created fresh per construction.
type Builder[T entity.Entity] interface {
	Build(id entity.ID) T
}

// registration associates an entity type with its builder constructor.
type registration struct {
	// entityType is the entity type name (e.g., "product").
	entityType string

	// builderType is the concrete builder type returned by newBuilder.
	builderType reflect.Type

	// newBuilder is a func() B for the registered builder type B.
	newBuilder any
}

// Registry maps entity types to builder constructors.
type Registry struct {
	mu     sync.RWMutex
	byType map[reflect.Type]registration
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		byType: make(map[reflect.Type]registration),
	}
}

// Register associates entity type T with newBuilder.
// This should be called once at startup for each entity type. Registering
// the same builder type again is a no-op; a different builder type for an
// already registered T fails with ErrConflictingRegistration.
func Register[T entity.Nullable[T], B Builder[T]](r *Registry, newBuilder func() B) error {
	if newBuilder == nil {
		return ErrNilBuilder
	}
	key := reflect.TypeFor[T]()
	reg := registration{
		entityType:  entity.NullOf[T]().EntityType(),
		builderType: reflect.TypeFor[B](),
		newBuilder:  newBuilder,
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if old, ok := r.byType[key]; ok {
		if old.builderType == reg.builderType {
			return nil
		}
		return fmt.Errorf("%w: %s already built by %s", ErrConflictingRegistration, key, old.builderType)
	}
	r.byType[key] = reg
	return nil
}

// IsRegistered reports whether a builder is registered for T.
func IsRegistered[T entity.Entity](r *Registry) bool {
	_, ok := r.lookup(reflect.TypeFor[T]())
	return ok
}

func (r *Registry) lookup(t reflect.Type) (registration, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	reg, ok := r.byType[t]
	return reg, ok
}

// Types returns the registered entity type names, sorted.
func (r *Registry) Types() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	types := make([]string, 0, len(r.byType))
	for _, reg := range r.byType {
		types = append(types, reg.entityType)
	}
	slices.Sort(types)
	return types
}

// Count returns the number of registered entity types.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byType)
}
