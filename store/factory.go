package store

import (
	"fmt"
	"log/slog"
	"math"
	"reflect"
	"sync"

	"github.com/jacentio/vendia/entity"
)

// Factory allocates identifiers, runs registered builders and deposits the
// results in a Store.
type Factory struct {
	store    *Store
	registry *Registry
	logger   *slog.Logger

	mu     sync.Mutex
	next   int64
	issued map[entity.ID]struct{}
}

// NewFactory creates a Factory that fills s with entities built from the
// builders in r. A nil registry starts empty; a nil store gets DefaultConfig.
func NewFactory(s *Store, r *Registry, logger *slog.Logger) *Factory {
	if logger == nil {
		logger = slog.Default()
	}
	if s == nil {
		s = New(DefaultConfig(), logger)
	}
	if r == nil {
		r = NewRegistry()
	}
	return &Factory{
		store:    s,
		registry: r,
		logger:   logger.With("store", s.InstanceID()),
		issued:   make(map[entity.ID]struct{}),
	}
}

// Store returns the identity map the factory fills.
func (f *Factory) Store() *Store {
	return f.store
}

// Registry returns the builder registry.
func (f *Factory) Registry() *Registry {
	return f.registry
}

// Create builds a T with its registered builder B, configured by configure
// (which may be nil), stores it and returns a reference to it. Any failure
// yields NullRef; use TryCreate to learn why.
func Create[T entity.Nullable[T], B Builder[T]](f *Factory, configure func(B)) Ref[T] {
	ref, _ := TryCreate[T, B](f, configure)
	return ref
}

// TryCreate is Create with the failure reason. configure runs without any
// factory lock held and may itself create entities.
func TryCreate[T entity.Nullable[T], B Builder[T]](f *Factory, configure func(B)) (Ref[T], error) {
	id, err := f.allocate()
	if err != nil {
		return reject[T](f, err)
	}

	e, err := build[T, B](f, id, configure)
	if err != nil {
		return reject[T](f, err)
	}

	if err := f.store.put(e); err != nil {
		return reject[T](f, fmt.Errorf("insert: %w", err))
	}

	f.logger.Debug("entity created", "entityRef", entity.Key(e))
	return RefTo(f.store, e), nil
}

// build runs the builder registered for T under id.
func build[T entity.Nullable[T], B Builder[T]](f *Factory, id entity.ID, configure func(B)) (T, error) {
	null := entity.NullOf[T]()
	if id.IsNull() {
		return null, ErrNullID
	}

	reg, ok := f.registry.lookup(reflect.TypeFor[T]())
	if !ok {
		return null, ErrNotRegistered
	}
	newBuilder, ok := reg.newBuilder.(func() B)
	if !ok {
		return null, fmt.Errorf("%w: registered %s, requested %s", ErrBuilderMismatch, reg.builderType, reflect.TypeFor[B]())
	}

	b := newBuilder()
	if configure != nil {
		configure(b)
	}

	e := b.Build(id)
	if entity.IsNull(e) {
		return null, ErrNullEntity
	}
	return e, nil
}

// allocate issues the next identifier. Identifiers are never reused, even
// after the entity is removed from the store.
func (f *Factory) allocate() (entity.ID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.next > math.MaxInt32 {
		return entity.NullID, ErrIDsExhausted
	}
	id := entity.ID(f.next)
	f.next++

	if _, issued := f.issued[id]; issued || f.store.Contains(id) {
		return entity.NullID, fmt.Errorf("%w: id %s", ErrAlreadyExists, id)
	}
	f.issued[id] = struct{}{}
	return id, nil
}

func reject[T entity.Nullable[T]](f *Factory, err error) (Ref[T], error) {
	f.logger.Warn("entity not created", "entityType", reflect.TypeFor[T]().String(), "error", err)
	return NullRef[T](), err
}
