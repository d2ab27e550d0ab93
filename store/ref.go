package store

import "github.com/jacentio/vendia/entity"

// Ref is a deferred reference to a T: an identifier plus an optional cached
// instance, resolved against a Store on demand. Two refs are equal iff their
// identifiers are equal.
//
// Methods that may populate the cache use a pointer receiver; copies of a Ref
// cache independently.
type Ref[T entity.Nullable[T]] struct {
	id    entity.ID
	value T
	store *Store
}

// NewRef returns an unresolved reference to id in s.
func NewRef[T entity.Nullable[T]](s *Store, id entity.ID) Ref[T] {
	return Ref[T]{id: id, store: s}
}

// RefTo returns a reference to e with e already cached.
func RefTo[T entity.Nullable[T]](s *Store, e T) Ref[T] {
	if entity.IsNil(e) {
		return NullRef[T]()
	}
	return Ref[T]{id: e.ID(), value: e, store: s}
}

// NullRef returns the reference to nothing: NullID with T's Null cached.
func NullRef[T entity.Nullable[T]]() Ref[T] {
	return Ref[T]{id: entity.NullID, value: entity.NullOf[T]()}
}

// ID returns the referenced identifier.
func (r Ref[T]) ID() entity.ID {
	return r.id
}

// Value returns the cached instance, which may be the zero T.
func (r Ref[T]) Value() T {
	return r.value
}

// HasValue reports whether a non-null instance is cached.
func (r Ref[T]) HasValue() bool {
	return !entity.IsNull(r.value)
}

// IsEmpty reports whether no non-null instance is cached.
func (r Ref[T]) IsEmpty() bool {
	return !r.HasValue()
}

// IsNullRef reports whether the store currently has no entity at the
// referenced identifier. It ignores the cache.
func (r Ref[T]) IsNullRef() bool {
	return r.store == nil || !r.store.Contains(r.id)
}

// TryFetch queries the store, bypassing the cache, and caches the result on
// a hit. On a miss it returns T's Null instance and false.
func (r *Ref[T]) TryFetch() (T, bool) {
	v, ok := FetchAs[T](r.store, r.id)
	if ok {
		r.value = v
	}
	return v, ok
}

// GetOrFetch returns the cached instance, or resolves and caches it. It
// returns T's Null instance when the identifier is null or unknown.
func (r *Ref[T]) GetOrFetch() T {
	if r.HasValue() {
		return r.value
	}
	if r.id.IsNull() {
		return entity.NullOf[T]()
	}
	v, _ := r.TryFetch()
	return v
}

// Equal reports whether both refs carry the same identifier.
func (r Ref[T]) Equal(other Ref[T]) bool {
	return r.id == other.id
}

func (r Ref[T]) String() string {
	return "ref(" + r.id.String() + ")"
}
