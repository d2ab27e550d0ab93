// Package store provides the identity map, the builder registry and deferred
// references for vendia entities.
//
// A [Store] holds at most one live instance per [entity.ID], so two references
// to the same entity always resolve to one object. A [Factory] allocates
// identifiers, runs the [Builder] registered for an entity type and deposits
// the result in its Store, handing back a [Ref] that resolves lazily.
//
// # Registration
//
// Builders are registered explicitly at startup, one per entity type:
//
//	reg := store.NewRegistry()
//	if err := store.Register[*catalog.Product](reg, catalog.NewProductBuilder); err != nil {
//	    return err
//	}
//
// # Creating entities
//
//	s := store.New(store.DefaultConfig(), logger)
//	f := store.NewFactory(s, reg, logger)
//
//	ref := store.Create[*catalog.Product](f, func(b *catalog.ProductBuilder) {
//	    b.WithName("Lamp").WithDescription("Desk lamp")
//	})
//	lamp := ref.GetOrFetch()
//
// Lookups never return nil: misses yield the entity type's Null instance, and
// a failed Create yields [NullRef]. Use [TryCreate] to learn why.
//
// # Configuration
//
// Use [DefaultConfig] for small graphs (NumShards=1). NumShards splits the
// identity map into hash buckets and shards the partition keys of exported
// items.
//
// # Errors
//
// The package defines domain-specific errors:
//
//   - [ErrNilEntity] - panic value when adding a nil entity
//   - [ErrNullEntity] - a builder produced a null entity
//   - [ErrAlreadyExists] - identifier already issued or stored
//   - [ErrNotRegistered] - no builder for the entity type
//   - [ErrBuilderMismatch] - requested builder differs from the registered one
//   - [ErrConflictingRegistration] - entity type registered with another builder
//   - [ErrIDsExhausted] - no identifiers left
//   - [ErrMalformedKey] - item key without an identifier
//
// Stores are safe for concurrent use. Trees built from the stored entities
// are not.
package store
