package store

import "errors"

var (
	// ErrNilEntity is the panic value raised when a nil entity is added to a Store.
	ErrNilEntity = errors.New("vendia: nil entity")

	// ErrNullEntity is returned when a null entity is built or inserted.
	ErrNullEntity = errors.New("vendia: null entity")

	// ErrNullID is returned when building with the null identifier.
	ErrNullID = errors.New("vendia: null identifier")

	// ErrAlreadyExists is returned when an identifier was already issued or stored.
	ErrAlreadyExists = errors.New("vendia: entity already exists")

	// ErrNotRegistered is returned when no builder is registered for an entity type.
	ErrNotRegistered = errors.New("vendia: no builder registered for entity type")

	// ErrBuilderMismatch is returned when the requested builder type differs from the registered one.
	ErrBuilderMismatch = errors.New("vendia: builder type does not match registration")

	// ErrConflictingRegistration is returned when an entity type is re-registered with a different builder.
	ErrConflictingRegistration = errors.New("vendia: conflicting builder registration")

	// ErrNilBuilder is returned when registering a nil builder constructor.
	ErrNilBuilder = errors.New("vendia: nil builder constructor")

	// ErrIDsExhausted is returned when the identifier counter has no values left.
	ErrIDsExhausted = errors.New("vendia: identifier space exhausted")

	// ErrMalformedKey is returned when an item key carries no usable identifier.
	ErrMalformedKey = errors.New("vendia: malformed entity key")
)
