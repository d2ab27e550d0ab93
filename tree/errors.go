package tree

import "errors"

var (
	// ErrNoParent is returned by sibling navigation on a detached node.
	ErrNoParent = errors.New("vendia: node has no parent")

	// ErrOutOfRange is returned when a sibling or child position does not exist.
	ErrOutOfRange = errors.New("vendia: node index out of range")
)
