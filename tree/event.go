package tree

import "slices"

// EventKind identifies a structural change.
type EventKind int

const (
	// ChildAdded is delivered to the parent after a child is appended.
	ChildAdded EventKind = iota + 1

	// ChildRemoved is delivered to the parent after a child is detached.
	ChildRemoved

	// ParentChanged is delivered to a node moved from one parent to another.
	ParentChanged
)

func (k EventKind) String() string {
	switch k {
	case ChildAdded:
		return "child_added"
	case ChildRemoved:
		return "child_removed"
	case ParentChanged:
		return "parent_changed"
	default:
		return "unknown"
	}
}

// Event describes a structural change.
type Event struct {
	Kind EventKind

	// Node is the added, removed or moved node.
	Node Noder

	// Parent is the node's parent after the change. For ChildRemoved it is
	// the parent the node was removed from.
	Parent Noder

	// Previous is the former parent. Only set for ParentChanged.
	Previous Noder
}

// Handler receives structural change events.
type Handler func(Event)

type subscription struct {
	id uint64
	fn Handler
}

// Subscribe registers fn for events delivered to n and returns a function
// that removes it. Calling the returned function more than once is harmless.
func (n *Node) Subscribe(fn Handler) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	n.lastSub++
	id := n.lastSub
	n.subs = append(n.subs, subscription{id: id, fn: fn})
	return func() {
		n.subs = slices.DeleteFunc(n.subs, func(s subscription) bool {
			return s.id == id
		})
	}
}

// emit delivers ev to a snapshot of the current subscribers.
func (n *Node) emit(ev Event) {
	if len(n.subs) == 0 {
		return
	}
	for _, s := range slices.Clone(n.subs) {
		s.fn(ev)
	}
}
