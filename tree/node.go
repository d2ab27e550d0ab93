package tree

import (
	"iter"
	"reflect"
	"slices"
)

// Noder is implemented by every value that participates in a tree.
type Noder interface {
	// TreeNode returns the node embedded in the value.
	TreeNode() *Node
}

// Equaler is implemented by values that override positional node equality.
type Equaler interface {
	Equal(other Noder) bool
}

// Node is a position in a tree. The zero value is a detached root.
type Node struct {
	owner    Noder
	parent   *Node
	children []*Node
	depth    int
	index    int

	subs    []subscription
	lastSub uint64
}

// New returns a detached root node.
func New() *Node {
	return &Node{}
}

// Bind records v as the value embedding its node, so that traversals return
// v rather than the bare node. It returns v for chaining.
func Bind[T Noder](v T) T {
	if isNil(v) {
		return v
	}
	if n := v.TreeNode(); n != nil {
		n.owner = v
	}
	return v
}

// TreeNode implements Noder.
func (n *Node) TreeNode() *Node {
	return n
}

// Value returns the value embedding n, or n itself when unbound.
func (n *Node) Value() Noder {
	if n.owner != nil {
		return n.owner
	}
	return n
}

// Depth returns the distance from the root (0 for a root).
func (n *Node) Depth() int {
	return n.depth
}

// Index returns the zero-based position of n among its siblings.
func (n *Node) Index() int {
	return n.index
}

// Parent returns the parent value, or nil for a detached node.
func (n *Node) Parent() Noder {
	if n.parent == nil {
		return nil
	}
	return n.parent.Value()
}

// IsRoot reports whether n has no parent and sits at depth 0, index 0.
func (n *Node) IsRoot() bool {
	return n.parent == nil && n.depth == 0 && n.index == 0
}

// ChildCount returns the number of direct children.
func (n *Node) ChildCount() int {
	return len(n.children)
}

// HasChildren reports whether n has any direct children.
func (n *Node) HasChildren() bool {
	return len(n.children) > 0
}

// Child returns the child at position i.
func (n *Node) Child(i int) (Noder, error) {
	if i < 0 || i >= len(n.children) {
		return nil, ErrOutOfRange
	}
	return n.children[i].Value(), nil
}

// Children returns a snapshot of the direct children in sibling order.
func (n *Node) Children() []Noder {
	return values(n.children)
}

// All iterates over a snapshot of the direct children.
func (n *Node) All() iter.Seq[Noder] {
	children := slices.Clone(n.children)
	return func(yield func(Noder) bool) {
		for _, c := range children {
			if !yield(c.Value()) {
				return
			}
		}
	}
}

// Next returns the sibling at Index()+1.
func (n *Node) Next() (Noder, error) {
	return n.sibling(n.index + 1)
}

// Previous returns the sibling at Index()-1.
func (n *Node) Previous() (Noder, error) {
	return n.sibling(n.index - 1)
}

func (n *Node) sibling(i int) (Noder, error) {
	if n.parent == nil {
		return nil, ErrNoParent
	}
	return n.parent.Child(i)
}

// AddChild appends child to n. A child attached elsewhere is detached from
// its old parent first and receives a ParentChanged event. Events are sent
// once the move is complete, old parent first; later events are dropped if a
// handler moves the child again. It returns false without
// changing anything when n or child is null, child is nil, n itself or one
// of its ascendants, or already a child of n.
func (n *Node) AddChild(child Noder) bool {
	if isNullValue(n.Value()) || isNil(child) || isNullValue(child) {
		return false
	}
	c := child.TreeNode()
	if c == nil || c.parent == n || c.isAscendantOf(n) {
		return false
	}
	if c.owner == nil {
		c.owner = child
	}

	old := c.parent
	if old != nil {
		old.detach(slices.Index(old.children, c))
	}

	c.parent = n
	c.index = len(n.children)
	c.setDepth(n.depth + 1)
	n.children = append(n.children, c)

	if old != nil {
		old.emit(Event{Kind: ChildRemoved, Node: c.Value(), Parent: old.Value()})
		if c.parent != n {
			// moved on by a handler, which announced its own move
			return true
		}
		c.emit(Event{Kind: ParentChanged, Node: c.Value(), Parent: n.Value(), Previous: old.Value()})
	}
	n.emit(Event{Kind: ChildAdded, Node: c.Value(), Parent: n.Value()})
	return true
}

// RemoveChild detaches child from n and renumbers the siblings after it.
// The detached node becomes a root of its own subtree. It returns false when
// n is null or child is not a direct child of n.
func (n *Node) RemoveChild(child Noder) bool {
	if isNullValue(n.Value()) || isNil(child) {
		return false
	}
	c := child.TreeNode()
	pos := slices.Index(n.children, c)
	if c == nil || pos < 0 {
		return false
	}

	n.detach(pos)
	n.emit(Event{Kind: ChildRemoved, Node: c.Value(), Parent: n.Value()})
	return true
}

// detach unlinks the child at pos without notifying observers.
func (n *Node) detach(pos int) {
	c := n.children[pos]
	n.children = slices.Delete(n.children, pos, pos+1)
	for i := pos; i < len(n.children); i++ {
		n.children[i].index = i
	}

	c.parent = nil
	c.index = 0
	c.setDepth(0)
}

// HasChild reports whether any direct child equals node. Children that
// implement Equaler decide equality themselves; plain nodes compare by
// position (see Equal).
func (n *Node) HasChild(node Noder) bool {
	if isNil(node) {
		return false
	}
	for _, c := range n.children {
		if equal(c.Value(), node) {
			return true
		}
	}
	return false
}

// Descendants returns every node below n in depth-first pre-order.
func (n *Node) Descendants() []Noder {
	var out []Noder
	n.walk(func(d *Node) {
		out = append(out, d.Value())
	})
	return out
}

func (n *Node) walk(fn func(*Node)) {
	for _, c := range n.children {
		fn(c)
		c.walk(fn)
	}
}

// Ascendants returns the parent chain of n, nearest first.
func (n *Node) Ascendants() []Noder {
	var out []Noder
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p.Value())
	}
	return out
}

// Siblings returns the other children of n's parent, or nil when detached.
func (n *Node) Siblings() []Noder {
	if n.parent == nil {
		return nil
	}
	out := make([]Noder, 0, len(n.parent.children)-1)
	for _, s := range n.parent.children {
		if s != n {
			out = append(out, s.Value())
		}
	}
	return out
}

// Equal reports whether other sits at the same depth and index as n. Nodes
// in unrelated trees compare equal when their positions match.
func (n *Node) Equal(other Noder) bool {
	if isNil(other) {
		return false
	}
	o := other.TreeNode()
	return o != nil && n.depth == o.depth && n.index == o.index
}

func (n *Node) isAscendantOf(other *Node) bool {
	for p := other; p != nil; p = p.parent {
		if p == n {
			return true
		}
	}
	return false
}

func (n *Node) setDepth(depth int) {
	n.depth = depth
	for _, c := range n.children {
		c.setDepth(depth + 1)
	}
}

func equal(a, b Noder) bool {
	if e, ok := a.(Equaler); ok {
		return e.Equal(b)
	}
	return a.TreeNode().Equal(b)
}

func values(nodes []*Node) []Noder {
	out := make([]Noder, len(nodes))
	for i, c := range nodes {
		out[i] = c.Value()
	}
	return out
}

func isNullValue(v Noder) bool {
	nv, ok := v.(interface{ IsNull() bool })
	return ok && nv.IsNull()
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
