// Package tree provides the parent/child hierarchy shared by all entities.
//
// A [Node] has zero or one parent and an ordered list of children. Insertion
// order is sibling order: a child's [Node.Index] is its position among its
// siblings and its [Node.Depth] is its parent's depth plus one. Nodes are held
// by reference and may be re-parented; removing a node from its parent cuts
// the parent's only link to it.
//
// # Embedding
//
// Types embed a Node and call [Bind] once so traversals return the embedding
// value instead of the bare node:
//
//	type Folder struct {
//	    tree.Node
//	    Name string
//	}
//
//	root := tree.Bind(&Folder{Name: "root"})
//	root.AddChild(&Folder{Name: "docs"})
//
// [Node.AddChild] binds the added child automatically.
//
// # Events
//
// Structural changes are announced synchronously to observers registered with
// [Node.Subscribe]: [ChildAdded] and [ChildRemoved] on the parent,
// [ParentChanged] on the moved node. Events are delivered after the structure
// is consistent, in subscription order. Handlers may mutate the tree or
// (un)subscribe during delivery.
//
// Nodes are not safe for concurrent use.
package tree
