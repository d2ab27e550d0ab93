// Package entity defines identifiers and the identity-aware entity contract.
//
// Every entity carries exactly one [ID], fixed at construction. Two entities
// are equal iff their identifiers are equal, regardless of any other
// attribute. Instead of returning nil, lookups hand back the type's Null
// entity, which carries [NullID]:
//
//	type Product struct {
//		entity.Base
//		Name string
//	}
//
//	func (*Product) EntityType() string { return "product" }
//	func (*Product) Null() *Product     { return nullProduct }
//
//	var nullProduct = &Product{Base: entity.NewBase(entity.NullID)}
//
// Entities embed a [tree.Node] through [Base], so any entity can be arranged
// into a parent/child hierarchy.
package entity
