package catalog

import (
	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/store"
	"github.com/jacentio/vendia/tree"
)

// Product is something that can be sold or purchased.
type Product struct {
	entity.Base

	Name        string
	Description string
}

var nullProduct = &Product{Base: entity.NewBase(entity.NullID)}

// EntityType implements entity.Entity.
func (*Product) EntityType() string { return "product" }

// Null returns the Null product.
func (*Product) Null() *Product { return nullProduct }

// ProductBuilder configures a Product.
type ProductBuilder struct {
	name, description string
}

// NewProductBuilder returns an empty ProductBuilder.
func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{}
}

// WithName sets the product name.
func (b *ProductBuilder) WithName(value string) *ProductBuilder {
	b.name = value
	return b
}

// WithDescription sets the product description.
func (b *ProductBuilder) WithDescription(value string) *ProductBuilder {
	b.description = value
	return b
}

// Build implements store.Builder.
func (b *ProductBuilder) Build(id entity.ID) *Product {
	return tree.Bind(&Product{
		Base:        entity.NewBase(id),
		Name:        b.name,
		Description: b.description,
	})
}

// CreateProduct builds and stores a new Product.
func CreateProduct(f *store.Factory, configure func(*ProductBuilder)) store.Ref[*Product] {
	return store.Create[*Product](f, configure)
}
