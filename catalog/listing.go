package catalog

import (
	"slices"

	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/store"
	"github.com/jacentio/vendia/tree"
)

// MassUnit is the unit an option quantity is measured in.
type MassUnit int

const (
	Unspecified MassUnit = iota
	Micrograms
	Milligrams
	Grams
	Kilograms
	Ounces
	Pounds
	Units
)

func (u MassUnit) String() string {
	switch u {
	case Micrograms:
		return "µg"
	case Milligrams:
		return "mg"
	case Grams:
		return "g"
	case Kilograms:
		return "kg"
	case Ounces:
		return "oz"
	case Pounds:
		return "lb"
	case Units:
		return "units"
	default:
		return "unspecified"
	}
}

// Option is one purchasable quantity of a listing.
type Option struct {
	Name     string
	Quantity float64
	Unit     MassUnit
}

// Listing offers a product in one or more options.
type Listing struct {
	entity.Base

	Name        string
	Description string
	Product     store.Ref[*Product]
	Options     []Option
}

var nullListing = &Listing{
	Base:    entity.NewBase(entity.NullID),
	Product: store.NullRef[*Product](),
}

// EntityType implements entity.Entity.
func (*Listing) EntityType() string { return "listing" }

// Null returns the Null listing.
func (*Listing) Null() *Listing { return nullListing }

// ListingBuilder configures a Listing.
type ListingBuilder struct {
	name, description string
	product           store.Ref[*Product]
	options           []Option
}

// NewListingBuilder returns a ListingBuilder referencing no product.
func NewListingBuilder() *ListingBuilder {
	return &ListingBuilder{product: store.NullRef[*Product]()}
}

// WithName sets the listing name.
func (b *ListingBuilder) WithName(value string) *ListingBuilder {
	b.name = value
	return b
}

// WithDescription sets the listing description.
func (b *ListingBuilder) WithDescription(value string) *ListingBuilder {
	b.description = value
	return b
}

// WithProduct sets the reference to the offered product.
func (b *ListingBuilder) WithProduct(ref store.Ref[*Product]) *ListingBuilder {
	b.product = ref
	return b
}

// WithOption appends an option. A zero unit defaults to Units.
func (b *ListingBuilder) WithOption(name string, quantity float64, unit MassUnit) *ListingBuilder {
	if unit == Unspecified {
		unit = Units
	}
	b.options = append(b.options, Option{Name: name, Quantity: quantity, Unit: unit})
	return b
}

// Build implements store.Builder.
func (b *ListingBuilder) Build(id entity.ID) *Listing {
	return tree.Bind(&Listing{
		Base:        entity.NewBase(id),
		Name:        b.name,
		Description: b.description,
		Product:     b.product,
		Options:     slices.Clone(b.options),
	})
}

// CreateListing builds and stores a new Listing.
func CreateListing(f *store.Factory, configure func(*ListingBuilder)) store.Ref[*Listing] {
	return store.Create[*Listing](f, configure)
}

