package catalog

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/jacentio/vendia/entity"
	"github.com/jacentio/vendia/store"
)

// ErrUnknownUnit is returned when a catalog file names a unit MassUnit does not know.
var ErrUnknownUnit = errors.New("vendia: unknown mass unit")

// File is the root structure of a catalog file.
type File struct {
	Products []ProductDef `yaml:"products"`
}

// ProductDef defines a product and the listings offering it.
type ProductDef struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Listings    []ListingDef `yaml:"listings"`
}

// ListingDef defines a listing. Nested listings (e.g., bundles) become its
// children and offer the same product.
type ListingDef struct {
	Name        string       `yaml:"name"`
	Description string       `yaml:"description"`
	Options     []OptionDef  `yaml:"options"`
	Listings    []ListingDef `yaml:"listings"`
}

// OptionDef defines one purchasable quantity.
type OptionDef struct {
	Name     string  `yaml:"name"`
	Quantity float64 `yaml:"quantity"`
	Unit     string  `yaml:"unit"` // e.g., "g", "kg", "units"
}

// ParseMassUnit returns the unit whose String form is s. The empty string
// parses as Unspecified.
func ParseMassUnit(s string) (MassUnit, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Unspecified, nil
	}
	for u := Micrograms; u <= Units; u++ {
		if strings.EqualFold(s, u.String()) {
			return u, nil
		}
	}
	if strings.EqualFold(s, "ug") {
		return Micrograms, nil
	}
	return Unspecified, fmt.Errorf("%w: %q", ErrUnknownUnit, s)
}

// Load decodes a catalog file from r and creates its entities through f.
// Listings are attached below their product in file order. It returns the
// created products. On error, every entity created by the call is removed
// from the store again; the identifiers it consumed are not reissued.
func Load(f *store.Factory, r io.Reader) ([]*Product, error) {
	var file File
	if err := yaml.NewDecoder(r).Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}

	l := loader{factory: f}
	products, err := l.products(file.Products)
	if err != nil {
		l.rollback()
		return nil, err
	}
	return products, nil
}

type loader struct {
	factory *store.Factory
	created []entity.Entity
}

func (l *loader) products(defs []ProductDef) ([]*Product, error) {
	products := make([]*Product, 0, len(defs))
	for i, def := range defs {
		ref, err := store.TryCreate[*Product](l.factory, func(b *ProductBuilder) {
			b.WithName(def.Name).WithDescription(def.Description)
		})
		if err != nil {
			return nil, fmt.Errorf("product %d (%s): %w", i, def.Name, err)
		}
		product := ref.Value()
		l.created = append(l.created, product)
		for _, ld := range def.Listings {
			listing, err := l.listing(ref, ld)
			if err != nil {
				return nil, fmt.Errorf("product %s: %w", def.Name, err)
			}
			product.AddChild(listing)
		}
		products = append(products, product)
	}
	return products, nil
}

func (l *loader) listing(product store.Ref[*Product], def ListingDef) (*Listing, error) {
	options := make([]Option, 0, len(def.Options))
	for _, od := range def.Options {
		unit, err := ParseMassUnit(od.Unit)
		if err != nil {
			return nil, fmt.Errorf("listing %s option %s: %w", def.Name, od.Name, err)
		}
		options = append(options, Option{Name: od.Name, Quantity: od.Quantity, Unit: unit})
	}

	ref, err := store.TryCreate[*Listing](l.factory, func(b *ListingBuilder) {
		b.WithName(def.Name).WithDescription(def.Description).WithProduct(product)
		for _, o := range options {
			b.WithOption(o.Name, o.Quantity, o.Unit)
		}
	})
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", def.Name, err)
	}

	listing := ref.Value()
	l.created = append(l.created, listing)
	for _, child := range def.Listings {
		c, err := l.listing(product, child)
		if err != nil {
			return nil, err
		}
		listing.AddChild(c)
	}
	return listing, nil
}

func (l *loader) rollback() {
	s := l.factory.Store()
	for _, e := range l.created {
		s.RemoveEntity(e)
	}
	l.created = nil
}
