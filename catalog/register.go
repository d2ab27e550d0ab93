package catalog

import "github.com/jacentio/vendia/store"

// Register registers the builders of every catalog entity with r.
func Register(r *store.Registry) error {
	if err := store.Register[*Product](r, NewProductBuilder); err != nil {
		return err
	}
	return store.Register[*Listing](r, NewListingBuilder)
}
