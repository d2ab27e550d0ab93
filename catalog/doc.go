// Package catalog defines the sellable entities built on top of the store:
// products and the listings that offer them in measured options.
package catalog
