package helper

import (
	"strings"

	"go-smartshop/internal/model"

	"golang.org/x/text/cases"
)

// NameMatcher reports whether a product name contains query, ignoring case.
// An empty query matches everything.
func NameMatcher(query string) func(name string) bool {
	folder := cases.Fold()
	needle := folder.String(strings.TrimSpace(query))

	return func(name string) bool {
		if needle == "" {
			return true
		}
		return strings.Contains(folder.String(name), needle)
	}
}

func ToDomain(entities []model.ProductEntity) []model.Product {
	products := make([]model.Product, 0, len(entities))
	for _, e := range entities {
		products = append(products, e.ToDomain())
	}
	return products
}

// Filter keeps the entities whose name satisfies match.
func Filter(entities []model.ProductEntity, match func(name string) bool) []model.ProductEntity {
	filtered := make([]model.ProductEntity, 0, len(entities))
	for _, e := range entities {
		if match(e.Name) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}
