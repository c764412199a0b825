// Package seed generates a fictitious store catalog for local development.
package seed

import (
	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
)

// CommonItems is the pool every generated store samples its inventory from.
var CommonItems = []string{
	"milk", "eggs", "bread", "chicken", "apples", "bananas", "cereal", "cheese",
	"rice", "pasta", "tomatoes", "onions", "potatoes", "coffee", "lettuce",
}

const (
	DefaultStoreCount = 5
	minItemsPerStore  = 10
	minPrice          = 1.50
	maxPrice          = 15.00
)

// Generate builds storeCount stores named "<company> Market". Each stocks 10 to
// len(CommonItems) distinct items priced between 1.50 and 15.00.
// IDs are left zero for the writer to assign.
func Generate(f *gofakeit.Faker, storeCount int) []domain.Store {
	stores := make([]domain.Store, 0, storeCount)
	for i := 0; i < storeCount; i++ {
		names := sample(f, CommonItems, f.IntRange(minItemsPerStore, len(CommonItems)))

		items := make([]domain.Item, len(names))
		for j, name := range names {
			items[j] = domain.Item{
				Name:  name,
				Price: decimal.NewFromFloat(f.Float64Range(minPrice, maxPrice)).Round(2),
			}
		}

		stores = append(stores, domain.Store{
			Name:     f.Company() + " Market",
			Location: f.Street(),
			Items:    items,
		})
	}
	return stores
}

// sample picks k distinct elements with a partial Fisher-Yates shuffle.
func sample(f *gofakeit.Faker, pool []string, k int) []string {
	picked := append([]string(nil), pool...)
	for i := 0; i < k; i++ {
		j := f.IntRange(i, len(picked)-1)
		picked[i], picked[j] = picked[j], picked[i]
	}
	return picked[:k]
}
