package repository

import (
	"context"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/shopspring/decimal"
)

// StaticRepository serves a catalog fixed at construction time.
type StaticRepository struct {
	stores []domain.Store
}

// NewStaticRepository copies stores, so later changes by the caller are not visible.
func NewStaticRepository(stores []domain.Store) *StaticRepository {
	return &StaticRepository{stores: cloneStores(stores)}
}

// Stores returns a fresh copy on every call.
func (r *StaticRepository) Stores(context.Context) ([]domain.Store, error) {
	return cloneStores(r.stores), nil
}

func (r *StaticRepository) Suggest(_ context.Context, prefix string, limit int) ([]string, error) {
	return SuggestNames(r.stores, prefix, limit), nil
}

func (r *StaticRepository) Close() error { return nil }

func cloneStores(stores []domain.Store) []domain.Store {
	out := make([]domain.Store, len(stores))
	for i, s := range stores {
		out[i] = s.Clone()
	}
	return out
}

// DefaultFixture is the built-in catalog used when CATALOG_SOURCE=static.
func DefaultFixture() []domain.Store {
	p := decimal.RequireFromString
	return []domain.Store{
		{
			ID:       1,
			Name:     "FreshMart",
			Location: "12 Orchard Lane",
			Items: []domain.Item{
				{Name: "milk", Price: p("3.50")},
				{Name: "eggs", Price: p("2.75")},
				{Name: "bread", Price: p("2.99")},
				{Name: "chicken", Price: p("8.49")},
				{Name: "cheese", Price: p("5.25")},
				{Name: "apples", Price: p("3.10")},
			},
		},
		{
			ID:       2,
			Name:     "Budget Grocer",
			Location: "401 Harbor Street",
			Items: []domain.Item{
				{Name: "milk", Price: p("3.60")},
				{Name: "eggs", Price: p("2.50")},
				{Name: "bread", Price: p("2.49")},
				{Name: "chicken", Price: p("7.99")},
				{Name: "bananas", Price: p("1.29")},
				{Name: "rice", Price: p("4.50")},
			},
		},
		{
			ID:       3,
			Name:     "Corner Market",
			Location: "88 Elm Avenue",
			Items: []domain.Item{
				{Name: "milk", Price: p("3.95")},
				{Name: "coffee", Price: p("9.99")},
				{Name: "cheese", Price: p("4.75")},
				{Name: "pasta", Price: p("1.89")},
				{Name: "tomatoes", Price: p("2.40")},
			},
		},
	}
}
