package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Item is one priced line of a store's inventory.
type Item struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"`
}

type Store struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location,omitempty"`
	Items    []Item `json:"items"`
}

// Inventory maps item name to unit price. When a name occurs more than once
// the last occurrence wins.
func (s Store) Inventory() map[string]decimal.Decimal {
	inventory := make(map[string]decimal.Decimal, len(s.Items))
	for _, item := range s.Items {
		inventory[item.Name] = item.Price
	}
	return inventory
}

// Clone returns a copy that shares no slices with s.
func (s Store) Clone() Store {
	c := s
	c.Items = append([]Item(nil), s.Items...)
	return c
}

const CatalogEventReseeded = "catalog_reseeded"

// CatalogEvent is published whenever the persisted catalog changes.
type CatalogEvent struct {
	Type       string    `json:"event_type"`
	StoreCount int       `json:"store_count"`
	OccurredAt time.Time `json:"occurred_at"`
}
