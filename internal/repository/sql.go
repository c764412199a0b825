package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/shopspring/decimal"
)

// storesQuery works unchanged on postgres and sqlite. Stores without items
// come back with NULL item columns.
const storesQuery = `
	SELECT s.id, s.name, s.location, i.name, i.price
	FROM stores s
	LEFT JOIN items i ON i.store_id = s.id
	ORDER BY s.id, i.id
`

func queryStores(ctx context.Context, db *sql.DB) ([]domain.Store, error) {
	rows, err := db.QueryContext(ctx, storesQuery)
	if err != nil {
		return nil, fmt.Errorf("failed to query stores: %w", err)
	}
	defer rows.Close()

	var stores []domain.Store
	for rows.Next() {
		var (
			id       int64
			name     string
			location string
			itemName sql.NullString
			price    decimal.NullDecimal
		)
		if err := rows.Scan(&id, &name, &location, &itemName, &price); err != nil {
			return nil, fmt.Errorf("failed to scan store: %w", err)
		}

		if len(stores) == 0 || stores[len(stores)-1].ID != id {
			stores = append(stores, domain.Store{ID: id, Name: name, Location: location, Items: []domain.Item{}})
		}
		if !itemName.Valid {
			continue
		}
		if !price.Valid || price.Decimal.IsNegative() {
			return nil, fmt.Errorf("%w: store %d item %q has no valid price", ErrInvalidCatalogEntry, id, itemName.String)
		}
		current := &stores[len(stores)-1]
		current.Items = append(current.Items, domain.Item{Name: itemName.String, Price: price.Decimal})
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return stores, nil
}

func querySuggestions(ctx context.Context, db *sql.DB, query, prefix string, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	return queryNames(ctx, db, query, likePrefix(prefix), limit)
}

func queryNames(ctx context.Context, db *sql.DB, query string, args ...interface{}) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query item names: %w", err)
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan item name: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return names, nil
}
