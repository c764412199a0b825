// Package pricing picks the single store with the lowest total for a shopping list.
package pricing

import (
	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/shopspring/decimal"
)

// CostPlaces is the number of fractional digits in a returned total.
const CostPlaces = 2

// SelectCheapest returns the store with the lowest total cost for the requested
// items it stocks. Stores that stock none of the items are skipped. On an exact
// cost tie the store that comes first in catalog wins. Costs are accumulated
// exactly and rounded half away from zero once, on the winning total.
//
// It performs no I/O and never mutates its arguments.
func SelectCheapest(catalog []domain.Store, requested []domain.RequestedItem) domain.CalculationResult {
	var (
		found     bool
		bestName  string
		bestCost  decimal.Decimal
		bestMatch int
	)

	for _, store := range catalog {
		inventory := store.Inventory()

		storeCost := decimal.Zero
		matched := 0
		for _, item := range requested {
			if item.Quantity <= 0 {
				continue
			}
			price, ok := inventory[item.Name]
			if !ok {
				continue
			}
			storeCost = storeCost.Add(price.Mul(decimal.NewFromInt(int64(item.Quantity))))
			matched++
		}

		if matched == 0 {
			continue
		}
		if !found || storeCost.LessThan(bestCost) {
			found = true
			bestName = store.Name
			bestCost = storeCost
			bestMatch = matched
		}
	}

	if !found {
		return domain.NotFound()
	}
	return domain.Found(bestName, bestCost.Round(CostPlaces), bestMatch)
}
