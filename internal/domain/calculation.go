package domain

import "github.com/shopspring/decimal"

// NoStoreFound is the display name carried by a NotFound result.
const NoStoreFound = "No store found"

// RequestedItem is one line of a shopping list.
type RequestedItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CalculationRequest struct {
	Items []RequestedItem `json:"items"`
}

// CalculationResult is either Found (a store and its total) or NotFound.
// A NotFound result has no cost at all.
type CalculationResult struct {
	found        bool
	storeName    string
	totalCost    decimal.Decimal
	matchedItems int
}

func Found(storeName string, totalCost decimal.Decimal, matchedItems int) CalculationResult {
	return CalculationResult{
		found:        true,
		storeName:    storeName,
		totalCost:    totalCost,
		matchedItems: matchedItems,
	}
}

func NotFound() CalculationResult {
	return CalculationResult{}
}

func (r CalculationResult) IsFound() bool {
	return r.found
}

func (r CalculationResult) StoreName() string {
	if !r.found {
		return NoStoreFound
	}
	return r.storeName
}

// TotalCost reports the rounded total and false for a NotFound result.
func (r CalculationResult) TotalCost() (decimal.Decimal, bool) {
	if !r.found {
		return decimal.Zero, false
	}
	return r.totalCost, true
}

func (r CalculationResult) MatchedItems() int {
	return r.matchedItems
}
