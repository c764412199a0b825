package pricing

import (
	"math/rand"
	"testing"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func price(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func store(name string, items ...domain.Item) domain.Store {
	return domain.Store{Name: name, Items: items}
}

func item(name, p string) domain.Item {
	return domain.Item{Name: name, Price: price(p)}
}

func requireCost(t *testing.T, expected string, result domain.CalculationResult) {
	t.Helper()
	cost, ok := result.TotalCost()
	require.True(t, ok, "expected a found result")
	assert.True(t, price(expected).Equal(cost), "expected cost %s, got %s", expected, cost)
}

func TestSelectCheapest_MilkAndEggs(t *testing.T) {
	catalog := []domain.Store{
		store("StoreA", item("milk", "3.50"), item("eggs", "2.75")),
		store("StoreB", item("milk", "3.60"), item("eggs", "2.50")),
	}
	requested := []domain.RequestedItem{{Name: "milk", Quantity: 1}, {Name: "eggs", Quantity: 2}}

	result := SelectCheapest(catalog, requested)

	assert.Equal(t, "StoreB", result.StoreName())
	requireCost(t, "8.60", result)
	assert.Equal(t, 2, result.MatchedItems())
}

func TestSelectCheapest_NothingStocked(t *testing.T) {
	catalog := []domain.Store{store("StoreA", item("milk", "3.50"))}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "bananas", Quantity: 1}})

	assert.False(t, result.IsFound())
	assert.Equal(t, domain.NoStoreFound, result.StoreName())
}

func TestSelectCheapest_EmptyCatalog(t *testing.T) {
	result := SelectCheapest(nil, []domain.RequestedItem{{Name: "milk", Quantity: 1}})

	assert.False(t, result.IsFound())
}

func TestSelectCheapest_EmptyRequest(t *testing.T) {
	catalog := []domain.Store{store("StoreA", item("milk", "3.50"))}

	result := SelectCheapest(catalog, nil)

	assert.False(t, result.IsFound())
}

func TestSelectCheapest_SingleStoreStocksItem(t *testing.T) {
	catalog := []domain.Store{
		store("StoreA", item("milk", "3.50")),
		store("StoreB", item("coffee", "7.25")),
		store("StoreC", item("bread", "2.10")),
	}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "coffee", Quantity: 3}})

	assert.Equal(t, "StoreB", result.StoreName())
	requireCost(t, "21.75", result)
}

func TestSelectCheapest_SkipsStoresWithoutMatches(t *testing.T) {
	// StoreA would be a "free" store if zero-match stores were candidates.
	catalog := []domain.Store{
		store("StoreA", item("rice", "1.00")),
		store("StoreB", item("milk", "3.50")),
	}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "milk", Quantity: 1}})

	assert.Equal(t, "StoreB", result.StoreName())
}

func TestSelectCheapest_PartialAvailabilityIsCheaper(t *testing.T) {
	// Partial baskets compete on what they stock.
	catalog := []domain.Store{
		store("Full", item("milk", "3.50"), item("eggs", "2.75")),
		store("Partial", item("milk", "3.00")),
	}
	requested := []domain.RequestedItem{{Name: "milk", Quantity: 1}, {Name: "eggs", Quantity: 1}}

	result := SelectCheapest(catalog, requested)

	assert.Equal(t, "Partial", result.StoreName())
	assert.Equal(t, 1, result.MatchedItems())
	requireCost(t, "3.00", result)
}

func TestSelectCheapest_TieGoesToFirstStore(t *testing.T) {
	catalog := []domain.Store{
		store("First", item("milk", "2.00"), item("eggs", "3.00")),
		store("Second", item("milk", "3.00"), item("eggs", "2.00")),
	}
	requested := []domain.RequestedItem{{Name: "milk", Quantity: 1}, {Name: "eggs", Quantity: 1}}

	assert.Equal(t, "First", SelectCheapest(catalog, requested).StoreName())

	catalog[0], catalog[1] = catalog[1], catalog[0]
	assert.Equal(t, "Second", SelectCheapest(catalog, requested).StoreName())
}

func TestSelectCheapest_ZeroCostMatchIsFound(t *testing.T) {
	catalog := []domain.Store{store("Giveaway", item("samples", "0"))}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "samples", Quantity: 4}})

	assert.True(t, result.IsFound())
	requireCost(t, "0", result)
}

func TestSelectCheapest_ZeroQuantityDoesNotMatch(t *testing.T) {
	catalog := []domain.Store{store("StoreA", item("milk", "3.50"))}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "milk", Quantity: 0}})

	assert.False(t, result.IsFound())
}

func TestSelectCheapest_DuplicateLinesSum(t *testing.T) {
	catalog := []domain.Store{store("StoreA", item("milk", "3.50"))}
	requested := []domain.RequestedItem{{Name: "milk", Quantity: 1}, {Name: "milk", Quantity: 2}}

	result := SelectCheapest(catalog, requested)

	requireCost(t, "10.50", result)
	assert.Equal(t, 2, result.MatchedItems())
}

func TestSelectCheapest_DuplicateInventoryLastWins(t *testing.T) {
	catalog := []domain.Store{store("StoreA", item("milk", "3.50"), item("milk", "1.25"))}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "milk", Quantity: 2}})

	requireCost(t, "2.50", result)
}

func TestSelectCheapest_RoundsOnceAtTheEnd(t *testing.T) {
	// 3 * 0.335 = 1.005 rounds to 1.01; rounding each line first would give 1.02.
	catalog := []domain.Store{store("StoreA", item("gum", "0.335"))}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "gum", Quantity: 3}})

	requireCost(t, "1.01", result)
}

func TestSelectCheapest_RoundsHalfAwayFromZero(t *testing.T) {
	catalog := []domain.Store{store("StoreA", item("gum", "0.125"))}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "gum", Quantity: 1}})

	requireCost(t, "0.13", result)
}

func TestSelectCheapest_ComparesUnroundedCosts(t *testing.T) {
	// Both round to 1.00; the exact totals decide.
	catalog := []domain.Store{
		store("Higher", item("gum", "1.004")),
		store("Lower", item("gum", "1.001")),
	}

	result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "gum", Quantity: 1}})

	assert.Equal(t, "Lower", result.StoreName())
	requireCost(t, "1.00", result)
}

func TestSelectCheapest_DoesNotMutateInputs(t *testing.T) {
	catalog := []domain.Store{store("StoreA", item("milk", "3.50"), item("milk", "1.00"))}
	requested := []domain.RequestedItem{{Name: "milk", Quantity: 2}}

	SelectCheapest(catalog, requested)

	assert.Len(t, catalog[0].Items, 2)
	assert.True(t, catalog[0].Items[0].Price.Equal(price("3.50")))
	assert.Equal(t, 2, requested[0].Quantity)
}

func TestSelectCheapest_Idempotent(t *testing.T) {
	catalog := []domain.Store{
		store("StoreA", item("milk", "3.50"), item("eggs", "2.75")),
		store("StoreB", item("milk", "3.60"), item("eggs", "2.50")),
	}
	requested := []domain.RequestedItem{{Name: "milk", Quantity: 1}, {Name: "eggs", Quantity: 2}}

	first := SelectCheapest(catalog, requested)
	second := SelectCheapest(catalog, requested)

	assert.Equal(t, first.StoreName(), second.StoreName())
	c1, _ := first.TotalCost()
	c2, _ := second.TotalCost()
	assert.True(t, c1.Equal(c2))
}

func TestSelectCheapest_MonotonicInQuantity(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	names := []string{"milk", "eggs", "bread", "rice"}

	for i := 0; i < 200; i++ {
		s := domain.Store{Name: "Only"}
		for _, n := range names {
			s.Items = append(s.Items, domain.Item{Name: n, Price: decimal.New(int64(rng.Intn(2000)), -2)})
		}
		requested := make([]domain.RequestedItem, 0, len(names))
		for _, n := range names {
			requested = append(requested, domain.RequestedItem{Name: n, Quantity: 1 + rng.Intn(5)})
		}

		before, ok := SelectCheapest([]domain.Store{s}, requested).TotalCost()
		require.True(t, ok)

		bumped := append([]domain.RequestedItem(nil), requested...)
		bumped[rng.Intn(len(bumped))].Quantity += 1 + rng.Intn(3)
		after, ok := SelectCheapest([]domain.Store{s}, bumped).TotalCost()
		require.True(t, ok)

		assert.True(t, after.GreaterThanOrEqual(before), "cost decreased from %s to %s", before, after)
	}
}

func TestSelectCheapest_NoMatchAcrossCatalogSizes(t *testing.T) {
	for _, size := range []int{0, 1, 5, 50} {
		catalog := make([]domain.Store, size)
		for i := range catalog {
			catalog[i] = store("S", item("milk", "1.00"))
		}

		result := SelectCheapest(catalog, []domain.RequestedItem{{Name: "caviar", Quantity: 1}})

		assert.False(t, result.IsFound(), "catalog size %d", size)
	}
}
