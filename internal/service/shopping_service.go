package service

import (
	"context"
	"log"
	"strings"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
	"github.com/apoorvasinha183/AisleFindYou/internal/pricing"
)

// AutocompleteLimit caps the number of suggested item names.
const AutocompleteLimit = 10

type CatalogProvider interface {
	Stores(ctx context.Context) ([]domain.Store, error)
	Suggest(ctx context.Context, prefix string, limit int) ([]string, error)
}

type ShoppingService struct {
	catalog CatalogProvider
}

func NewShoppingService(catalog CatalogProvider) *ShoppingService {
	return &ShoppingService{catalog: catalog}
}

// Calculate validates req, loads the catalog once and picks the cheapest store.
// Duplicate lines for the same item are summed.
func (s *ShoppingService) Calculate(ctx context.Context, req domain.CalculationRequest) (domain.CalculationResult, error) {
	if err := ValidateRequest(req); err != nil {
		return domain.NotFound(), err
	}

	stores, err := s.catalog.Stores(ctx)
	if err != nil {
		return domain.NotFound(), err
	}

	result := pricing.SelectCheapest(stores, req.Items)
	if cost, ok := result.TotalCost(); ok {
		log.Printf("cheapest store %q total %s (%d of %d lines matched, %d stores)",
			result.StoreName(), cost.StringFixed(pricing.CostPlaces), result.MatchedItems(), len(req.Items), len(stores))
	} else {
		log.Printf("no store stocks any of %d requested lines (%d stores)", len(req.Items), len(stores))
	}

	return result, nil
}

// Autocomplete returns an empty list for a blank query.
func (s *ShoppingService) Autocomplete(ctx context.Context, query string) ([]string, error) {
	prefix := strings.TrimSpace(query)
	if prefix == "" {
		return []string{}, nil
	}

	names, err := s.catalog.Suggest(ctx, prefix, AutocompleteLimit)
	if err != nil {
		return nil, err
	}
	if names == nil {
		names = []string{}
	}
	return names, nil
}

// ValidateRequest rejects blank item names and non-positive quantities.
// An empty list is valid.
func ValidateRequest(req domain.CalculationRequest) error {
	for i, item := range req.Items {
		if strings.TrimSpace(item.Name) == "" {
			return &ValidationError{Index: i, Field: FieldName, Reason: "must not be blank"}
		}
		if item.Quantity <= 0 {
			return &ValidationError{Index: i, Field: FieldQuantity, Reason: "must be a positive integer"}
		}
	}
	return nil
}
