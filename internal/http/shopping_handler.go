package http

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/apoorvasinha183/AisleFindYou/internal/domain"
)

// MaxRequestBodySize caps a calculation request body.
const MaxRequestBodySize = 1 << 20 // 1MB

type Shopper interface {
	Calculate(ctx context.Context, req domain.CalculationRequest) (domain.CalculationResult, error)
	Autocomplete(ctx context.Context, query string) ([]string, error)
}

type ShoppingHandler struct {
	shopper Shopper
	timeout time.Duration
}

func NewShoppingHandler(shopper Shopper, timeout time.Duration) *ShoppingHandler {
	return &ShoppingHandler{
		shopper: shopper,
		timeout: timeout,
	}
}

type ItemRequestDTO struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

type CalculateRequestDTO struct {
	Items []ItemRequestDTO `json:"items"`
}

// CalculateResponse always carries store_name and total_cost; total_cost is
// null when no store matched.
type CalculateResponse struct {
	StoreName    string   `json:"store_name"`
	TotalCost    *float64 `json:"total_cost"`
	Found        bool     `json:"found"`
	MatchedItems int      `json:"matched_items"`
}

func (h *ShoppingHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	r.Body = http.MaxBytesReader(w, r.Body, MaxRequestBodySize)

	var req CalculateRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			respondError(w, http.StatusRequestEntityTooLarge, "request_too_large", "request body exceeds 1MB")
			return
		}
		respondErrorDetails(w, http.StatusBadRequest, "invalid_request", "invalid JSON body", err.Error())
		return
	}

	items := make([]domain.RequestedItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = domain.RequestedItem{Name: item.Name, Quantity: item.Quantity}
	}

	result, err := h.shopper.Calculate(ctx, domain.CalculationRequest{Items: items})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	log.Printf("request %s: calculated %d lines", getRequestID(r.Context()), len(items))
	respondJSON(w, http.StatusOK, toCalculateResponse(result))
}

func (h *ShoppingHandler) Autocomplete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	names, err := h.shopper.Autocomplete(ctx, r.URL.Query().Get("query"))
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if names == nil {
		names = []string{}
	}

	respondJSON(w, http.StatusOK, names)
}

func toCalculateResponse(result domain.CalculationResult) CalculateResponse {
	resp := CalculateResponse{
		StoreName:    result.StoreName(),
		Found:        result.IsFound(),
		MatchedItems: result.MatchedItems(),
	}
	if cost, ok := result.TotalCost(); ok {
		f := cost.InexactFloat64()
		resp.TotalCost = &f
	}
	return resp
}
