package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/apoorvasinha183/AisleFindYou/internal/service"
)

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func respondError(w http.ResponseWriter, status int, code, message string) {
	respondErrorDetails(w, status, code, message, "")
}

func respondErrorDetails(w http.ResponseWriter, status int, code, message, details string) {
	respondJSON(w, status, ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	})
}

// handleServiceError converts service errors to HTTP status codes.
func handleServiceError(w http.ResponseWriter, err error) {
	var vErr *service.ValidationError
	if errors.As(err, &vErr) {
		code := "invalid_request"
		switch vErr.Field {
		case service.FieldQuantity:
			code = "invalid_quantity"
		case service.FieldName:
			code = "invalid_item_name"
		}
		respondErrorDetails(w, http.StatusBadRequest, code, vErr.Error(), fmt.Sprintf("items[%d]", vErr.Index))
		return
	}

	var httpStatus int
	var code, message string

	switch {
	case errors.Is(err, context.DeadlineExceeded):
		httpStatus = http.StatusGatewayTimeout
		code = "timeout"
		message = "request timed out"
	case errors.Is(err, service.ErrInvalidRequest):
		httpStatus = http.StatusBadRequest
		code = "invalid_request"
		message = err.Error()
	case errors.Is(err, service.ErrCatalogUnavailable):
		httpStatus = http.StatusServiceUnavailable
		code = "service_unavailable"
		message = "store catalog is temporarily unavailable"
	default:
		httpStatus = http.StatusInternalServerError
		code = "internal_error"
		message = "internal server error"
	}

	log.Printf("request failed (%s): %v", code, err)
	respondError(w, httpStatus, code, message)
}
