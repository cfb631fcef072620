package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"party-package-store/internal/models"
)

const maxJSONBody = 1 << 20 // 1 MB

// errorResponse is the JSON body for all error replies
type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Warning: failed to encode response: %v", err)
	}
}

// writeError maps service-level sentinel errors onto HTTP status codes.
// Unknown errors become a generic 500 so internals never leak to clients.
func writeError(w http.ResponseWriter, err error) {
	var status int
	var message string

	switch {
	case errors.Is(err, models.ErrInvalidInput):
		status, message = http.StatusBadRequest, err.Error()
	case errors.Is(err, models.ErrUnauthorized):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, models.ErrForbidden):
		status, message = http.StatusForbidden, "access denied"
	case errors.Is(err, models.ErrEventNotFound),
		errors.Is(err, models.ErrCategoryNotFound),
		errors.Is(err, models.ErrUserNotFound),
		errors.Is(err, models.ErrOrderNotFound),
		errors.Is(err, models.ErrCartItemNotFound):
		status, message = http.StatusNotFound, err.Error()
	case errors.Is(err, models.ErrDuplicateEntry),
		errors.Is(err, models.ErrCartChanged):
		status, message = http.StatusConflict, err.Error()
	case errors.Is(err, models.ErrEmptyCart):
		status, message = http.StatusBadRequest, "cart is empty"
	case errors.Is(err, models.ErrBadSignature):
		status, message = http.StatusBadRequest, "payment signature verification failed"
	default:
		log.Printf("Internal error: %v", err)
		status, message = http.StatusInternalServerError, "internal server error"
	}

	writeJSON(w, status, errorResponse{Error: message})
}

func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, maxJSONBody))
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid request body: %w", models.ErrInvalidInput)
	}
	return nil
}

func urlParamInt(r *http.Request, name string) (int, error) {
	value, err := strconv.Atoi(chi.URLParam(r, name))
	if err != nil || value <= 0 {
		return 0, fmt.Errorf("invalid %s: %w", name, models.ErrInvalidInput)
	}
	return value, nil
}

func queryInt(r *http.Request, name, fallback string) int {
	value := r.URL.Query().Get(name)
	if value == "" {
		value = fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return n
}
