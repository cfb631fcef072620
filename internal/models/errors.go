package models

import "errors"

// Common errors used throughout the application
var (
	ErrEventNotFound    = errors.New("event not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrUserNotFound     = errors.New("user not found")
	ErrOrderNotFound    = errors.New("order not found")
	ErrCartItemNotFound = errors.New("cart item not found")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrForbidden        = errors.New("access denied")
	ErrInvalidInput     = errors.New("invalid input")
	ErrDuplicateEntry   = errors.New("duplicate entry")
	ErrEmptyCart        = errors.New("cart is empty")
	ErrCartChanged      = errors.New("cart changed since checkout started")
	ErrBadSignature     = errors.New("payment signature verification failed")
)
