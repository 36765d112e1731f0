// internal/services/errors.go
package services

import "errors"

var (
	// ErrInsufficientStock is returned when a cart mutation asks for more
	// units than the product currently has.
	ErrInsufficientStock = errors.New("insufficient stock")
	// ErrInvalidStatusTransition is returned when an order update requests a
	// status the lifecycle graph does not allow from the current one.
	ErrInvalidStatusTransition = errors.New("invalid status transition")
)
