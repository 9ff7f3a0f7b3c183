package entities

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is wrapped by every unknown-id error so callers can match lookups generically.
	ErrNotFound = errors.New("resmng: not found")

	ErrNoSuchMaterial = wrapNotFound("resmng: no such material")
	ErrNoSuchProduct  = wrapNotFound("resmng: no such product")
	ErrNoSuchVariant  = wrapNotFound("resmng: no such variant")

	// Validation errors. No state is mutated before they are reported.
	ErrZeroSupply         = errors.New("resmng: supply must be positive")
	ErrNegativeSupply     = errors.New("resmng: supply cannot be negative")
	ErrDuplicateMaterial  = errors.New("resmng: material already exists")
	ErrZeroMaterialAmount = errors.New("resmng: material amount must be positive")
	ErrZeroAmount         = errors.New("resmng: order amount must be positive")
	ErrInvalidPriority    = errors.New("resmng: priority class out of range")
	ErrInvalidComplexity  = errors.New("resmng: work complexity must be positive")

	// ErrNoProducts means an order arrived while the catalog is empty.
	ErrNoProducts = errors.New("resmng: product catalog is empty")

	// ErrInsufficientSupply and ErrDemandUnderflow guard the non-negative balances.
	ErrInsufficientSupply = errors.New("resmng: insufficient supply")
	ErrDemandUnderflow    = errors.New("resmng: demand underflow")
)

// NoSuchVariant names the missing variant and wraps ErrNoSuchVariant
func NoSuchVariant(productID ProductID, variantID VariantID) error {
	return fmt.Errorf("product %d variant %d: %w", productID, variantID, ErrNoSuchVariant)
}

type notFoundError struct {
	msg string
}

func wrapNotFound(msg string) error {
	return &notFoundError{msg: msg}
}

func (e *notFoundError) Error() string { return e.msg }

func (e *notFoundError) Unwrap() error { return ErrNotFound }
