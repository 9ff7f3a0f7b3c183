package entities

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outcome is the admission forecast returned to the client
type Outcome int

const (
	// OutcomeUnknown is the zero value, returned alongside admission errors.
	OutcomeUnknown Outcome = iota
	// Delivered means the order was served from manufactured stock.
	Delivered
	// Queued means the order is in the backlog and its material looks healthy.
	Queued
	// MaterialNotAvailable means the material supply cannot cover the order right now.
	MaterialNotAvailable
	// MaterialScarce means the projected scarcity is above Equilibrium.
	MaterialScarce
)

// String method for Outcome enum
func (o Outcome) String() string {
	switch o {
	case OutcomeUnknown:
		return "Unknown"
	case Delivered:
		return "Delivered"
	case Queued:
		return "Queued"
	case MaterialNotAvailable:
		return "MaterialNotAvailable"
	case MaterialScarce:
		return "MaterialScarce"
	default:
		return "Unknown"
	}
}

// Unfavorable reports whether the forecast warrants an immediate drain
func (o Outcome) Unfavorable() bool {
	return o == MaterialNotAvailable || o == MaterialScarce
}

// UserID is opaque and only carried for attribution
type UserID uint64

// Pledge records the material demand charged when an order was admitted.
// Manufacturing releases exactly this pledge whatever variant ends up used.
type Pledge struct {
	MaterialID MaterialID
	Quantity   decimal.Decimal
}

// Order is a client request for a product. It lives in the backlog until it
// is manufactured, then moves to the finished stack.
type Order struct {
	ID                uuid.UUID
	ProductID         ProductID
	Amount            decimal.Decimal
	PreferredVariant  VariantID
	UserID            UserID
	AllowSubstitution bool // advisory, every variant is considered
	Priority          Priority
	Pledge            Pledge

	// Set once the order is finished
	Variant VariantID
}

// NewOrder creates a validated Order
func NewOrder(
	id uuid.UUID,
	productID ProductID,
	amount decimal.Decimal,
	preferred VariantID,
	userID UserID,
	allowSubstitution bool,
) (*Order, error) {
	if !amount.IsPositive() {
		return nil, fmt.Errorf("%w, got %s", ErrZeroAmount, amount)
	}

	return &Order{
		ID:                id,
		ProductID:         productID,
		Amount:            amount,
		PreferredVariant:  preferred,
		UserID:            userID,
		AllowSubstitution: allowSubstitution,
		Variant:           preferred,
	}, nil
}

// Substituted reports whether a finished order used a variant other than the preferred one
func (o Order) Substituted() bool {
	return o.Variant != o.PreferredVariant
}
