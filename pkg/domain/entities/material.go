package entities

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// MaterialID is the caller supplied identifier of a material
type MaterialID int

// Equilibrium is the scarcity of a material whose demand equals its supply.
// Anything above it is scarce.
const Equilibrium = 50

var equilibrium = decimal.NewFromInt(Equilibrium)

// Scarcity is the ratio demand*Equilibrium/supply. It is not a probability.
type Scarcity float64

// IsScarce reports whether the value lies above Equilibrium
func (s Scarcity) IsScarce() bool {
	return s > Equilibrium
}

// ComputeScarcity returns demand*Equilibrium/supply, or +Inf when supply is zero.
func ComputeScarcity(demand, supply decimal.Decimal) Scarcity {
	if !supply.IsPositive() {
		return Scarcity(math.Inf(1))
	}
	return Scarcity(demand.Mul(equilibrium).Div(supply).InexactFloat64())
}

// Material is a raw resource with an available supply and the demand pledged
// against it by pending orders.
//
// The scarcity cache is refreshed lazily: every supply or demand mutation marks
// it dirty and the next Scarcity call recomputes it.
type Material struct {
	ID MaterialID

	supply        decimal.Decimal
	demand        decimal.Decimal
	scarcityCache Scarcity
	dirty         bool
}

// NewMaterial creates a validated Material with zero demand
func NewMaterial(id MaterialID, supply decimal.Decimal) (*Material, error) {
	if !supply.IsPositive() {
		return nil, fmt.Errorf("material %d: %w", id, ErrZeroSupply)
	}

	return &Material{
		ID:     id,
		supply: supply,
		demand: decimal.Zero,
		dirty:  true,
	}, nil
}

// Supply returns the available quantity
func (m *Material) Supply() decimal.Decimal {
	return m.supply
}

// Demand returns the quantity pledged by pending orders
func (m *Material) Demand() decimal.Decimal {
	return m.demand
}

// SetSupply overwrites the supply. Demand is left untouched.
func (m *Material) SetSupply(supply decimal.Decimal) error {
	if supply.IsNegative() {
		return fmt.Errorf("material %d: %w, got %s", m.ID, ErrNegativeSupply, supply)
	}
	m.supply = supply
	m.dirty = true
	return nil
}

// Pledge adds qty to the demand
func (m *Material) Pledge(qty decimal.Decimal) {
	m.demand = m.demand.Add(qty)
	m.dirty = true
}

// Release removes a pledge previously added with Pledge.
func (m *Material) Release(qty decimal.Decimal) error {
	if qty.GreaterThan(m.demand) {
		return fmt.Errorf("material %d: %w, releasing %s of %s", m.ID, ErrDemandUnderflow, qty, m.demand)
	}
	m.demand = m.demand.Sub(qty)
	m.dirty = true
	return nil
}

// Consume takes qty out of the supply
func (m *Material) Consume(qty decimal.Decimal) error {
	if qty.GreaterThan(m.supply) {
		return fmt.Errorf("material %d: %w, need %s have %s", m.ID, ErrInsufficientSupply, qty, m.supply)
	}
	m.supply = m.supply.Sub(qty)
	m.dirty = true
	return nil
}

// CanSupply reports whether qty can be consumed right now
func (m *Material) CanSupply(qty decimal.Decimal) bool {
	return m.supply.GreaterThanOrEqual(qty)
}

// Scarcity returns the scarcity, recomputing it if supply or demand changed
// since the last computation.
func (m *Material) Scarcity() Scarcity {
	if m.dirty {
		return m.RefreshScarcity()
	}
	return m.scarcityCache
}

// RefreshScarcity recomputes and stores the scarcity unconditionally
func (m *Material) RefreshScarcity() Scarcity {
	m.scarcityCache = ComputeScarcity(m.demand, m.supply)
	m.dirty = false
	return m.scarcityCache
}

// CachedScarcity returns the stored value without recomputing it. The second
// result is false when the value is stale.
func (m *Material) CachedScarcity() (Scarcity, bool) {
	return m.scarcityCache, !m.dirty
}
