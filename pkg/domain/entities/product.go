package entities

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// ProductID is assigned by the catalog in insertion order
type ProductID int

// VariantID is unique within a product and never reused
type VariantID int

// Priority selects the backlog class orders for a product are queued in.
// Class 0 is drained first.
type Priority int

// PriorityClasses is the number of backlog classes
const PriorityClasses = 3

// Valid reports whether the priority maps to a backlog class
func (p Priority) Valid() bool {
	return p >= 0 && p < PriorityClasses
}

// Variant is one recipe for a product: MaterialAmount units of a single
// material per unit produced. WorkComplexity only affects ranking.
type Variant struct {
	ID             VariantID
	MaterialID     MaterialID
	MaterialAmount decimal.Decimal
	WorkComplexity decimal.Decimal
}

// NewVariant creates a validated Variant
func NewVariant(id VariantID, materialID MaterialID, materialAmount, workComplexity decimal.Decimal) (*Variant, error) {
	if !materialAmount.IsPositive() {
		return nil, fmt.Errorf("variant %d: %w, got %s", id, ErrZeroMaterialAmount, materialAmount)
	}
	if !workComplexity.IsPositive() {
		return nil, fmt.Errorf("variant %d: %w, got %s", id, ErrInvalidComplexity, workComplexity)
	}

	return &Variant{
		ID:             id,
		MaterialID:     materialID,
		MaterialAmount: materialAmount,
		WorkComplexity: workComplexity,
	}, nil
}

// Requirement returns the material consumed to produce amount units
func (v Variant) Requirement(amount decimal.Decimal) decimal.Decimal {
	return amount.Mul(v.MaterialAmount)
}

// Product is a manufactured good with one or more recipe variants.
// Supply holds manufactured stock not yet delivered; Demand is the sum of
// outstanding order amounts.
type Product struct {
	ID       ProductID
	Variants []Variant
	Supply   decimal.Decimal
	Demand   decimal.Decimal
	Priority Priority
}

// NewProduct creates a Product whose first variant gets id 0
func NewProduct(priority Priority, materialID MaterialID, materialAmount, workComplexity decimal.Decimal) (*Product, error) {
	if !priority.Valid() {
		return nil, fmt.Errorf("%w: %d not in [0,%d)", ErrInvalidPriority, priority, PriorityClasses)
	}
	first, err := NewVariant(0, materialID, materialAmount, workComplexity)
	if err != nil {
		return nil, err
	}

	return &Product{
		Variants: []Variant{*first},
		Supply:   decimal.Zero,
		Demand:   decimal.Zero,
		Priority: priority,
	}, nil
}

// AddVariant appends a recipe and returns its id. Ids are sequential and
// never recycled.
func (p *Product) AddVariant(materialID MaterialID, materialAmount, workComplexity decimal.Decimal) (VariantID, error) {
	id := VariantID(len(p.Variants))
	v, err := NewVariant(id, materialID, materialAmount, workComplexity)
	if err != nil {
		return 0, err
	}
	p.Variants = append(p.Variants, *v)
	return id, nil
}

// Variant looks up a recipe by id
func (p *Product) Variant(id VariantID) (*Variant, bool) {
	if id < 0 || int(id) >= len(p.Variants) {
		return nil, false
	}
	return &p.Variants[id], true
}

// MaterialIDs returns the distinct materials referenced by the variants, in variant order
func (p *Product) MaterialIDs() []MaterialID {
	seen := make(map[MaterialID]bool, len(p.Variants))
	ids := make([]MaterialID, 0, len(p.Variants))
	for _, v := range p.Variants {
		if !seen[v.MaterialID] {
			seen[v.MaterialID] = true
			ids = append(ids, v.MaterialID)
		}
	}
	return ids
}

// Manufacture adds freshly produced units to the stock
func (p *Product) Manufacture(amount decimal.Decimal) {
	p.Supply = p.Supply.Add(amount)
}

// Deliver hands amount units to a client, reducing both stock and demand
func (p *Product) Deliver(amount decimal.Decimal) error {
	if amount.GreaterThan(p.Supply) {
		return fmt.Errorf("product %d: %w, deliver %s from stock %s", p.ID, ErrInsufficientSupply, amount, p.Supply)
	}
	if amount.GreaterThan(p.Demand) {
		return fmt.Errorf("product %d: %w, deliver %s against demand %s", p.ID, ErrDemandUnderflow, amount, p.Demand)
	}
	p.Supply = p.Supply.Sub(amount)
	p.Demand = p.Demand.Sub(amount)
	return nil
}
