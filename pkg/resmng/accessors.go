package resmng

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

// MaterialSupply returns the available quantity of a material
func (i *Instance) MaterialSupply(id entities.MaterialID) (decimal.Decimal, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	m, err := i.materials.GetMaterial(id)
	if err != nil {
		return decimal.Zero, err
	}
	return m.Supply(), nil
}

// MaterialDemand returns the quantity pledged against a material
func (i *Instance) MaterialDemand(id entities.MaterialID) (decimal.Decimal, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	m, err := i.materials.GetMaterial(id)
	if err != nil {
		return decimal.Zero, err
	}
	return m.Demand(), nil
}

// MaterialScarcity returns demand*Equilibrium/supply for a material
func (i *Instance) MaterialScarcity(id entities.MaterialID) (entities.Scarcity, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	m, err := i.materials.GetMaterial(id)
	if err != nil {
		return 0, err
	}
	return m.Scarcity(), nil
}

// ProductSupply returns the manufactured stock not yet delivered
func (i *Instance) ProductSupply(id entities.ProductID) (decimal.Decimal, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	p, err := i.products.GetProduct(id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Supply, nil
}

// ProductDemand returns the sum of outstanding order amounts
func (i *Instance) ProductDemand(id entities.ProductID) (decimal.Decimal, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	p, err := i.products.GetProduct(id)
	if err != nil {
		return decimal.Zero, err
	}
	return p.Demand, nil
}

// ProductPriority returns the backlog class of a product
func (i *Instance) ProductPriority(id entities.ProductID) (entities.Priority, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	p, err := i.products.GetProduct(id)
	if err != nil {
		return 0, err
	}
	return p.Priority, nil
}

// Variant returns a copy of one recipe
func (i *Instance) Variant(productID entities.ProductID, variantID entities.VariantID) (entities.Variant, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	p, err := i.products.GetProduct(productID)
	if err != nil {
		return entities.Variant{}, err
	}
	v, ok := p.Variant(variantID)
	if !ok {
		return entities.Variant{}, entities.NoSuchVariant(productID, variantID)
	}
	return *v, nil
}

// QueueLen returns the backlog size summed over every priority class
func (i *Instance) QueueLen() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.queue.Len()
}

// FinishedLen returns the number of orders awaiting pickup
func (i *Instance) FinishedLen() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.finished.Len()
}

// MaterialCount returns the number of materials in the ledger
func (i *Instance) MaterialCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.materials.Count()
}

// ProductCount returns the number of products in the catalog
func (i *Instance) ProductCount() int {
	i.mu.Lock()
	defer i.mu.Unlock()
	return i.products.Count()
}
