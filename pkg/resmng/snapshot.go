package resmng

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

// MaterialState is a point-in-time copy of one material
type MaterialState struct {
	ID       entities.MaterialID
	Supply   decimal.Decimal
	Demand   decimal.Decimal
	Scarcity entities.Scarcity
}

// ProductState is a point-in-time copy of one product
type ProductState struct {
	ID       entities.ProductID
	Priority entities.Priority
	Variants int
	Supply   decimal.Decimal
	Demand   decimal.Decimal
}

// Snapshot captures the whole economy at once
type Snapshot struct {
	Materials []MaterialState
	Products  []ProductState
	Backlog   [entities.PriorityClasses]int
	Finished  int
}

// BacklogLen returns the backlog summed over every class
func (s Snapshot) BacklogLen() int {
	total := 0
	for _, n := range s.Backlog {
		total += n
	}
	return total
}

// Snapshot copies the current state
func (i *Instance) Snapshot() Snapshot {
	i.mu.Lock()
	defer i.mu.Unlock()

	materials := i.materials.GetAllMaterials()
	products := i.products.GetAllProducts()

	snap := Snapshot{
		Materials: make([]MaterialState, 0, len(materials)),
		Products:  make([]ProductState, 0, len(products)),
		Finished:  i.finished.Len(),
	}
	for _, m := range materials {
		snap.Materials = append(snap.Materials, MaterialState{
			ID:       m.ID,
			Supply:   m.Supply(),
			Demand:   m.Demand(),
			Scarcity: m.Scarcity(),
		})
	}
	for _, p := range products {
		snap.Products = append(snap.Products, ProductState{
			ID:       p.ID,
			Priority: p.Priority,
			Variants: len(p.Variants),
			Supply:   p.Supply,
			Demand:   p.Demand,
		})
	}
	for class := range snap.Backlog {
		snap.Backlog[class] = i.queue.ClassLen(entities.Priority(class))
	}
	return snap
}
