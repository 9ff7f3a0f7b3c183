package csv

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

// Catalog is the part of an Instance a scenario seeds
type Catalog interface {
	AddMaterial(id entities.MaterialID, supply decimal.Decimal) error
	AddProduct(materialID entities.MaterialID, materialAmount decimal.Decimal, priority entities.Priority, workComplexity decimal.Decimal) (entities.ProductID, error)
	AddProductVariant(productID entities.ProductID, materialID entities.MaterialID, materialAmount decimal.Decimal, workComplexity decimal.Decimal) (entities.VariantID, error)
}

// Scenario is a starting catalog loaded from CSV
type Scenario struct {
	Materials []MaterialRow
	Products  []ProductRow
	Variants  []VariantRow
}

// Apply adds materials, then products, then variants, stopping at the first
// rejected row. It returns the id the catalog assigned to each product key.
func (s *Scenario) Apply(c Catalog) (map[string]entities.ProductID, error) {
	for _, m := range s.Materials {
		if err := c.AddMaterial(m.ID, m.Supply); err != nil {
			return nil, fmt.Errorf("failed to add material %d: %w", m.ID, err)
		}
	}

	ids := make(map[string]entities.ProductID, len(s.Products))
	for _, p := range s.Products {
		id, err := c.AddProduct(p.MaterialID, p.MaterialAmount, p.Priority, p.WorkComplexity)
		if err != nil {
			return nil, fmt.Errorf("failed to add product %q: %w", p.Key, err)
		}
		ids[p.Key] = id
	}

	for _, v := range s.Variants {
		id, ok := ids[v.ProductKey]
		if !ok {
			return nil, fmt.Errorf("variant for %q: %w", v.ProductKey, entities.ErrNoSuchProduct)
		}
		if _, err := c.AddProductVariant(id, v.MaterialID, v.MaterialAmount, v.WorkComplexity); err != nil {
			return nil, fmt.Errorf("failed to add variant to %q: %w", v.ProductKey, err)
		}
	}
	return ids, nil
}
