package services

import (
	"fmt"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

// CatalogValidator checks the integrity of the material ledger and product catalog
type CatalogValidator struct{}

// NewCatalogValidator creates a new catalog validator
func NewCatalogValidator() *CatalogValidator {
	return &CatalogValidator{}
}

// VariantRef points at one variant of one product
type VariantRef struct {
	ProductID  entities.ProductID
	VariantID  entities.VariantID
	MaterialID entities.MaterialID
}

// ValidationResult contains the results of catalog validation
type ValidationResult struct {
	DanglingVariants  []VariantRef
	NegativeMaterials []entities.MaterialID
	NegativeProducts  []entities.ProductID
	Errors            []string
}

// Valid reports whether no problem was found
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// ValidateCatalog checks that every variant references a known material and
// that no material or product balance went negative.
func (v *CatalogValidator) ValidateCatalog(
	materials []*entities.Material,
	products []*entities.Product,
) *ValidationResult {
	result := &ValidationResult{
		DanglingVariants:  make([]VariantRef, 0),
		NegativeMaterials: make([]entities.MaterialID, 0),
		NegativeProducts:  make([]entities.ProductID, 0),
		Errors:            make([]string, 0),
	}

	known := make(map[entities.MaterialID]bool, len(materials))
	for _, m := range materials {
		known[m.ID] = true
		if m.Supply().IsNegative() || m.Demand().IsNegative() {
			result.NegativeMaterials = append(result.NegativeMaterials, m.ID)
		}
	}

	for _, p := range products {
		if p.Supply.IsNegative() || p.Demand.IsNegative() {
			result.NegativeProducts = append(result.NegativeProducts, p.ID)
		}
		for _, variant := range p.Variants {
			if !known[variant.MaterialID] {
				result.DanglingVariants = append(result.DanglingVariants, VariantRef{
					ProductID:  p.ID,
					VariantID:  variant.ID,
					MaterialID: variant.MaterialID,
				})
			}
		}
	}

	for _, ref := range result.DanglingVariants {
		result.Errors = append(result.Errors, fmt.Sprintf(
			"product %d variant %d references unknown material %d",
			ref.ProductID, ref.VariantID, ref.MaterialID))
	}
	if len(result.NegativeMaterials) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("negative material balances: %v", result.NegativeMaterials))
	}
	if len(result.NegativeProducts) > 0 {
		result.Errors = append(result.Errors, fmt.Sprintf("negative product balances: %v", result.NegativeProducts))
	}

	return result
}
