package shared

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

// ScarcityLookup returns the current scarcity of a material
type ScarcityLookup func(id entities.MaterialID) entities.Scarcity

// SupplyCheck reports whether a material can cover qty right now
type SupplyCheck func(id entities.MaterialID, qty decimal.Decimal) bool

// CostIndex ranks a variant: scarcity of its material divided by its work
// complexity. Lower is cheaper.
func CostIndex(scarcity entities.Scarcity, workComplexity decimal.Decimal) float64 {
	return float64(scarcity) / workComplexity.InexactFloat64()
}

// RankVariants returns the order in which variants are attempted for an
// order. The preferred variant always comes first; the rest follow by
// ascending cost index, ties keeping variant id order.
// The input slice is not modified.
func RankVariants(
	variants []entities.Variant,
	preferred entities.VariantID,
	scarcity ScarcityLookup,
) []entities.Variant {
	ranked := make([]entities.Variant, 0, len(variants))
	if len(variants) < 2 {
		return append(ranked, variants...)
	}

	var head *entities.Variant
	for i := range variants {
		if variants[i].ID == preferred && head == nil {
			head = &variants[i]
			continue
		}
		ranked = append(ranked, variants[i])
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		ci := CostIndex(scarcity(ranked[i].MaterialID), ranked[i].WorkComplexity)
		cj := CostIndex(scarcity(ranked[j].MaterialID), ranked[j].WorkComplexity)
		return ci < cj
	})

	if head == nil {
		return ranked
	}
	return append([]entities.Variant{*head}, ranked...)
}

// SelectFeasibleVariant returns the first ranked variant whose material can
// cover amount units. Returns nil if none can.
func SelectFeasibleVariant(
	ranked []entities.Variant,
	amount decimal.Decimal,
	canSupply SupplyCheck,
) *entities.Variant {
	for i := range ranked {
		if canSupply(ranked[i].MaterialID, ranked[i].Requirement(amount)) {
			return &ranked[i]
		}
	}
	return nil
}
