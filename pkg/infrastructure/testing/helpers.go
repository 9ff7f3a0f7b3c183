package testing

import (
	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/infrastructure/repositories/memory"
)

// Material ids used by the workshop scenario
const (
	Steel  entities.MaterialID = 1
	Copper entities.MaterialID = 2
	Resin  entities.MaterialID = 3
)

// Product ids used by the workshop scenario, in insertion order
const (
	Bracket entities.ProductID = iota
	Coil
	Casing
)

// Qty is shorthand for an integral decimal quantity
func Qty(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// BuildWorkshopTestData builds a small catalog:
//
//	materials: steel 80, copper 40, resin 200
//	bracket (priority 0): 10 steel, or 4 copper as variant 1
//	coil    (priority 1): 5 copper
//	casing  (priority 2): 2 resin, or 1 steel (complexity 3) as variant 1
func BuildWorkshopTestData() (*memory.MaterialRepository, *memory.ProductRepository) {
	materialRepo := memory.NewMaterialRepository(3)
	productRepo := memory.NewProductRepository(3)

	for _, m := range []struct {
		id     entities.MaterialID
		supply int64
	}{
		{Steel, 80},
		{Copper, 40},
		{Resin, 200},
	} {
		material, err := entities.NewMaterial(m.id, Qty(m.supply))
		if err != nil {
			panic(err)
		}
		if err := materialRepo.AddMaterial(material); err != nil {
			panic(err)
		}
	}

	bracket := mustProduct(0, Steel, 10, decimal.NewFromInt(1))
	mustVariant(bracket, Copper, 4, decimal.NewFromInt(1))
	productRepo.AddProduct(bracket)

	productRepo.AddProduct(mustProduct(1, Copper, 5, decimal.NewFromInt(2)))

	casing := mustProduct(2, Resin, 2, decimal.NewFromInt(1))
	mustVariant(casing, Steel, 1, decimal.NewFromInt(3))
	productRepo.AddProduct(casing)

	return materialRepo, productRepo
}

func mustProduct(priority entities.Priority, material entities.MaterialID, amount int64, complexity decimal.Decimal) *entities.Product {
	p, err := entities.NewProduct(priority, material, Qty(amount), complexity)
	if err != nil {
		panic(err)
	}
	return p
}

func mustVariant(p *entities.Product, material entities.MaterialID, amount int64, complexity decimal.Decimal) {
	if _, err := p.AddVariant(material, Qty(amount), complexity); err != nil {
		panic(err)
	}
}
