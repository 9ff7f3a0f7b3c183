// Package simulation drives an Instance with a random workload.
package simulation

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/application/services/production"
	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/resmng"
)

// DefaultMaxValue bounds generated supplies; product and order amounts are
// fractions of it.
const DefaultMaxValue = 512

const (
	productAmountDivisor = 32
	orderAmountDivisor   = 48
	maxMaterialID        = 1 << 16
	maxWorkComplexity    = 256
)

// Kind identifies what a generated event did
type Kind int

const (
	KindAddMaterial Kind = iota
	KindAddProduct
	KindAddVariant
	KindOrder
	KindUpdateSupply
)

func (k Kind) String() string {
	switch k {
	case KindAddMaterial:
		return "add-material"
	case KindAddProduct:
		return "add-product"
	case KindAddVariant:
		return "add-variant"
	case KindOrder:
		return "order"
	case KindUpdateSupply:
		return "update-supply"
	default:
		return "unknown"
	}
}

// Event records one generated operation and its effect
type Event struct {
	Cycle int
	Kind  Kind

	MaterialID entities.MaterialID
	ProductID  entities.ProductID
	VariantID  entities.VariantID

	// Amount is the supply for material events, the material amount for
	// product and variant events and the product amount for orders.
	Amount decimal.Decimal
	// Cost is the material an order pledged.
	Cost     decimal.Decimal
	Outcome  entities.Outcome
	Scarcity entities.Scarcity
	Demand   decimal.Decimal

	// Finished holds the orders picked up after the operation, most recent first.
	Finished []entities.Order
	Err      error
}

// Failed reports whether the Instance rejected the operation
func (e Event) Failed() bool {
	return e.Err != nil
}

// Config configures a Generator
type Config struct {
	Seed     int64
	MaxValue int64
}

// Generator picks operations with fixed weights out of ten: one material
// addition, one catalog change, five orders and three supply updates.
type Generator struct {
	inst     *resmng.Instance
	rng      *rand.Rand
	maxValue int64
	cycle    int
}

// NewGenerator creates a Generator for inst
func NewGenerator(inst *resmng.Instance, cfg Config) (*Generator, error) {
	if inst == nil {
		return nil, errors.New("simulation: instance is required")
	}
	maxValue := cfg.MaxValue
	if maxValue == 0 {
		maxValue = DefaultMaxValue
	}
	if maxValue < orderAmountDivisor {
		return nil, fmt.Errorf("simulation: max value must be at least %d, got %d", orderAmountDivisor, maxValue)
	}

	return &Generator{
		inst:     inst,
		rng:      rand.New(rand.NewSource(cfg.Seed)),
		maxValue: maxValue,
	}, nil
}

// Bootstrap adds materials and then products so that the first cycles have
// something to order. Rejected additions are retried until the counts are met.
func (g *Generator) Bootstrap(materials, products int) error {
	for attempts := 0; g.inst.MaterialCount() < materials; attempts++ {
		if attempts > materials*100 {
			return fmt.Errorf("simulation: gave up bootstrapping %d materials", materials)
		}
		g.addMaterial(&Event{})
	}
	for attempts := 0; g.inst.ProductCount() < products; attempts++ {
		if attempts > products*100 {
			return fmt.Errorf("simulation: gave up bootstrapping %d products", products)
		}
		g.addProduct(&Event{})
	}
	return nil
}

// Next generates and applies one operation
func (g *Generator) Next() Event {
	ev := Event{Cycle: g.cycle}
	g.cycle++

	switch n := g.rng.Intn(10); {
	case n == 0:
		g.addMaterial(&ev)
	case n == 1:
		// half of the catalog changes extend an existing product
		if g.inst.ProductCount() > 0 && g.rng.Intn(2) == 0 {
			g.addVariant(&ev)
		} else {
			g.addProduct(&ev)
		}
	case n <= 6:
		g.order(&ev)
	default:
		g.updateSupply(&ev)
	}

	for {
		order, ok := g.inst.PopFinished()
		if !ok {
			break
		}
		ev.Finished = append(ev.Finished, order)
	}
	return ev
}

func (g *Generator) addMaterial(ev *Event) {
	ev.Kind = KindAddMaterial
	ev.MaterialID = entities.MaterialID(g.rng.Intn(maxMaterialID))
	ev.Amount = decimal.NewFromInt(g.rng.Int63n(g.maxValue))
	ev.Err = g.inst.AddMaterial(ev.MaterialID, ev.Amount)
}

func (g *Generator) addProduct(ev *Event) {
	ev.Kind = KindAddProduct
	material, ok := g.randomMaterial()
	if !ok {
		ev.Err = entities.ErrNoSuchMaterial
		return
	}
	ev.MaterialID = material
	ev.Amount = decimal.NewFromInt(g.rng.Int63n(g.maxValue) / productAmountDivisor)
	priority := entities.Priority(g.rng.Intn(entities.PriorityClasses))
	complexity := decimal.NewFromInt(int64(g.rng.Intn(maxWorkComplexity)))

	ev.ProductID, ev.Err = g.inst.AddProduct(material, ev.Amount, priority, complexity)
}

func (g *Generator) addVariant(ev *Event) {
	ev.Kind = KindAddVariant
	material, ok := g.randomMaterial()
	if !ok {
		ev.Err = entities.ErrNoSuchMaterial
		return
	}
	ev.MaterialID = material
	ev.ProductID = entities.ProductID(g.rng.Intn(g.inst.ProductCount()))
	ev.Amount = decimal.NewFromInt(g.rng.Int63n(g.maxValue) / productAmountDivisor)
	complexity := decimal.NewFromInt(int64(g.rng.Intn(maxWorkComplexity)))

	ev.VariantID, ev.Err = g.inst.AddProductVariant(ev.ProductID, material, ev.Amount, complexity)
}

func (g *Generator) order(ev *Event) {
	ev.Kind = KindOrder
	ev.Amount = decimal.NewFromInt(g.rng.Int63n(g.maxValue) / orderAmountDivisor)

	products := g.inst.Snapshot().Products
	if len(products) > 0 {
		p := products[g.rng.Intn(len(products))]
		ev.ProductID = p.ID
		ev.VariantID = entities.VariantID(g.rng.Intn(p.Variants))
	}

	admission, err := g.inst.Admit(production.OrderRequest{
		ProductID:         ev.ProductID,
		Amount:            ev.Amount,
		PreferredVariant:  ev.VariantID,
		UserID:            entities.UserID(g.rng.Uint32()),
		AllowSubstitution: g.rng.Intn(2) == 0,
	})
	if err != nil {
		ev.Err = err
		return
	}
	ev.Outcome = admission.Outcome
	ev.Scarcity = admission.Scarcity
	ev.MaterialID = admission.Order.Pledge.MaterialID
	ev.Cost = admission.Order.Pledge.Quantity
}

func (g *Generator) updateSupply(ev *Event) {
	ev.Kind = KindUpdateSupply
	material, ok := g.randomMaterial()
	if !ok {
		ev.Err = entities.ErrNoSuchMaterial
		return
	}
	ev.MaterialID = material
	ev.Amount = decimal.NewFromInt(g.rng.Int63n(g.maxValue))
	if ev.Err = g.inst.UpdateSupply(material, ev.Amount); ev.Err != nil {
		return
	}
	ev.Demand, _ = g.inst.MaterialDemand(material)
	ev.Scarcity, _ = g.inst.MaterialScarcity(material)
}

func (g *Generator) randomMaterial() (entities.MaterialID, bool) {
	materials := g.inst.Snapshot().Materials
	if len(materials) == 0 {
		return 0, false
	}
	return materials[g.rng.Intn(len(materials))].ID, true
}
