package production

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/resmng/pkg/application/services/shared"
	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/domain/repositories"
	"github.com/vsinha/resmng/pkg/infrastructure/events"
)

// DrainReport summarises one scheduler pass
type DrainReport struct {
	Manufactured []entities.Order
	Backlog      int
}

// Scheduler drains the production backlog.
//
// A drain is a single pass: classes are visited from 0 upward and each class
// in FIFO order. An entry that cannot be produced stays where it is and the
// scan moves on, so later entries of the same class may still be produced in
// the same pass. Nothing loops to a fixed point; callers drain again after
// supply changes.
type Scheduler struct {
	materials repositories.MaterialRepository
	products  repositories.ProductRepository
	queue     *Queue
	finished  *FinishedStack
	logger    *zap.Logger
	publisher
}

// NewScheduler wires dependencies into a Scheduler
func NewScheduler(deps Deps) (*Scheduler, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	deps = deps.withDefaults()

	return &Scheduler{
		materials: deps.Materials,
		products:  deps.Products,
		queue:     deps.Queue,
		finished:  deps.Finished,
		logger:    deps.Logger,
		publisher: publisher{store: deps.Events, logger: deps.Logger},
	}, nil
}

// Drain runs one pass over the backlog
func (s *Scheduler) Drain() DrainReport {
	var report DrainReport

	for class := entities.Priority(0); class < entities.PriorityClasses; class++ {
		i := 0
		for i < s.queue.ClassLen(class) {
			order := s.queue.At(class, i)

			done, err := s.tryManufacture(order)
			if err != nil {
				s.logger.Error("backlog entry cannot be manufactured",
					zap.Stringer("order_id", order.ID),
					zap.Int("product_id", int(order.ProductID)),
					zap.Error(err),
				)
			}
			if !done {
				i++
				continue
			}

			finished := *s.queue.RemoveAt(class, i)
			s.finished.Push(finished)
			report.Manufactured = append(report.Manufactured, finished)

			s.logger.Debug("manufactured order",
				zap.Stringer("order_id", finished.ID),
				zap.Int("product_id", int(finished.ProductID)),
				zap.Int("variant_id", int(finished.Variant)),
				zap.Stringer("amount", finished.Amount),
				zap.Int("priority", int(class)),
			)
			s.publish(events.NewOrderManufacturedEvent(finished))
		}
	}

	report.Backlog = s.queue.Len()
	s.publish(events.NewQueueDrainedEvent(len(report.Manufactured), report.Backlog))
	return report
}

// tryManufacture produces the order with the first feasible ranked variant.
// It reports false when no variant is feasible right now.
func (s *Scheduler) tryManufacture(order *entities.Order) (bool, error) {
	product, err := s.products.GetProduct(order.ProductID)
	if err != nil {
		return false, err
	}

	scarcity := s.refreshScarcity(product)
	ranked := shared.RankVariants(product.Variants, order.PreferredVariant, func(id entities.MaterialID) entities.Scarcity {
		return scarcity[id]
	})

	variant := shared.SelectFeasibleVariant(ranked, order.Amount, s.canSupply)
	if variant == nil {
		return false, nil
	}

	if err := s.manufacture(product, order, *variant); err != nil {
		return false, err
	}
	return true, nil
}

// refreshScarcity recomputes the cache of every material the product can be
// made from. Unknown materials rank as infinitely scarce.
func (s *Scheduler) refreshScarcity(product *entities.Product) map[entities.MaterialID]entities.Scarcity {
	ids := product.MaterialIDs()
	scarcity := make(map[entities.MaterialID]entities.Scarcity, len(ids))
	for _, id := range ids {
		material, err := s.materials.GetMaterial(id)
		if err != nil {
			scarcity[id] = entities.Scarcity(math.Inf(1))
			continue
		}
		scarcity[id] = material.RefreshScarcity()
	}
	return scarcity
}

func (s *Scheduler) canSupply(id entities.MaterialID, qty decimal.Decimal) bool {
	material, err := s.materials.GetMaterial(id)
	if err != nil {
		return false
	}
	return material.CanSupply(qty)
}

// manufacture consumes the variant's material, releases the admission pledge
// and delivers the product. Every precondition is checked before the first
// mutation so a failure leaves the ledgers untouched.
func (s *Scheduler) manufacture(product *entities.Product, order *entities.Order, variant entities.Variant) error {
	material, err := s.materials.GetMaterial(variant.MaterialID)
	if err != nil {
		return err
	}
	pledged, err := s.materials.GetMaterial(order.Pledge.MaterialID)
	if err != nil {
		return err
	}

	required := variant.Requirement(order.Amount)
	if !material.CanSupply(required) {
		return fmt.Errorf("material %d: %w", material.ID, entities.ErrInsufficientSupply)
	}
	if pledged.Demand().LessThan(order.Pledge.Quantity) {
		return fmt.Errorf("material %d: %w", pledged.ID, entities.ErrDemandUnderflow)
	}
	if product.Demand.LessThan(order.Amount) {
		return fmt.Errorf("product %d: %w", product.ID, entities.ErrDemandUnderflow)
	}

	if err := material.Consume(required); err != nil {
		return err
	}
	if err := pledged.Release(order.Pledge.Quantity); err != nil {
		return err
	}
	product.Manufacture(order.Amount)
	if err := product.Deliver(order.Amount); err != nil {
		return err
	}

	order.Variant = variant.ID
	return nil
}
