package production

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/domain/repositories"
	"github.com/vsinha/resmng/pkg/infrastructure/events"
)

// OrderRequest is a client order as received by admission
type OrderRequest struct {
	ProductID         entities.ProductID
	Amount            decimal.Decimal
	PreferredVariant  entities.VariantID
	UserID            entities.UserID
	AllowSubstitution bool
}

// Admission is the result of admitting one order
type Admission struct {
	Order    entities.Order
	Outcome  entities.Outcome
	Scarcity entities.Scarcity // projected scarcity of the preferred material

	// Drain is set when the forecast triggered an immediate scheduler pass.
	Drain *DrainReport
}

// AdmissionController validates orders, projects their demand and places
// them in the backlog.
type AdmissionController struct {
	materials repositories.MaterialRepository
	products  repositories.ProductRepository
	queue     *Queue
	finished  *FinishedStack
	scheduler *Scheduler
	newID     func() uuid.UUID
	logger    *zap.Logger
	publisher
}

// NewAdmissionController wires dependencies into an AdmissionController
func NewAdmissionController(deps Deps, scheduler *Scheduler) (*AdmissionController, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	deps = deps.withDefaults()

	return &AdmissionController{
		materials: deps.Materials,
		products:  deps.Products,
		queue:     deps.Queue,
		finished:  deps.Finished,
		scheduler: scheduler,
		newID:     deps.IDGenerator,
		logger:    deps.Logger,
		publisher: publisher{store: deps.Events, logger: deps.Logger},
	}, nil
}

// Admit classifies and enqueues an order.
//
// Every lookup happens before the first mutation, so a failed admission
// leaves the ledgers untouched. Once the product and material exist the order
// is never rejected: the outcome is only a forecast. Unfavorable forecasts
// trigger an immediate drain; a healthy Queued does not.
func (a *AdmissionController) Admit(req OrderRequest) (*Admission, error) {
	order, err := entities.NewOrder(
		a.newID(),
		req.ProductID,
		req.Amount,
		req.PreferredVariant,
		req.UserID,
		req.AllowSubstitution,
	)
	if err != nil {
		return nil, err
	}

	if a.products.Count() == 0 {
		return nil, entities.ErrNoProducts
	}
	product, err := a.products.GetProduct(req.ProductID)
	if err != nil {
		return nil, err
	}
	variant, ok := product.Variant(req.PreferredVariant)
	if !ok {
		return nil, entities.NoSuchVariant(product.ID, req.PreferredVariant)
	}
	material, err := a.materials.GetMaterial(variant.MaterialID)
	if err != nil {
		return nil, err
	}

	required := variant.Requirement(order.Amount)
	order.Priority = product.Priority
	order.Pledge = entities.Pledge{MaterialID: material.ID, Quantity: required}

	product.Demand = product.Demand.Add(order.Amount)
	material.Pledge(required)
	scarcity := material.RefreshScarcity()

	if order.Amount.LessThanOrEqual(product.Supply) {
		return a.deliverFromStock(product, material, order, scarcity)
	}

	// A supply shortage always implies scarcity above Equilibrium once the
	// pledge is counted, so the shortage is checked last and wins.
	outcome := entities.Queued
	if scarcity.IsScarce() {
		outcome = entities.MaterialScarce
	}
	if !material.CanSupply(required) {
		outcome = entities.MaterialNotAvailable
	}

	if err := a.queue.Enqueue(order); err != nil {
		// Unreachable with a validated catalog; undo the projection.
		product.Demand = product.Demand.Sub(order.Amount)
		_ = material.Release(required)
		return nil, err
	}

	a.logger.Debug("order admitted",
		zap.Stringer("order_id", order.ID),
		zap.Int("product_id", int(order.ProductID)),
		zap.Stringer("amount", order.Amount),
		zap.Stringer("outcome", outcome),
		zap.Float64("scarcity", float64(scarcity)),
	)
	a.publish(events.NewOrderAdmittedEvent(*order, outcome, scarcity, a.queue.Len()))

	admission := &Admission{
		Order:    *order,
		Outcome:  outcome,
		Scarcity: scarcity,
	}
	if outcome.Unfavorable() && a.scheduler != nil {
		report := a.scheduler.Drain()
		admission.Drain = &report
	}
	return admission, nil
}

// deliverFromStock serves the order from manufactured stock. No material is
// consumed, so the pledge is withdrawn again.
func (a *AdmissionController) deliverFromStock(
	product *entities.Product,
	material *entities.Material,
	order *entities.Order,
	scarcity entities.Scarcity,
) (*Admission, error) {
	if err := material.Release(order.Pledge.Quantity); err != nil {
		return nil, err
	}
	if err := product.Deliver(order.Amount); err != nil {
		product.Demand = product.Demand.Sub(order.Amount)
		return nil, err
	}
	order.Pledge = entities.Pledge{MaterialID: material.ID, Quantity: decimal.Zero}
	a.finished.Push(*order)

	a.logger.Debug("order delivered from stock",
		zap.Stringer("order_id", order.ID),
		zap.Int("product_id", int(order.ProductID)),
		zap.Stringer("amount", order.Amount),
	)
	a.publish(events.NewOrderAdmittedEvent(*order, entities.Delivered, scarcity, a.queue.Len()))
	a.publish(events.NewOrderDeliveredEvent(*order))

	return &Admission{
		Order:    *order,
		Outcome:  entities.Delivered,
		Scarcity: scarcity,
	}, nil
}
