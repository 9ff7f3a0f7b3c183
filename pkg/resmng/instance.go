// Package resmng is the entry point of the production economy: it owns the
// material ledger, the product catalog, the backlog and the finished stack.
package resmng

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/vsinha/resmng/pkg/application/services/production"
	"github.com/vsinha/resmng/pkg/domain/entities"
	"github.com/vsinha/resmng/pkg/domain/services"
	"github.com/vsinha/resmng/pkg/infrastructure/events"
	"github.com/vsinha/resmng/pkg/infrastructure/repositories/memory"
)

// Options configures an Instance. Every field is optional.
type Options struct {
	Logger      *zap.Logger
	Events      events.EventStore
	IDGenerator func() uuid.UUID

	// ExpectedMaterials and ExpectedProducts size the repositories up front.
	ExpectedMaterials int
	ExpectedProducts  int
}

// Instance serializes every operation behind one mutex. Event handlers run
// synchronously while it is held and must not call back into the Instance.
type Instance struct {
	mu sync.Mutex

	materials *memory.MaterialRepository
	products  *memory.ProductRepository
	queue     *production.Queue
	finished  *production.FinishedStack

	admission *production.AdmissionController
	scheduler *production.Scheduler
	validator *services.CatalogValidator

	events events.EventStore
	logger *zap.Logger
}

// New creates an empty Instance
func New(opts Options) (*Instance, error) {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	inst := &Instance{
		materials: memory.NewMaterialRepository(opts.ExpectedMaterials),
		products:  memory.NewProductRepository(opts.ExpectedProducts),
		queue:     production.NewQueue(),
		finished:  production.NewFinishedStack(),
		validator: services.NewCatalogValidator(),
		events:    opts.Events,
		logger:    logger,
	}

	deps := production.Deps{
		Materials:   inst.materials,
		Products:    inst.products,
		Queue:       inst.queue,
		Finished:    inst.finished,
		Events:      opts.Events,
		Logger:      logger,
		IDGenerator: opts.IDGenerator,
	}

	var err error
	inst.scheduler, err = production.NewScheduler(deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}
	inst.admission, err = production.NewAdmissionController(deps, inst.scheduler)
	if err != nil {
		return nil, fmt.Errorf("failed to create admission controller: %w", err)
	}
	return inst, nil
}

// AddMaterial registers a material with a positive initial supply
func (i *Instance) AddMaterial(id entities.MaterialID, supply decimal.Decimal) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	material, err := entities.NewMaterial(id, supply)
	if err != nil {
		return err
	}
	if err := i.materials.AddMaterial(material); err != nil {
		return err
	}

	i.logger.Info("material added",
		zap.Int("material_id", int(id)),
		zap.Stringer("supply", supply),
	)
	i.publish(events.NewMaterialAddedEvent(material))
	return nil
}

// AddProduct creates a product whose first variant (id 0) is made from
// materialAmount units of materialID. Ids are assigned densely.
func (i *Instance) AddProduct(
	materialID entities.MaterialID,
	materialAmount decimal.Decimal,
	priority entities.Priority,
	workComplexity decimal.Decimal,
) (entities.ProductID, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !materialAmount.IsPositive() {
		return 0, fmt.Errorf("%w, got %s", entities.ErrZeroMaterialAmount, materialAmount)
	}
	if _, err := i.materials.GetMaterial(materialID); err != nil {
		return 0, err
	}
	product, err := entities.NewProduct(priority, materialID, materialAmount, workComplexity)
	if err != nil {
		return 0, err
	}
	id := i.products.AddProduct(product)

	i.logger.Info("product added",
		zap.Int("product_id", int(id)),
		zap.Int("material_id", int(materialID)),
		zap.Int("priority", int(priority)),
	)
	i.publish(events.NewProductAddedEvent(product))
	return id, nil
}

// AddProductVariant appends a recipe to an existing product
func (i *Instance) AddProductVariant(
	productID entities.ProductID,
	materialID entities.MaterialID,
	materialAmount decimal.Decimal,
	workComplexity decimal.Decimal,
) (entities.VariantID, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	product, err := i.products.GetProduct(productID)
	if err != nil {
		return 0, err
	}
	if _, err := i.materials.GetMaterial(materialID); err != nil {
		return 0, err
	}
	id, err := product.AddVariant(materialID, materialAmount, workComplexity)
	if err != nil {
		return 0, err
	}

	i.logger.Info("variant added",
		zap.Int("product_id", int(productID)),
		zap.Int("variant_id", int(id)),
		zap.Int("material_id", int(materialID)),
	)
	variant, _ := product.Variant(id)
	i.publish(events.NewVariantAddedEvent(productID, *variant))
	return id, nil
}

// Order admits a client order and returns the forecast
func (i *Instance) Order(
	productID entities.ProductID,
	amount decimal.Decimal,
	preferredVariant entities.VariantID,
	userID entities.UserID,
	allowSubstitution bool,
) (entities.Outcome, error) {
	admission, err := i.Admit(production.OrderRequest{
		ProductID:         productID,
		Amount:            amount,
		PreferredVariant:  preferredVariant,
		UserID:            userID,
		AllowSubstitution: allowSubstitution,
	})
	if err != nil {
		return entities.OutcomeUnknown, err
	}
	return admission.Outcome, nil
}

// Admit is Order with the full admission record, including the drain it may
// have triggered.
func (i *Instance) Admit(req production.OrderRequest) (*production.Admission, error) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.admission.Admit(req)
}

// UpdateSupply overwrites the supply of a material, leaving its demand
// alone, and drains the backlog.
func (i *Instance) UpdateSupply(id entities.MaterialID, supply decimal.Decimal) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	material, err := i.materials.GetMaterial(id)
	if err != nil {
		return err
	}
	oldSupply := material.Supply()
	if err := material.SetSupply(supply); err != nil {
		return err
	}

	i.logger.Info("supply updated",
		zap.Int("material_id", int(id)),
		zap.Stringer("old_supply", oldSupply),
		zap.Stringer("new_supply", supply),
		zap.Stringer("demand", material.Demand()),
	)
	i.publish(events.NewSupplyUpdatedEvent(material, oldSupply))

	i.scheduler.Drain()
	return nil
}

// StockProduct adds manufactured units to a product's stock. Orders that
// the stock covers are delivered on admission.
func (i *Instance) StockProduct(id entities.ProductID, amount decimal.Decimal) error {
	i.mu.Lock()
	defer i.mu.Unlock()

	if !amount.IsPositive() {
		return fmt.Errorf("%w, got %s", entities.ErrZeroAmount, amount)
	}
	product, err := i.products.GetProduct(id)
	if err != nil {
		return err
	}
	product.Manufacture(amount)
	return nil
}

// ProcessQueue runs one scheduler pass
func (i *Instance) ProcessQueue() production.DrainReport {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.scheduler.Drain()
}

// PopFinished returns the most recently finished order. The second result
// is false when nothing is waiting.
func (i *Instance) PopFinished() (entities.Order, bool) {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.finished.Pop()
}

// Validate checks the catalog and the non-negative balances
func (i *Instance) Validate() *services.ValidationResult {
	i.mu.Lock()
	defer i.mu.Unlock()

	return i.validator.ValidateCatalog(i.materials.GetAllMaterials(), i.products.GetAllProducts())
}

func (i *Instance) publish(event events.Event) {
	if i.events == nil {
		return
	}
	if err := i.events.AppendEvent(event.StreamID(), event); err != nil {
		i.logger.Warn("failed to publish event",
			zap.String("event_type", event.Type()),
			zap.Error(err),
		)
	}
}
