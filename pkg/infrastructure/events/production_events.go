package events

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/vsinha/resmng/pkg/domain/entities"
)

const (
	MaterialAddedEvent = "material.added"
	SupplyUpdatedEvent = "supply.updated"

	ProductAddedEvent = "product.added"
	VariantAddedEvent = "variant.added"

	OrderAdmittedEvent     = "order.admitted"
	OrderDeliveredEvent    = "order.delivered"
	OrderManufacturedEvent = "order.manufactured"

	QueueDrainedEvent = "queue.drained"
)

// QueueStream carries the drain events
const QueueStream = "queue"

type MaterialAdded struct {
	MaterialID entities.MaterialID `json:"material_id"`
	Supply     decimal.Decimal     `json:"supply"`
}

type SupplyUpdated struct {
	MaterialID entities.MaterialID `json:"material_id"`
	OldSupply  decimal.Decimal     `json:"old_supply"`
	NewSupply  decimal.Decimal     `json:"new_supply"`
	Demand     decimal.Decimal     `json:"demand"`
}

type ProductAdded struct {
	ProductID entities.ProductID `json:"product_id"`
	Priority  entities.Priority  `json:"priority"`
	Variant   entities.Variant   `json:"variant"`
}

type VariantAdded struct {
	ProductID entities.ProductID `json:"product_id"`
	Variant   entities.Variant   `json:"variant"`
}

type OrderAdmitted struct {
	Order    entities.Order    `json:"order"`
	Outcome  entities.Outcome  `json:"outcome"`
	Scarcity entities.Scarcity `json:"scarcity"`
	Backlog  int               `json:"backlog"`
}

type OrderDelivered struct {
	Order entities.Order `json:"order"`
}

type OrderManufactured struct {
	Order    entities.Order    `json:"order"`
	Priority entities.Priority `json:"priority"`
}

type QueueDrained struct {
	Manufactured int `json:"manufactured"`
	Backlog      int `json:"backlog"`
}

func materialStream(id entities.MaterialID) string {
	return fmt.Sprintf("material-%d", id)
}

func productStream(id entities.ProductID) string {
	return fmt.Sprintf("product-%d", id)
}

func orderStream(order entities.Order) string {
	return "order-" + order.ID.String()
}

func NewMaterialAddedEvent(material *entities.Material) Event {
	return NewEvent(MaterialAddedEvent, materialStream(material.ID), MaterialAdded{
		MaterialID: material.ID,
		Supply:     material.Supply(),
	})
}

func NewSupplyUpdatedEvent(material *entities.Material, oldSupply decimal.Decimal) Event {
	return NewEvent(SupplyUpdatedEvent, materialStream(material.ID), SupplyUpdated{
		MaterialID: material.ID,
		OldSupply:  oldSupply,
		NewSupply:  material.Supply(),
		Demand:     material.Demand(),
	})
}

func NewProductAddedEvent(product *entities.Product) Event {
	return NewEvent(ProductAddedEvent, productStream(product.ID), ProductAdded{
		ProductID: product.ID,
		Priority:  product.Priority,
		Variant:   product.Variants[0],
	})
}

func NewVariantAddedEvent(productID entities.ProductID, variant entities.Variant) Event {
	return NewEvent(VariantAddedEvent, productStream(productID), VariantAdded{
		ProductID: productID,
		Variant:   variant,
	})
}

func NewOrderAdmittedEvent(order entities.Order, outcome entities.Outcome, scarcity entities.Scarcity, backlog int) Event {
	return NewEvent(OrderAdmittedEvent, orderStream(order), OrderAdmitted{
		Order:    order,
		Outcome:  outcome,
		Scarcity: scarcity,
		Backlog:  backlog,
	})
}

func NewOrderDeliveredEvent(order entities.Order) Event {
	return NewEvent(OrderDeliveredEvent, orderStream(order), OrderDelivered{Order: order})
}

func NewOrderManufacturedEvent(order entities.Order) Event {
	return NewEvent(OrderManufacturedEvent, orderStream(order), OrderManufactured{
		Order:    order,
		Priority: order.Priority,
	})
}

func NewQueueDrainedEvent(manufactured, backlog int) Event {
	return NewEvent(QueueDrainedEvent, QueueStream, QueueDrained{
		Manufactured: manufactured,
		Backlog:      backlog,
	})
}
