package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un pedido de cliente.
const (
	CustomerOrderEnPreparation = "EN_PREPARATION"
	CustomerOrderEnRoute       = "EN_ROUTE"
	CustomerOrderLivree        = "LIVREE"
)

// CustomerOrderTransitions transiciones legales. LIVREE es terminal.
var CustomerOrderTransitions = Transitions{
	CustomerOrderEnPreparation: {CustomerOrderEnRoute, CustomerOrderLivree},
	CustomerOrderEnRoute:       {CustomerOrderLivree},
	CustomerOrderLivree:        {},
}

// CustomerOrder pedido de cliente. El stock de producto se consume al crear
// el pedido (no al entregarlo); eliminarlo en EN_PREPARATION lo restituye.
type CustomerOrder struct {
	ID          string
	OrderNumber string // único
	CustomerID  string
	OrderDate   time.Time
	TotalAmount decimal.Decimal
	Status      string
	Notes       string
	Lines       []CustomerOrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CustomerOrderLine línea de pedido. TotalPrice (Quantity × UnitPrice) sí se persiste.
type CustomerOrderLine struct {
	ID         string
	OrderID    string
	ProductID  string
	Quantity   int
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
}
