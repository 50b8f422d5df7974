package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una entrega.
const (
	DeliveryPlanifiee = "PLANIFIEE"
	DeliveryEnCours   = "EN_COURS"
	DeliveryLivree    = "LIVREE"
)

// DeliveryTransitions transiciones legales. Arrancar y completar una entrega
// fuerzan el estado del pedido asociado (EN_ROUTE / LIVREE) en la misma
// operación atómica.
var DeliveryTransitions = Transitions{
	DeliveryPlanifiee: {DeliveryEnCours},
	DeliveryEnCours:   {DeliveryLivree},
	DeliveryLivree:    {},
}

// Delivery entrega asociada uno-a-uno a un pedido de cliente. Solo puede
// crearse mientras el pedido sigue en EN_PREPARATION.
type Delivery struct {
	ID                 string
	OrderID            string // único: a lo sumo una entrega por pedido
	DeliveryAddress    string
	City               string
	Driver             string
	Vehicle            string
	Status             string
	ScheduledDate      *time.Time
	ActualDeliveryDate *time.Time
	DeliveryCost       decimal.Decimal
	TrackingNumber     string // generado, formato TRK-XXXXXXXX
	Notes              string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
