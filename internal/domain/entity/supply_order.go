package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de aprovisionamiento (valores legados, persistidos tal cual).
const (
	SupplyOrderEnAttente = "EN_ATTENTE"
	SupplyOrderEnCours   = "EN_COURS"
	SupplyOrderRecue     = "RECUE"
)

// SupplyOrderTransitions transiciones legales. RECUE es terminal: una orden
// recibida ya incrementó el stock y no admite más mutaciones.
var SupplyOrderTransitions = Transitions{
	SupplyOrderEnAttente: {SupplyOrderEnCours, SupplyOrderRecue},
	SupplyOrderEnCours:   {SupplyOrderRecue},
	SupplyOrderRecue:     {},
}

// SupplyOrder orden de compra a un proveedor. TotalAmount se calcula una sola
// vez en la creación como la suma de los totales de línea.
type SupplyOrder struct {
	ID          string
	OrderNumber string // único
	SupplierID  string
	OrderDate   time.Time
	Status      string
	TotalAmount decimal.Decimal
	Lines       []SupplyOrderLine
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// SupplyOrderLine línea de una orden de aprovisionamiento. El total de línea
// (Quantity × UnitPrice) se calcula, no se persiste.
type SupplyOrderLine struct {
	ID            string
	SupplyOrderID string
	RawMaterialID string
	Quantity      int
	UnitPrice     decimal.Decimal
}

// Total devuelve Quantity × UnitPrice.
func (l SupplyOrderLine) Total() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}
