package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto terminado. Stock lo mutan la finalización de órdenes de
// producción (+) y la creación/eliminación de pedidos de cliente (−/+).
type Product struct {
	ID                  string
	Name                string // único
	ProductionTimeHours int    // horas por unidad
	Cost                decimal.Decimal
	Stock               int
	MinimumStock        int
	Unit                string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LowStock indica si el saldo está en o por debajo del mínimo configurado.
func (p *Product) LowStock() bool {
	return p.Stock <= p.MinimumStock
}

// BillOfMaterial línea de la lista de materiales de un producto: cantidad de
// material consumida por unidad producida. El par (producto, material) es único.
type BillOfMaterial struct {
	ID         string
	ProductID  string
	MaterialID string
	Quantity   int
}
