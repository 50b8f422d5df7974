package entity

import "time"

// RawMaterial materia prima del almacén. Stock es el saldo autoritativo;
// lo mutan la recepción de órdenes de aprovisionamiento (+) y el arranque
// de órdenes de producción (−). Nunca puede quedar negativo.
type RawMaterial struct {
	ID              string
	Name            string // único
	Stock           int
	ReservedStock   int
	StockMin        int
	Unit            string
	LastRestockDate *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// LowStock indica si el saldo está en o por debajo del mínimo configurado.
func (m *RawMaterial) LowStock() bool {
	return m.Stock <= m.StockMin
}
