package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyOrderLineRequest línea de una orden de aprovisionamiento.
type SupplyOrderLineRequest struct {
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
}

// CreateSupplyOrderRequest alta de orden de aprovisionamiento. El estado
// inicial siempre es EN_ATTENTE, se ignore lo que mande el caller.
type CreateSupplyOrderRequest struct {
	OrderNumber string                   `json:"order_number"`
	SupplierID  string                   `json:"supplier_id"`
	OrderDate   time.Time                `json:"order_date"`
	Lines       []SupplyOrderLineRequest `json:"lines"`
}

// UpdateStatusRequest cambio de estado genérico para documentos del ciclo de vida.
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// SupplyOrderLineResponse línea en la respuesta, con el total calculado.
type SupplyOrderLineResponse struct {
	ID            string          `json:"id"`
	RawMaterialID string          `json:"raw_material_id"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
}

// SupplyOrderResponse representación de salida de una orden de aprovisionamiento.
type SupplyOrderResponse struct {
	ID          string                    `json:"id"`
	OrderNumber string                    `json:"order_number"`
	SupplierID  string                    `json:"supplier_id"`
	OrderDate   time.Time                 `json:"order_date"`
	Status      string                    `json:"status"`
	TotalAmount decimal.Decimal           `json:"total_amount"`
	Lines       []SupplyOrderLineResponse `json:"lines"`
	CreatedAt   time.Time                 `json:"created_at"`
	UpdatedAt   time.Time                 `json:"updated_at"`
}
