package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRawMaterialRequest alta de materia prima.
type CreateRawMaterialRequest struct {
	Name     string `json:"name"`
	Stock    int    `json:"stock"`
	StockMin int    `json:"stock_min"`
	Unit     string `json:"unit"`
}

// UpdateRawMaterialRequest actualización de campos descriptivos.
type UpdateRawMaterialRequest struct {
	Name     string `json:"name"`
	StockMin int    `json:"stock_min"`
	Unit     string `json:"unit"`
}

// RestockRequest escritura absoluta de stock (reaprovisionamiento manual).
type RestockRequest struct {
	Stock int `json:"stock"`
}

// RawMaterialResponse representación de salida de una materia prima.
type RawMaterialResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Stock           int        `json:"stock"`
	ReservedStock   int        `json:"reserved_stock"`
	StockMin        int        `json:"stock_min"`
	Unit            string     `json:"unit"`
	LowStock        bool       `json:"low_stock"`
	LastRestockDate *time.Time `json:"last_restock_date,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CreateSupplierRequest alta de proveedor.
type CreateSupplierRequest struct {
	Name         string  `json:"name"`
	Contact      string  `json:"contact"`
	Email        string  `json:"email"`
	Phone        string  `json:"phone"`
	Rating       float64 `json:"rating"`
	LeadTimeDays int     `json:"lead_time_days"`
}

// UpdateSupplierRequest actualización de proveedor.
type UpdateSupplierRequest = CreateSupplierRequest

// SupplierResponse representación de salida de un proveedor.
type SupplierResponse struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Contact      string    `json:"contact"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Rating       float64   `json:"rating"`
	LeadTimeDays int       `json:"lead_time_days"`
	MaterialIDs  []string  `json:"material_ids,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BOMLineRequest línea de la lista de materiales al crear un producto.
type BOMLineRequest struct {
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
}

// CreateProductRequest alta de producto con su BOM opcional.
type CreateProductRequest struct {
	Name                string           `json:"name"`
	ProductionTimeHours int              `json:"production_time_hours"`
	Cost                decimal.Decimal  `json:"cost"`
	Stock               int              `json:"stock"`
	MinimumStock        int              `json:"minimum_stock"`
	Unit                string           `json:"unit"`
	BillOfMaterials     []BOMLineRequest `json:"bill_of_materials"`
}

// UpdateProductRequest actualización de campos descriptivos (el stock se
// maneja vía órdenes de producción y pedidos, o por escritura absoluta).
type UpdateProductRequest struct {
	Name                string          `json:"name"`
	ProductionTimeHours int             `json:"production_time_hours"`
	Cost                decimal.Decimal `json:"cost"`
	MinimumStock        int             `json:"minimum_stock"`
	Unit                string          `json:"unit"`
}

// BOMLineResponse línea de BOM en la respuesta de producto.
type BOMLineResponse struct {
	ID         string `json:"id"`
	MaterialID string `json:"material_id"`
	Quantity   int    `json:"quantity"`
}

// ProductResponse representación de salida de un producto.
type ProductResponse struct {
	ID                  string            `json:"id"`
	Name                string            `json:"name"`
	ProductionTimeHours int               `json:"production_time_hours"`
	Cost                decimal.Decimal   `json:"cost"`
	Stock               int               `json:"stock"`
	MinimumStock        int               `json:"minimum_stock"`
	Unit                string            `json:"unit"`
	LowStock            bool              `json:"low_stock"`
	BillOfMaterials     []BOMLineResponse `json:"bill_of_materials,omitempty"`
	CreatedAt           time.Time         `json:"created_at"`
	UpdatedAt           time.Time         `json:"updated_at"`
}
