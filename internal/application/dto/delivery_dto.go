package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateDeliveryRequest alta de entrega para un pedido en EN_PREPARATION.
// Dirección y ciudad vacías se toman del perfil del cliente.
type CreateDeliveryRequest struct {
	OrderID         string          `json:"order_id"`
	DeliveryAddress string          `json:"delivery_address"`
	City            string          `json:"city"`
	Driver          string          `json:"driver"`
	Vehicle         string          `json:"vehicle"`
	ScheduledDate   *time.Time      `json:"scheduled_date,omitempty"`
	DeliveryCost    decimal.Decimal `json:"delivery_cost"`
	Notes           string          `json:"notes"`
}

// UpdateDeliveryRequest actualización de campos logísticos (no de estado).
type UpdateDeliveryRequest struct {
	DeliveryAddress string          `json:"delivery_address"`
	City            string          `json:"city"`
	Driver          string          `json:"driver"`
	Vehicle         string          `json:"vehicle"`
	ScheduledDate   *time.Time      `json:"scheduled_date,omitempty"`
	DeliveryCost    decimal.Decimal `json:"delivery_cost"`
	Notes           string          `json:"notes"`
}

// DeliveryResponse representación de salida de una entrega.
type DeliveryResponse struct {
	ID                 string          `json:"id"`
	OrderID            string          `json:"order_id"`
	DeliveryAddress    string          `json:"delivery_address"`
	City               string          `json:"city"`
	Driver             string          `json:"driver"`
	Vehicle            string          `json:"vehicle"`
	Status             string          `json:"status"`
	ScheduledDate      *time.Time      `json:"scheduled_date,omitempty"`
	ActualDeliveryDate *time.Time      `json:"actual_delivery_date,omitempty"`
	DeliveryCost       decimal.Decimal `json:"delivery_cost"`
	TrackingNumber     string          `json:"tracking_number"`
	Notes              string          `json:"notes,omitempty"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}
