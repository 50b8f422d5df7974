package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest alta de cliente.
type CreateCustomerRequest struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
}

// UpdateCustomerRequest actualización de cliente.
type UpdateCustomerRequest = CreateCustomerRequest

// CustomerResponse representación de salida de un cliente.
type CustomerResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Address    string    `json:"address"`
	City       string    `json:"city"`
	PostalCode string    `json:"postal_code"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// CustomerOrderLineRequest línea de pedido de cliente.
type CustomerOrderLineRequest struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// CreateCustomerOrderRequest alta de pedido. El stock de producto se consume
// en esta operación; el estado inicial siempre es EN_PREPARATION.
type CreateCustomerOrderRequest struct {
	OrderNumber string                     `json:"order_number"`
	CustomerID  string                     `json:"customer_id"`
	OrderDate   time.Time                  `json:"order_date"`
	Notes       string                     `json:"notes"`
	Lines       []CustomerOrderLineRequest `json:"lines"`
}

// CustomerOrderLineResponse línea de pedido en la respuesta.
type CustomerOrderLineResponse struct {
	ID         string          `json:"id"`
	ProductID  string          `json:"product_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// DeliverySummary resumen de la entrega embebido en la respuesta del pedido.
type DeliverySummary struct {
	ID             string `json:"id"`
	Status         string `json:"status"`
	TrackingNumber string `json:"tracking_number"`
	Driver         string `json:"driver,omitempty"`
}

// CustomerOrderResponse representación de salida de un pedido.
type CustomerOrderResponse struct {
	ID          string                      `json:"id"`
	OrderNumber string                      `json:"order_number"`
	CustomerID  string                      `json:"customer_id"`
	OrderDate   time.Time                   `json:"order_date"`
	TotalAmount decimal.Decimal             `json:"total_amount"`
	Status      string                      `json:"status"`
	Notes       string                      `json:"notes,omitempty"`
	Lines       []CustomerOrderLineResponse `json:"lines"`
	Delivery    *DeliverySummary            `json:"delivery,omitempty"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"updated_at"`
}
