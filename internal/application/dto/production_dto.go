package dto

import "time"

// CreateProductionOrderRequest alta de orden de producción. Priority vacía
// se interpreta como STANDARD.
type CreateProductionOrderRequest struct {
	OrderNumber string    `json:"order_number"`
	ProductID   string    `json:"product_id"`
	Quantity    int       `json:"quantity"`
	Priority    string    `json:"priority"`
	OrderDate   time.Time `json:"order_date"`
}

// ProductionOrderResponse representación de salida de una orden de producción.
type ProductionOrderResponse struct {
	ID               string     `json:"id"`
	OrderNumber      string     `json:"order_number"`
	ProductID        string     `json:"product_id"`
	Quantity         int        `json:"quantity"`
	Status           string     `json:"status"`
	Priority         string     `json:"priority"`
	OrderDate        time.Time  `json:"order_date"`
	StartDate        *time.Time `json:"start_date,omitempty"`
	EstimatedEndDate *time.Time `json:"estimated_end_date,omitempty"`
	ActualEndDate    *time.Time `json:"actual_end_date,omitempty"`
	EstimatedHours   int        `json:"estimated_production_time_hours"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}
