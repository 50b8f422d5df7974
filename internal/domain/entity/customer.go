package entity

import "time"

// Customer cliente destinatario de pedidos y entregas.
type Customer struct {
	ID         string
	Name       string
	Email      string // único
	Phone      string
	Address    string
	City       string
	PostalCode string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
