package entity

import "time"

// Supplier proveedor de materias primas. Mantiene un conjunto de materiales
// que está autorizado a suministrar (elegibilidad); una orden de
// aprovisionamiento solo puede referenciar materiales de ese conjunto.
type Supplier struct {
	ID           string
	Name         string
	Contact      string
	Email        string // único
	Phone        string
	Rating       float64
	LeadTimeDays int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
