package entity

import "time"

// Estados de una orden de producción.
const (
	ProductionOrderEnAttente    = "EN_ATTENTE"
	ProductionOrderEnProduction = "EN_PRODUCTION"
	ProductionOrderTermine      = "TERMINE"
)

// Prioridades de producción.
const (
	PriorityLow      = "LOW"
	PriorityStandard = "STANDARD"
	PriorityHigh     = "HIGH"
	PriorityUrgent   = "URGENT"
)

// ProductionOrderTransitions transiciones legales. Arrancar consume materias
// primas; terminar incrementa el stock del producto.
var ProductionOrderTransitions = Transitions{
	ProductionOrderEnAttente:    {ProductionOrderEnProduction},
	ProductionOrderEnProduction: {ProductionOrderTermine},
	ProductionOrderTermine:      {},
}

// ValidPriority indica si el valor es una prioridad conocida.
func ValidPriority(p string) bool {
	switch p {
	case PriorityLow, PriorityStandard, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// ProductionOrder orden de fabricación de un producto. Solo puede salir de
// EN_ATTENTE si el stock de cada material de la BOM cubre quantity × bom.Quantity.
type ProductionOrder struct {
	ID               string
	OrderNumber      string // único
	ProductID        string
	Quantity         int
	Status           string
	Priority         string
	OrderDate        time.Time
	StartDate        *time.Time
	EstimatedEndDate *time.Time
	ActualEndDate    *time.Time
	EstimatedHours   int // ProductionTimeHours del producto × Quantity
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
