// Package planning cálculo de tiempos estimados de producción.
package planning

import "math"

// EstimatedHours horas totales estimadas: tiempo unitario × cantidad.
func EstimatedHours(perUnitHours, quantity int) int {
	return perUnitHours * quantity
}

// EstimatedDays convierte horas estimadas a jornadas de 8 horas,
// redondeando al día más cercano, con un mínimo de 1 día.
func EstimatedDays(hours int) int {
	days := int(math.Round(float64(hours) / 8.0))
	if days < 1 {
		return 1
	}
	return days
}
