package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrIneligibleSupplier = errors.New("proveedor no autorizado para los materiales solicitados")
)

// Shortfall describe un faltante detectado por un chequeo de disponibilidad:
// cuánto se necesita vs. cuánto hay.
type Shortfall struct {
	Name      string `json:"name"`
	Needed    int    `json:"needed"`
	Available int    `json:"available"`
}

func (s Shortfall) String() string {
	return fmt.Sprintf("%s (need %d, available %d)", s.Name, s.Needed, s.Available)
}

// InsufficientStockError stock insuficiente con el detalle completo de faltantes,
// no solo el primero. Envuelve ErrInsufficientStock para errors.Is.
type InsufficientStockError struct {
	Shortfalls []Shortfall
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, len(e.Shortfalls))
	for i, s := range e.Shortfalls {
		parts[i] = s.String()
	}
	return "stock insuficiente: " + strings.Join(parts, ", ")
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// IneligibleMaterial material pedido que el proveedor no está autorizado a suministrar.
type IneligibleMaterial struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// IneligibleSupplierError enumera todos los materiales no autorizados de la orden,
// no solo el primero. Envuelve ErrIneligibleSupplier para errors.Is.
type IneligibleSupplierError struct {
	SupplierID string
	Materials  []IneligibleMaterial
}

func (e *IneligibleSupplierError) Error() string {
	names := make([]string, len(e.Materials))
	for i, m := range e.Materials {
		names[i] = fmt.Sprintf("%s (id %s)", m.Name, m.ID)
	}
	return "proveedor no autorizado para: " + strings.Join(names, ", ")
}

func (e *IneligibleSupplierError) Unwrap() error { return ErrIneligibleSupplier }
