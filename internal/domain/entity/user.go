package entity

import "time"

// Roles de usuario para el mapa de políticas por operación.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// User usuario de la aplicación.
type User struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string // único
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
