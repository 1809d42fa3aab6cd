package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin    = "admin"
	RoleCocinero = "cocinero"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema (autenticación y atribución de operaciones).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
