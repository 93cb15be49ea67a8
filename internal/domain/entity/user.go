package entity

import "time"

// Roles válidos para User.
const (
	RoleCliente  = "cliente"
	RoleVendedor = "vendedor"
	RoleAdmin    = "admin"
)

// Estados de usuario.
const (
	UserStatusActive   = "activo"
	UserStatusInactive = "inactivo"
)

// User representa una cuenta de la tienda.
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // cliente, vendedor, admin
	Status       string // activo, inactivo
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede iniciar sesión.
func (u *User) IsActive() bool {
	return u.Status == UserStatusActive
}

// ValidRole indica si el rol pertenece al catálogo de roles.
func ValidRole(role string) bool {
	switch role {
	case RoleCliente, RoleVendedor, RoleAdmin:
		return true
	}
	return false
}
