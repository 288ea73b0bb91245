package entity

import "time"

// Roles válidos para User.
const (
	RoleClient = "cliente"
	RoleAdmin  = "admin"
)

// ValidRole indica si el rol es uno de los admitidos.
func ValidRole(role string) bool {
	return role == RoleClient || role == RoleAdmin
}

// User representa una cuenta. Nunca se elimina físicamente: la baja es Active=false.
type User struct {
	ID           string
	Name         string // único
	Email        string // único, en minúsculas
	Phone        string // único, E.164
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Active       bool
	Role         string // cliente, admin
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
