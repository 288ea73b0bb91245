package dto

import "time"

// CreateUserRequest entrada para crear un usuario (contraseña en texto, se hashea en use case).
type CreateUserRequest struct {
	Name     string `json:"nombre" validate:"required,min=2,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"telefono" validate:"required,min=8,max=20"`
	Password string `json:"contrasenia" validate:"required,min=6,max=100"`
}

// UpdateUserRequest entrada para actualizar parcialmente un usuario.
// Rol y Activo solo se aceptan por el camino de administrador.
type UpdateUserRequest struct {
	Patch
	Name     *string `json:"nombre" validate:"omitempty,min=2,max=50"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Phone    *string `json:"telefono" validate:"omitempty,min=8,max=20"`
	Password *string `json:"contrasenia" validate:"omitempty,min=6,max=100"`
	Role     *string `json:"rol" validate:"omitempty,oneof=cliente admin"`
	Active   *bool   `json:"activo"`
}

// UserResponse salida de un usuario (sin contraseña).
type UserResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nombre"`
	Email     string    `json:"email"`
	Phone     string    `json:"telefono"`
	Active    bool      `json:"activo"`
	Role      string    `json:"rol"`
	CreatedAt time.Time `json:"creado_en"`
	UpdatedAt time.Time `json:"actualizado_en"`
}
