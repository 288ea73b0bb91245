package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name        string          `json:"nombre" validate:"required,min=1,max=100"`
	Price       decimal.Decimal `json:"precio" validate:"gt=0"`
	Stock       int             `json:"stock" validate:"min=0"`
	Category    string          `json:"categoria" validate:"required,min=1,max=100"`
	Description string          `json:"descripcion" validate:"required,min=1,max=200"`
	ImageURL    string          `json:"imagen_url" validate:"required,min=1,max=200"`
	Visible     *bool           `json:"mostrar"`
	Featured    bool            `json:"destacado"`
}

// UpdateProductRequest entrada para actualizar parcialmente un producto.
type UpdateProductRequest struct {
	Patch
	Name        *string          `json:"nombre" validate:"omitempty,min=1,max=100"`
	Price       *decimal.Decimal `json:"precio" validate:"omitempty,gt=0"`
	Stock       *int             `json:"stock" validate:"omitempty,min=0"`
	Category    *string          `json:"categoria" validate:"omitempty,min=1,max=100"`
	Description *string          `json:"descripcion" validate:"omitempty,min=1,max=200"`
	ImageURL    *string          `json:"imagen_url" validate:"omitempty,min=1,max=200"`
	Visible     *bool            `json:"mostrar"`
	Featured    *bool            `json:"destacado"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	Name        string          `json:"nombre"`
	Price       decimal.Decimal `json:"precio"`
	Stock       int             `json:"stock"`
	Category    string          `json:"categoria"`
	Description string          `json:"descripcion"`
	ImageURL    string          `json:"imagen_url"`
	Visible     bool            `json:"mostrar"`
	Featured    bool            `json:"destacado"`
	CreatedAt   time.Time       `json:"creado_en"`
	UpdatedAt   time.Time       `json:"actualizado_en"`
}

// CategoriesResponse lista de categorías distintas.
type CategoriesResponse struct {
	Categorias []string `json:"categorias"`
}
