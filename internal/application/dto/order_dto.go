package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest una línea pedida.
type OrderItemRequest struct {
	ProductID string `json:"producto_id" validate:"required"`
	Quantity  int    `json:"cantidad" validate:"gt=0"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	Items []OrderItemRequest `json:"productos" validate:"required,min=1,dive"`
}

// UpdateOrderRequest entrada para editar un pedido (admin).
type UpdateOrderRequest struct {
	Patch
	UserID *string            `json:"id_usuario" validate:"omitempty,min=1"`
	Closed *bool              `json:"cerrado"`
	Items  []OrderItemRequest `json:"productos" validate:"omitempty,min=1,dive"`
}

// OrderLineResponse salida de una línea.
type OrderLineResponse struct {
	ID          string          `json:"id"`
	ProductID   *string         `json:"producto_id"`
	ProductName string          `json:"nombre_producto"`
	UnitPrice   decimal.Decimal `json:"precio_unitario"`
	Quantity    int             `json:"cantidad"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// OrderResponse salida de un pedido con sus líneas.
type OrderResponse struct {
	ID        string              `json:"id"`
	UserID    string              `json:"id_usuario"`
	CreatedAt time.Time           `json:"fecha"`
	Total     decimal.Decimal     `json:"total"`
	Closed    bool                `json:"cerrado"`
	Lines     []OrderLineResponse `json:"detalles"`
}
