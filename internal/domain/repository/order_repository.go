package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// OrderFilter acota los listados de pedidos. Campos vacíos no filtran.
type OrderFilter struct {
	UserID    string
	ProductID string
	Closed    *bool
}

// OrderRepository define el puerto de persistencia para Order y sus líneas.
// Create y ReplaceLines persisten también order.Lines.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	// GetForUpdate obtiene el pedido bloqueando su fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]*entity.Order, error)
	// Update persiste cabecera: usuario, total, cerrado.
	Update(ctx context.Context, order *entity.Order) error
	ReplaceLines(ctx context.Context, order *entity.Order) error
	// Delete elimina el pedido y sus líneas.
	Delete(ctx context.Context, id string) error
}
