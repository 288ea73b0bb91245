package ordering

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos del ciclo de pedidos.
// Si fn retorna error la transacción se revierte completa.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		userRepo repository.UserRepository,
	) error) error
}

// Viewer identifica a quien consulta un pedido.
type Viewer struct {
	UserID string
	Admin  bool
}
