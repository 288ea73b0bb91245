package receipt

import (
	"context"
	"fmt"

	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ReceiptGenerator genera el comprobante PDF de un pedido.
type ReceiptGenerator interface {
	GenerateOrderReceipt(ctx context.Context, order *entity.Order, customer *entity.User) ([]byte, error)
}

// OrderLoader obtiene un pedido aplicando la regla de visibilidad (dueño o admin).
type OrderLoader interface {
	Load(ctx context.Context, orderID string, viewer ordering.Viewer) (*entity.Order, error)
}

// ReceiptUseCase genera el comprobante de un pedido para su dueño o un administrador.
type ReceiptUseCase struct {
	orders    OrderLoader
	userRepo  repository.UserRepository
	generator ReceiptGenerator
}

// NewReceiptUseCase construye el caso de uso inyectando sus dependencias.
func NewReceiptUseCase(orders OrderLoader, userRepo repository.UserRepository, generator ReceiptGenerator) *ReceiptUseCase {
	return &ReceiptUseCase{orders: orders, userRepo: userRepo, generator: generator}
}

// Download devuelve los bytes del PDF y el nombre de archivo sugerido.
//
// Retorna:
//   - domain.ErrNotFound  si el pedido no existe.
//   - domain.ErrForbidden si el pedido es de otro usuario y el viewer no es admin.
func (uc *ReceiptUseCase) Download(ctx context.Context, orderID string, viewer ordering.Viewer) (pdfBytes []byte, filename string, err error) {
	order, err := uc.orders.Load(ctx, orderID, viewer)
	if err != nil {
		return nil, "", err
	}
	customer, err := uc.userRepo.GetByID(ctx, order.UserID)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: obtener usuario: %w", err)
	}
	if customer == nil {
		customer = &entity.User{ID: order.UserID}
	}
	pdfBytes, err = uc.generator.GenerateOrderReceipt(ctx, order, customer)
	if err != nil {
		return nil, "", fmt.Errorf("comprobante: generación fallida: %w", err)
	}
	return pdfBytes, fmt.Sprintf("pedido_%s.pdf", order.ID), nil
}
