package ordering

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// orderFields lista blanca de atributos editables de un pedido.
var orderFields = map[string]bool{"id_usuario": true, "cerrado": true, "productos": true}

// OrderUseCase ciclo de vida de pedidos: crear, editar, cancelar y eliminar
// manteniendo el stock de los productos en una sola transacción por operación.
type OrderUseCase struct {
	txRunner  TxRunner
	orderRepo repository.OrderRepository
	log       *logger.Logger
	now       func() time.Time
}

// NewOrderUseCase construye el caso de uso. orderRepo se usa solo para lecturas.
func NewOrderUseCase(txRunner TxRunner, orderRepo repository.OrderRepository, log *logger.Logger) *OrderUseCase {
	return &OrderUseCase{txRunner: txRunner, orderRepo: orderRepo, log: log.Component("ordering"), now: time.Now}
}

// Create crea el pedido del usuario: verifica stock de todas las líneas antes de
// descontar y congela nombre, precio y total.
func (uc *OrderUseCase) Create(ctx context.Context, userID string, in dto.CreateOrderRequest) (*dto.OrderResponse, error) {
	items, err := mergeItems(in.Items)
	if err != nil {
		return nil, err
	}
	var order *entity.Order
	err = uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) error {
		user, err := userRepo.GetByID(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil || !user.Active {
			return domain.NotFoundf("Usuario con ID %s no encontrado", userID)
		}
		plan, err := lockProducts(ctx, productRepo, productIDs(items), nil)
		if err != nil {
			return err
		}
		if err := plan.withdraw(items); err != nil {
			return err
		}
		now := uc.now()
		order = &entity.Order{
			ID:        uuid.New().String(),
			UserID:    userID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		order.Lines = plan.lines(order.ID, items, newID)
		order.RecomputeTotal()
		if err := plan.commit(ctx); err != nil {
			return err
		}
		return orderRepo.Create(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("user_id", userID).Str("total", order.Total.StringFixed(2)).Msg("pedido creado")
	return ToOrderResponse(order), nil
}

// Edit aplica un patch de administrador. Un pedido cerrado rechaza cualquier cambio.
// Reemplazar productos devuelve primero el stock de las líneas actuales y luego
// descuenta las nuevas con la misma regla de todo o nada que Create.
func (uc *OrderUseCase) Edit(ctx context.Context, orderID string, in dto.UpdateOrderRequest) (*dto.OrderResponse, error) {
	if len(in.Fields) == 0 {
		return nil, domain.ErrNoChanges
	}
	for _, f := range in.Fields {
		if !orderFields[f] {
			return nil, domain.InvalidFieldf("El atributo '%s' no es modificable", f)
		}
	}
	var items []item
	if in.Has("productos") {
		var err error
		if items, err = mergeItems(in.Items); err != nil {
			return nil, err
		}
	}
	if in.Has("id_usuario") && (in.UserID == nil || *in.UserID == "") {
		return nil, domain.Invalidf("id_usuario no puede estar vacío")
	}
	if in.Has("cerrado") && in.Closed == nil {
		return nil, domain.Invalidf("cerrado debe ser true o false")
	}

	var order *entity.Order
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, userRepo repository.UserRepository) error {
		var err error
		order, err = orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFoundf("Pedido con ID %s no encontrado", orderID)
		}
		if order.Closed {
			return domain.ClosedOrderf("El pedido %s está cerrado y no puede modificarse", orderID)
		}
		if in.Has("id_usuario") {
			user, err := userRepo.GetByID(ctx, *in.UserID)
			if err != nil {
				return err
			}
			if user == nil {
				return domain.NotFoundf("Usuario con ID %s no encontrado", *in.UserID)
			}
			order.UserID = user.ID
		}
		if items != nil {
			plan, err := lockProducts(ctx, productRepo, productIDs(items), lineProductIDs(order.Lines))
			if err != nil {
				return err
			}
			plan.restore(order.Lines)
			if err := plan.withdraw(items); err != nil {
				return err
			}
			order.Lines = plan.lines(order.ID, items, newID)
			order.RecomputeTotal()
			if err := plan.commit(ctx); err != nil {
				return err
			}
			if err := orderRepo.ReplaceLines(ctx, order); err != nil {
				return err
			}
		}
		if in.Closed != nil && *in.Closed {
			order.Closed = true
		}
		order.UpdatedAt = uc.now()
		return orderRepo.Update(ctx, order)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("order_id", order.ID).Str("user_id", order.UserID).Bool("cerrado", order.Closed).Msg("pedido editado")
	return ToOrderResponse(order), nil
}

// Cancel permite al dueño anular su pedido abierto: devuelve el stock y lo elimina.
func (uc *OrderUseCase) Cancel(ctx context.Context, orderID, userID string) error {
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, _ repository.UserRepository) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFoundf("Pedido con ID %s no encontrado", orderID)
		}
		if order.UserID != userID {
			return domain.Forbiddenf("No tiene permiso para cancelar el pedido %s", orderID)
		}
		if order.Closed {
			return domain.ClosedOrderf("El pedido %s está cerrado y no puede cancelarse", orderID)
		}
		return uc.removeInTx(ctx, orderRepo, productRepo, order)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_id", orderID).Str("user_id", userID).Msg("pedido cancelado")
	return nil
}

// Delete elimina un pedido (administrador), abierto o cerrado, devolviendo el stock.
func (uc *OrderUseCase) Delete(ctx context.Context, orderID string) error {
	var ownerID string
	err := uc.txRunner.RunOrders(ctx, func(orderRepo repository.OrderRepository, productRepo repository.ProductRepository, _ repository.UserRepository) error {
		order, err := orderRepo.GetForUpdate(ctx, orderID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.NotFoundf("Pedido con ID %s no encontrado", orderID)
		}
		ownerID = order.UserID
		return uc.removeInTx(ctx, orderRepo, productRepo, order)
	})
	if err != nil {
		return err
	}
	uc.log.Info().Str("order_id", orderID).Str("user_id", ownerID).Msg("pedido eliminado")
	return nil
}

func (uc *OrderUseCase) removeInTx(ctx context.Context, orderRepo repository.OrderRepository, productRepo repository.ProductRepository, order *entity.Order) error {
	plan, err := lockProducts(ctx, productRepo, nil, lineProductIDs(order.Lines))
	if err != nil {
		return err
	}
	plan.restore(order.Lines)
	if err := plan.commit(ctx); err != nil {
		return err
	}
	return orderRepo.Delete(ctx, order.ID)
}

// List lista pedidos filtrando por cerrado ("", "true", "false"). Vacío no es error.
func (uc *OrderUseCase) List(ctx context.Context, cerrado string) ([]dto.OrderResponse, error) {
	closed, err := dto.ParseFlag("cerrado", cerrado)
	if err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.List(ctx, repository.OrderFilter{Closed: closed})
	if err != nil {
		return nil, err
	}
	return ToOrderResponses(list), nil
}

// GetByID obtiene un pedido visible para el viewer: su dueño o un administrador.
// Con cerrado ("true"/"false") un pedido en el otro estado es ErrNotFound.
func (uc *OrderUseCase) GetByID(ctx context.Context, orderID string, viewer Viewer, cerrado string) (*dto.OrderResponse, error) {
	closed, err := dto.ParseFlag("cerrado", cerrado)
	if err != nil {
		return nil, err
	}
	order, err := uc.Load(ctx, orderID, viewer)
	if err != nil {
		return nil, err
	}
	if closed != nil && order.Closed != *closed {
		return nil, domain.NotFoundf("Pedido con ID %s no encontrado con cerrado=%t", orderID, *closed)
	}
	return ToOrderResponse(order), nil
}

// Load devuelve la entidad del pedido aplicando la misma regla de visibilidad que GetByID.
func (uc *OrderUseCase) Load(ctx context.Context, orderID string, viewer Viewer) (*entity.Order, error) {
	order, err := uc.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, domain.NotFoundf("Pedido con ID %s no encontrado", orderID)
	}
	if !viewer.Admin && order.UserID != viewer.UserID {
		return nil, domain.Forbiddenf("No tiene permiso para ver el pedido %s", orderID)
	}
	return order, nil
}

// GetByUser lista los pedidos de un usuario. Sin resultados es ErrNotFound.
func (uc *OrderUseCase) GetByUser(ctx context.Context, userID, cerrado string) ([]dto.OrderResponse, error) {
	closed, err := dto.ParseFlag("cerrado", cerrado)
	if err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.List(ctx, repository.OrderFilter{UserID: userID, Closed: closed})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NotFoundf("No se encontraron pedidos para el usuario %s", userID)
	}
	return ToOrderResponses(list), nil
}

// GetByProduct lista los pedidos que contienen el producto. Sin resultados es ErrNotFound.
func (uc *OrderUseCase) GetByProduct(ctx context.Context, productID, cerrado string) ([]dto.OrderResponse, error) {
	closed, err := dto.ParseFlag("cerrado", cerrado)
	if err != nil {
		return nil, err
	}
	list, err := uc.orderRepo.List(ctx, repository.OrderFilter{ProductID: productID, Closed: closed})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NotFoundf("No se encontraron pedidos con el producto %s", productID)
	}
	return ToOrderResponses(list), nil
}

func newID() string { return uuid.New().String() }

// ToOrderResponses convierte una lista de pedidos a DTO.
func ToOrderResponses(list []*entity.Order) []dto.OrderResponse {
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, *ToOrderResponse(o))
	}
	return out
}

// ToOrderResponse convierte el pedido con sus líneas; el subtotal usa el precio congelado.
func ToOrderResponse(o *entity.Order) *dto.OrderResponse {
	if o == nil {
		return nil
	}
	lines := make([]dto.OrderLineResponse, 0, len(o.Lines))
	for _, l := range o.Lines {
		var productID *string
		if l.ProductID != "" {
			id := l.ProductID
			productID = &id
		}
		lines = append(lines, dto.OrderLineResponse{
			ID:          l.ID,
			ProductID:   productID,
			ProductName: l.ProductName,
			UnitPrice:   l.UnitPrice,
			Quantity:    l.Quantity,
			Subtotal:    l.Subtotal(),
		})
	}
	return &dto.OrderResponse{
		ID:        o.ID,
		UserID:    o.UserID,
		CreatedAt: o.CreatedAt,
		Total:     o.Total,
		Closed:    o.Closed,
		Lines:     lines,
	}
}
