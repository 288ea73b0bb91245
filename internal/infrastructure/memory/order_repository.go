package memory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo implementación en memoria de OrderRepository.
type OrderRepo struct {
	s  *Store
	tx bool
}

func (r *OrderRepo) Create(_ context.Context, order *entity.Order) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.orders.rows[order.ID]; ok {
		return domain.ErrDuplicate
	}
	if _, ok := r.s.data.users.rows[order.UserID]; !ok {
		return domain.NotFoundf("Usuario con ID %s no encontrado", order.UserID)
	}
	r.s.data.orders.put(order.ID, cloneOrder(order))
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if o, ok := r.s.data.orders.rows[id]; ok {
		return cloneOrder(o), nil
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: la exclusión la da la transacción del Store.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]*entity.Order, 0)
	r.s.data.orders.each(func(o *entity.Order) {
		switch {
		case f.UserID != "" && o.UserID != f.UserID:
		case f.Closed != nil && o.Closed != *f.Closed:
		case f.ProductID != "" && !o.HasProduct(f.ProductID):
		default:
			out = append(out, cloneOrder(o))
		}
	})
	return out, nil
}

func (r *OrderRepo) Update(_ context.Context, order *entity.Order) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.orders.rows[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.UserID = order.UserID
	cur.Total = order.Total
	cur.Closed = order.Closed
	cur.UpdatedAt = order.UpdatedAt
	return nil
}

func (r *OrderRepo) ReplaceLines(_ context.Context, order *entity.Order) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.data.orders.rows[order.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.Lines = cloneOrder(order).Lines
	cur.Total = order.Total
	return nil
}

func (r *OrderRepo) Delete(_ context.Context, id string) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.orders.remove(id)
	return nil
}
