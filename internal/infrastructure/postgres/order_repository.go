package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderColumns = `id, user_id, created_at, updated_at, total, closed`

// OrderRepo implementación del puerto OrderRepository sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

// NewOrderRepository construye el adaptador de persistencia para pedidos. Pasar pool o tx (Querier).
func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create persiste la cabecera y las líneas del pedido.
func (r *OrderRepo) Create(ctx context.Context, order *entity.Order) error {
	query := `INSERT INTO orders (` + orderColumns + `) VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, order.ID, order.UserID, order.CreatedAt, order.UpdatedAt, order.Total, order.Closed)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFoundf("Usuario con ID %s no encontrado", order.UserID)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return r.insertLines(ctx, order)
}

// GetByID obtiene un pedido con sus líneas.
func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)
}

// GetForUpdate obtiene un pedido con sus líneas bloqueando la fila del pedido.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.getOne(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1 FOR UPDATE`, id)
}

// List lista pedidos según el filtro, ordenados por fecha, con sus líneas.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter) ([]*entity.Order, error) {
	var (
		conds []string
		args  []any
	)
	if f.UserID != "" {
		if !validID(f.UserID) {
			return nil, nil
		}
		args = append(args, f.UserID)
		conds = append(conds, fmt.Sprintf("o.user_id = $%d", len(args)))
	}
	if f.ProductID != "" {
		if !validID(f.ProductID) {
			return nil, nil
		}
		args = append(args, f.ProductID)
		conds = append(conds, fmt.Sprintf("EXISTS (SELECT 1 FROM order_lines l WHERE l.order_id = o.id AND l.product_id = $%d)", len(args)))
	}
	if f.Closed != nil {
		args = append(args, *f.Closed)
		conds = append(conds, fmt.Sprintf("o.closed = $%d", len(args)))
	}
	query := `SELECT o.id, o.user_id, o.created_at, o.updated_at, o.total, o.closed FROM orders o`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY o.created_at, o.id`

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	var list []*entity.Order
	byID := map[string]*entity.Order{}
	ids := []string{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan order: %w", err)
		}
		list = append(list, o)
		byID[o.ID] = o
		ids = append(ids, o.ID)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	if len(ids) == 0 {
		return list, nil
	}
	lines, err := r.loadLines(ctx, `WHERE order_id = ANY($1::uuid[])`, ids)
	if err != nil {
		return nil, err
	}
	for _, l := range lines {
		if o, ok := byID[l.OrderID]; ok {
			o.Lines = append(o.Lines, l)
		}
	}
	return list, nil
}

// Update actualiza la cabecera del pedido.
func (r *OrderRepo) Update(ctx context.Context, order *entity.Order) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE orders SET user_id = $2, total = $3, closed = $4, updated_at = $5 WHERE id = $1`,
		order.ID, order.UserID, order.Total, order.Closed, order.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFoundf("Usuario con ID %s no encontrado", order.UserID)
		}
		return fmt.Errorf("update order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ReplaceLines reemplaza el conjunto de líneas y el total congelado.
func (r *OrderRepo) ReplaceLines(ctx context.Context, order *entity.Order) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM order_lines WHERE order_id = $1`, order.ID); err != nil {
		return fmt.Errorf("delete order lines: %w", err)
	}
	if _, err := r.q.Exec(ctx, `UPDATE orders SET total = $2 WHERE id = $1`, order.ID, order.Total); err != nil {
		return fmt.Errorf("update order total: %w", err)
	}
	return r.insertLines(ctx, order)
}

// Delete elimina el pedido; sus líneas caen por ON DELETE CASCADE.
func (r *OrderRepo) Delete(ctx context.Context, id string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM orders WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete order: %w", err)
	}
	return nil
}

func (r *OrderRepo) insertLines(ctx context.Context, order *entity.Order) error {
	query := `
		INSERT INTO order_lines (id, order_id, position, product_id, product_name, unit_price, quantity)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	for i, l := range order.Lines {
		_, err := r.q.Exec(ctx, query, l.ID, order.ID, i, nullableUUID(l.ProductID), l.ProductName, l.UnitPrice, l.Quantity)
		if err != nil {
			if isForeignKeyViolation(err) {
				return domain.NotFoundf("Producto con ID %s no encontrado", l.ProductID)
			}
			return fmt.Errorf("insert order line: %w", err)
		}
	}
	return nil
}

func (r *OrderRepo) getOne(ctx context.Context, query, id string) (*entity.Order, error) {
	if !validID(id) {
		return nil, nil
	}
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	o.Lines, err = r.loadLines(ctx, `WHERE order_id = $1`, id)
	if err != nil {
		return nil, err
	}
	return o, nil
}

func (r *OrderRepo) loadLines(ctx context.Context, where string, arg any) ([]*entity.OrderLine, error) {
	query := `SELECT id, order_id, product_id, product_name, unit_price, quantity FROM order_lines ` + where + ` ORDER BY order_id, position`
	rows, err := r.q.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("list order lines: %w", err)
	}
	defer rows.Close()
	var lines []*entity.OrderLine
	for rows.Next() {
		var (
			l         entity.OrderLine
			productID *string
		)
		if err := rows.Scan(&l.ID, &l.OrderID, &productID, &l.ProductName, &l.UnitPrice, &l.Quantity); err != nil {
			return nil, fmt.Errorf("scan order line: %w", err)
		}
		if productID != nil {
			l.ProductID = *productID
		}
		lines = append(lines, &l)
	}
	return lines, rows.Err()
}

func scanOrder(row pgx.Row) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(&o.ID, &o.UserID, &o.CreatedAt, &o.UpdatedAt, &o.Total, &o.Closed); err != nil {
		return nil, err
	}
	return &o, nil
}
