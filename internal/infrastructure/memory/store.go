// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory y en los tests de casos de uso.
package memory

import (
	"context"
	"sync"
	"time"

	"golang.org/x/text/cases"

	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ ordering.TxRunner        = (*Store)(nil)
	_ usecase.ProductTxRunner = (*Store)(nil)
)

// table mantiene el orden de inserción junto al mapa por ID.
type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() table[T] {
	return table[T]{rows: make(map[string]T)}
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) remove(id string) {
	if _, ok := t.rows[id]; !ok {
		return
	}
	delete(t.rows, id)
	for i, v := range t.order {
		if v == id {
			t.order = append(t.order[:i:i], t.order[i+1:]...)
			break
		}
	}
}

func (t *table[T]) each(fn func(T)) {
	for _, id := range t.order {
		fn(t.rows[id])
	}
}

func (t table[T]) clone(copyRow func(T) T) table[T] {
	out := table[T]{rows: make(map[string]T, len(t.rows)), order: append([]string(nil), t.order...)}
	for k, v := range t.rows {
		out.rows[k] = copyRow(v)
	}
	return out
}

// state datos de la tienda; se copia completo para revertir transacciones.
type state struct {
	users    table[*entity.User]
	products table[*entity.Product]
	orders   table[*entity.Order]
	revoked  map[string]time.Time
}

func newState() state {
	return state{
		users:    newTable[*entity.User](),
		products: newTable[*entity.Product](),
		orders:   newTable[*entity.Order](),
		revoked:  make(map[string]time.Time),
	}
}

func (s state) clone() state {
	revoked := make(map[string]time.Time, len(s.revoked))
	for k, v := range s.revoked {
		revoked[k] = v
	}
	return state{
		users:    s.users.clone(cloneUser),
		products: s.products.clone(cloneProduct),
		orders:   s.orders.clone(cloneOrder),
		revoked:  revoked,
	}
}

// Store agrupa las tablas en memoria. Las transacciones y las escrituras sueltas se
// serializan con txMu; una transacción fallida restaura la copia tomada al iniciar.
type Store struct {
	txMu sync.Mutex
	mu   sync.RWMutex
	data state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{data: newState()}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Orders devuelve el repositorio de pedidos.
func (s *Store) Orders() *OrderRepo { return &OrderRepo{s: s} }

// Blacklist devuelve la lista de tokens revocados.
func (s *Store) Blacklist() *Blacklist { return &Blacklist{s: s} }

// RunOrders ejecuta fn de forma exclusiva; si fn falla el estado vuelve al previo.
func (s *Store) RunOrders(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	userRepo repository.UserRepository,
) error) error {
	return s.transaction(ctx, func() error {
		return fn(&OrderRepo{s: s, tx: true}, &ProductRepo{s: s, tx: true}, &UserRepo{s: s, tx: true})
	})
}

// RunProducts ejecuta fn de forma exclusiva con el repo de productos.
func (s *Store) RunProducts(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return s.transaction(ctx, func() error {
		return fn(&ProductRepo{s: s, tx: true})
	})
}

func (s *Store) transaction(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.RLock()
	snapshot := s.data.clone()
	s.mu.RUnlock()

	if err := fn(); err != nil {
		s.mu.Lock()
		s.data = snapshot
		s.mu.Unlock()
		return err
	}
	return nil
}

// writeLock serializa una escritura fuera de transacción con las transacciones en curso:
// un rollback restaura la copia completa y no debe pisar escrituras ajenas.
// Los repos de una transacción ya tienen txMu.
func (s *Store) writeLock(inTx bool) func() {
	if inTx {
		return func() {}
	}
	s.txMu.Lock()
	return s.txMu.Unlock
}

func fold(v string) string {
	return cases.Fold().String(v)
}

func cloneUser(u *entity.User) *entity.User {
	c := *u
	return &c
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneOrder(o *entity.Order) *entity.Order {
	c := *o
	c.Lines = make([]*entity.OrderLine, 0, len(o.Lines))
	for _, l := range o.Lines {
		lc := *l
		c.Lines = append(c.Lines, &lc)
	}
	return &c
}
