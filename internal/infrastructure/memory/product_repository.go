package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s  *Store
	tx bool
}

// Create agrega el producto; un nombre repetido (sin distinguir mayúsculas) es ErrDuplicate.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products.rows[product.ID]; ok || r.nameTaken(product) {
		return domain.ErrDuplicate
	}
	r.s.data.products.put(product.ID, cloneProduct(product))
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if p, ok := r.s.data.products.rows[id]; ok {
		return cloneProduct(p), nil
	}
	return nil, nil
}

// GetForUpdate equivale a GetByID: la exclusión la da la transacción del Store.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetByName(_ context.Context, name string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	key := fold(name)
	var found *entity.Product
	r.s.data.products.each(func(p *entity.Product) {
		if found == nil && fold(p.Name) == key {
			found = cloneProduct(p)
		}
	})
	return found, nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	name, category := fold(f.NameContains), fold(f.Category)
	out := make([]*entity.Product, 0)
	r.s.data.products.each(func(p *entity.Product) {
		switch {
		case f.Visible != nil && p.Visible != *f.Visible:
		case f.Featured != nil && p.Featured != *f.Featured:
		case name != "" && !strings.Contains(fold(p.Name), name):
		case category != "" && fold(p.Category) != category:
		default:
			out = append(out, cloneProduct(p))
		}
	})
	return out, nil
}

func (r *ProductRepo) Categories(_ context.Context) ([]string, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	seen := map[string]bool{}
	out := make([]string, 0)
	r.s.data.products.each(func(p *entity.Product) {
		if !seen[p.Category] {
			seen[p.Category] = true
			out = append(out, p.Category)
		}
	})
	sort.Strings(out)
	return out, nil
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.data.products.rows[product.ID]; !ok {
		return domain.ErrNotFound
	}
	if r.nameTaken(product) {
		return domain.ErrDuplicate
	}
	r.s.data.products.put(product.ID, cloneProduct(product))
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, product *entity.Product) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.data.products.rows[product.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if product.Stock < 0 {
		return domain.Invalidf("stock negativo para %s", product.ID)
	}
	p.Stock = product.Stock
	p.Visible = product.Visible
	return nil
}

// Delete elimina el producto y deja sin referencia las líneas que lo usaban.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	defer r.s.writeLock(r.tx)()
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.data.products.remove(id)
	r.s.data.orders.each(func(o *entity.Order) {
		for _, l := range o.Lines {
			if l.ProductID == id {
				l.ProductID = ""
			}
		}
	})
	return nil
}

// nameTaken requiere mu.
func (r *ProductRepo) nameTaken(product *entity.Product) bool {
	key := fold(product.Name)
	taken := false
	r.s.data.products.each(func(p *entity.Product) {
		if p.ID != product.ID && fold(p.Name) == key {
			taken = true
		}
	})
	return taken
}
