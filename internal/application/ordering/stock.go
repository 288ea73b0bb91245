package ordering

import (
	"context"
	"sort"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// item una línea solicitada ya consolidada por producto.
type item struct {
	productID string
	quantity  int
}

// mergeItems valida las líneas y suma cantidades de un mismo producto conservando el orden de aparición.
func mergeItems(in []dto.OrderItemRequest) ([]item, error) {
	if len(in) == 0 {
		return nil, domain.Invalidf("El pedido debe contener al menos un producto")
	}
	idx := make(map[string]int, len(in))
	out := make([]item, 0, len(in))
	for _, it := range in {
		if it.ProductID == "" {
			return nil, domain.Invalidf("producto_id es obligatorio")
		}
		if it.Quantity <= 0 {
			return nil, domain.Invalidf("La cantidad del producto %s debe ser mayor a 0", it.ProductID)
		}
		if i, ok := idx[it.ProductID]; ok {
			out[i].quantity += it.Quantity
			continue
		}
		idx[it.ProductID] = len(out)
		out = append(out, item{productID: it.ProductID, quantity: it.Quantity})
	}
	return out, nil
}

// stockPlan reúne los productos bloqueados de una transacción y los cambios de stock pendientes.
// Nada se escribe hasta commit(); un error antes deja la base intacta.
type stockPlan struct {
	repo     repository.ProductRepository
	products map[string]*entity.Product
	touched  map[string]bool
}

// lockProducts bloquea (SELECT ... FOR UPDATE) los productos en orden ascendente de id.
// Un producto de required inexistente es ErrNotFound; los de optional ausentes se omiten.
func lockProducts(ctx context.Context, repo repository.ProductRepository, required, optional []string) (*stockPlan, error) {
	need := make(map[string]bool, len(required)+len(optional))
	for _, id := range optional {
		if id != "" {
			need[id] = false
		}
	}
	for _, id := range required {
		need[id] = true
	}
	ids := make([]string, 0, len(need))
	for id := range need {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	plan := &stockPlan{repo: repo, products: make(map[string]*entity.Product, len(ids)), touched: map[string]bool{}}
	for _, id := range ids {
		p, err := repo.GetForUpdate(ctx, id)
		if err != nil {
			return nil, err
		}
		if p == nil {
			if need[id] {
				return nil, domain.NotFoundf("Producto con ID %s no encontrado", id)
			}
			continue
		}
		plan.products[id] = p
	}
	return plan, nil
}

// restore devuelve al stock las cantidades de las líneas; omite productos eliminados.
func (s *stockPlan) restore(lines []*entity.OrderLine) {
	for _, l := range lines {
		p, ok := s.products[l.ProductID]
		if !ok {
			continue
		}
		p.Restock(l.Quantity)
		s.touched[p.ID] = true
	}
}

// withdraw descuenta todas las líneas o ninguna: la primera sin stock aborta.
func (s *stockPlan) withdraw(items []item) error {
	for _, it := range items {
		p := s.products[it.productID]
		if p.Stock < it.quantity {
			return &domain.InsufficientStockError{
				ProductID:   p.ID,
				ProductName: p.Name,
				Available:   p.Stock,
				Requested:   it.quantity,
			}
		}
	}
	for _, it := range items {
		p := s.products[it.productID]
		if err := p.Withdraw(it.quantity); err != nil {
			return err
		}
		s.touched[p.ID] = true
	}
	return nil
}

// lines construye las líneas del pedido con la foto de nombre y precio.
func (s *stockPlan) lines(orderID string, items []item, newID func() string) []*entity.OrderLine {
	out := make([]*entity.OrderLine, 0, len(items))
	for _, it := range items {
		p := s.products[it.productID]
		out = append(out, &entity.OrderLine{
			ID:          newID(),
			OrderID:     orderID,
			ProductID:   p.ID,
			ProductName: p.Name,
			UnitPrice:   p.Price,
			Quantity:    it.quantity,
		})
	}
	return out
}

// commit persiste stock y visibilidad de los productos modificados, en orden de id.
func (s *stockPlan) commit(ctx context.Context) error {
	ids := make([]string, 0, len(s.touched))
	for id := range s.touched {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if err := s.repo.UpdateStock(ctx, s.products[id]); err != nil {
			return err
		}
	}
	return nil
}

func productIDs(items []item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		ids = append(ids, it.productID)
	}
	return ids
}

func lineProductIDs(lines []*entity.OrderLine) []string {
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		ids = append(ids, l.ProductID)
	}
	return ids
}
