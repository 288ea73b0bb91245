package entity

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
)

// Product representa un producto del catálogo.
// Invariante: Stock >= 0; con Stock en 0 el producto queda oculto (Visible=false).
type Product struct {
	ID          string
	Name        string          // único (sin distinguir mayúsculas)
	Price       decimal.Decimal // precio de venta, > 0
	Stock       int
	Category    string
	Description string
	ImageURL    string
	Visible     bool // "mostrar"
	Featured    bool // "destacado"
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Withdraw descuenta cantidad del stock. Si no alcanza devuelve *domain.InsufficientStockError
// sin modificar el producto. Oculta el producto si el stock queda en 0.
func (p *Product) Withdraw(quantity int) error {
	if quantity <= 0 {
		return domain.Invalidf("la cantidad debe ser mayor a 0")
	}
	if p.Stock < quantity {
		return &domain.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Available:   p.Stock,
			Requested:   quantity,
		}
	}
	p.Stock -= quantity
	if p.Stock <= 0 {
		p.Visible = false
	}
	return nil
}

// Restock devuelve cantidad al stock y vuelve a mostrar el producto si queda con stock.
func (p *Product) Restock(quantity int) {
	p.Stock += quantity
	if p.Stock > 0 {
		p.Visible = true
	}
}

// SetStock fija el stock (edición de administrador) aplicando la misma regla de visibilidad.
func (p *Product) SetStock(stock int) {
	wasEmpty := p.Stock <= 0
	p.Stock = stock
	switch {
	case stock <= 0:
		p.Visible = false
	case wasEmpty:
		p.Visible = true
	}
}
