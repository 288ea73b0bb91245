package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order representa un pedido de un usuario ("pedido").
// Total se congela al crear/editar: suma de UnitPrice × Quantity de sus líneas.
type Order struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	UpdatedAt time.Time
	Total     decimal.Decimal
	Closed    bool // "cerrado": terminal para edición y cancelación
	Lines     []*OrderLine
}

// OrderLine es una línea del pedido ("detalle").
// ProductID queda vacío si el producto fue eliminado del catálogo; ProductName y
// UnitPrice conservan la foto del momento de la compra.
type OrderLine struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string
	UnitPrice   decimal.Decimal
	Quantity    int
}

// Subtotal devuelve UnitPrice × Quantity.
func (l *OrderLine) Subtotal() decimal.Decimal {
	return l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// RecomputeTotal recalcula Total a partir de las líneas.
func (o *Order) RecomputeTotal() {
	total := decimal.Zero
	for _, l := range o.Lines {
		total = total.Add(l.Subtotal())
	}
	o.Total = total
}

// HasProduct indica si alguna línea referencia el producto.
func (o *Order) HasProduct(productID string) bool {
	for _, l := range o.Lines {
		if l.ProductID == productID {
			return true
		}
	}
	return false
}
