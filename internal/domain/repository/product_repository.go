package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductFilter acota los listados del catálogo. Campos nil no filtran.
type ProductFilter struct {
	Visible  *bool
	Featured *bool
	// NameContains filtra por subcadena del nombre sin distinguir mayúsculas.
	NameContains string
	// Category filtra por igualdad de categoría sin distinguir mayúsculas.
	Category string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate obtiene el producto bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	GetByName(ctx context.Context, name string) (*entity.Product, error)
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Categories(ctx context.Context) ([]string, error)
	Update(ctx context.Context, product *entity.Product) error
	// UpdateStock persiste solo stock y visibilidad (camino de pedidos).
	UpdateStock(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error
}
