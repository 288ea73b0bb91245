package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// productFields lista blanca de atributos editables de un producto.
var productFields = map[string]bool{
	"nombre": true, "precio": true, "stock": true, "categoria": true,
	"descripcion": true, "imagen_url": true, "mostrar": true, "destacado": true,
}

// ProductTxRunner ejecuta fn dentro de una transacción con el repo de productos atado a ella.
// Si fn retorna error la transacción se revierte.
type ProductTxRunner interface {
	RunProducts(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}

// CatalogUseCase casos de uso del catálogo de productos.
type CatalogUseCase struct {
	repo repository.ProductRepository
	tx   ProductTxRunner
}

// NewCatalogUseCase construye el caso de uso. Las ediciones corren en tx para que
// el stock leído no pise un retiro concurrente de un pedido.
func NewCatalogUseCase(repo repository.ProductRepository, tx ProductTxRunner) *CatalogUseCase {
	return &CatalogUseCase{repo: repo, tx: tx}
}

// List lista productos filtrando por mostrar ("", "true", "false").
// Un listado vacío no es error.
func (uc *CatalogUseCase) List(ctx context.Context, mostrar string) ([]dto.ProductResponse, error) {
	visible, err := dto.ParseFlag("mostrar", mostrar)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{Visible: visible})
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// GetByID obtiene un producto por ID sin importar su visibilidad.
func (uc *CatalogUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFoundf("Producto con ID %s no encontrado", id)
	}
	return toProductResponse(product), nil
}

// SearchByName busca productos cuyo nombre contenga name (sin distinguir mayúsculas).
func (uc *CatalogUseCase) SearchByName(ctx context.Context, name, mostrar string) ([]dto.ProductResponse, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.InvalidParameterf("El nombre de búsqueda no puede estar vacío")
	}
	visible, err := dto.ParseFlag("mostrar", mostrar)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{Visible: visible, NameContains: name})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NotFoundf("No se encontraron productos con el nombre '%s'", name)
	}
	return toProductResponses(list), nil
}

// SearchByCategory busca productos de la categoría (sin distinguir mayúsculas).
func (uc *CatalogUseCase) SearchByCategory(ctx context.Context, category, mostrar string) ([]dto.ProductResponse, error) {
	category = strings.TrimSpace(category)
	if category == "" {
		return nil, domain.InvalidParameterf("La categoría no puede estar vacía")
	}
	visible, err := dto.ParseFlag("mostrar", mostrar)
	if err != nil {
		return nil, err
	}
	list, err := uc.repo.List(ctx, repository.ProductFilter{Visible: visible, Category: category})
	if err != nil {
		return nil, err
	}
	if len(list) == 0 {
		return nil, domain.NotFoundf("No se encontraron productos en la categoría '%s'", category)
	}
	return toProductResponses(list), nil
}

// Featured lista los productos destacados, filtrables por mostrar.
func (uc *CatalogUseCase) Featured(ctx context.Context, mostrar string) ([]dto.ProductResponse, error) {
	visible, err := dto.ParseFlag("mostrar", mostrar)
	if err != nil {
		return nil, err
	}
	featured := true
	list, err := uc.repo.List(ctx, repository.ProductFilter{Visible: visible, Featured: &featured})
	if err != nil {
		return nil, err
	}
	return toProductResponses(list), nil
}

// Categories devuelve las categorías distintas ordenadas alfabéticamente (español).
// Variantes que solo difieren en mayúsculas se agrupan en la primera vista.
func (uc *CatalogUseCase) Categories(ctx context.Context) ([]string, error) {
	raw, err := uc.repo.Categories(ctx)
	if err != nil {
		return nil, err
	}
	fold := cases.Fold()
	seen := make(map[string]bool, len(raw))
	out := make([]string, 0, len(raw))
	for _, c := range raw {
		key := fold.String(strings.TrimSpace(c))
		if key == "" || seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, strings.TrimSpace(c))
	}
	collate.New(language.Spanish, collate.IgnoreCase).SortStrings(out)
	return out, nil
}

// Create crea un producto. El nombre es único; stock 0 lo crea oculto.
func (uc *CatalogUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	existing, err := uc.repo.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicatef("Ya existe un producto con el nombre '%s'", name)
	}
	visible := true
	if in.Visible != nil {
		visible = *in.Visible
	}
	if in.Stock <= 0 {
		visible = false
	}
	now := time.Now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		Name:        name,
		Price:       in.Price,
		Stock:       in.Stock,
		Category:    strings.TrimSpace(in.Category),
		Description: in.Description,
		ImageURL:    in.ImageURL,
		Visible:     visible,
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica un patch con lista blanca de campos. Un renombre revalida unicidad
// y un cambio de stock aplica la regla de visibilidad.
func (uc *CatalogUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if len(in.Fields) == 0 {
		return nil, domain.ErrNoChanges
	}
	for _, f := range in.Fields {
		if !productFields[f] {
			return nil, domain.InvalidFieldf("El atributo '%s' no es modificable", f)
		}
	}
	var out *dto.ProductResponse
	err := uc.tx.RunProducts(ctx, func(productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFoundf("Producto con ID %s no encontrado", id)
		}
		if err := applyProductPatch(ctx, productRepo, product, in); err != nil {
			return err
		}
		product.UpdatedAt = time.Now()
		if err := productRepo.Update(ctx, product); err != nil {
			return err
		}
		out = toProductResponse(product)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// applyProductPatch copia en product los campos presentes en el patch.
func applyProductPatch(ctx context.Context, productRepo repository.ProductRepository, product *entity.Product, in dto.UpdateProductRequest) error {
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		if other, err := productRepo.GetByName(ctx, name); err != nil {
			return err
		} else if other != nil && other.ID != product.ID {
			return domain.Duplicatef("Ya existe un producto con el nombre '%s'", name)
		}
		product.Name = name
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.ImageURL != nil {
		product.ImageURL = *in.ImageURL
	}
	if in.Featured != nil {
		product.Featured = *in.Featured
	}
	if in.Stock != nil {
		product.SetStock(*in.Stock)
	}
	if in.Visible != nil {
		product.Visible = *in.Visible
	}
	if product.Stock <= 0 {
		product.Visible = false
	}
	return nil
}

// Delete elimina un producto. Las líneas de pedidos conservan nombre y precio.
func (uc *CatalogUseCase) Delete(ctx context.Context, id string) error {
	return uc.tx.RunProducts(ctx, func(productRepo repository.ProductRepository) error {
		product, err := productRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.NotFoundf("Producto con ID %s no encontrado", id)
		}
		return productRepo.Delete(ctx, id)
	})
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price,
		Stock:       p.Stock,
		Category:    p.Category,
		Description: p.Description,
		ImageURL:    p.ImageURL,
		Visible:     p.Visible,
		Featured:    p.Featured,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
