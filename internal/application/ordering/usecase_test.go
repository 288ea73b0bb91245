package ordering_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

type fixture struct {
	ctx   context.Context
	store *memory.Store
	uc    *ordering.OrderUseCase
	n     int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	return &fixture{
		ctx:   context.Background(),
		store: store,
		uc:    ordering.NewOrderUseCase(store, store.Orders(), logger.Nop()),
	}
}

func (f *fixture) addUser(t *testing.T, active bool) string {
	t.Helper()
	f.n++
	u := &entity.User{
		ID:     uuid.New().String(),
		Name:   fmt.Sprintf("usuario%d", f.n),
		Email:  fmt.Sprintf("u%d@tienda.test", f.n),
		Phone:  fmt.Sprintf("+54911000000%02d", f.n),
		Active: active,
		Role:   entity.RoleClient,
	}
	require.NoError(t, f.store.Users().Create(f.ctx, u))
	return u.ID
}

func (f *fixture) addProduct(t *testing.T, name, price string, stock int) string {
	t.Helper()
	p := &entity.Product{
		ID:       uuid.New().String(),
		Name:     name,
		Price:    decimal.RequireFromString(price),
		Stock:    stock,
		Category: "general",
		Visible:  stock > 0,
	}
	require.NoError(t, f.store.Products().Create(f.ctx, p))
	return p.ID
}

func (f *fixture) product(t *testing.T, id string) *entity.Product {
	t.Helper()
	p, err := f.store.Products().GetByID(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}

func (f *fixture) orderCount(t *testing.T) int {
	t.Helper()
	list, err := f.uc.List(f.ctx, "")
	require.NoError(t, err)
	return len(list)
}

func items(pairs ...interface{}) []dto.OrderItemRequest {
	out := make([]dto.OrderItemRequest, 0, len(pairs)/2)
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, dto.OrderItemRequest{ProductID: pairs[i].(string), Quantity: pairs[i+1].(int)})
	}
	return out
}

func boolPtr(b bool) *bool { return &b }

func TestCreate_DescuentaStockYOcultaAlAgotarse(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)

	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 5)})
	require.NoError(t, err)

	assert.True(t, out.Total.Equal(decimal.NewFromInt(50)), "total = 5 × 10")
	require.Len(t, out.Lines, 1)
	assert.Equal(t, "Yerba", out.Lines[0].ProductName)
	assert.True(t, out.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
	assert.False(t, out.Closed)

	prod := f.product(t, p)
	assert.Equal(t, 0, prod.Stock)
	assert.False(t, prod.Visible, "sin stock el producto queda oculto")
}

func TestCreate_StockInsuficienteNoModificaNada(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)

	_, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 5)})
	require.NoError(t, err)

	_, err = f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var stockErr *domain.InsufficientStockError
	require.True(t, errors.As(err, &stockErr))
	assert.Equal(t, 0, stockErr.Available)
	assert.Equal(t, 1, stockErr.Requested)

	assert.Equal(t, 0, f.product(t, p).Stock)
	assert.Equal(t, 1, f.orderCount(t))
}

func TestCreate_TodoONada(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	a := f.addProduct(t, "Arroz", "3", 5)
	b := f.addProduct(t, "Fideos", "2", 1)

	_, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 2, b, 3)})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 5, f.product(t, a).Stock, "la primera línea no debe descontarse")
	assert.Equal(t, 1, f.product(t, b).Stock)
	assert.Equal(t, 0, f.orderCount(t))
}

func TestCreate_ConsolidaProductosRepetidos(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	a := f.addProduct(t, "Arroz", "3", 5)

	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 1, a, 2)})
	require.NoError(t, err)
	require.Len(t, out.Lines, 1)
	assert.Equal(t, 3, out.Lines[0].Quantity)
	assert.True(t, out.Total.Equal(decimal.NewFromInt(9)))
	assert.Equal(t, 2, f.product(t, a).Stock)
}

func TestCreate_RepetidosSumanContraElStock(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	a := f.addProduct(t, "Arroz", "3", 2)

	_, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 2, a, 1)})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 2, f.product(t, a).Stock)
}

func TestCreate_ProductoInexistente(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	a := f.addProduct(t, "Arroz", "3", 5)

	_, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 1, uuid.New().String(), 1)})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, f.product(t, a).Stock)
	assert.Equal(t, 0, f.orderCount(t))
}

func TestCreate_CantidadInvalida(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	a := f.addProduct(t, "Arroz", "3", 5)

	_, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 0)})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Create(f.ctx, user, dto.CreateOrderRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_UsuarioInactivo(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, false)
	a := f.addProduct(t, "Arroz", "3", 5)

	_, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 1)})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 5, f.product(t, a).Stock)
}

func TestCancel_DevuelveStockYVisibilidad(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)

	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 5)})
	require.NoError(t, err)

	require.NoError(t, f.uc.Cancel(f.ctx, out.ID, user))

	prod := f.product(t, p)
	assert.Equal(t, 5, prod.Stock)
	assert.True(t, prod.Visible)
	_, err = f.uc.GetByID(f.ctx, out.ID, ordering.Viewer{Admin: true}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_OtroUsuarioEsForbiddenSinCambios(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, true)
	other := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)

	out, err := f.uc.Create(f.ctx, owner, dto.CreateOrderRequest{Items: items(p, 2)})
	require.NoError(t, err)

	err = f.uc.Cancel(f.ctx, out.ID, other)
	require.ErrorIs(t, err, domain.ErrForbidden)

	assert.Equal(t, 3, f.product(t, p).Stock)
	assert.Equal(t, 1, f.orderCount(t))
}

func TestCancel_Inexistente(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	assert.ErrorIs(t, f.uc.Cancel(f.ctx, uuid.New().String(), user), domain.ErrNotFound)
}

func TestEdit_ReemplazaLineasYRecalculaTotal(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)

	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 3)})
	require.NoError(t, err)
	require.Equal(t, 2, f.product(t, p).Stock)

	edited, err := f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{
		Patch: dto.Patch{Fields: []string{"productos"}},
		Items: items(p, 1),
	})
	require.NoError(t, err)

	assert.Equal(t, 4, f.product(t, p).Stock)
	assert.True(t, edited.Total.Equal(decimal.NewFromInt(10)))
	require.Len(t, edited.Lines, 1)
	assert.Equal(t, 1, edited.Lines[0].Quantity)
}

func TestEdit_PuedeReusarElStockDevuelto(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 3)

	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 3)})
	require.NoError(t, err)

	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{
		Patch: dto.Patch{Fields: []string{"productos"}},
		Items: items(p, 3),
	})
	require.NoError(t, err, "las cantidades propias del pedido vuelven al stock antes de descontar")
	assert.Equal(t, 0, f.product(t, p).Stock)
}

func TestEdit_StockInsuficienteRevierte(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	a := f.addProduct(t, "Arroz", "3", 5)
	b := f.addProduct(t, "Fideos", "2", 1)

	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 2)})
	require.NoError(t, err)

	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{
		Patch: dto.Patch{Fields: []string{"productos"}},
		Items: items(b, 5),
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.Equal(t, 3, f.product(t, a).Stock, "el stock devuelto en memoria no debe persistir")
	assert.Equal(t, 1, f.product(t, b).Stock)
	got, err := f.uc.GetByID(f.ctx, out.ID, ordering.Viewer{Admin: true}, "")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, out.Lines[0].ID, got.Lines[0].ID)
}

func TestEdit_CerradoRechazaCambiosYCancelacion(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)

	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 2)})
	require.NoError(t, err)

	closed, err := f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{
		Patch:  dto.Patch{Fields: []string{"cerrado"}},
		Closed: boolPtr(true),
	})
	require.NoError(t, err)
	assert.True(t, closed.Closed)

	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{
		Patch: dto.Patch{Fields: []string{"productos"}},
		Items: items(p, 1),
	})
	assert.ErrorIs(t, err, domain.ErrClosedOrder)

	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{
		Patch:  dto.Patch{Fields: []string{"cerrado"}},
		Closed: boolPtr(false),
	})
	assert.ErrorIs(t, err, domain.ErrClosedOrder, "cerrado es terminal")

	assert.ErrorIs(t, f.uc.Cancel(f.ctx, out.ID, user), domain.ErrClosedOrder)
	assert.Equal(t, 3, f.product(t, p).Stock)

	require.NoError(t, f.uc.Delete(f.ctx, out.ID), "el administrador puede eliminar un pedido cerrado")
	assert.Equal(t, 5, f.product(t, p).Stock)
}

func TestEdit_ValidaAtributos(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)
	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 1)})
	require.NoError(t, err)

	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrNoChanges)

	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{Patch: dto.Patch{Fields: []string{"total"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidField)

	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{Patch: dto.Patch{Fields: []string{"productos"}}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Edit(f.ctx, uuid.New().String(), dto.UpdateOrderRequest{
		Patch:  dto.Patch{Fields: []string{"cerrado"}},
		Closed: boolPtr(true),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEdit_ReasignaUsuario(t *testing.T) {
	f := newFixture(t)
	owner := f.addUser(t, true)
	other := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)
	out, err := f.uc.Create(f.ctx, owner, dto.CreateOrderRequest{Items: items(p, 1)})
	require.NoError(t, err)

	missing := uuid.New().String()
	_, err = f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{Patch: dto.Patch{Fields: []string{"id_usuario"}}, UserID: &missing})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	edited, err := f.uc.Edit(f.ctx, out.ID, dto.UpdateOrderRequest{Patch: dto.Patch{Fields: []string{"id_usuario"}}, UserID: &other})
	require.NoError(t, err)
	assert.Equal(t, other, edited.UserID)

	_, err = f.uc.GetByID(f.ctx, out.ID, ordering.Viewer{UserID: owner}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestPrecioCongelado(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)
	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 2)})
	require.NoError(t, err)

	prod := f.product(t, p)
	prod.Price = decimal.NewFromInt(99)
	require.NoError(t, f.store.Products().Update(f.ctx, prod))

	got, err := f.uc.GetByID(f.ctx, out.ID, ordering.Viewer{UserID: user}, "")
	require.NoError(t, err)
	assert.True(t, got.Total.Equal(decimal.NewFromInt(20)))
	assert.True(t, got.Lines[0].UnitPrice.Equal(decimal.NewFromInt(10)))
}

func TestProductoEliminado_LineaConservaFoto(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	p := f.addProduct(t, "Yerba", "10", 5)
	out, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(p, 2)})
	require.NoError(t, err)

	require.NoError(t, f.store.Products().Delete(f.ctx, p))

	got, err := f.uc.GetByID(f.ctx, out.ID, ordering.Viewer{Admin: true}, "")
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Nil(t, got.Lines[0].ProductID)
	assert.Equal(t, "Yerba", got.Lines[0].ProductName)

	require.NoError(t, f.uc.Cancel(f.ctx, out.ID, user), "cancelar con un producto eliminado no falla")
}

func TestConsultas(t *testing.T) {
	f := newFixture(t)
	user := f.addUser(t, true)
	other := f.addUser(t, true)
	a := f.addProduct(t, "Arroz", "3", 10)
	b := f.addProduct(t, "Fideos", "2", 10)

	list, err := f.uc.List(f.ctx, "")
	require.NoError(t, err)
	assert.Empty(t, list, "lista vacía no es error")

	first, err := f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(a, 1)})
	require.NoError(t, err)
	_, err = f.uc.Create(f.ctx, user, dto.CreateOrderRequest{Items: items(b, 1)})
	require.NoError(t, err)
	_, err = f.uc.Edit(f.ctx, first.ID, dto.UpdateOrderRequest{Patch: dto.Patch{Fields: []string{"cerrado"}}, Closed: boolPtr(true)})
	require.NoError(t, err)

	mine, err := f.uc.GetByUser(f.ctx, user, "")
	require.NoError(t, err)
	assert.Len(t, mine, 2)
	assert.Equal(t, first.ID, mine[0].ID, "se conserva el orden de creación")

	open, err := f.uc.GetByUser(f.ctx, user, "false")
	require.NoError(t, err)
	assert.Len(t, open, 1)

	closed, err := f.uc.List(f.ctx, "TRUE")
	require.NoError(t, err)
	require.Len(t, closed, 1)
	assert.Equal(t, first.ID, closed[0].ID)

	_, err = f.uc.GetByUser(f.ctx, other, "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	withA, err := f.uc.GetByProduct(f.ctx, a, "")
	require.NoError(t, err)
	assert.Len(t, withA, 1)

	_, err = f.uc.GetByProduct(f.ctx, uuid.New().String(), "")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.uc.List(f.ctx, "quizas")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)

	_, err = f.uc.GetByID(f.ctx, first.ID, ordering.Viewer{UserID: other}, "")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, err = f.uc.GetByID(f.ctx, first.ID, ordering.Viewer{UserID: other, Admin: true}, "")
	assert.NoError(t, err)

	got, err := f.uc.GetByID(f.ctx, first.ID, ordering.Viewer{Admin: true}, "true")
	require.NoError(t, err)
	assert.True(t, got.Closed)
	_, err = f.uc.GetByID(f.ctx, first.ID, ordering.Viewer{Admin: true}, "false")
	assert.ErrorIs(t, err, domain.ErrNotFound, "cerrado=false no encuentra un pedido cerrado")
	_, err = f.uc.GetByID(f.ctx, first.ID, ordering.Viewer{Admin: true}, "quizas")
	assert.ErrorIs(t, err, domain.ErrInvalidParameter)
}
