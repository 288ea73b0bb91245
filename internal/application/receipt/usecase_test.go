package receipt_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/ordering"
	"github.com/jhoicas/tienda-api/internal/application/receipt"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

type fakeLoader struct {
	order *entity.Order
	err   error
}

func (f fakeLoader) Load(_ context.Context, _ string, _ ordering.Viewer) (*entity.Order, error) {
	return f.order, f.err
}

type fakeGenerator struct {
	gotCustomer *entity.User
	err         error
}

func (g *fakeGenerator) GenerateOrderReceipt(_ context.Context, _ *entity.Order, customer *entity.User) ([]byte, error) {
	g.gotCustomer = customer
	if g.err != nil {
		return nil, g.err
	}
	return []byte("%PDF-fake"), nil
}

func TestDownload_GeneraConDatosDelCliente(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u1", Name: "Ana", Email: "ana@tienda.test", Phone: "+5491100000001"}))
	gen := &fakeGenerator{}
	uc := receipt.NewReceiptUseCase(fakeLoader{order: &entity.Order{ID: "o1", UserID: "u1"}}, store.Users(), gen)

	pdf, name, err := uc.Download(ctx, "o1", ordering.Viewer{UserID: "u1"})
	require.NoError(t, err)
	assert.Equal(t, "pedido_o1.pdf", name)
	assert.Equal(t, []byte("%PDF-fake"), pdf)
	require.NotNil(t, gen.gotCustomer)
	assert.Equal(t, "Ana", gen.gotCustomer.Name)
}

func TestDownload_PropagaErroresDeVisibilidad(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := receipt.NewReceiptUseCase(fakeLoader{err: domain.Forbiddenf("no")}, store.Users(), &fakeGenerator{})

	_, _, err := uc.Download(ctx, "o1", ordering.Viewer{UserID: "otro"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestDownload_FalloDelGenerador(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	boom := errors.New("boom")
	uc := receipt.NewReceiptUseCase(fakeLoader{order: &entity.Order{ID: "o1", UserID: "u1"}}, store.Users(), &fakeGenerator{err: boom})

	_, _, err := uc.Download(ctx, "o1", ordering.Viewer{Admin: true})
	assert.ErrorIs(t, err, boom)
}
