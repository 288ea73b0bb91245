package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := map[string]string{
		"0":         "$0,00",
		"25000.5":   "$25.000,50",
		"1234567.8": "$1.234.567,80",
		"999":       "$999,00",
		"-1500":     "-$1.500,00",
	}
	for in, want := range tests {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateOrderReceipt(t *testing.T) {
	order := &entity.Order{
		ID:        "7f1c1b9e-0000-4000-8000-000000000001",
		UserID:    "u1",
		CreatedAt: time.Date(2026, 3, 14, 10, 30, 0, 0, time.UTC),
		Lines: []*entity.OrderLine{
			{ID: "l1", ProductID: "p1", ProductName: "Yerba", UnitPrice: decimal.NewFromInt(10), Quantity: 3},
			{ID: "l2", ProductName: "Producto eliminado", UnitPrice: decimal.RequireFromString("2.5"), Quantity: 2},
		},
	}
	order.RecomputeTotal()
	customer := &entity.User{ID: "u1", Name: "Ana", Email: "ana@tienda.test", Phone: "+5491123456789"}

	out, err := NewMarotoReceiptGenerator("Tienda").GenerateOrderReceipt(context.Background(), order, customer)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "la salida debe ser un PDF")
}
