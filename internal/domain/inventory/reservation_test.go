package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/internal/domain/inventory"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRequiredMaterials_MultiplicaPorCantidad(t *testing.T) {
	// Ko'ylak × 30 con 2 unidades de A por prenda → 60
	bom := []entity.ProductMaterial{
		{ProductID: "koylak", MaterialID: "A", Quantity: d(2)},
		{ProductID: "koylak", MaterialID: "B", Quantity: decimal.RequireFromString("0.5")},
	}
	req := inventory.RequiredMaterials(bom, d(30))
	require.Len(t, req, 2)
	assert.Equal(t, "A", req[0].MaterialID)
	assert.True(t, req[0].Quantity.Equal(d(60)), "required(A) = 60, obtenido %s", req[0].Quantity)
	assert.True(t, req[1].Quantity.Equal(d(15)))
}

func TestRequiredMaterials_AcumulaLineasRepetidas(t *testing.T) {
	bom := []entity.ProductMaterial{
		{MaterialID: "A", Quantity: d(2)},
		{MaterialID: "B", Quantity: d(1)},
		{MaterialID: "A", Quantity: d(3)},
	}
	req := inventory.RequiredMaterials(bom, d(10))
	require.Len(t, req, 2)
	assert.Equal(t, "A", req[0].MaterialID)
	assert.True(t, req[0].Quantity.Equal(d(50)))
	assert.Equal(t, "B", req[1].MaterialID)
}

func TestReservableQuantity_Propiedades(t *testing.T) {
	cases := []struct {
		required, remainder, reserved, want int64
	}{
		{60, 50, 0, 50},
		{60, 100, 0, 60},
		{60, 100, 70, 30},
		{60, 50, 80, 0}, // reserva mayor al saldo: disponibilidad 0
		{0, 50, 0, 0},
		{10, 0, 0, 0},
	}
	for _, tc := range cases {
		got := inventory.ReservableQuantity(d(tc.required), d(tc.remainder), d(tc.reserved))
		assert.True(t, got.Equal(d(tc.want)), "req=%d rem=%d res=%d: esperado %d, obtenido %s",
			tc.required, tc.remainder, tc.reserved, tc.want, got)
		assert.True(t, got.LessThanOrEqual(d(tc.required)), "actual <= required")
		assert.True(t, got.LessThanOrEqual(decimal.Max(d(tc.remainder), decimal.Zero)), "actual <= remainder")
		assert.False(t, got.IsNegative())
	}
}

func TestShortfall(t *testing.T) {
	assert.True(t, inventory.Shortfall(d(60), d(50)).Equal(d(10)))
	assert.True(t, inventory.Shortfall(d(60), d(60)).IsZero())
}

func TestConsume_SinReserva(t *testing.T) {
	_, ok := inventory.Consume(d(10), d(0), d(15), false)
	assert.False(t, ok, "remainder 10 < needed 15")

	c, ok := inventory.Consume(d(20), d(0), d(15), false)
	require.True(t, ok)
	assert.True(t, c.Remainder.Equal(d(5)))
	assert.True(t, c.Reserved.IsZero())

	// Lo reservado no se puede consumir por la vía directa
	_, ok = inventory.Consume(d(20), d(10), d(15), false)
	assert.False(t, ok)
}

func TestConsume_DesdeReserva_MantieneInvariante(t *testing.T) {
	for _, tc := range []struct{ remainder, reserved, needed int64 }{
		{20, 10, 15}, {20, 15, 5}, {20, 0, 20}, {30, 30, 30},
	} {
		c, ok := inventory.Consume(d(tc.remainder), d(tc.reserved), d(tc.needed), true)
		require.True(t, ok)
		assert.False(t, c.Remainder.Sub(c.Reserved).IsNegative(), "remainder - reserved >= 0")
		assert.True(t, c.Released.LessThanOrEqual(d(tc.reserved)))
	}
	_, ok := inventory.Consume(d(10), d(10), d(15), true)
	assert.False(t, ok)
}

func TestRelease_NoDejaReservaNegativa(t *testing.T) {
	assert.True(t, inventory.Release(d(5), d(8)).Equal(d(5)))
	assert.True(t, inventory.Release(d(5), d(3)).Equal(d(3)))
	assert.True(t, inventory.Release(d(5), d(-1)).IsZero())
}
