package production_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/pkg/logger"
)

func newConsume(s *store, rec *recorder) *production.ConsumeMaterialsUseCase {
	return production.NewConsumeMaterialsUseCase(txRunner{s}, productRepo{s}, bomRepo{s}, logger.Nop(), rec.observers())
}

func singleMaterialStore(remainder, reserved int64) *store {
	s := newStore()
	s.addProduct("p-shim", "Shim")
	s.addMaterial("m-a", "Mato A", remainder, reserved, 100)
	s.addBOM("p-shim", "m-a", 1)
	return s
}

func TestUpdateWarehouse_MaterialInsuficiente(t *testing.T) {
	s := singleMaterialStore(10, 0)
	rec := newRecorder()
	uc := newConsume(s, rec)

	_, err := uc.UpdateWarehouse(context.Background(), production.ConsumeInput{Name: "Shim", Quantity: 15})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var insufficient *production.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "m-a", insufficient.MaterialID)
	assert.True(t, insufficient.Needed.Equal(d(15)))
	assert.True(t, insufficient.Available.Equal(d(10)))

	assert.True(t, s.remainder("m-a").Equal(d(10)), "saldo sin cambios")
	assert.Equal(t, []string{"consume:insufficient"}, rec.outcomes)
	assert.Empty(t, rec.events)
}

func TestUpdateWarehouse_PersisteDescuento(t *testing.T) {
	s := singleMaterialStore(20, 0)
	rec := newRecorder()
	uc := newConsume(s, rec)

	lines, err := uc.UpdateWarehouse(context.Background(), production.ConsumeInput{Name: "Shim", Quantity: 15})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Consumed.Equal(d(15)))
	assert.True(t, lines[0].Remainder.Equal(d(5)))
	assert.True(t, s.remainder("m-a").Equal(d(5)))

	assert.Equal(t, []string{"consume:ok"}, rec.outcomes)
	assert.Equal(t, []string{production.EventMaterialsConsumed}, rec.eventTypes())
	assert.Equal(t, 1, rec.invalidated)
}

func TestUpdateWarehouse_NoTomaStockReservado(t *testing.T) {
	s := singleMaterialStore(20, 10)
	uc := newConsume(s, newRecorder())

	_, err := uc.UpdateWarehouse(context.Background(), production.ConsumeInput{Name: "Shim", Quantity: 15})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.remainder("m-a").Equal(d(20)))

	_, err = uc.UpdateWarehouse(context.Background(), production.ConsumeInput{Name: "Shim", Quantity: 10})
	require.NoError(t, err)
	assert.True(t, s.remainder("m-a").Equal(d(10)))
	assert.True(t, s.reserved("m-a").Equal(d(10)))
}

func TestUpdateWarehouse_DesdeReservaLibera(t *testing.T) {
	s := singleMaterialStore(20, 15)
	uc := newConsume(s, newRecorder())

	lines, err := uc.UpdateWarehouse(context.Background(), production.ConsumeInput{Name: "Shim", Quantity: 15, FromReservation: true})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.True(t, lines[0].Released.Equal(d(15)))
	assert.True(t, s.remainder("m-a").Equal(d(5)))
	assert.True(t, s.reserved("m-a").IsZero())
}

func TestUpdateWarehouse_TodoONada(t *testing.T) {
	s := shirtStore()
	s.entries["m-b"].Remainder = d(5) // m-b insuficiente, m-a alcanza
	uc := newConsume(s, newRecorder())

	_, err := uc.UpdateWarehouse(context.Background(), production.ConsumeInput{Name: "Ko'ylak", Quantity: 1})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.True(t, s.remainder("m-a").Equal(d(50)), "m-a no se descuenta si m-b falla")
	assert.True(t, s.remainder("m-b").Equal(d(5)))
}

func TestUpdateWarehouse_Validacion(t *testing.T) {
	s := shirtStore()
	uc := newConsume(s, newRecorder())
	ctx := context.Background()

	_, err := uc.UpdateWarehouse(ctx, production.ConsumeInput{Name: "Kurtka", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.UpdateWarehouse(ctx, production.ConsumeInput{Name: "", Quantity: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.UpdateWarehouse(ctx, production.ConsumeInput{Name: "Shim", Quantity: -3})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateWarehouse_SinEntradaNoSeValida(t *testing.T) {
	s := shirtStore()
	delete(s.entries, "m-b")
	uc := newConsume(s, newRecorder())

	lines, err := uc.UpdateWarehouse(context.Background(), production.ConsumeInput{Name: "Ko'ylak", Quantity: 1})
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, "m-a", lines[0].MaterialID)
	assert.True(t, s.remainder("m-a").Equal(d(48)))
}
