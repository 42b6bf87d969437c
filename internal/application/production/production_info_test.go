package production_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/pkg/logger"
)

func TestGetProductionInfo_PlanPorDefecto(t *testing.T) {
	s := shirtStore()
	uc := production.NewProductionInfoUseCase(newReserve(s, newRecorder()), nil, logger.Nop())

	info, err := uc.GetProductionInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, info, 2)

	assert.Equal(t, "Ko'ylak", info[0].ProductName)
	assert.EqualValues(t, 30, info[0].ProductQty)
	require.Len(t, info[0].Materials, 2)
	assert.True(t, info[0].Materials[0].Reserved.Equal(d(50)))

	// Ko'ylak agotó m-a: Shim no puede reservar nada
	assert.Equal(t, "Shim", info[1].ProductName)
	require.Len(t, info[1].Materials, 1)
	assert.True(t, info[1].Materials[0].Reserved.IsZero())
	assert.True(t, info[1].Materials[0].Shortfall.Equal(d(20)))
	assert.True(t, info[1].Materials[0].Qty.Equal(d(50)))
}

func TestGetProductionInfo_OmiteProductosDesconocidos(t *testing.T) {
	s := shirtStore()
	plan := []production.PlanItem{{Name: "Kurtka", Quantity: 3}, {Name: "Shim", Quantity: 2}}
	uc := production.NewProductionInfoUseCase(newReserve(s, newRecorder()), plan, logger.Nop())

	info, err := uc.GetProductionInfo(context.Background())
	require.NoError(t, err)
	require.Len(t, info, 1)
	assert.Equal(t, "Shim", info[0].ProductName)
	assert.True(t, s.reserved("m-a").Equal(d(2)))
}

func TestGetProductionInfo_DevuelveErrorDeBOM(t *testing.T) {
	s := shirtStore()
	s.bomErr = errDB
	uc := production.NewProductionInfoUseCase(newReserve(s, newRecorder()), nil, logger.Nop())

	_, err := uc.GetProductionInfo(context.Background())
	assert.ErrorIs(t, err, errDB)
}
