package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/internal/application/usecase"
	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/pkg/logger"
)

type memProducts struct{ byName map[string]*entity.Product }

func (r memProducts) GetByName(_ context.Context, name string) (*entity.Product, error) {
	return r.byName[name], nil
}

type memBOM map[string][]entity.ProductMaterial

func (b memBOM) ListByProduct(_ context.Context, productID string) ([]entity.ProductMaterial, error) {
	return b[productID], nil
}

type stubRenderer struct {
	got *dto.ProductionInfoResponse
	out []byte
}

func (r *stubRenderer) Render(report *dto.ProductionInfoResponse) ([]byte, error) {
	r.got = report
	return r.out, nil
}

func newReportUseCase(t *testing.T, pdf, xlsx *stubRenderer) (*usecase.ProductionReportUseCase, *memStore) {
	t.Helper()
	store := seededStore()
	products := memProducts{byName: map[string]*entity.Product{
		"Ko'ylak": {ID: "p-koylak", Name: "Ko'ylak"},
	}}
	bom := memBOM{"p-koylak": {
		{ProductID: "p-koylak", MaterialID: "m-mato", Quantity: decimal.NewFromFloat(0.5)},
	}}
	reserve := production.NewReserveMaterialsUseCase(store, products, bom, logger.Nop(), production.Observers{})
	info := production.NewProductionInfoUseCase(reserve, []production.PlanItem{
		{Name: "Ko'ylak", Quantity: 30},
		{Name: "Shim", Quantity: 20},
	}, logger.Nop())
	return usecase.NewProductionReportUseCase(info, pdf, xlsx), store
}

func TestProductionReport_InfoReservaYOmiteDesconocidos(t *testing.T) {
	uc, store := newReportUseCase(t, &stubRenderer{}, &stubRenderer{})

	out, err := uc.Info(context.Background())
	require.NoError(t, err)
	require.Len(t, out.Result, 1, "Shim no existe en el catálogo y se omite")

	item := out.Result[0]
	assert.Equal(t, "Ko'ylak", item.ProductName)
	assert.Equal(t, int64(30), item.ProductQty)
	require.Len(t, item.ProductMaterials, 1)

	// saldo 40, reservado 30 → disponible 10; requerido 15
	line := item.ProductMaterials[0]
	assert.Equal(t, "w-mato", line.WarehouseID)
	assert.True(t, decimal.NewFromInt(40).Equal(line.Qty), "qty es el saldo sin cambios")
	assert.True(t, decimal.NewFromInt(15).Equal(line.Required))
	assert.True(t, decimal.NewFromInt(10).Equal(line.Reserved))
	assert.True(t, decimal.NewFromInt(5).Equal(line.Shortfall))
	assert.True(t, decimal.NewFromInt(40).Equal(store.materials["m-mato"].ReservedQuantity))
}

func TestProductionReport_PDFyXLSXReservanYRenderizan(t *testing.T) {
	pdf := &stubRenderer{out: []byte("%PDF")}
	xlsx := &stubRenderer{out: []byte("PK")}
	uc, store := newReportUseCase(t, pdf, xlsx)

	data, err := uc.PDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), data)
	require.NotNil(t, pdf.got)
	assert.Len(t, pdf.got.Result, 1)

	data, err = uc.XLSX(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []byte("PK"), data)

	// dos reservas: 10 disponibles la primera vez, 0 la segunda
	assert.True(t, decimal.NewFromInt(40).Equal(store.materials["m-mato"].ReservedQuantity))
	assert.True(t, decimal.Zero.Equal(xlsx.got.Result[0].ProductMaterials[0].Reserved))
}
