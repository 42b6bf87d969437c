package production

import (
	"context"
	"errors"

	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/pkg/logger"
)

// PlanItem producto y cantidad del plan de producción.
type PlanItem struct {
	Name     string
	Quantity int64
}

// DefaultPlan plan usado cuando no se configura PRODUCTION_PLAN.
var DefaultPlan = []PlanItem{
	{Name: "Ko'ylak", Quantity: 30},
	{Name: "Shim", Quantity: 20},
}

// ProductInfo resultado por producto del plan.
type ProductInfo struct {
	ProductName string
	ProductQty  int64
	Materials   []ReservationLine
	RolledBack  bool
}

// ProductionInfoUseCase recorre el plan y reserva materiales para cada producto.
type ProductionInfoUseCase struct {
	reserve *ReserveMaterialsUseCase
	plan    []PlanItem
	log     *logger.Logger
}

// NewProductionInfoUseCase construye el caso de uso. plan vacío → DefaultPlan.
func NewProductionInfoUseCase(
	reserve *ReserveMaterialsUseCase,
	plan []PlanItem,
	log *logger.Logger,
) *ProductionInfoUseCase {
	if len(plan) == 0 {
		plan = DefaultPlan
	}
	return &ProductionInfoUseCase{reserve: reserve, plan: plan, log: log}
}

// GetProductionInfo reserva los materiales de cada producto del plan y devuelve el reporte.
// Productos inexistentes se omiten. Cada producto se reserva en su propia transacción.
func (uc *ProductionInfoUseCase) GetProductionInfo(ctx context.Context) ([]ProductInfo, error) {
	ctx, span := tracer.Start(ctx, "production.info")

	out := make([]ProductInfo, 0, len(uc.plan))
	for _, item := range uc.plan {
		product, result, err := uc.reserve.ReserveByName(ctx, item.Name, item.Quantity)
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvalidInput) {
			uc.log.Warn().Str("product_name", item.Name).Int64("quantity", item.Quantity).
				Msg("producto del plan omitido")
			continue
		}
		if err != nil {
			finishSpan(span, err)
			return nil, err
		}
		out = append(out, ProductInfo{
			ProductName: product.Name,
			ProductQty:  item.Quantity,
			Materials:   result.Lines,
			RolledBack:  result.RolledBack,
		})
	}
	finishSpan(span, nil)
	return out, nil
}
