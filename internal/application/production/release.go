package production

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/internal/domain/inventory"
	"github.com/Jamxon/Korxona/internal/domain/repository"
	"github.com/Jamxon/Korxona/pkg/logger"
)

// ReleasedLine reserva liberada por material.
type ReleasedLine struct {
	MaterialID   string
	MaterialName string
	Released     decimal.Decimal
	Reserved     decimal.Decimal // reserva restante
}

// ReleaseReservationUseCase libera reservas de una producción cancelada.
type ReleaseReservationUseCase struct {
	txRunner TxRunner
	loader   requirementLoader
	log      *logger.Logger
	obs      Observers
}

// NewReleaseReservationUseCase construye el caso de uso.
func NewReleaseReservationUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	log *logger.Logger,
	obs Observers,
) *ReleaseReservationUseCase {
	return &ReleaseReservationUseCase{
		txRunner: txRunner,
		loader:   requirementLoader{productRepo: productRepo, bomRepo: bomRepo},
		log:      log,
		obs:      obs.withDefaults(),
	}
}

// Release disminuye reserved_quantity en min(reservado, requerido) por material.
func (uc *ReleaseReservationUseCase) Release(ctx context.Context, name string, quantity int64) ([]ReleasedLine, error) {
	ctx, span := tracer.Start(ctx, "production.release")
	span.SetAttributes(attribute.String("product.name", name), attribute.Int64("product.quantity", quantity))

	product, required, err := uc.loader.byName(ctx, name, quantity)
	if err != nil {
		finishSpan(span, err)
		return nil, err
	}

	var lines []ReleasedLine
	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		_ repository.WarehouseEntryRepository,
	) error {
		lines = make([]ReleasedLine, 0, len(required))
		for _, req := range required {
			material, err := materialRepo.GetForUpdate(ctx, req.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				continue
			}
			released := inventory.Release(material.ReservedQuantity, req.Quantity)
			if released.IsPositive() {
				if err := materialRepo.DecrementReserved(ctx, material.ID, released); err != nil {
					return err
				}
			}
			lines = append(lines, ReleasedLine{
				MaterialID:   material.ID,
				MaterialName: material.Name,
				Released:     released,
				Reserved:     material.ReservedQuantity.Sub(released),
			})
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			uc.obs.Metrics.Record(OpRelease, OutcomeError)
		}
		uc.log.Error().Err(err).Str("product_id", product.ID).Msg("liberar reserva")
		finishSpan(span, err)
		return nil, err
	}

	if err := uc.obs.Cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de almacén")
	}
	uc.obs.Metrics.Record(OpRelease, OutcomeOK)

	evLines := make([]MaterialEventLine, 0, len(lines))
	for _, l := range lines {
		if l.Released.IsPositive() {
			evLines = append(evLines, MaterialEventLine{MaterialID: l.MaterialID, MaterialName: l.MaterialName, Quantity: l.Released})
		}
	}
	if len(evLines) > 0 {
		publishEvent(ctx, uc.obs.Publisher, uc.log, EventMaterialsReleased, product, quantity, evLines)
	}
	finishSpan(span, nil)
	return lines, nil
}
