package production

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/internal/domain/inventory"
	"github.com/Jamxon/Korxona/internal/domain/repository"
	"github.com/Jamxon/Korxona/pkg/logger"
)

// ConsumeInput entrada de UpdateWarehouse.
// FromReservation: el retiro consume lo reservado previamente para esta producción
// (se valida contra el saldo físico y se libera la reserva correspondiente).
type ConsumeInput struct {
	Name            string
	Quantity        int64
	FromReservation bool
}

// ConsumedLine material descontado del almacén.
type ConsumedLine struct {
	WarehouseID  string
	MaterialID   string
	MaterialName string
	Consumed     decimal.Decimal
	Remainder    decimal.Decimal // saldo después del retiro
	Released     decimal.Decimal
}

// InsufficientStockError detalla el primer material sin saldo suficiente.
// errors.Is(err, domain.ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	MaterialID   string
	MaterialName string
	Needed       decimal.Decimal
	Available    decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: material %s requiere %s, disponible %s",
		domain.ErrInsufficientStock.Error(), e.MaterialName, e.Needed, e.Available)
}

func (e *InsufficientStockError) Unwrap() error { return domain.ErrInsufficientStock }

// ConsumeMaterialsUseCase descuenta del almacén los materiales de una producción.
// Todo o nada: si un material no alcanza, la transacción se revierte completa.
type ConsumeMaterialsUseCase struct {
	txRunner TxRunner
	loader   requirementLoader
	log      *logger.Logger
	obs      Observers
}

// NewConsumeMaterialsUseCase construye el caso de uso.
func NewConsumeMaterialsUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	log *logger.Logger,
	obs Observers,
) *ConsumeMaterialsUseCase {
	return &ConsumeMaterialsUseCase{
		txRunner: txRunner,
		loader:   requirementLoader{productRepo: productRepo, bomRepo: bomRepo},
		log:      log,
		obs:      obs.withDefaults(),
	}
}

// UpdateWarehouse bloquea las entradas de almacén de los materiales requeridos, verifica que
// alcance cada uno contra la disponibilidad (remainder - reserved) y persiste el descuento.
// Materiales sin entrada en el almacén no se validan.
// Errores: ErrInvalidInput, ErrNotFound (producto), *InsufficientStockError.
func (uc *ConsumeMaterialsUseCase) UpdateWarehouse(ctx context.Context, in ConsumeInput) ([]ConsumedLine, error) {
	ctx, span := tracer.Start(ctx, "production.consume")
	span.SetAttributes(
		attribute.String("product.name", in.Name),
		attribute.Int64("product.quantity", in.Quantity),
		attribute.Bool("consume.from_reservation", in.FromReservation),
	)

	product, required, err := uc.loader.byName(ctx, in.Name, in.Quantity)
	if err != nil {
		if !errors.Is(err, domain.ErrInvalidInput) && !errors.Is(err, domain.ErrNotFound) {
			uc.obs.Metrics.Record(OpConsume, OutcomeError)
		}
		finishSpan(span, err)
		return nil, err
	}

	var lines []ConsumedLine
	err = uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		entryRepo repository.WarehouseEntryRepository,
	) error {
		lines = make([]ConsumedLine, 0, len(required))
		for _, req := range required {
			// Mismo orden de bloqueo que Reserve/Release: material y luego su entrada.
			material, err := materialRepo.GetForUpdate(ctx, req.MaterialID)
			if err != nil {
				return err
			}
			if material == nil {
				continue
			}
			entry, err := entryRepo.GetByMaterialForUpdate(ctx, material.ID)
			if err != nil {
				return err
			}
			if entry == nil {
				uc.log.Warn().
					Str("material_id", material.ID).
					Str("product_id", product.ID).
					Msg("material sin entrada en almacén, no se valida")
				continue
			}

			c, ok := inventory.Consume(entry.Remainder, material.ReservedQuantity, req.Quantity, in.FromReservation)
			if !ok {
				available := inventory.Availability(entry.Remainder, material.ReservedQuantity)
				if in.FromReservation {
					available = entry.Remainder
				}
				return &InsufficientStockError{
					MaterialID:   material.ID,
					MaterialName: material.Name,
					Needed:       req.Quantity,
					Available:    available,
				}
			}
			if err := entryRepo.UpdateRemainder(ctx, entry.ID, c.Remainder); err != nil {
				return err
			}
			if c.Released.IsPositive() {
				if err := materialRepo.DecrementReserved(ctx, material.ID, c.Released); err != nil {
					return err
				}
			}
			lines = append(lines, ConsumedLine{
				WarehouseID:  entry.ID,
				MaterialID:   material.ID,
				MaterialName: material.Name,
				Consumed:     req.Quantity,
				Remainder:    c.Remainder,
				Released:     c.Released,
			})
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficientStock) {
			uc.obs.Metrics.Record(OpConsume, OutcomeInsufficient)
			uc.log.Warn().Err(err).Str("product_id", product.ID).Msg("materiales insuficientes")
		} else {
			uc.obs.Metrics.Record(OpConsume, OutcomeError)
			uc.log.Error().Err(err).Str("product_id", product.ID).Msg("actualizar almacén")
		}
		finishSpan(span, err)
		return nil, err
	}

	if err := uc.obs.Cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de almacén")
	}
	uc.obs.Metrics.Record(OpConsume, OutcomeOK)

	evLines := make([]MaterialEventLine, 0, len(lines))
	for _, l := range lines {
		evLines = append(evLines, MaterialEventLine{MaterialID: l.MaterialID, MaterialName: l.MaterialName, Quantity: l.Consumed})
	}
	if len(evLines) > 0 {
		publishEvent(ctx, uc.obs.Publisher, uc.log, EventMaterialsConsumed, product, in.Quantity, evLines)
	}
	span.SetAttributes(attribute.Int("consume.lines", len(lines)))
	finishSpan(span, nil)
	return lines, nil
}
