package production

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/internal/domain/inventory"
	"github.com/Jamxon/Korxona/internal/domain/repository"
	"github.com/Jamxon/Korxona/pkg/logger"
)

// ReservationLine línea de reporte por material.
// Qty es el saldo físico (no cambia al reservar); Reserved es lo apartado en esta llamada.
type ReservationLine struct {
	WarehouseID  string
	MaterialID   string
	MaterialName string
	Qty          decimal.Decimal
	Price        decimal.Decimal
	Required     decimal.Decimal
	Reserved     decimal.Decimal
	Shortfall    decimal.Decimal
}

// ReservationResult resultado de reservar materiales para un producto.
// RolledBack indica que la transacción falló: Lines contiene lo reunido antes del fallo
// y ninguna reserva quedó persistida.
type ReservationResult struct {
	ProductID  string
	Lines      []ReservationLine
	RolledBack bool
}

// HasShortfall indica si alguna línea quedó corta.
func (r *ReservationResult) HasShortfall() bool {
	for _, l := range r.Lines {
		if l.Shortfall.IsPositive() {
			return true
		}
	}
	return false
}

// ReserveMaterialsUseCase reserva materias primas para una orden de producción.
// Reserva min(requerido, disponible) por material; la falta se reporta en Shortfall, no como error.
type ReserveMaterialsUseCase struct {
	txRunner TxRunner
	loader   requirementLoader
	log      *logger.Logger
	obs      Observers
}

// NewReserveMaterialsUseCase construye el caso de uso.
func NewReserveMaterialsUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	bomRepo repository.BOMRepository,
	log *logger.Logger,
	obs Observers,
) *ReserveMaterialsUseCase {
	return &ReserveMaterialsUseCase{
		txRunner: txRunner,
		loader:   requirementLoader{productRepo: productRepo, bomRepo: bomRepo},
		log:      log,
		obs:      obs.withDefaults(),
	}
}

// Reserve calcula los materiales requeridos para quantity unidades del producto y aumenta
// reserved_quantity de cada material en una sola transacción (con bloqueo de filas).
//
// Material inexistente: se omite. Sin entrada en almacén: se registra en log y se omite.
// Fallo de BD dentro de la transacción: Rollback, log, y se devuelve lo reunido (RolledBack=true).
// Solo devuelve error si la entrada es inválida o no se pudo leer la lista de materiales.
func (uc *ReserveMaterialsUseCase) Reserve(ctx context.Context, product *entity.Product, quantity int64) (*ReservationResult, error) {
	if product == nil || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	ctx, span := tracer.Start(ctx, "production.reserve")
	span.SetAttributes(
		attribute.String("product.id", product.ID),
		attribute.String("product.name", product.Name),
		attribute.Int64("product.quantity", quantity),
	)

	required, err := uc.loader.forProduct(ctx, product.ID, quantity)
	if err != nil {
		uc.obs.Metrics.Record(OpReserve, OutcomeError)
		finishSpan(span, err)
		return nil, err
	}

	result := &ReservationResult{ProductID: product.ID, Lines: make([]ReservationLine, 0, len(required))}
	txErr := uc.txRunner.Run(ctx, func(
		materialRepo repository.MaterialRepository,
		entryRepo repository.WarehouseEntryRepository,
	) error {
		result.Lines = result.Lines[:0]
		for _, req := range required {
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
				uc.log.Error().
					Str("material_id", material.ID).
					Str("product_id", product.ID).
					Msg("material sin entrada en almacén")
				continue
			}

			actual := inventory.ReservableQuantity(req.Quantity, entry.Remainder, material.ReservedQuantity)
			if actual.IsPositive() {
				if err := materialRepo.IncrementReserved(ctx, material.ID, actual); err != nil {
					return err
				}
			}

			result.Lines = append(result.Lines, ReservationLine{
				WarehouseID:  entry.ID,
				MaterialID:   material.ID,
				MaterialName: material.Name,
				Qty:          entry.Remainder,
				Price:        entry.Price,
				Required:     req.Quantity,
				Reserved:     actual,
				Shortfall:    inventory.Shortfall(req.Quantity, actual),
			})
		}
		return nil
	})

	if txErr != nil {
		// El error no se propaga al llamador: la respuesta se arma con lo reunido.
		result.RolledBack = true
		uc.log.Error().Err(txErr).
			Str("product_id", product.ID).
			Int("lines_collected", len(result.Lines)).
			Msg("reserva revertida")
		uc.obs.Metrics.Record(OpReserve, OutcomeRolledBack)
		finishSpan(span, txErr)
		return result, nil
	}

	uc.afterCommit(ctx, product, quantity, result)
	span.SetAttributes(
		attribute.Int("reservation.lines", len(result.Lines)),
		attribute.Bool("reservation.shortfall", result.HasShortfall()),
	)
	finishSpan(span, nil)
	return result, nil
}

func (uc *ReserveMaterialsUseCase) afterCommit(ctx context.Context, product *entity.Product, quantity int64, result *ReservationResult) {
	if err := uc.obs.Cache.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("invalidar caché de almacén")
	}

	outcome := OutcomeOK
	var reservedLines, shortLines []MaterialEventLine
	for _, l := range result.Lines {
		if l.Reserved.IsPositive() {
			reservedLines = append(reservedLines, MaterialEventLine{
				MaterialID: l.MaterialID, MaterialName: l.MaterialName, Quantity: l.Reserved,
			})
		}
		if l.Shortfall.IsPositive() {
			outcome = OutcomeShortfall
			uc.obs.Metrics.ObserveShortfall(l.MaterialName, l.Shortfall)
			shortLines = append(shortLines, MaterialEventLine{
				MaterialID: l.MaterialID, MaterialName: l.MaterialName, Quantity: l.Reserved, Shortfall: l.Shortfall,
			})
			uc.log.Warn().
				Str("product_id", product.ID).
				Str("material_id", l.MaterialID).
				Str("required", l.Required.String()).
				Str("reserved", l.Reserved.String()).
				Msg("reserva parcial: stock insuficiente")
		}
	}
	uc.obs.Metrics.Record(OpReserve, outcome)

	if len(reservedLines) > 0 {
		publishEvent(ctx, uc.obs.Publisher, uc.log, EventMaterialsReserved, product, quantity, reservedLines)
	}
	if len(shortLines) > 0 {
		publishEvent(ctx, uc.obs.Publisher, uc.log, EventMaterialsShortfall, product, quantity, shortLines)
	}
}

// publishEvent publica sin afectar el resultado de la operación ya confirmada.
func publishEvent(ctx context.Context, p EventPublisher, log *logger.Logger, eventType string, product *entity.Product, quantity int64, lines []MaterialEventLine) {
	ev := MaterialEvent{
		ID:          uuid.New().String(),
		Type:        eventType,
		ProductName: product.Name,
		ProductQty:  quantity,
		Lines:       lines,
		OccurredAt:  time.Now().UTC(),
	}
	if err := p.Publish(ctx, ev); err != nil {
		log.Warn().Err(err).Str("event", eventType).Msg("publicar evento")
	}
}

// ReserveByName resuelve el producto por nombre y reserva. ErrNotFound si no existe.
func (uc *ReserveMaterialsUseCase) ReserveByName(ctx context.Context, name string, quantity int64) (*entity.Product, *ReservationResult, error) {
	if quantity <= 0 {
		return nil, nil, domain.ErrInvalidInput
	}
	product, err := uc.loader.product(ctx, name)
	if err != nil {
		return nil, nil, err
	}
	result, err := uc.Reserve(ctx, product, quantity)
	if err != nil {
		return nil, nil, err
	}
	return product, result, nil
}
