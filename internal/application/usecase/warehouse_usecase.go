package usecase

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/ports"
	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/internal/domain"
	"github.com/Jamxon/Korxona/internal/domain/entity"
	"github.com/Jamxon/Korxona/internal/domain/inventory"
	"github.com/Jamxon/Korxona/internal/domain/repository"
	"github.com/Jamxon/Korxona/pkg/logger"
	"github.com/Jamxon/Korxona/pkg/textnorm"
)

// WarehouseUseCase listado, importación y exportación del almacén.
type WarehouseUseCase struct {
	entryRepo repository.WarehouseEntryRepository
	txRunner  production.TxRunner
	cache     ports.StockCache
	sheet     ports.StockSpreadsheet
	log       *logger.Logger
}

// NewWarehouseUseCase construye el caso de uso. cache puede ser nil.
func NewWarehouseUseCase(
	entryRepo repository.WarehouseEntryRepository,
	txRunner production.TxRunner,
	cache ports.StockCache,
	sheet ports.StockSpreadsheet,
	log *logger.Logger,
) *WarehouseUseCase {
	return &WarehouseUseCase{entryRepo: entryRepo, txRunner: txRunner, cache: cache, sheet: sheet, log: log}
}

// ListStock saldos de todos los materiales. Lee del caché si está disponible.
// Un listado leído antes de una invalidación concurrente no se guarda.
func (uc *WarehouseUseCase) ListStock(ctx context.Context) (*dto.StockListResponse, error) {
	cacheable := false
	var version int64
	if uc.cache != nil {
		cached, ok, err := uc.cache.Get(ctx)
		if err != nil {
			uc.log.Warn().Err(err).Msg("leer caché de almacén")
		} else if ok {
			return cached, nil
		}
		if version, err = uc.cache.Version(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("leer generación del caché de almacén")
		} else {
			cacheable = true
		}
	}

	lines, err := uc.entryRepo.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, dto.StockItem{
			WarehouseID:  l.WarehouseID,
			MaterialID:   l.MaterialID,
			MaterialName: l.MaterialName,
			Remainder:    l.Remainder,
			Reserved:     l.Reserved,
			Available:    inventory.Availability(l.Remainder, l.Reserved),
			Price:        l.Price,
			UpdatedAt:    l.UpdatedAt,
		})
	}
	out := &dto.StockListResponse{Items: items, Total: len(items)}

	if cacheable {
		if err := uc.cache.Set(ctx, version, out); err != nil {
			uc.log.Warn().Err(err).Msg("guardar caché de almacén")
		}
	}
	return out, nil
}

// ExportStock listado en XLSX.
func (uc *WarehouseUseCase) ExportStock(ctx context.Context) ([]byte, error) {
	list, err := uc.ListStock(ctx)
	if err != nil {
		return nil, err
	}
	return uc.sheet.WriteStock(list.Items)
}

// ImportStock aprovisiona el almacén desde una hoja (material, saldo, precio).
// Cada fila se aplica en su propia transacción; las filas inválidas se reportan y no detienen el resto.
// Un saldo menor que la reserva vigente del material se rechaza.
func (uc *WarehouseUseCase) ImportStock(ctx context.Context, r io.Reader) (*dto.StockImportResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("leer archivo: %w", err)
	}
	rows, rowErrs, err := uc.sheet.ReadStock(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}

	out := &dto.StockImportResponse{Errors: rowErrs}
	if out.Errors == nil {
		out.Errors = []dto.ImportRowError{}
	}
	for _, row := range rows {
		created, err := uc.importRow(ctx, row)
		if err != nil {
			uc.log.Warn().Err(err).Int("row", row.Row).Str("material", row.MaterialName).Msg("fila de importación rechazada")
			out.Errors = append(out.Errors, dto.ImportRowError{Row: row.Row, Message: err.Error()})
			continue
		}
		if created {
			out.Created++
		} else {
			out.Updated++
		}
	}

	if out.Created+out.Updated > 0 && uc.cache != nil {
		if err := uc.cache.Invalidate(ctx); err != nil {
			uc.log.Warn().Err(err).Msg("invalidar caché de almacén")
		}
	}
	uc.log.Info().Int("created", out.Created).Int("updated", out.Updated).Int("errors", len(out.Errors)).
		Msg("importación de almacén")
	return out, nil
}

func (uc *WarehouseUseCase) importRow(ctx context.Context, row dto.StockImportRow) (bool, error) {
	name := textnorm.Name(row.MaterialName)
	if name == "" {
		return false, fmt.Errorf("%w: nombre de material vacío", domain.ErrInvalidInput)
	}
	if row.Remainder.IsNegative() || row.Price.IsNegative() {
		return false, fmt.Errorf("%w: saldo y precio deben ser >= 0", domain.ErrInvalidInput)
	}

	created := false
	err := uc.txRunner.Run(ctx, func(materialRepo repository.MaterialRepository, entryRepo repository.WarehouseEntryRepository) error {
		material, err := materialRepo.GetByName(ctx, name)
		if err != nil {
			return err
		}
		now := time.Now()
		if material == nil {
			material = &entity.Material{ID: uuid.New().String(), Name: name, CreatedAt: now, UpdatedAt: now}
			if err := materialRepo.Create(ctx, material); err != nil {
				return err
			}
		} else {
			if material, err = materialRepo.GetForUpdate(ctx, material.ID); err != nil {
				return err
			}
			if material == nil {
				return domain.ErrNotFound
			}
			if row.Remainder.LessThan(material.ReservedQuantity) {
				return fmt.Errorf("%w: saldo %s menor que la reserva %s", domain.ErrConflict, row.Remainder, material.ReservedQuantity)
			}
		}

		entry, err := entryRepo.GetByMaterialForUpdate(ctx, material.ID)
		if err != nil {
			return err
		}
		if entry == nil {
			created = true
			entry = &entity.WarehouseEntry{ID: uuid.New().String(), MaterialID: material.ID}
		}
		entry.Remainder = row.Remainder
		entry.Price = row.Price
		entry.UpdatedAt = now
		return entryRepo.Upsert(ctx, entry)
	})
	return created, err
}
