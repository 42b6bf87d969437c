package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Jamxon/Korxona/internal/domain/entity"
)

// WarehouseEntryRepository define el puerto de persistencia para los saldos del almacén.
type WarehouseEntryRepository interface {
	// GetByMaterialForUpdate bloquea la fila; nil, nil si el material no tiene entrada en el almacén.
	GetByMaterialForUpdate(ctx context.Context, materialID string) (*entity.WarehouseEntry, error)
	UpdateRemainder(ctx context.Context, id string, remainder decimal.Decimal) error
	// Upsert crea o actualiza la entrada del material (aprovisionamiento).
	Upsert(ctx context.Context, entry *entity.WarehouseEntry) error
	ListStock(ctx context.Context) ([]entity.StockLine, error)
}
