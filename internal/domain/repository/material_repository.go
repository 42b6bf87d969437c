package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/Jamxon/Korxona/internal/domain/entity"
)

// MaterialRepository define el puerto para materiales y su contador de reserva.
type MaterialRepository interface {
	GetByName(ctx context.Context, name string) (*entity.Material, error)
	// GetForUpdate bloquea la fila (SELECT FOR UPDATE). Solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	IncrementReserved(ctx context.Context, id string, qty decimal.Decimal) error
	DecrementReserved(ctx context.Context, id string, qty decimal.Decimal) error
	Create(ctx context.Context, material *entity.Material) error
}
