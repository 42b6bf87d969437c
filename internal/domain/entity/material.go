package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material representa una materia prima. ReservedQuantity es lo apartado para producción
// pendiente; el saldo físico vive en WarehouseEntry.Remainder.
type Material struct {
	ID               string
	Name             string
	ReservedQuantity decimal.Decimal
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
