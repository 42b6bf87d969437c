package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// WarehouseEntry saldo de un material en el almacén (una entrada por material, una sola ubicación).
type WarehouseEntry struct {
	ID         string
	MaterialID string
	Remainder  decimal.Decimal // cantidad física disponible
	Price      decimal.Decimal // precio unitario
	UpdatedAt  time.Time
}

// StockLine vista de lectura del almacén: entrada + material.
type StockLine struct {
	WarehouseID  string
	MaterialID   string
	MaterialName string
	Remainder    decimal.Decimal
	Reserved     decimal.Decimal
	Price        decimal.Decimal
	UpdatedAt    time.Time
}
