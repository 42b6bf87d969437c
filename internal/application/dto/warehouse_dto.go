package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockItem saldo de un material en el almacén.
type StockItem struct {
	WarehouseID  string          `json:"warehouse_id"`
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Remainder    decimal.Decimal `json:"remainder"`
	Reserved     decimal.Decimal `json:"reserved"`
	Available    decimal.Decimal `json:"available"` // max(0, remainder - reserved)
	Price        decimal.Decimal `json:"price"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// StockListResponse listado del almacén (GET /api/warehouse).
type StockListResponse struct {
	Items []StockItem `json:"items"`
	Total int         `json:"total"`
}

// StockImportRow fila leída de la hoja de aprovisionamiento.
type StockImportRow struct {
	Row          int
	MaterialName string
	Remainder    decimal.Decimal
	Price        decimal.Decimal
}

// ImportRowError error de validación de una fila importada.
type ImportRowError struct {
	Row     int    `json:"row"`
	Message string `json:"message"`
}

// StockImportResponse resultado de POST /api/warehouse/import.
type StockImportResponse struct {
	Created int              `json:"created"`
	Updated int              `json:"updated"`
	Errors  []ImportRowError `json:"errors"`
}
