package dto

import "github.com/shopspring/decimal"

// UpdateWarehouseRequest body de POST /api/warehouse/update.
type UpdateWarehouseRequest struct {
	Name            string `json:"name"`
	Quantity        int64  `json:"quantity"`
	FromReservation bool   `json:"from_reservation,omitempty"`
}

// ReleaseReservationRequest body de POST /api/warehouse/reservations/release.
type ReleaseReservationRequest struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// ReserveRequest body de POST /api/production/reserve.
type ReserveRequest struct {
	Name     string `json:"name"`
	Quantity int64  `json:"quantity"`
}

// MessageResponse respuesta {"message": ...} de los endpoints de almacén.
type MessageResponse struct {
	Message string `json:"message"`
}

// Mensajes fijos de POST /api/warehouse/update.
const (
	MessageWarehouseUpdated     = "Warehouse updated successfully"
	MessageNotEnoughMaterials   = "Not enough materials in the warehouse"
	MessageReservationsReleased = "Reservations released successfully"
)

// ProductionInfoResponse respuesta de GET /api/production/info.
type ProductionInfoResponse struct {
	Result []ProductionInfoItem `json:"result"`
}

// ProductionInfoItem producto del plan con sus materiales reservados.
type ProductionInfoItem struct {
	ProductName      string                `json:"product_name"`
	ProductQty       int64                 `json:"product_qty"`
	ProductMaterials []ProductMaterialInfo `json:"product_materials"`
	RolledBack       bool                  `json:"rolled_back,omitempty"`
}

// ProductMaterialInfo línea por material. qty es el saldo físico, no lo reservado.
type ProductMaterialInfo struct {
	WarehouseID  string          `json:"warehouse_id"`
	MaterialName string          `json:"material_name"`
	Qty          decimal.Decimal `json:"qty"`
	Price        decimal.Decimal `json:"price"`
	Required     decimal.Decimal `json:"required"`
	Reserved     decimal.Decimal `json:"reserved"`
	Shortfall    decimal.Decimal `json:"shortfall"`
}

// ReleasedMaterial línea de respuesta de liberación.
type ReleasedMaterial struct {
	MaterialName string          `json:"material_name"`
	Released     decimal.Decimal `json:"released"`
	Reserved     decimal.Decimal `json:"reserved"`
}

// ReleaseReservationResponse respuesta de liberación de reservas.
type ReleaseReservationResponse struct {
	Message   string             `json:"message"`
	Materials []ReleasedMaterial `json:"materials"`
}
