package entity

import "github.com/shopspring/decimal"

// ProductMaterial es una línea de la lista de materiales (BOM): cuánto de un material consume
// una unidad del producto.
type ProductMaterial struct {
	ProductID    string
	MaterialID   string
	MaterialName string
	Quantity     decimal.Decimal // por unidad de producto
}

// RequiredMaterial cantidad total de un material para una orden de producción.
type RequiredMaterial struct {
	MaterialID string
	Quantity   decimal.Decimal
}
