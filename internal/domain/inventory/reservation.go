package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/Jamxon/Korxona/internal/domain/entity"
)

// RequiredMaterials multiplica la BOM por la cantidad a producir.
// Líneas repetidas del mismo material se acumulan; se conserva el orden de aparición.
func RequiredMaterials(bom []entity.ProductMaterial, quantity decimal.Decimal) []entity.RequiredMaterial {
	out := make([]entity.RequiredMaterial, 0, len(bom))
	index := make(map[string]int, len(bom))
	for _, line := range bom {
		qty := line.Quantity.Mul(quantity)
		if i, ok := index[line.MaterialID]; ok {
			out[i].Quantity = out[i].Quantity.Add(qty)
			continue
		}
		index[line.MaterialID] = len(out)
		out = append(out, entity.RequiredMaterial{MaterialID: line.MaterialID, Quantity: qty})
	}
	return out
}

// Availability = max(0, remainder - reserved). Es el único modelo de disponibilidad del sistema.
func Availability(remainder, reserved decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, remainder.Sub(reserved))
}

// ReservableQuantity = min(required, Availability). Nunca supera lo requerido ni el saldo.
func ReservableQuantity(required, remainder, reserved decimal.Decimal) decimal.Decimal {
	if required.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(required, Availability(remainder, reserved))
}

// Shortfall cantidad requerida que no pudo reservarse.
func Shortfall(required, actual decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, required.Sub(actual))
}

// Consumption resultado de retirar material del almacén.
type Consumption struct {
	Remainder decimal.Decimal // nuevo saldo físico
	Reserved  decimal.Decimal // nueva reserva
	Released  decimal.Decimal // reserva liberada por el retiro
}

// Consume calcula el retiro de needed unidades.
// Sin fromReservation el retiro solo puede tomar lo no reservado (Availability).
// Con fromReservation se consume contra el saldo físico y se libera min(reserved, needed).
// Devuelve ok=false si no alcanza; en ese caso Consumption no es válido.
func Consume(remainder, reserved, needed decimal.Decimal, fromReservation bool) (Consumption, bool) {
	if fromReservation {
		if remainder.LessThan(needed) {
			return Consumption{}, false
		}
		released := decimal.Min(reserved, needed)
		return Consumption{
			Remainder: remainder.Sub(needed),
			Reserved:  reserved.Sub(released),
			Released:  released,
		}, true
	}
	if Availability(remainder, reserved).LessThan(needed) {
		return Consumption{}, false
	}
	return Consumption{Remainder: remainder.Sub(needed), Reserved: reserved}, true
}

// Release libera hasta requested unidades de la reserva sin dejarla negativa.
func Release(reserved, requested decimal.Decimal) decimal.Decimal {
	if requested.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	return decimal.Min(reserved, requested)
}
