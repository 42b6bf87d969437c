package production

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Jamxon/Korxona/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Las filas leídas con GetForUpdate quedan bloqueadas hasta Commit/Rollback.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		materialRepo repository.MaterialRepository,
		entryRepo repository.WarehouseEntryRepository,
	) error) error
}

// Tipos de evento publicados después del commit.
const (
	EventMaterialsReserved  = "materials.reserved"
	EventMaterialsShortfall = "materials.shortfall"
	EventMaterialsConsumed  = "materials.consumed"
	EventMaterialsReleased  = "materials.released"
)

// MaterialEvent evento de dominio sobre movimientos de reserva/consumo.
type MaterialEvent struct {
	ID          string              `json:"id"`
	Type        string              `json:"type"`
	ProductName string              `json:"product_name"`
	ProductQty  int64               `json:"product_qty"`
	Lines       []MaterialEventLine `json:"lines"`
	OccurredAt  time.Time           `json:"occurred_at"`
}

// MaterialEventLine cantidad afectada por material.
type MaterialEventLine struct {
	MaterialID   string          `json:"material_id"`
	MaterialName string          `json:"material_name"`
	Quantity     decimal.Decimal `json:"quantity"`
	Shortfall    decimal.Decimal `json:"shortfall,omitempty"`
}

// EventPublisher publica eventos de materiales (Kafka en producción).
type EventPublisher interface {
	Publish(ctx context.Context, event MaterialEvent) error
}

// Operaciones y resultados registrados en métricas.
const (
	OpReserve = "reserve"
	OpConsume = "consume"
	OpRelease = "release"

	OutcomeOK           = "ok"
	OutcomeShortfall    = "shortfall"
	OutcomeInsufficient = "insufficient"
	OutcomeRolledBack   = "rolled_back"
	OutcomeError        = "error"
)

// Metrics registra el resultado de cada operación.
type Metrics interface {
	Record(operation, outcome string)
	ObserveShortfall(material string, qty decimal.Decimal)
}

// StockCache caché de lectura del almacén; se invalida en cada mutación.
type StockCache interface {
	Invalidate(ctx context.Context) error
}

// Observers dependencias opcionales de los casos de uso. Los campos nil se reemplazan por no-ops.
type Observers struct {
	Publisher EventPublisher
	Metrics   Metrics
	Cache     StockCache
}

func (o Observers) withDefaults() Observers {
	if o.Publisher == nil {
		o.Publisher = nopPublisher{}
	}
	if o.Metrics == nil {
		o.Metrics = nopMetrics{}
	}
	if o.Cache == nil {
		o.Cache = nopCache{}
	}
	return o
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, MaterialEvent) error { return nil }

type nopMetrics struct{}

func (nopMetrics) Record(string, string)                    {}
func (nopMetrics) ObserveShortfall(string, decimal.Decimal) {}

type nopCache struct{}

func (nopCache) Invalidate(context.Context) error { return nil }
