package events

import (
	"context"

	"github.com/Jamxon/Korxona/internal/application/production"
	"github.com/Jamxon/Korxona/pkg/logger"
)

// LogPublisher registra los eventos en el log cuando Kafka no está configurado.
type LogPublisher struct {
	log *logger.Logger
}

func NewLogPublisher(log *logger.Logger) *LogPublisher {
	return &LogPublisher{log: log}
}

func (p *LogPublisher) Publish(ctx context.Context, event production.MaterialEvent) error {
	p.log.Ctx(ctx).Debug().
		Str("event", event.Type).
		Str("event_id", event.ID).
		Str("product_name", event.ProductName).
		Int64("product_qty", event.ProductQty).
		Int("lines", len(event.Lines)).
		Msg("evento de materiales")
	return nil
}
