package ports

import (
	"context"
	"io"

	"github.com/Jamxon/Korxona/internal/application/dto"
)

// StockCache caché de lectura del listado de almacén (Redis en producción).
// Get devuelve ok=false si no hay entrada; los errores del caché no deben romper la lectura.
// Invalidate incrementa la generación; Set descarta el listado si la generación
// cambió desde que se leyó con Version.
type StockCache interface {
	Get(ctx context.Context) (*dto.StockListResponse, bool, error)
	Version(ctx context.Context) (int64, error)
	Set(ctx context.Context, version int64, list *dto.StockListResponse) error
	Invalidate(ctx context.Context) error
}

// StockSpreadsheet lectura/escritura de hojas de cálculo de almacén.
type StockSpreadsheet interface {
	ReadStock(r io.Reader) ([]dto.StockImportRow, []dto.ImportRowError, error)
	WriteStock(items []dto.StockItem) ([]byte, error)
}

// ProductionReportRenderer genera el reporte de producción en un formato binario (PDF, XLSX).
type ProductionReportRenderer interface {
	Render(report *dto.ProductionInfoResponse) ([]byte, error)
}
