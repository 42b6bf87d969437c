package usecase

import (
	"context"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/ports"
	"github.com/Jamxon/Korxona/internal/application/production"
)

// ProductionReportUseCase arma la respuesta de /api/production/info y sus reportes descargables.
// Todas las variantes reservan materiales (mismo efecto que el endpoint JSON).
type ProductionReportUseCase struct {
	info *production.ProductionInfoUseCase
	pdf  ports.ProductionReportRenderer
	xlsx ports.ProductionReportRenderer
}

// NewProductionReportUseCase construye el caso de uso.
func NewProductionReportUseCase(info *production.ProductionInfoUseCase, pdf, xlsx ports.ProductionReportRenderer) *ProductionReportUseCase {
	return &ProductionReportUseCase{info: info, pdf: pdf, xlsx: xlsx}
}

// Info reserva según el plan y devuelve {"result": [...]}.
func (uc *ProductionReportUseCase) Info(ctx context.Context) (*dto.ProductionInfoResponse, error) {
	infos, err := uc.info.GetProductionInfo(ctx)
	if err != nil {
		return nil, err
	}
	return ToProductionInfoResponse(infos), nil
}

// PDF reporte de producción en PDF.
func (uc *ProductionReportUseCase) PDF(ctx context.Context) ([]byte, error) {
	report, err := uc.Info(ctx)
	if err != nil {
		return nil, err
	}
	return uc.pdf.Render(report)
}

// XLSX reporte de producción en Excel.
func (uc *ProductionReportUseCase) XLSX(ctx context.Context) ([]byte, error) {
	report, err := uc.Info(ctx)
	if err != nil {
		return nil, err
	}
	return uc.xlsx.Render(report)
}

// ToProductionInfoResponse convierte el resultado de producción al DTO HTTP.
func ToProductionInfoResponse(infos []production.ProductInfo) *dto.ProductionInfoResponse {
	out := &dto.ProductionInfoResponse{Result: make([]dto.ProductionInfoItem, 0, len(infos))}
	for _, info := range infos {
		out.Result = append(out.Result, dto.ProductionInfoItem{
			ProductName:      info.ProductName,
			ProductQty:       info.ProductQty,
			ProductMaterials: ToProductMaterials(info.Materials),
			RolledBack:       info.RolledBack,
		})
	}
	return out
}

// ToProductMaterials convierte líneas de reserva al DTO HTTP.
func ToProductMaterials(lines []production.ReservationLine) []dto.ProductMaterialInfo {
	out := make([]dto.ProductMaterialInfo, 0, len(lines))
	for _, l := range lines {
		out = append(out, dto.ProductMaterialInfo{
			WarehouseID:  l.WarehouseID,
			MaterialName: l.MaterialName,
			Qty:          l.Qty,
			Price:        l.Price,
			Required:     l.Required,
			Reserved:     l.Reserved,
			Shortfall:    l.Shortfall,
		})
	}
	return out
}
