package spreadsheet

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/ports"
)

var _ ports.ProductionReportRenderer = (*ProductionWorkbook)(nil)

var productionHeader = []interface{}{
	"product_name", "product_qty", "warehouse_id", "material_name", "qty", "price", "required", "reserved", "shortfall",
}

// ProductionWorkbook reporte de producción en una sola hoja, una fila por material.
type ProductionWorkbook struct{}

func NewProductionWorkbook() *ProductionWorkbook { return &ProductionWorkbook{} }

func (ProductionWorkbook) Render(report *dto.ProductionInfoResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := "Production"
	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), sheet); err != nil {
		return nil, err
	}
	if err := writeHeader(f, sheet, productionHeader); err != nil {
		return nil, err
	}

	row := 2
	for _, item := range report.Result {
		for _, m := range item.ProductMaterials {
			cell, err := excelize.CoordinatesToCellName(1, row)
			if err != nil {
				return nil, err
			}
			values := []interface{}{
				item.ProductName,
				item.ProductQty,
				m.WarehouseID,
				m.MaterialName,
				m.Qty.InexactFloat64(),
				m.Price.InexactFloat64(),
				m.Required.InexactFloat64(),
				m.Reserved.InexactFloat64(),
				m.Shortfall.InexactFloat64(),
			}
			if err := f.SetSheetRow(sheet, cell, &values); err != nil {
				return nil, fmt.Errorf("xlsx: fila %d: %w", row, err)
			}
			row++
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 18)
	_ = f.SetColWidth(sheet, "C", "D", 38)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}
