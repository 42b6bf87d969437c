// Package spreadsheet lee y escribe hojas XLSX del almacén y del reporte de producción (excelize).
package spreadsheet

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/Jamxon/Korxona/internal/application/dto"
	"github.com/Jamxon/Korxona/internal/application/ports"
)

var _ ports.StockSpreadsheet = (*StockWorkbook)(nil)

// Columnas de la hoja de almacén. La importación busca las tres primeras por encabezado.
var stockHeader = []interface{}{"material_name", "remainder", "price", "reserved", "available", "warehouse_id", "material_id"}

// StockWorkbook hoja de saldos: exportación completa e importación de material/saldo/precio.
type StockWorkbook struct{}

func NewStockWorkbook() *StockWorkbook { return &StockWorkbook{} }

// WriteStock exporta el listado del almacén.
func (StockWorkbook) WriteStock(items []dto.StockItem) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := writeHeader(f, sheet, stockHeader); err != nil {
		return nil, err
	}
	for i, it := range items {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		r := []interface{}{
			it.MaterialName,
			it.Remainder.InexactFloat64(),
			it.Price.InexactFloat64(),
			it.Reserved.InexactFloat64(),
			it.Available.InexactFloat64(),
			it.WarehouseID,
			it.MaterialID,
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	_ = f.SetColWidth(sheet, "A", "A", 28)
	_ = f.SetColWidth(sheet, "F", "G", 38)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("xlsx: escribir: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadStock lee la hoja activa. La primera fila es el encabezado; se aceptan las columnas
// material_name/remainder/price en cualquier orden (o A/B/C si no hay encabezados reconocibles).
// Filas vacías se ignoran; filas con números inválidos se reportan en el segundo valor.
func (StockWorkbook) ReadStock(r io.Reader) ([]dto.StockImportRow, []dto.ImportRowError, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, nil, fmt.Errorf("archivo no es un .xlsx válido: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(f.GetSheetName(f.GetActiveSheetIndex()))
	if err != nil {
		return nil, nil, fmt.Errorf("leer hoja: %w", err)
	}
	if len(rows) < 2 {
		return nil, nil, fmt.Errorf("la hoja no contiene filas de datos")
	}

	nameCol, remCol, priceCol := columnIndexes(rows[0])
	var (
		out  []dto.StockImportRow
		errs []dto.ImportRowError
	)
	for i, cells := range rows[1:] {
		rowNum := i + 2
		name := strings.TrimSpace(cellAt(cells, nameCol))
		remainderRaw := cellAt(cells, remCol)
		priceRaw := cellAt(cells, priceCol)
		if name == "" && strings.TrimSpace(remainderRaw) == "" && strings.TrimSpace(priceRaw) == "" {
			continue
		}
		if name == "" {
			errs = append(errs, dto.ImportRowError{Row: rowNum, Message: "material_name vacío"})
			continue
		}
		remainder, err := parseNumber(remainderRaw)
		if err != nil {
			errs = append(errs, dto.ImportRowError{Row: rowNum, Message: "remainder: " + err.Error()})
			continue
		}
		price, err := parseNumber(priceRaw)
		if err != nil {
			errs = append(errs, dto.ImportRowError{Row: rowNum, Message: "price: " + err.Error()})
			continue
		}
		out = append(out, dto.StockImportRow{Row: rowNum, MaterialName: name, Remainder: remainder, Price: price})
	}
	return out, errs, nil
}

func columnIndexes(header []string) (name, remainder, price int) {
	name, remainder, price = 0, 1, 2
	found := map[string]int{}
	for i, h := range header {
		found[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if i, ok := found["material_name"]; ok {
		name = i
	}
	if i, ok := found["remainder"]; ok {
		remainder = i
	}
	if i, ok := found["price"]; ok {
		price = i
	}
	return name, remainder, price
}

func cellAt(cells []string, i int) string {
	if i < 0 || i >= len(cells) {
		return ""
	}
	return cells[i]
}

// parseNumber acepta coma decimal y espacios de miles. Celda vacía = 0.
func parseNumber(s string) (decimal.Decimal, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, nil
	}
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "\u00a0", "")
	s = strings.ReplaceAll(s, ",", ".")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%q no es un número", s)
	}
	return d, nil
}

func writeHeader(f *excelize.File, sheet string, header []interface{}) error {
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("xlsx: encabezado: %w", err)
	}
	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"00467F"}, Pattern: 1},
	})
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}
