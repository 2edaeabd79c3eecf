// Package xlsxexport renders a parse preview as an XLSX workbook for the
// admin download flow.
package xlsxexport

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"encomendas/internal/domain"
)

const sheet = "Encomendas"

var columns = []string{
	"Linha",
	"Código de Rastreio",
	"Destinatário",
	"Posição",
	"Data",
	"Data ISO",
	"Confiança",
}

// Write returns an XLSX workbook with one row per extracted package plus a
// header row.
func Write(result *domain.ParseResult) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, fmt.Errorf("renaming sheet: %w", err)
	}

	for i, h := range columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return nil, fmt.Errorf("writing header: %w", err)
		}
	}

	for rowIdx, pkg := range result.Packages {
		values := []any{
			pkg.LineNumber,
			pkg.TrackingCode,
			pkg.Recipient,
			pkg.Position,
			pkg.Date,
			pkg.DateISO,
			pkg.Confidence,
		}
		for colIdx, v := range values {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, fmt.Errorf("writing row %d: %w", rowIdx+2, err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serializing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
