package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	dxfio "github.com/hailam/dxfio"
)

// WriteWorkbook writes an inventory workbook for the drawing: a Layers
// sheet listing the symbol table and an Entities sheet with one row per
// entity giving its type, layer, and handle.
func WriteWorkbook(drawing *dxfio.Drawing, path string) error {
	f := excelize.NewFile()

	const layersSheet = "Layers"
	if err := f.SetSheetName("Sheet1", layersSheet); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}
	headers := []string{"Name", "Color", "Line Type", "Flags"}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(layersSheet, cell, h)
	}
	for row, layer := range drawing.Layers {
		values := []interface{}{layer.Name, int(layer.Color), layer.LineType, int(layer.Flags)}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(layersSheet, cell, v)
		}
	}

	const entitiesSheet = "Entities"
	if _, err := f.NewSheet(entitiesSheet); err != nil {
		return fmt.Errorf("failed to add sheet: %w", err)
	}
	for i, h := range []string{"Type", "Layer", "Handle"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(entitiesSheet, cell, h)
	}
	for row, e := range drawing.Entities {
		values := []interface{}{
			e.TypeString(),
			e.Common.Layer,
			fmt.Sprintf("%X", e.Common.Handle),
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, row+2)
			f.SetCellValue(entitiesSheet, cell, v)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}
