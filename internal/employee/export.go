package employee

import (
	"fmt"
	"io"

	"github.com/360EntSecGroup-Skylar/excelize/v2"

	employeemodel "github.com/dtalent/hr-client/internal/core/datamodel/employee"
)

var (
	headerStyleJSON = `
	{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		],
		"fill": {
			"type": "pattern",
			"pattern": 1,
			"color": ["#0D8ABC"]
		},
		"font": {
			"bold": true,
			"color": "#FFFFFF"
		},
		"alignment": {
			"shrink_to_fit": true
		}
	}`
	dataStyleJSON = `
	{
		"border": [
			{"type": "left", "color": "#000000", "style": 1},
			{"type": "top", "color": "#000000", "style": 1},
			{"type": "right", "color": "#000000", "style": 1},
			{"type": "bottom", "color": "#000000", "style": 1}
		],
		"alignment": {
			"shrink_to_fit": true
		}
	}`
)

// ExportXLSX writes the given (already filtered and sorted) employee list as
// a spreadsheet.
func ExportXLSX(employees []employeemodel.Employee, w io.Writer) error {
	f := excelize.NewFile()

	sheet := "Empleados"
	f.NewSheet(sheet)
	// delete default sheet
	f.DeleteSheet("Sheet1")

	if err := f.SetColWidth(sheet, "A", "I", 24); err != nil {
		return err
	}

	headerStyle, err := f.NewStyle(headerStyleJSON)
	if err != nil {
		return err
	}

	dataStyle, err := f.NewStyle(dataStyleJSON)
	if err != nil {
		return err
	}

	streamWriter, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	headers := []string{"Número", "Nombre", "Correo Electrónico", "Teléfono", "Cargo", "Sector", "Turno", "Estado", "Remuneración"}
	headerRow := make([]interface{}, len(headers))
	for i, h := range headers {
		headerRow[i] = excelize.Cell{StyleID: headerStyle, Value: h}
	}
	if err := streamWriter.SetRow("A1", headerRow); err != nil {
		return err
	}

	for n, e := range employees {
		row := []interface{}{
			excelize.Cell{StyleID: dataStyle, Value: e.ID},
			excelize.Cell{StyleID: dataStyle, Value: e.FullName()},
			excelize.Cell{StyleID: dataStyle, Value: e.Email},
			excelize.Cell{StyleID: dataStyle, Value: e.Phone},
			excelize.Cell{StyleID: dataStyle, Value: e.Cargo},
			excelize.Cell{StyleID: dataStyle, Value: e.Area},
			excelize.Cell{StyleID: dataStyle, Value: e.Turno},
			excelize.Cell{StyleID: dataStyle, Value: e.Status},
			excelize.Cell{StyleID: dataStyle, Value: e.TipoRemuneracion},
		}

		cell, _ := excelize.CoordinatesToCellName(1, n+2)
		if err := streamWriter.SetRow(cell, row); err != nil {
			return err
		}
	}

	if err := streamWriter.Flush(); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write spreadsheet: %w", err)
	}

	return nil
}
