package export

import (
	"fmt"
	"io"
	"time"

	"go-smartshop/internal/model"

	"github.com/360EntSecGroup-Skylar/excelize"
)

const (
	defaultSheet   = "Sheet1"
	inventorySheet = "Inventory"
	headerRow      = 4
)

var workbookHeader = []interface{}{"Product Name", "Quantity", "Unit Price", "Total Value", "Created Date"}

func cell(col string, row int) string {
	return fmt.Sprintf("%s%d", col, row)
}

// writeWorkbook writes the inventory as a real .xlsx workbook with one sheet.
func writeWorkbook(w io.Writer, products []model.Product, now time.Time) error {
	xlsx := excelize.NewFile()
	xlsx.SetSheetName(defaultSheet, inventorySheet)

	xlsx.SetCellValue(inventorySheet, "A1", "SMARTSHOP INVENTORY REPORT")
	xlsx.SetCellValue(inventorySheet, "A2", "Generated: "+now.Format(dateTimeLayout))
	xlsx.SetSheetRow(inventorySheet, cell("A", headerRow), &workbookHeader)
	xlsx.SetColWidth(inventorySheet, "A", "A", 32)
	xlsx.SetColWidth(inventorySheet, "B", "E", 14)

	row := headerRow
	for _, p := range products {
		row++
		xlsx.SetSheetRow(inventorySheet, cell("A", row), &[]interface{}{
			p.Name,
			p.Quantity,
			p.Price.InexactFloat64(),
			p.TotalValue().Round(2).InexactFloat64(),
			p.CreatedAt.Format(dateLayout),
		})
	}

	s := Summarize(products)
	row += 2
	xlsx.SetCellValue(inventorySheet, cell("A", row), "SUMMARY STATISTICS")
	row++
	xlsx.SetSheetRow(inventorySheet, cell("A", row), &[]interface{}{"Total Products", s.Count})
	row++
	xlsx.SetSheetRow(inventorySheet, cell("A", row), &[]interface{}{"Total Stock Value", s.TotalValue.Round(2).InexactFloat64()})
	if s.Count > 0 {
		row++
		xlsx.SetSheetRow(inventorySheet, cell("A", row), &[]interface{}{"Average Product Value", s.AverageValue.Round(2).InexactFloat64()})
		row++
		xlsx.SetSheetRow(inventorySheet, cell("A", row), &[]interface{}{"Most Expensive Item", s.MostExpensive.Name, s.MostExpensive.Price.InexactFloat64()})
		row++
		xlsx.SetSheetRow(inventorySheet, cell("A", row), &[]interface{}{"Lowest Stock", s.LowestStock.Name, s.LowestStock.Quantity})
	}

	return xlsx.Write(w)
}
