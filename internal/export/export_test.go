package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go-smartshop/internal/model"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	exportTime = time.Date(2026, 10, 18, 14, 30, 5, 0, time.UTC)
	created    = time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
)

func sampleProducts() []model.Product {
	return []model.Product{
		{Id: "p1", Name: "Pen", Quantity: 10, Price: decimal.RequireFromString("1.50"), CreatedAt: created},
		{Id: "p2", Name: "Notebook, A5", Quantity: 2, Price: decimal.RequireFromString("4.25"), CreatedAt: created},
	}
}

func newTestExporter(t *testing.T) *Exporter {
	e := New(filepath.Join(t.TempDir(), "exports"))
	e.now = func() time.Time { return exportTime }
	return e
}

func readExport(t *testing.T, e *Exporter, products []model.Product, format Format) string {
	t.Helper()
	path, err := e.Export(products, format)
	require.NoError(t, err)
	assert.Equal(t, format.FileName(exportTime), filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestSummarize(t *testing.T) {
	s := Summarize(sampleProducts())
	assert.Equal(t, 2, s.Count)
	assert.Equal(t, "23.50", money(s.TotalValue))
	assert.Equal(t, "11.75", money(s.AverageValue))
	assert.Equal(t, "p2", s.MostExpensive.Id)
	assert.Equal(t, "p2", s.LowestStock.Id)

	empty := Summarize(nil)
	assert.Equal(t, 0, empty.Count)
	assert.True(t, empty.TotalValue.IsZero())
	assert.Nil(t, empty.MostExpensive)
	assert.Nil(t, empty.LowestStock)
}

func TestSummarizeTiesKeepFirst(t *testing.T) {
	products := []model.Product{
		{Id: "a", Quantity: 1, Price: decimal.NewFromInt(5)},
		{Id: "b", Quantity: 1, Price: decimal.NewFromInt(5)},
	}
	s := Summarize(products)
	assert.Equal(t, "a", s.MostExpensive.Id)
	assert.Equal(t, "a", s.LowestStock.Id)
}

func TestFileNames(t *testing.T) {
	assert.Equal(t, "SmartShop_Products_2026-10-18.csv", CSV.FileName(exportTime))
	assert.Equal(t, "SmartShop_Inventory_2026-10-18.xls", Excel.FileName(exportTime))
	assert.Equal(t, "SmartShop_Report_2026-10-18.txt", Text.FileName(exportTime))
	assert.Equal(t, "SmartShop_Products_2026-10-18.json", JSON.FileName(exportTime))
	assert.Equal(t, "SmartShop_Inventory_2026-10-18.xlsx", Workbook.FileName(exportTime))
}

func TestParseFormat(t *testing.T) {
	for _, f := range Formats {
		got, err := ParseFormat(strings.ToUpper(f.String()))
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}

	_, err := ParseFormat("pdf")
	require.ErrorIs(t, err, ErrUnknownFormat)
}

func TestExportCSV(t *testing.T) {
	got := readExport(t, newTestExporter(t), sampleProducts(), CSV)

	want := "Product Name,Quantity,Unit Price,Total Value,Created Date\n" +
		"Pen,10,1.5,15.00,2026-09-01\n" +
		"\"Notebook, A5\",2,4.25,8.50,2026-09-01\n" +
		"\n\n" +
		"SUMMARY\n" +
		"Total Products,2\n" +
		"Total Stock Value,23.50\n" +
		"Average Product Value,11.75\n"
	assert.Equal(t, want, got)
}

func TestExportCSVEmpty(t *testing.T) {
	got := readExport(t, newTestExporter(t), nil, CSV)

	assert.True(t, strings.HasPrefix(got, "Product Name,Quantity,Unit Price,Total Value,Created Date\n"))
	assert.Contains(t, got, "Total Stock Value,0.00\n")
	assert.NotContains(t, got, "Average Product Value")
}

func TestExportExcel(t *testing.T) {
	got := readExport(t, newTestExporter(t), sampleProducts(), Excel)

	assert.True(t, strings.HasPrefix(got, "SMARTSHOP INVENTORY REPORT\nGenerated: 2026-10-18 14:30:05\n"))
	assert.Contains(t, got, "1. Pen\t10\t1.5\t15.00\t2026-09-01\n")
	assert.Contains(t, got, "2. Notebook, A5\t2\t4.25\t8.50\t2026-09-01\n")
	assert.Contains(t, got, "Total Stock Value\t23.50\t\t\t\n")
	assert.Contains(t, got, "Most Expensive Item\tNotebook, A5\t4.25\t\t\n")
	assert.Contains(t, got, "Lowest Stock\tNotebook, A5\t2\t\t\n")
}

func TestExportText(t *testing.T) {
	got := readExport(t, newTestExporter(t), sampleProducts(), Text)

	assert.Contains(t, got, "SMARTSHOP - INVENTORY MANAGEMENT REPORT\n")
	assert.Contains(t, got, "\n1. Pen\n   Quantity: 10 units\n   Unit Price: $1.50\n   Total Value: $15.00\n   Created: 2026-09-01\n")
	assert.Contains(t, got, "Average Product Value: $11.75\n")
	assert.Contains(t, got, "Most Expensive: Notebook, A5 ($4.25)\n")
	assert.Contains(t, got, "Lowest Stock: Notebook, A5 (2 units)\n")
	assert.True(t, strings.HasSuffix(got, "End of Report\n"+strings.Repeat("=", 80)+"\n"))
}

func TestExportTextEmpty(t *testing.T) {
	got := readExport(t, newTestExporter(t), nil, Text)

	assert.Contains(t, got, "Total Products: 0\n")
	assert.Contains(t, got, "No products in inventory.\n")
	assert.NotContains(t, got, "SUMMARY STATISTICS")
}

func TestExportJSON(t *testing.T) {
	got := readExport(t, newTestExporter(t), sampleProducts(), JSON)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(got), &doc))
	assert.Equal(t, "2026-10-18 14:30:05", doc["exportDate"])
	assert.Equal(t, 2.0, doc["totalProducts"])
	assert.Equal(t, 23.5, doc["totalValue"])

	products := doc["products"].([]interface{})
	require.Len(t, products, 2)
	first := products[0].(map[string]interface{})
	assert.Equal(t, "p1", first["id"])
	assert.Equal(t, "Pen", first["name"])
	assert.Equal(t, 10.0, first["quantity"])
	assert.Equal(t, 1.5, first["price"])
	assert.Equal(t, 15.0, first["totalValue"])
	assert.Equal(t, "2026-09-01", first["createdAt"])

	// money keeps two decimals in the file itself
	assert.Contains(t, got, `"totalValue": 23.50`)
}

func TestExportJSONEmpty(t *testing.T) {
	got := readExport(t, newTestExporter(t), nil, JSON)
	assert.Contains(t, got, `"products": []`)
	assert.Contains(t, got, `"totalValue": 0.00`)
}

func TestExportWorkbook(t *testing.T) {
	e := newTestExporter(t)
	path, err := e.Export(sampleProducts(), Workbook)
	require.NoError(t, err)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	xlsx, err := excelize.OpenReader(f)
	require.NoError(t, err)

	assert.Equal(t, "SMARTSHOP INVENTORY REPORT", xlsx.GetCellValue(inventorySheet, "A1"))
	assert.Equal(t, "Product Name", xlsx.GetCellValue(inventorySheet, "A4"))
	assert.Equal(t, "Pen", xlsx.GetCellValue(inventorySheet, "A5"))
	assert.Equal(t, "10", xlsx.GetCellValue(inventorySheet, "B5"))
	assert.Equal(t, "Notebook, A5", xlsx.GetCellValue(inventorySheet, "A6"))
	assert.Equal(t, "SUMMARY STATISTICS", xlsx.GetCellValue(inventorySheet, "A8"))
	assert.Equal(t, "2", xlsx.GetCellValue(inventorySheet, "B9"))
	assert.Equal(t, "23.5", xlsx.GetCellValue(inventorySheet, "B10"))
}

func TestListAndRemove(t *testing.T) {
	e := newTestExporter(t)

	names, err := e.List()
	require.NoError(t, err)
	assert.Empty(t, names, "a missing directory lists as empty")

	for _, f := range Formats {
		_, err := e.Export(sampleProducts(), f)
		require.NoError(t, err)
	}
	require.NoError(t, os.WriteFile(filepath.Join(e.Dir(), "notes.txt"), []byte("x"), 0o644))

	names, err = e.List()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"SmartShop_Inventory_2026-10-18.xls",
		"SmartShop_Inventory_2026-10-18.xlsx",
		"SmartShop_Products_2026-10-18.csv",
		"SmartShop_Products_2026-10-18.json",
		"SmartShop_Report_2026-10-18.txt",
	}, names)

	removed, err := e.Remove("SmartShop_Report_2026-10-18.txt")
	require.NoError(t, err)
	assert.True(t, removed)

	removed, err = e.Remove("SmartShop_Report_2026-10-18.txt")
	require.NoError(t, err)
	assert.False(t, removed)

	_, err = e.Remove("../notes.txt")
	require.ErrorContains(t, err, "remove export: not an export file")
	_, err = e.Remove("notes.txt")
	require.Error(t, err)

	names, err = e.List()
	require.NoError(t, err)
	assert.Len(t, names, 4)
}

func TestExportUnknownFormat(t *testing.T) {
	_, err := newTestExporter(t).Export(sampleProducts(), Format(42))
	require.ErrorIs(t, err, ErrUnknownFormat)
	assert.True(t, strings.HasPrefix(err.Error(), "export products: "), err.Error())
}

func TestExportExcelKeepsColumnsForControlCharacters(t *testing.T) {
	products := []model.Product{
		{Id: "p1", Name: "Tab\tand\nnewline", Quantity: 1, Price: decimal.NewFromInt(2), CreatedAt: created},
	}
	got := readExport(t, newTestExporter(t), products, Excel)

	r := csv.NewReader(strings.NewReader(got))
	r.Comma = '\t'
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	require.NoError(t, err)

	require.GreaterOrEqual(t, len(records), 4)
	assert.Equal(t, []string{"1. Tab\tand\nnewline", "1", "2", "2.00", "2026-09-01"}, records[3])
}
