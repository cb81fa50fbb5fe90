package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go-smartshop/internal/model"
)

// writeExcel writes the tab separated inventory sheet spreadsheet apps open as .xls.
// Fields holding tabs, newlines or quotes are quoted.
func writeExcel(w io.Writer, products []model.Product, now time.Time) error {
	tw := csv.NewWriter(w)
	tw.Comma = '\t'

	records := [][]string{
		{"SMARTSHOP INVENTORY REPORT"},
		{"Generated: " + now.Format(dateTimeLayout)},
		{""},
		{""},
		{"Product Name", "Quantity", "Unit Price", "Total Value", "Created Date"},
	}

	for i, p := range products {
		records = append(records, []string{
			fmt.Sprintf("%d. %s", i+1, p.Name),
			strconv.Itoa(p.Quantity),
			p.Price.String(),
			money(p.TotalValue()),
			p.CreatedAt.Format(dateLayout),
		})
	}

	s := Summarize(products)
	records = append(records,
		[]string{""},
		[]string{""},
		[]string{"SUMMARY STATISTICS", "", "", "", ""},
		[]string{"Total Products", strconv.Itoa(s.Count), "", "", ""},
		[]string{"Total Stock Value", money(s.TotalValue), "", "", ""},
	)
	if s.Count > 0 {
		records = append(records,
			[]string{"Average Product Value", money(s.AverageValue), "", "", ""},
			[]string{"Most Expensive Item", s.MostExpensive.Name, s.MostExpensive.Price.String(), "", ""},
			[]string{"Lowest Stock", s.LowestStock.Name, strconv.Itoa(s.LowestStock.Quantity), "", ""},
		)
	}

	return tw.WriteAll(records)
}
