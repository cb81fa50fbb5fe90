package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"go-smartshop/internal/model"

	"github.com/gocarina/gocsv"
)

type csvRow struct {
	Name        string `csv:"Product Name"`
	Quantity    int    `csv:"Quantity"`
	UnitPrice   string `csv:"Unit Price"`
	TotalValue  string `csv:"Total Value"`
	CreatedDate string `csv:"Created Date"`
}

func writeCSV(w io.Writer, products []model.Product, _ time.Time) error {
	rows := make([]csvRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, csvRow{
			Name:        p.Name,
			Quantity:    p.Quantity,
			UnitPrice:   p.Price.String(),
			TotalValue:  money(p.TotalValue()),
			CreatedDate: p.CreatedAt.Format(dateLayout),
		})
	}

	if err := gocsv.Marshal(&rows, w); err != nil {
		return err
	}

	if _, err := fmt.Fprint(w, "\n\n"); err != nil {
		return err
	}

	s := Summarize(products)
	summary := [][]string{
		{"SUMMARY"},
		{"Total Products", strconv.Itoa(s.Count)},
		{"Total Stock Value", money(s.TotalValue)},
	}
	if s.Count > 0 {
		summary = append(summary, []string{"Average Product Value", money(s.AverageValue)})
	}

	cw := csv.NewWriter(w)
	return cw.WriteAll(summary)
}
