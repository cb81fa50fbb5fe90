package export

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"go-smartshop/internal/model"
)

var (
	heavyRule = strings.Repeat("=", 80)
	lightRule = strings.Repeat("-", 80)
)

func writeText(w io.Writer, products []model.Product, now time.Time) error {
	bw := bufio.NewWriter(w)
	s := Summarize(products)

	fmt.Fprintln(bw, heavyRule)
	fmt.Fprintln(bw, "SMARTSHOP - INVENTORY MANAGEMENT REPORT")
	fmt.Fprintln(bw, heavyRule)
	fmt.Fprintf(bw, "Generated: %s\n", now.Format(dateTimeLayout))
	fmt.Fprintf(bw, "Total Products: %d\n", s.Count)
	fmt.Fprintln(bw, heavyRule)
	fmt.Fprintln(bw)

	if s.Count == 0 {
		fmt.Fprintln(bw, "No products in inventory.")
	} else {
		fmt.Fprintln(bw, "PRODUCT DETAILS:")
		fmt.Fprintln(bw, lightRule)

		for i, p := range products {
			fmt.Fprintf(bw, "\n%d. %s\n", i+1, p.Name)
			fmt.Fprintf(bw, "   Quantity: %d units\n", p.Quantity)
			fmt.Fprintf(bw, "   Unit Price: $%s\n", money(p.Price))
			fmt.Fprintf(bw, "   Total Value: $%s\n", money(p.TotalValue()))
			fmt.Fprintf(bw, "   Created: %s\n", p.CreatedAt.Format(dateLayout))
		}

		fmt.Fprintf(bw, "\n%s\n", lightRule)
		fmt.Fprintln(bw, "SUMMARY STATISTICS:")
		fmt.Fprintln(bw, lightRule)
		fmt.Fprintf(bw, "Total Products: %d\n", s.Count)
		fmt.Fprintf(bw, "Total Stock Value: $%s\n", money(s.TotalValue))
		fmt.Fprintf(bw, "Average Product Value: $%s\n", money(s.AverageValue))
		fmt.Fprintf(bw, "Most Expensive: %s ($%s)\n", s.MostExpensive.Name, s.MostExpensive.Price.String())
		fmt.Fprintf(bw, "Lowest Stock: %s (%d units)\n", s.LowestStock.Name, s.LowestStock.Quantity)
	}

	fmt.Fprintf(bw, "\n%s\n", heavyRule)
	fmt.Fprintln(bw, "End of Report")
	fmt.Fprintln(bw, heavyRule)

	return bw.Flush()
}
