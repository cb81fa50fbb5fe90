package export

import (
	"go-smartshop/internal/model"

	"github.com/shopspring/decimal"
)

// Summary is the statistics block appended to every export.
type Summary struct {
	Count         int
	TotalValue    decimal.Decimal
	AverageValue  decimal.Decimal
	MostExpensive *model.Product
	LowestStock   *model.Product
}

// Summarize computes the export statistics. On ties the earliest product wins.
func Summarize(products []model.Product) Summary {
	s := Summary{Count: len(products), TotalValue: decimal.Zero, AverageValue: decimal.Zero}
	if len(products) == 0 {
		return s
	}

	for i := range products {
		p := &products[i]
		s.TotalValue = s.TotalValue.Add(p.TotalValue())
		if s.MostExpensive == nil || p.Price.GreaterThan(s.MostExpensive.Price) {
			s.MostExpensive = p
		}
		if s.LowestStock == nil || p.Quantity < s.LowestStock.Quantity {
			s.LowestStock = p
		}
	}
	s.AverageValue = s.TotalValue.Div(decimal.NewFromInt(int64(len(products))))
	return s
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
