package export

import (
	"io"
	"time"

	"go-smartshop/internal/model"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonProduct struct {
	Id         string          `json:"id"`
	Name       string          `json:"name"`
	Quantity   int             `json:"quantity"`
	Price      jsoniter.Number `json:"price"`
	TotalValue jsoniter.Number `json:"totalValue"`
	CreatedAt  string          `json:"createdAt"`
}

type jsonExport struct {
	ExportDate    string          `json:"exportDate"`
	TotalProducts int             `json:"totalProducts"`
	TotalValue    jsoniter.Number `json:"totalValue"`
	Products      []jsonProduct   `json:"products"`
}

func writeJSON(w io.Writer, products []model.Product, now time.Time) error {
	doc := jsonExport{
		ExportDate:    now.Format(dateTimeLayout),
		TotalProducts: len(products),
		TotalValue:    jsoniter.Number(money(Summarize(products).TotalValue)),
		Products:      make([]jsonProduct, 0, len(products)),
	}
	for _, p := range products {
		doc.Products = append(doc.Products, jsonProduct{
			Id:         p.Id,
			Name:       p.Name,
			Quantity:   p.Quantity,
			Price:      jsoniter.Number(p.Price.String()),
			TotalValue: jsoniter.Number(money(p.TotalValue())),
			CreatedAt:  p.CreatedAt.Format(dateLayout),
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
