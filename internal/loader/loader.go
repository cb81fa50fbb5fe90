package loader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"go-smartshop/internal/viewstate"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Item is one product of an import file. Numbers stay textual so the form
// parses them exactly like typed input.
type Item struct {
	Name     string          `json:"name"`
	Quantity jsoniter.Number `json:"quantity"`
	Price    jsoniter.Number `json:"price"`
}

type Rejection struct {
	Index  int
	Name   string
	Reason string
}

type Result struct {
	Added    int
	Rejected []Rejection
}

// Decode reads a JSON array of items.
func Decode(r io.Reader) ([]Item, error) {
	items := []Item{}
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode products: %w", err)
	}
	return items, nil
}

// Load submits every item through a fresh product form. Items failing
// validation are reported and skipped; any other error aborts the import.
func Load(ctx context.Context, items []Item, repo viewstate.FormRepository) (Result, error) {
	result := Result{Rejected: []Rejection{}}
	form := viewstate.NewForm(repo)

	for i, item := range items {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		form.StartNew()
		form.SetName(item.Name)
		form.SetQuantity(item.Quantity.String())
		form.SetPrice(item.Price.String())

		err := form.Submit(ctx)
		var vErr *viewstate.ValidationError
		switch {
		case err == nil:
			result.Added++
		case errors.As(err, &vErr):
			log.Warn().Msgf("loader: skipping item %d (%q): %s", i, item.Name, vErr.Message)
			result.Rejected = append(result.Rejected, Rejection{Index: i, Name: item.Name, Reason: vErr.Message})
		default:
			return result, fmt.Errorf("load item %d: %w", i, err)
		}
	}

	return result, nil
}
