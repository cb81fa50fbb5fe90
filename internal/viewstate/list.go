package viewstate

import (
	"context"
	"strings"

	"go-smartshop/internal/model"
	"go-smartshop/internal/utils"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

type ListState struct {
	Products    []model.Product
	Count       int
	TotalValue  decimal.Decimal
	SearchQuery string
	Loading     bool
	Error       string
}

type ListRepository interface {
	DeleteProduct(ctx context.Context, id string) error
	GetAllProducts(ctx context.Context) <-chan []model.Product
	SearchProducts(ctx context.Context, query string) <-chan []model.Product
	GetProductCount(ctx context.Context) <-chan int
	GetTotalStockValue(ctx context.Context) <-chan decimal.Decimal
}

// List folds the repository streams into a single list view-state. The product
// stream follows the search query: a blank query lists everything.
type List struct {
	repo    ListRepository
	state   *state[ListState]
	queries chan string
}

func NewList(repo ListRepository) *List {
	return &List{
		repo:    repo,
		state:   newState(ListState{Products: []model.Product{}, TotalValue: decimal.Zero}),
		queries: make(chan string, 1),
	}
}

func (l *List) State() ListState {
	return l.state.get()
}

func (l *List) Watch(ctx context.Context) <-chan ListState {
	return l.state.watch(ctx)
}

func (l *List) SetSearchQuery(query string) {
	l.state.update(func(s ListState) ListState {
		s.SearchQuery = query
		return s
	})
	utils.ReplaceLatest(l.queries, query)
}

// Delete removes a product. A remote failure is kept as the list error.
func (l *List) Delete(ctx context.Context, id string) error {
	l.state.update(func(s ListState) ListState {
		s.Loading = true
		s.Error = ""
		return s
	})

	err := l.repo.DeleteProduct(ctx, id)

	l.state.update(func(s ListState) ListState {
		s.Loading = false
		if err != nil {
			s.Error = err.Error()
		}
		return s
	})
	return err
}

// Run keeps the state in sync with the repository until ctx is done.
func (l *List) Run(ctx context.Context) error {
	count := l.repo.GetProductCount(ctx)
	total := l.repo.GetTotalStockValue(ctx)

	productsCtx, cancelProducts := context.WithCancel(ctx)
	products := l.products(productsCtx, l.State().SearchQuery)
	defer func() { cancelProducts() }()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case query := <-l.queries:
			cancelProducts()
			productsCtx, cancelProducts = context.WithCancel(ctx)
			products = l.products(productsCtx, query)
			log.Debug().Msgf("list: search query %q", query)

		case p, ok := <-products:
			if !ok {
				// the previous stream closed after a query switch
				products = nil
				continue
			}
			l.state.update(func(s ListState) ListState {
				s.Products = p
				return s
			})

		case n, ok := <-count:
			if !ok {
				return ctx.Err()
			}
			l.state.update(func(s ListState) ListState {
				s.Count = n
				return s
			})

		case v, ok := <-total:
			if !ok {
				return ctx.Err()
			}
			l.state.update(func(s ListState) ListState {
				s.TotalValue = v
				return s
			})
		}
	}
}

func (l *List) products(ctx context.Context, query string) <-chan []model.Product {
	if strings.TrimSpace(query) == "" {
		return l.repo.GetAllProducts(ctx)
	}
	return l.repo.SearchProducts(ctx, query)
}
