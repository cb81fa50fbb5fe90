package product

import (
	"context"

	"go-smartshop/internal/model"

	"github.com/shopspring/decimal"
)

type IRepository interface {
	AddProduct(ctx context.Context, product model.Product) error
	UpdateProduct(ctx context.Context, product model.Product) error
	DeleteProduct(ctx context.Context, id string) error
	GetProductById(ctx context.Context, id string) (*model.Product, error)
	GetAllProducts(ctx context.Context) <-chan []model.Product
	SearchProducts(ctx context.Context, query string) <-chan []model.Product
	GetProductCount(ctx context.Context) <-chan int
	GetTotalStockValue(ctx context.Context) <-chan decimal.Decimal
	SyncUnsynced(ctx context.Context) error
}

// Mirror is the remote side of the write path. Schedule and Delete for the
// same product must reach the remote in call order.
type Mirror interface {
	Schedule(ctx context.Context, product model.ProductEntity) <-chan struct{}
	Delete(ctx context.Context, id string) error
	SyncUnsynced(ctx context.Context) error
}
