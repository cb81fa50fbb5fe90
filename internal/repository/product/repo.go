package product

import (
	"context"
	"fmt"
	"sync"
	"time"

	ierr "go-smartshop/internal/errors"
	"go-smartshop/internal/eventpublisher"
	"go-smartshop/internal/eventpublisher/event"
	"go-smartshop/internal/model"
	"go-smartshop/internal/repository/helper"
	"go-smartshop/internal/store"
	"go-smartshop/internal/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ProductRepository writes to the local store first and mirrors afterwards.
// Reads never leave the local store.
type ProductRepository struct {
	store    *store.Store
	mirror   Mirror
	notifier eventpublisher.Notifier
	now      func() time.Time
	inflight *sync.WaitGroup
}

var _ IRepository = ProductRepository{}

func New(store *store.Store, mirror Mirror, notifier eventpublisher.Notifier) ProductRepository {
	return ProductRepository{
		store:    store,
		mirror:   mirror,
		notifier: notifier,
		now:      func() time.Time { return time.Now().UTC() },
		inflight: &sync.WaitGroup{},
	}
}

// AddProduct stores the product as unsynced and starts a mirror push in the
// background. The push outcome never reaches the caller.
func (r ProductRepository) AddProduct(ctx context.Context, product model.Product) error {
	if product.Id == "" {
		product.Id = uuid.NewString()
	}
	now := r.now()
	if product.CreatedAt.IsZero() {
		product.CreatedAt = now
	}
	if product.UpdatedAt.IsZero() {
		product.UpdatedAt = product.CreatedAt
	}

	entity := product.ToEntity()
	entity.SyncedWithCloud = false
	r.store.Insert(entity)

	r.emit(event.ProductAdded, entity.ToDomain())
	r.push(ctx, entity)
	return nil
}

// UpdateProduct refreshes updatedAt, resets the sync flag and pushes again.
// createdAt is kept from the stored record.
func (r ProductRepository) UpdateProduct(ctx context.Context, product model.Product) error {
	current, ok := r.store.GetById(product.Id)
	if !ok {
		return fmt.Errorf("update product: %w, id: %s", ierr.NotFound, product.Id)
	}

	product.CreatedAt = current.CreatedAt
	product.UpdatedAt = r.now()
	if !product.UpdatedAt.After(current.UpdatedAt) {
		// keep versions strictly increasing so an older push cannot mark this one synced
		product.UpdatedAt = current.UpdatedAt.Add(time.Nanosecond)
	}

	entity := product.ToEntity()
	entity.SyncedWithCloud = false
	if !r.store.Update(entity) {
		return fmt.Errorf("update product: %w, id: %s", ierr.NotFound, product.Id)
	}

	r.emit(event.ProductUpdated, entity.ToDomain())
	r.push(ctx, entity)
	return nil
}

// DeleteProduct removes the local record, then waits for the remote delete,
// which runs after any push of the same product still in flight.
// A remote failure is returned even though the local record is already gone.
func (r ProductRepository) DeleteProduct(ctx context.Context, id string) error {
	if r.store.DeleteById(id) {
		r.emit(event.ProductDeleted, id)
	}

	if err := r.mirror.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete product: %w, id: %s", err, id)
	}
	return nil
}

func (r ProductRepository) GetProductById(_ context.Context, id string) (*model.Product, error) {
	entity, ok := r.store.GetById(id)
	if !ok {
		return nil, ierr.NotFound
	}
	product := entity.ToDomain()
	return &product, nil
}

func (r ProductRepository) GetAllProducts(ctx context.Context) <-chan []model.Product {
	return utils.MapLatest(r.store.Watch(ctx), helper.ToDomain)
}

func (r ProductRepository) SearchProducts(ctx context.Context, query string) <-chan []model.Product {
	match := helper.NameMatcher(query)
	return utils.MapLatest(r.store.Watch(ctx), func(entities []model.ProductEntity) []model.Product {
		return helper.ToDomain(helper.Filter(entities, match))
	})
}

func (r ProductRepository) GetProductCount(ctx context.Context) <-chan int {
	return r.store.Count(ctx)
}

func (r ProductRepository) GetTotalStockValue(ctx context.Context) <-chan decimal.Decimal {
	return r.store.TotalValue(ctx)
}

func (r ProductRepository) SyncUnsynced(ctx context.Context) error {
	return r.mirror.SyncUnsynced(ctx)
}

// Wait blocks until all background pushes have finished.
func (r ProductRepository) Wait() {
	r.inflight.Wait()
}

// push queues the remote write before returning so writes of one product
// keep the order of the local writes.
func (r ProductRepository) push(ctx context.Context, entity model.ProductEntity) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), pushTimeout)
	done := r.mirror.Schedule(ctx, entity)

	r.inflight.Add(1)
	go func() {
		defer r.inflight.Done()
		defer cancel()
		<-done
	}()
}

func (r ProductRepository) emit(t event.EventType, message interface{}) {
	if r.notifier == nil {
		return
	}
	r.notifier.Emit(event.Event{Type: t, Message: message})
}
