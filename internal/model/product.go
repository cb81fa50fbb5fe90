package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is the domain view of an inventory item.
type Product struct {
	Id        string
	Name      string
	Quantity  int
	Price     decimal.Decimal
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (p Product) TotalValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}

func (p Product) ToEntity() ProductEntity {
	return ProductEntity{Product: p}
}

// ProductEntity is the record kept by the local store.
type ProductEntity struct {
	Product
	SyncedWithCloud bool
}

func (e ProductEntity) ToDomain() Product {
	return e.Product
}

func (e ProductEntity) ToDoc() ProductDoc {
	return ProductDoc{
		Id:        e.Id,
		Name:      e.Name,
		Quantity:  e.Quantity,
		Price:     e.Price.InexactFloat64(),
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

// ProductDoc is the cloud document written under users/{userId}/products/{id}.
// Every push overwrites the whole document.
type ProductDoc struct {
	Id        string    `firestore:"id"`
	Name      string    `firestore:"name"`
	Quantity  int       `firestore:"quantity"`
	Price     float64   `firestore:"price"`
	CreatedAt time.Time `firestore:"createdAt"`
	UpdatedAt time.Time `firestore:"updatedAt"`
}

func (d ProductDoc) ToDomain() Product {
	return Product{
		Id:        d.Id,
		Name:      d.Name,
		Quantity:  d.Quantity,
		Price:     decimal.NewFromFloat(d.Price),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}
