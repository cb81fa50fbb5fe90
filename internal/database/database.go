package database

import (
	"context"
)

// Client addresses documents by their slash separated path,
// e.g. "users/{userId}/products/{productId}".
type Client interface {
	GetDoc(ctx context.Context, path string, v interface{}) error
	SetDoc(ctx context.Context, path string, data interface{}) error
	DeleteDoc(ctx context.Context, path string) error
}
