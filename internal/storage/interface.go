package storage

import (
	"context"
	"errors"
)

var ErrKeyNotFound = errors.New("key not found")

// Well-known store keys. The products and orders collections historically
// lived under two different keys each; both spellings are kept and the
// collection layer reads the legacy alias when the primary key is absent.
const (
	KeyProducts          = "products"
	KeyProductDataLegacy = "product-data"
	KeyOrders            = "orders"
	KeyOrderDataLegacy   = "order-data"
	KeyUser              = "user"
	KeyRememberedEmail   = "rememberedEmail"
	KeyRememberedPass    = "rememberedPassword"
	KeyTheme             = "theme"
)

// Store is a flat key-value store of serialized values. Get returns
// ErrKeyNotFound for an absent key; Put overwrites the whole value, which is
// the only write granularity offered.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}
