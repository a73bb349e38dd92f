package domain

import (
	"context"
	"time"
)

// SourceAdapter translates a query into one retailer's request and normalizes
// the response. A failing source returns an empty list, never an error, so
// one broken retailer can never fail the whole search.
type SourceAdapter interface {
	Store() Store
	Search(ctx context.Context, query string) []Product
}

// BarcodeLookupClient defines the interface to the external barcode metadata
// service that resolves a cleaned barcode to a product name and brand.
type BarcodeLookupClient interface {
	Lookup(ctx context.Context, barcode string) (*BarcodeMetadata, error)
}

// ProductSearcher is the aggregation seam the barcode resolution chain
// re-enters with resolved names, brands, and raw barcode digits.
type ProductSearcher interface {
	SearchProducts(ctx context.Context, query string, stores StoreSelection) []Product
}

// CacheRepository defines the interface for caching operations
type CacheRepository interface {
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
