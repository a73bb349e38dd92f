package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/shopscan/backend/internal/domain"
)

// placeholderPrices are the fixed per-store prices used when every real
// lookup path for a scanned barcode comes up empty.
var placeholderPrices = map[domain.Store]float64{
	domain.StoreWalmart:  9.97,
	domain.StoreTarget:   10.49,
	domain.StoreSamsClub: 11.48,
	domain.StoreCostco:   12.99,
}

const placeholderThumbnail = "https://placehold.co/150x150?text=Scanned+Item"

// BarcodeServiceConfig holds configuration for the barcode service
type BarcodeServiceConfig struct {
	CacheTTL time.Duration
}

// BarcodeService resolves a scanned barcode to products through an ordered
// fallback chain: external metadata lookup, search by resolved name, search
// by resolved brand, search by the raw digits, and finally placeholder
// synthesis. Each stage runs only if the prior one yielded nothing, so the
// chain always terminates with a non-empty, non-failing result.
type BarcodeService struct {
	lookup   domain.BarcodeLookupClient
	searcher domain.ProductSearcher
	cache    domain.CacheRepository
	cacheTTL time.Duration
}

// NewBarcodeService creates a barcode service with dependencies. The cache
// is optional; when present it short-circuits repeat metadata lookups.
func NewBarcodeService(
	lookup domain.BarcodeLookupClient,
	searcher domain.ProductSearcher,
	cache domain.CacheRepository,
	config BarcodeServiceConfig,
) *BarcodeService {
	cacheTTL := config.CacheTTL
	if cacheTTL == 0 {
		cacheTTL = 24 * time.Hour
	}
	return &BarcodeService{
		lookup:   lookup,
		searcher: searcher,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// resolutionStage is one attempt in the ordered barcode-to-product fallback
// sequence. The chain stops at the first stage returning a non-empty list.
type resolutionStage struct {
	name string
	run  func(ctx context.Context) []domain.Product
}

// GetProductByBarcode walks the fallback chain for a scanned barcode.
// Stage order is fixed: resolved name, resolved brand, raw digits,
// synthesized placeholders — each stage strictly more degraded than the
// last. Never returns an error; degraded dependencies mean fewer real
// results, worst case the placeholder set.
func (s *BarcodeService) GetProductByBarcode(ctx context.Context, barcode string, stores domain.StoreSelection) []domain.Product {
	if strings.TrimSpace(barcode) == "" {
		log.Printf("[BARCODE] empty barcode input")
		return []domain.Product{}
	}

	cleaned := CleanBarcode(barcode)
	if cleaned == "" {
		log.Printf("[BARCODE] no digits in input %q", barcode)
		return []domain.Product{}
	}

	meta := s.resolveMetadata(ctx, cleaned)

	var stages []resolutionStage
	if meta != nil && meta.Name != "" {
		name := meta.Name
		stages = append(stages, resolutionStage{
			name: "resolved-name",
			run: func(ctx context.Context) []domain.Product {
				return s.searcher.SearchProducts(ctx, name, stores)
			},
		})
		if meta.Brand != "" {
			brand := meta.Brand
			stages = append(stages, resolutionStage{
				name: "resolved-brand",
				run: func(ctx context.Context) []domain.Product {
					return s.searcher.SearchProducts(ctx, brand, stores)
				},
			})
		}
	}
	stages = append(stages, resolutionStage{
		name: "raw-barcode",
		run: func(ctx context.Context) []domain.Product {
			return s.searcher.SearchProducts(ctx, cleaned, stores)
		},
	})

	for _, stage := range stages {
		if products := stage.run(ctx); len(products) > 0 {
			log.Printf("[BARCODE] %s resolved via %s stage (%d results)", cleaned, stage.name, len(products))
			return products
		}
	}

	log.Printf("[BARCODE] %s unresolved, synthesizing placeholders", cleaned)
	return s.placeholders(cleaned, stores)
}

// resolveMetadata asks the external lookup service (through the cache) what
// this barcode is. Returns nil when the service fails or knows nothing;
// the chain then falls through to the raw-digits stage.
func (s *BarcodeService) resolveMetadata(ctx context.Context, cleaned string) *domain.BarcodeMetadata {
	cacheKey := "barcode:" + cleaned

	if s.cache != nil {
		if value, err := s.cache.Get(ctx, cacheKey); err == nil {
			if meta := asBarcodeMetadata(value); meta != nil {
				return meta
			}
		}
	}

	meta, err := s.lookup.Lookup(ctx, cleaned)
	if err != nil {
		if !errors.Is(err, domain.ErrBarcodeNotFound) {
			log.Printf("[BARCODE] lookup failed for %s: %v", cleaned, err)
		}
		return nil
	}
	if meta == nil || (meta.Name == "" && meta.Brand == "") {
		return nil
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, meta, s.cacheTTL); err != nil {
			log.Printf("[BARCODE] cache store failed for %s: %v", cleaned, err)
		}
	}

	return meta
}

// placeholders synthesizes one product per enabled store so a scan always
// renders something, even with every external dependency down. Sorted by
// the fixed placeholder prices ascending.
func (s *BarcodeService) placeholders(cleaned string, stores domain.StoreSelection) []domain.Product {
	name := fmt.Sprintf("Scanned Item (Barcode: %s)", cleaned)

	products := make([]domain.Product, 0, len(stores.Enabled()))
	for _, store := range stores.Enabled() {
		products = append(products, domain.Product{
			ID:        domain.NewProductID(store),
			Name:      name,
			Brand:     string(store),
			Price:     placeholderPrices[store],
			Thumbnail: placeholderThumbnail,
			Store:     store,
			URL:       fmt.Sprintf("https://www.%s.com", store.Tag()),
		})
	}

	sort.SliceStable(products, func(i, j int) bool {
		return products[i].Price < products[j].Price
	})

	return products
}

// asBarcodeMetadata recovers metadata from a cache value, which may come
// back as the original struct or as a generic map after a JSON round trip.
func asBarcodeMetadata(value interface{}) *domain.BarcodeMetadata {
	switch v := value.(type) {
	case *domain.BarcodeMetadata:
		return v
	case domain.BarcodeMetadata:
		return &v
	case map[string]interface{}:
		meta := &domain.BarcodeMetadata{}
		if name, ok := v["name"].(string); ok {
			meta.Name = name
		}
		if brand, ok := v["brand"].(string); ok {
			meta.Brand = brand
		}
		if meta.Name == "" && meta.Brand == "" {
			return nil
		}
		return meta
	}
	return nil
}
