package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Store identifies a single retailer whose catalog is queried.
type Store string

const (
	StoreWalmart  Store = "Walmart"
	StoreTarget   Store = "Target"
	StoreCostco   Store = "Costco"
	StoreSamsClub Store = "Sam's Club"
)

// AllStores returns every known store in a fixed order. This order is the
// adapter-iteration order used when merging results, so output stays
// reproducible regardless of which network call finishes first.
func AllStores() []Store {
	return []Store{StoreWalmart, StoreTarget, StoreCostco, StoreSamsClub}
}

// Tag returns the short lowercase identifier for a store, used in synthesized
// product IDs, fallback URLs, and JSON store-selection keys.
func (s Store) Tag() string {
	switch s {
	case StoreWalmart:
		return "walmart"
	case StoreTarget:
		return "target"
	case StoreCostco:
		return "costco"
	case StoreSamsClub:
		return "samsclub"
	}
	return strings.ToLower(string(s))
}

// ParseStore resolves a store from a loose identifier such as "walmart",
// "samsClub", "sams_club", or the display name itself.
func ParseStore(key string) (Store, bool) {
	normalized := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, key)

	for _, store := range AllStores() {
		if normalized == store.Tag() {
			return store, true
		}
	}
	return "", false
}

// StoreSelection maps each store to an enabled flag. It is read-only for the
// duration of one search call; a nil selection means all stores are enabled.
type StoreSelection map[Store]bool

// DefaultStoreSelection returns a selection with every known store enabled.
func DefaultStoreSelection() StoreSelection {
	selection := make(StoreSelection, len(AllStores()))
	for _, store := range AllStores() {
		selection[store] = true
	}
	return selection
}

// Enabled returns the enabled stores in AllStores order.
func (s StoreSelection) Enabled() []Store {
	var enabled []Store
	for _, store := range AllStores() {
		if s == nil || s[store] {
			enabled = append(enabled, store)
		}
	}
	return enabled
}

// Product is the canonical normalized product shape shared by every source
// adapter. Adapters perform total normalization: every required field is
// populated before a Product leaves the infrastructure layer.
type Product struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Brand          string  `json:"brand"`
	Price          float64 `json:"price"` // 0 means "price unknown", not free
	Thumbnail      string  `json:"thumbnail"`
	Store          Store   `json:"store"`
	URL            string  `json:"url"`
	RelevanceScore int     `json:"relevanceScore,omitempty"`
	Selected       bool    `json:"selected,omitempty"`
	Quantity       int     `json:"quantity,omitempty"`
}

// NewProductID synthesizes a product ID unique across concurrent requests,
// used when the upstream source omits its own identifier.
func NewProductID(store Store) string {
	return fmt.Sprintf("%s-%d-%s", store.Tag(), time.Now().UnixMilli(), uuid.NewString()[:8])
}

// BarcodeMetadata is what the external barcode lookup service resolves a
// scanned barcode to.
type BarcodeMetadata struct {
	Name  string `json:"name"`
	Brand string `json:"brand"`
}

// StoreFilter selects which store's products to present. FilterAll passes
// everything; any other value is matched exactly against Product.Store.
type StoreFilter string

// FilterAll passes every product through the store filter.
const FilterAll StoreFilter = "all"

// SortMode selects the presentation order of a result list.
type SortMode string

const (
	SortRelevance SortMode = "relevance"
	SortPriceAsc  SortMode = "price-asc"
	SortPriceDesc SortMode = "price-desc"
	SortNameAsc   SortMode = "name-asc"
	SortNameDesc  SortMode = "name-desc"
)
