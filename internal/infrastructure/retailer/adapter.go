package retailer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/shopscan/backend/internal/domain"
)

// defaultTimeout bounds a single retailer call so one hanging source cannot
// block the aggregate result.
const defaultTimeout = 8 * time.Second

// Adapter queries one retailer's search endpoint and normalizes its response
// into canonical products. All retailers share the same request shape
// (GET <endpoint>?query=<text>) but differ in endpoint and response fields,
// so one parameterized adapter serves every store.
type Adapter struct {
	store      domain.Store
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
}

// New creates an adapter for one store. An empty baseURL is a configuration
// error surfaced at construction, not at query time.
func New(store domain.Store, baseURL string, timeout time.Duration) (*Adapter, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("retailer %s: base URL is required", store.Tag())
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Adapter{
		store:      store,
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}, nil
}

// Store returns the retailer this adapter queries.
func (a *Adapter) Store() domain.Store {
	return a.store
}

// Search queries the retailer and returns normalized products. Any failure —
// network error, timeout, non-2xx status, unparseable body — degrades to an
// empty list with a diagnostic log entry; it never surfaces as an error to
// the aggregator.
func (a *Adapter) Search(ctx context.Context, query string) []domain.Product {
	products, err := a.doSearch(ctx, query)
	if err != nil {
		log.Printf("[%s] search failed for %q: %v", a.store.Tag(), query, err)
		return []domain.Product{}
	}
	return products
}

func (a *Adapter) doSearch(ctx context.Context, query string) ([]domain.Product, error) {
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	params := url.Values{}
	params.Add("query", query)
	reqURL := fmt.Sprintf("%s?%s", a.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopScan/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: status %d", domain.ErrSourceFailure, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSourceFailure, err)
	}

	items, err := extractItems(body)
	if err != nil {
		return nil, err
	}

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		products = append(products, mapItem(a.store, item))
	}
	return products, nil
}

// extractItems parses a response body expected to be a bare array, falling
// back through the known wrapped shapes ({results: [...]}, {items: [...]})
// before giving up.
func extractItems(body []byte) ([]rawItem, error) {
	var items []rawItem
	if err := json.Unmarshal(body, &items); err == nil {
		return items, nil
	}

	var wrapped struct {
		Results []rawItem `json:"results"`
		Items   []rawItem `json:"items"`
	}
	if err := json.Unmarshal(body, &wrapped); err == nil {
		if wrapped.Results != nil {
			return wrapped.Results, nil
		}
		if wrapped.Items != nil {
			return wrapped.Items, nil
		}
	}

	return nil, domain.ErrUnexpectedShape
}
