package usecase

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/shopscan/backend/internal/domain"
)

// maxConcurrentAdapters bounds how many retailer requests run at once, so a
// large enabled-store set cannot flood the network layer.
const maxConcurrentAdapters = 8

// SearchService fans a query out to every enabled source adapter, merges
// whichever succeed, and sorts by price ascending as the baseline order.
type SearchService struct {
	adapters map[domain.Store]domain.SourceAdapter
}

// NewSearchService creates a search service over the given adapters.
func NewSearchService(adapters []domain.SourceAdapter) *SearchService {
	byStore := make(map[domain.Store]domain.SourceAdapter, len(adapters))
	for _, adapter := range adapters {
		byStore[adapter.Store()] = adapter
	}
	return &SearchService{adapters: byStore}
}

// SearchProducts queries all enabled adapters concurrently and returns the
// merged result sorted by price ascending. Adapter calls are isolated: a
// failing or slow source contributes zero items without affecting the
// others. All-sources-empty is a valid outcome and yields an empty list,
// never an error.
func (s *SearchService) SearchProducts(ctx context.Context, query string, stores domain.StoreSelection) []domain.Product {
	if strings.TrimSpace(query) == "" {
		return []domain.Product{}
	}

	var selected []domain.SourceAdapter
	for _, store := range stores.Enabled() {
		if adapter, ok := s.adapters[store]; ok {
			selected = append(selected, adapter)
		}
	}
	if len(selected) == 0 {
		return []domain.Product{}
	}

	// One result slot per adapter keeps the merge in adapter-iteration
	// order rather than arrival order, so ties on price break the same way
	// on every run.
	results := make([][]domain.Product, len(selected))

	sem := semaphore.NewWeighted(maxConcurrentAdapters)
	var wg sync.WaitGroup
	for i, adapter := range selected {
		wg.Add(1)
		go func(index int, current domain.SourceAdapter) {
			defer wg.Done()
			if err := sem.Acquire(ctx, 1); err != nil {
				log.Printf("[SEARCH] %s skipped: %v", current.Store().Tag(), err)
				return
			}
			defer sem.Release(1)
			results[index] = current.Search(ctx, query)
		}(i, adapter)
	}
	wg.Wait()

	merged := make([]domain.Product, 0)
	for _, items := range results {
		merged = append(merged, items...)
	}

	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].Price < merged[j].Price
	})

	return merged
}
