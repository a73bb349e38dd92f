package usecase

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/shopscan/backend/internal/domain"
)

// Present applies a store filter and a sort mode to a product list and
// returns the displayed subset. It is a pure function of its three inputs:
// the input list is never mutated, so callers can re-present the same fetch
// under different filters without re-fetching, and repeated calls with the
// same arguments yield identical output.
//
// Sort tie-breaks: relevance falls back to price ascending; the price and
// name modes rely on sort stability, preserving the prior order for equal
// keys. Name comparison is locale-aware.
func Present(products []domain.Product, filter domain.StoreFilter, mode domain.SortMode) []domain.Product {
	presented := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if filter != domain.FilterAll && p.Store != domain.Store(filter) {
			continue
		}
		presented = append(presented, p)
	}

	switch mode {
	case domain.SortRelevance:
		sort.SliceStable(presented, func(i, j int) bool {
			if presented[i].RelevanceScore != presented[j].RelevanceScore {
				return presented[i].RelevanceScore > presented[j].RelevanceScore
			}
			return presented[i].Price < presented[j].Price
		})
	case domain.SortPriceDesc:
		sort.SliceStable(presented, func(i, j int) bool {
			return presented[i].Price > presented[j].Price
		})
	case domain.SortNameAsc:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(presented, func(i, j int) bool {
			return collator.CompareString(presented[i].Name, presented[j].Name) < 0
		})
	case domain.SortNameDesc:
		collator := collate.New(language.English, collate.IgnoreCase)
		sort.SliceStable(presented, func(i, j int) bool {
			return collator.CompareString(presented[i].Name, presented[j].Name) > 0
		})
	default:
		// price-asc, also the fallback for unknown modes
		sort.SliceStable(presented, func(i, j int) bool {
			return presented[i].Price < presented[j].Price
		})
	}

	return presented
}
