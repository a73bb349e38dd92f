package usecase

import (
	"strings"

	"github.com/shopscan/backend/internal/domain"
)

// Keyword match weights. An exact space-delimited token match in the
// name+brand text counts much more than a bare substring hit.
const (
	exactMatchPoints     = 3
	substringMatchPoints = 1
)

// ScoreProducts computes a relevance score for each product against the given
// keyword string and returns a new list with RelevanceScore set. The input
// list is never mutated, and scores are recomputed from scratch on every
// pass. An empty keyword string leaves the copies unchanged.
//
// Scoring: keywords are lowercased and split on whitespace. For each token,
// a product earns 3 points when the token appears space-delimited inside
// "name brand", 1 point when it merely appears as a substring, and 0
// otherwise. The score is the sum over all tokens, uncapped. Deterministic
// and pure.
func ScoreProducts(products []domain.Product, keywords string) []domain.Product {
	scored := make([]domain.Product, len(products))
	copy(scored, products)

	tokens := strings.Fields(strings.ToLower(keywords))
	if len(tokens) == 0 {
		return scored
	}

	for i := range scored {
		haystack := strings.ToLower(scored[i].Name + " " + scored[i].Brand)

		score := 0
		for _, token := range tokens {
			switch {
			case strings.Contains(haystack, " "+token+" "):
				score += exactMatchPoints
			case strings.Contains(haystack, token):
				score += substringMatchPoints
			}
		}
		scored[i].RelevanceScore = score
	}

	return scored
}
