package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopscan/backend/internal/domain"
	"github.com/shopscan/backend/internal/usecase"
)

// Handler holds dependencies for HTTP handlers
type Handler struct {
	searchService  *usecase.SearchService
	barcodeService *usecase.BarcodeService
}

// NewHandler creates a new HTTP handler
func NewHandler(searchService *usecase.SearchService, barcodeService *usecase.BarcodeService) *Handler {
	return &Handler{
		searchService:  searchService,
		barcodeService: barcodeService,
	}
}

// HealthCheck returns the health status of the API
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "shopscan-backend",
		"version": "1.0.0",
	})
}

// searchRequest is the body of POST /api/v1/search. Stores are keyed by
// tag ("walmart", "samsclub", ...); an absent map enables every store.
type searchRequest struct {
	Query  string          `json:"query" binding:"required"`
	Stores map[string]bool `json:"stores"`
	Filter string          `json:"filter"`
	Sort   string          `json:"sort"`
}

// productView is a Product plus the presentation-time unknown-price flag;
// price 0 means "visit store for price", not free.
type productView struct {
	domain.Product
	PriceUnknown bool `json:"priceUnknown,omitempty"`
}

// Search runs the full pipeline: classify the query as barcode or text,
// fetch from the enabled stores, score against the query, then filter and
// sort for display. Degraded upstream dependencies yield fewer results,
// never an error response.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "query is required"})
		return
	}

	stores := parseStores(req.Stores)
	filter := parseFilter(req.Filter)
	sortMode := parseSort(req.Sort)

	ctx := c.Request.Context()

	var products []domain.Product
	if usecase.IsBarcode(req.Query) {
		products = h.barcodeService.GetProductByBarcode(ctx, req.Query, stores)
	} else {
		products = h.searchService.SearchProducts(ctx, req.Query, stores)
		products = usecase.ScoreProducts(products, req.Query)
	}

	products = usecase.Present(products, filter, sortMode)

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, productView{
			Product:      p,
			PriceUnknown: p.Price == 0,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"query":    req.Query,
		"count":    len(views),
		"products": views,
	})
}

// parseStores converts tag-keyed flags into a StoreSelection. Unknown keys
// are ignored; a nil or empty map means all stores enabled.
func parseStores(flags map[string]bool) domain.StoreSelection {
	if len(flags) == 0 {
		return domain.DefaultStoreSelection()
	}
	selection := make(domain.StoreSelection, len(flags))
	for key, enabled := range flags {
		if store, ok := domain.ParseStore(key); ok {
			selection[store] = enabled
		}
	}
	if len(selection) == 0 {
		return domain.DefaultStoreSelection()
	}
	return selection
}

func parseFilter(raw string) domain.StoreFilter {
	if raw == "" || raw == string(domain.FilterAll) {
		return domain.FilterAll
	}
	if store, ok := domain.ParseStore(raw); ok {
		return domain.StoreFilter(store)
	}
	return domain.FilterAll
}

func parseSort(raw string) domain.SortMode {
	switch domain.SortMode(raw) {
	case domain.SortRelevance, domain.SortPriceAsc, domain.SortPriceDesc, domain.SortNameAsc, domain.SortNameDesc:
		return domain.SortMode(raw)
	}
	return domain.SortPriceAsc
}
