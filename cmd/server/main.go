package main

import (
	"fmt"
	"log"
	"os"

	"github.com/shopscan/backend/config"
	httpDelivery "github.com/shopscan/backend/internal/delivery/http"
	"github.com/shopscan/backend/internal/domain"
	"github.com/shopscan/backend/internal/infrastructure/barcode"
	"github.com/shopscan/backend/internal/infrastructure/cache"
	"github.com/shopscan/backend/internal/infrastructure/retailer"
	"github.com/shopscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ShopScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Initialize infrastructure dependencies
	adapters, err := buildAdapters(cfg)
	if err != nil {
		log.Fatalf("Failed to configure retailers: %v", err)
	}
	for _, a := range adapters {
		log.Printf("Retailer enabled: %s", a.Store().Tag())
	}

	lookupClient := barcode.NewClient(cfg.Barcode.LookupURL, cfg.Barcode.Timeout)
	log.Printf("Barcode lookup configured: %s", cfg.Barcode.LookupURL)

	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize usecase layer
	searchService := usecase.NewSearchService(adapters)
	barcodeService := usecase.NewBarcodeService(
		lookupClient,
		searchService,
		memoryCache,
		usecase.BarcodeServiceConfig{CacheTTL: cfg.Cache.TTL},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(searchService, barcodeService)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// buildAdapters constructs one source adapter per enabled retailer.
func buildAdapters(cfg *config.Config) ([]domain.SourceAdapter, error) {
	entries := []struct {
		store domain.Store
		cfg   config.RetailerConfig
	}{
		{domain.StoreWalmart, cfg.Retailers.Walmart},
		{domain.StoreTarget, cfg.Retailers.Target},
		{domain.StoreCostco, cfg.Retailers.Costco},
		{domain.StoreSamsClub, cfg.Retailers.SamsClub},
	}

	var adapters []domain.SourceAdapter
	for _, entry := range entries {
		if !entry.cfg.Enabled {
			continue
		}
		adapter, err := retailer.New(entry.store, entry.cfg.BaseURL, cfg.Retailers.Timeout)
		if err != nil {
			return nil, err
		}
		adapters = append(adapters, adapter)
	}
	return adapters, nil
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
