package usecase

import (
	"context"
	"reflect"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopscan/backend/internal/domain"
)

// stubAdapter is a SourceAdapter returning canned products, optionally after
// a delay, or simulating a dead source with an empty list.
type stubAdapter struct {
	store    domain.Store
	products []domain.Product
	delay    time.Duration
	calls    atomic.Int32
}

func (a *stubAdapter) Store() domain.Store { return a.store }

func (a *stubAdapter) Search(ctx context.Context, query string) []domain.Product {
	a.calls.Add(1)
	if a.delay > 0 {
		select {
		case <-time.After(a.delay):
		case <-ctx.Done():
			return []domain.Product{}
		}
	}
	return a.products
}

func TestSearchProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("merges all adapters sorted by price ascending", func(t *testing.T) {
		svc := NewSearchService([]domain.SourceAdapter{
			&stubAdapter{store: domain.StoreWalmart, products: []domain.Product{
				{ID: "w1", Store: domain.StoreWalmart, Price: 5.00},
				{ID: "w2", Store: domain.StoreWalmart, Price: 2.00},
			}},
			&stubAdapter{store: domain.StoreTarget, products: []domain.Product{
				{ID: "t1", Store: domain.StoreTarget, Price: 3.50},
			}},
		})

		got := svc.SearchProducts(ctx, "milk", domain.DefaultStoreSelection())
		var order []string
		for _, p := range got {
			order = append(order, p.ID)
		}
		if !reflect.DeepEqual(order, []string{"w2", "t1", "w1"}) {
			t.Errorf("order = %v, want [w2 t1 w1]", order)
		}
	})

	t.Run("failing adapter contributes nothing and does not affect others", func(t *testing.T) {
		svc := NewSearchService([]domain.SourceAdapter{
			&stubAdapter{store: domain.StoreWalmart, products: []domain.Product{}}, // dead source
			&stubAdapter{store: domain.StoreTarget, products: []domain.Product{
				{ID: "t1", Store: domain.StoreTarget, Price: 1.00},
				{ID: "t2", Store: domain.StoreTarget, Price: 2.00},
			}},
		})

		got := svc.SearchProducts(ctx, "milk", domain.DefaultStoreSelection())
		if len(got) != 2 {
			t.Fatalf("len = %d, want 2", len(got))
		}
		for _, p := range got {
			if p.Store != domain.StoreTarget {
				t.Errorf("Store = %q, want Target only", p.Store)
			}
		}
	})

	t.Run("slow adapter does not reorder equal prices", func(t *testing.T) {
		// Walmart is slower but precedes Target in adapter-iteration
		// order, so its product keeps the tie-break on equal prices.
		svc := NewSearchService([]domain.SourceAdapter{
			&stubAdapter{store: domain.StoreWalmart, delay: 30 * time.Millisecond, products: []domain.Product{
				{ID: "w1", Store: domain.StoreWalmart, Price: 4.00},
			}},
			&stubAdapter{store: domain.StoreTarget, products: []domain.Product{
				{ID: "t1", Store: domain.StoreTarget, Price: 4.00},
			}},
		})

		got := svc.SearchProducts(ctx, "milk", domain.DefaultStoreSelection())
		if len(got) != 2 || got[0].ID != "w1" || got[1].ID != "t1" {
			t.Errorf("got %v, want [w1 t1] (adapter order, not arrival order)", got)
		}
	})

	t.Run("disabled stores are not queried", func(t *testing.T) {
		walmart := &stubAdapter{store: domain.StoreWalmart, products: []domain.Product{
			{ID: "w1", Store: domain.StoreWalmart, Price: 1.00},
		}}
		target := &stubAdapter{store: domain.StoreTarget, products: []domain.Product{
			{ID: "t1", Store: domain.StoreTarget, Price: 2.00},
		}}
		svc := NewSearchService([]domain.SourceAdapter{walmart, target})

		stores := domain.StoreSelection{domain.StoreWalmart: true, domain.StoreTarget: false}
		got := svc.SearchProducts(ctx, "milk", stores)

		if len(got) != 1 || got[0].ID != "w1" {
			t.Fatalf("got %v, want only w1", got)
		}
		if target.calls.Load() != 0 {
			t.Errorf("disabled adapter was called %d times", target.calls.Load())
		}
	})

	t.Run("all sources empty yields empty list, not nil panic", func(t *testing.T) {
		svc := NewSearchService([]domain.SourceAdapter{
			&stubAdapter{store: domain.StoreWalmart, products: []domain.Product{}},
			&stubAdapter{store: domain.StoreTarget, products: []domain.Product{}},
		})

		got := svc.SearchProducts(ctx, "milk", domain.DefaultStoreSelection())
		if got == nil || len(got) != 0 {
			t.Errorf("got %v, want empty non-nil list", got)
		}
	})

	t.Run("blank query short-circuits before any adapter call", func(t *testing.T) {
		walmart := &stubAdapter{store: domain.StoreWalmart}
		svc := NewSearchService([]domain.SourceAdapter{walmart})

		got := svc.SearchProducts(ctx, "   ", domain.DefaultStoreSelection())
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
		if walmart.calls.Load() != 0 {
			t.Errorf("adapter called %d times for blank query", walmart.calls.Load())
		}
	})

	t.Run("no enabled adapters yields empty list", func(t *testing.T) {
		svc := NewSearchService([]domain.SourceAdapter{
			&stubAdapter{store: domain.StoreWalmart},
		})

		stores := domain.StoreSelection{domain.StoreWalmart: false}
		got := svc.SearchProducts(ctx, "milk", stores)
		if len(got) != 0 {
			t.Errorf("len = %d, want 0", len(got))
		}
	})

	t.Run("adapters run concurrently", func(t *testing.T) {
		const delay = 40 * time.Millisecond
		var adapters []domain.SourceAdapter
		for _, store := range domain.AllStores() {
			adapters = append(adapters, &stubAdapter{store: store, delay: delay, products: []domain.Product{
				{ID: string(store), Store: store, Price: 1.00},
			}})
		}
		svc := NewSearchService(adapters)

		start := time.Now()
		got := svc.SearchProducts(ctx, "milk", domain.DefaultStoreSelection())
		elapsed := time.Since(start)

		if len(got) != len(domain.AllStores()) {
			t.Fatalf("len = %d, want %d", len(got), len(domain.AllStores()))
		}
		// Sequential would take ~4x the delay.
		if elapsed > 3*delay {
			t.Errorf("elapsed = %v, want < %v (calls should overlap)", elapsed, 3*delay)
		}
	})
}
