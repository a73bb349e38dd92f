package retailer

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopscan/backend/internal/domain"
)

func newTestAdapter(t *testing.T, server *httptest.Server) *Adapter {
	t.Helper()
	adapter, err := New(domain.StoreWalmart, server.URL, 2*time.Second)
	require.NoError(t, err)
	return adapter
}

func TestNew(t *testing.T) {
	adapter, err := New(domain.StoreTarget, "https://example.com/search", 0)
	require.NoError(t, err)
	assert.Equal(t, domain.StoreTarget, adapter.Store())
	assert.NotNil(t, adapter.httpClient)

	_, err = New(domain.StoreTarget, "", time.Second)
	assert.Error(t, err)
}

func TestSearch_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "whole milk", r.URL.Query().Get("query"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": "101", "name": "Whole Milk", "brand": "Great Value", "price": 3.48,
			 "thumbnail": "https://img.example.com/101.jpg", "url": "https://example.com/ip/101"},
			{"id": 102, "name": "2% Milk", "price": "2.98"}
		]`))
	}))
	defer server.Close()

	adapter := newTestAdapter(t, server)
	products := adapter.Search(context.Background(), "whole milk")

	require.Len(t, products, 2)
	assert.Equal(t, "walmart-101", products[0].ID)
	assert.Equal(t, "Whole Milk", products[0].Name)
	assert.Equal(t, "Great Value", products[0].Brand)
	assert.Equal(t, 3.48, products[0].Price)
	assert.Equal(t, domain.StoreWalmart, products[0].Store)

	// Numeric ID and string price both coerce.
	assert.Equal(t, "walmart-102", products[1].ID)
	assert.Equal(t, 2.98, products[1].Price)
}

func TestSearch_WrappedShapes(t *testing.T) {
	t.Run("results wrapper", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"results": [{"id": "1", "name": "Milk", "price": 3.00}]}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server)
		products := adapter.Search(context.Background(), "milk")
		require.Len(t, products, 1)
		assert.Equal(t, "Milk", products[0].Name)
	})

	t.Run("items wrapper", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"items": [{"id": "1", "title": "Milk", "price": 3.00}]}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server)
		products := adapter.Search(context.Background(), "milk")
		require.Len(t, products, 1)
		assert.Equal(t, "Milk", products[0].Name)
	})

	t.Run("unknown shape degrades to empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"data": {"nested": true}}`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server)
		products := adapter.Search(context.Background(), "milk")
		assert.Empty(t, products)
	})
}

func TestSearch_FailuresDegradeToEmpty(t *testing.T) {
	t.Run("server error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server)
		products := adapter.Search(context.Background(), "milk")
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("malformed body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json at all`))
		}))
		defer server.Close()

		adapter := newTestAdapter(t, server)
		products := adapter.Search(context.Background(), "milk")
		assert.Empty(t, products)
	})

	t.Run("unreachable endpoint", func(t *testing.T) {
		adapter, err := New(domain.StoreWalmart, "http://127.0.0.1:1", 500*time.Millisecond)
		require.NoError(t, err)

		products := adapter.Search(context.Background(), "milk")
		assert.NotNil(t, products)
		assert.Empty(t, products)
	})

	t.Run("slow endpoint hits the adapter timeout", func(t *testing.T) {
		release := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			<-release
		}))
		defer server.Close()
		defer close(release)

		adapter, err := New(domain.StoreWalmart, server.URL, 100*time.Millisecond)
		require.NoError(t, err)

		start := time.Now()
		products := adapter.Search(context.Background(), "milk")
		assert.Empty(t, products)
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}
