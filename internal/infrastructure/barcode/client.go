package barcode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/shopscan/backend/internal/domain"
)

// Client handles communication with the external barcode metadata service
// (UPC database style: GET <endpoint>?upc=<digits>).
type Client struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rate.Limiter
}

// NewClient creates a new barcode lookup client. Free UPC lookup tiers allow
// roughly 100 requests per day with short bursts, so the limiter stays
// conservative.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		baseURL:     baseURL,
		rateLimiter: rate.NewLimiter(rate.Limit(1), 5),
	}
}

// lookupResponse is the wire shape of the lookup service: an items array
// whose first entry carries title/description and brand.
type lookupResponse struct {
	Items []struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Brand       string `json:"brand"`
	} `json:"items"`
}

// Lookup resolves a cleaned barcode to a product name and brand. Returns
// ErrBarcodeNotFound when the service knows nothing about the code, and
// ErrLookupFailure for transport/status failures after retries.
func (c *Client) Lookup(ctx context.Context, barcode string) (*domain.BarcodeMetadata, error) {
	params := url.Values{}
	params.Add("upc", barcode)
	reqURL := fmt.Sprintf("%s?%s", c.baseURL, params.Encode())

	// Retry transient failures; a barcode scan is interactive so keep
	// attempts low.
	var lastErr error
	for attempt := 1; attempt <= 3; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter error: %w", err)
		}

		body, status, err := c.doRequest(ctx, reqURL)
		if err != nil {
			log.Printf("[LOOKUP] request error (attempt %d): %v", attempt, err)
			lastErr = err
			time.Sleep(time.Duration(attempt*250) * time.Millisecond)
			continue
		}

		if status == http.StatusNotFound {
			return nil, domain.ErrBarcodeNotFound
		}
		if status != http.StatusOK {
			log.Printf("[LOOKUP] status %d (attempt %d)", status, attempt)
			lastErr = fmt.Errorf("%w: status %d", domain.ErrLookupFailure, status)
			if status >= 400 && status < 500 && status != http.StatusTooManyRequests {
				return nil, lastErr
			}
			time.Sleep(time.Duration(attempt*250) * time.Millisecond)
			continue
		}

		var parsed lookupResponse
		if err := json.Unmarshal(body, &parsed); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailure, err)
		}

		if len(parsed.Items) == 0 {
			return nil, domain.ErrBarcodeNotFound
		}

		item := parsed.Items[0]
		name := item.Title
		if name == "" {
			name = item.Description
		}
		if name == "" && item.Brand == "" {
			return nil, domain.ErrBarcodeNotFound
		}

		return &domain.BarcodeMetadata{Name: name, Brand: item.Brand}, nil
	}

	return nil, lastErr
}

func (c *Client) doRequest(ctx context.Context, reqURL string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "ShopScan/1.0")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", domain.ErrLookupFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("%w: %v", domain.ErrLookupFailure, err)
	}
	return body, resp.StatusCode, nil
}
