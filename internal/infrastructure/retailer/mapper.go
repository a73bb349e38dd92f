package retailer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopscan/backend/internal/domain"
)

// Fallback values for fields an upstream source omits.
const (
	unknownProductName = "Unknown Product"
	fallbackThumbnail  = "https://placehold.co/150x150?text=No+Image"
)

// rawItem is the loose superset of fields seen across retailer responses.
// Identifier and price fields are kept raw because sources disagree on
// whether they are numbers or strings.
type rawItem struct {
	ID        json.RawMessage `json:"id"`
	ProductID json.RawMessage `json:"productId"`
	SKU       json.RawMessage `json:"sku"`
	Name      string          `json:"name"`
	Title     string          `json:"title"`
	Brand     string          `json:"brand"`
	Price     json.RawMessage `json:"price"`
	SalePrice json.RawMessage `json:"salePrice"`
	Thumbnail string          `json:"thumbnail"`
	Image     string          `json:"image"`
	ImageURL  string          `json:"imageUrl"`
	URL       string          `json:"url"`
	Link      string          `json:"link"`
}

// mapItem normalizes one raw upstream record into the canonical Product.
// Normalization is total: every field gets a value, with the store's own
// defaults filling whatever the source omits. Raw shapes never pass through.
func mapItem(store domain.Store, item rawItem) domain.Product {
	id := firstString(item.ID, item.ProductID, item.SKU)
	if id == "" {
		id = domain.NewProductID(store)
	} else {
		// Prefix upstream IDs with the store tag so two retailers using
		// the same numeric SKU space never collide.
		id = store.Tag() + "-" + id
	}

	name := item.Name
	if name == "" {
		name = item.Title
	}
	if name == "" {
		name = unknownProductName
	}

	brand := item.Brand
	if brand == "" {
		brand = string(store)
	}

	price, ok := parsePrice(item.Price)
	if !ok {
		price, _ = parsePrice(item.SalePrice)
	}

	thumbnail := firstNonEmpty(item.Thumbnail, item.Image, item.ImageURL)
	if thumbnail == "" {
		thumbnail = fallbackThumbnail
	}

	productURL := firstNonEmpty(item.URL, item.Link)
	if productURL == "" {
		productURL = fmt.Sprintf("https://www.%s.com", store.Tag())
	}

	return domain.Product{
		ID:        id,
		Name:      name,
		Brand:     brand,
		Price:     price,
		Thumbnail: thumbnail,
		Store:     store,
		URL:       productURL,
	}
}

// parsePrice coerces a raw JSON value into a price. Sources send numbers,
// numeric strings ("12.99"), and occasionally strings with a currency sign.
// Anything unparseable becomes the 0 sentinel meaning "price unknown".
func parsePrice(raw json.RawMessage) (float64, bool) {
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return 0, false
	}

	var number float64
	if err := json.Unmarshal(raw, &number); err == nil {
		if number < 0 {
			return 0, false
		}
		return number, true
	}

	var text string
	if err := json.Unmarshal(raw, &text); err == nil {
		text = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(text), "$"))
		if parsed, err := strconv.ParseFloat(text, 64); err == nil && parsed >= 0 {
			return parsed, true
		}
	}

	return 0, false
}

// firstString decodes the first raw value that yields a non-empty string,
// accepting both JSON strings and numbers.
func firstString(raws ...json.RawMessage) string {
	for _, raw := range raws {
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			continue
		}
		var text string
		if err := json.Unmarshal(raw, &text); err == nil {
			if text != "" {
				return text
			}
			continue
		}
		var number json.Number
		if err := json.Unmarshal(raw, &number); err == nil && number.String() != "" {
			return number.String()
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
