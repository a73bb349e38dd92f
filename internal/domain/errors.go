package domain

import "errors"

var (
	// ErrBarcodeNotFound is returned when the lookup service has no metadata for a barcode
	ErrBarcodeNotFound = errors.New("barcode not found in lookup service")

	// ErrLookupFailure is returned when the barcode lookup service request fails
	ErrLookupFailure = errors.New("barcode lookup request failed")

	// ErrSourceFailure is returned when a retailer search request fails
	ErrSourceFailure = errors.New("retailer search request failed")

	// ErrUnexpectedShape is returned when an upstream response body matches no known shape
	ErrUnexpectedShape = errors.New("unexpected upstream response shape")

	// ErrCacheMiss is returned when data is not found in cache
	ErrCacheMiss = errors.New("cache miss")
)
