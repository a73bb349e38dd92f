package usecase

import (
	"regexp"
	"strings"
	"unicode"
)

// barcodePattern matches UPC-E through EAN/ITF-14 length digit strings.
var barcodePattern = regexp.MustCompile(`^\d{8,14}$`)

// IsBarcode reports whether input looks like a scanned barcode rather than a
// free-text query. Hyphens and whitespace are stripped before matching, so
// "123-456-7890" counts as a 10-digit barcode. Pure, no I/O.
func IsBarcode(input string) bool {
	cleaned := strings.Map(func(r rune) rune {
		if r == '-' || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, input)
	return barcodePattern.MatchString(cleaned)
}

// CleanBarcode strips every non-digit character, yielding the digit string
// sent to the lookup service and shown in placeholder names.
func CleanBarcode(input string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, input)
}
