package feed

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// defaultCurrencyGlyphs are the currency markers observed in feed exports.
var defaultCurrencyGlyphs = []string{"₺", "$", "€"}

// ParseCurrency converts a locale-formatted amount cell ("₺1.000,00") into a
// decimal. The glyph is stripped, "." is a thousands separator and "," the
// decimal mark. Amount-only cells parse identically; anything non-numeric
// normalizes to zero per the feed's leniency policy.
func ParseCurrency(s string, glyphs ...string) decimal.Decimal {
	if len(glyphs) == 0 {
		glyphs = defaultCurrencyGlyphs
	}
	for _, g := range glyphs {
		s = strings.ReplaceAll(s, g, "")
	}
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// ParseDate parses the feed's day.month.year format (no zero padding
// guaranteed). Malformed input falls back to the current time and reports
// ok=false so callers can log the data-quality fallback; it never fails the
// row.
func ParseDate(s string) (t time.Time, ok bool) {
	parts := strings.Split(strings.TrimSpace(s), ".")
	if len(parts) != 3 {
		return time.Now(), false
	}
	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	year, errY := strconv.Atoi(parts[2])
	if errD != nil || errM != nil || errY != nil {
		return time.Now(), false
	}
	// time.Date normalizes out-of-range components (31.13.x rolls over)
	// instead of erroring, matching the lenient ledger contract.
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ParseQuantity parses a base-10 integer cell; non-numeric normalizes to zero.
func ParseQuantity(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0
	}
	return n
}
