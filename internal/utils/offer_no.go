package utils

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
)

const offerNoPrefix = "TEK-"

// NewOfferNo derives a human-facing offer number from the creation time:
// the prefix plus the last six digits of the unix millisecond clock.
func NewOfferNo(t time.Time) string {
	return fmt.Sprintf("%s%06d", offerNoPrefix, t.UnixMilli()%1000000)
}

const base36 = "0123456789abcdefghijklmnopqrstuvwxyz"

// NewBulkOfferNo appends a short random base36 suffix so offers created in
// the same millisecond (bulk imports) still get distinct numbers.
func NewBulkOfferNo(t time.Time) string {
	var sb strings.Builder
	for i := 0; i < 2; i++ {
		sb.WriteByte(base36[rand.Intn(len(base36))])
	}
	return NewOfferNo(t) + sb.String()
}
