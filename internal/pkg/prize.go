package pkg

import (
	"strconv"
	"strings"
	"unicode"
)

// DefaultFeaturedThreshold marks competitions with a prize pool of at least
// this value as featured.
const DefaultFeaturedThreshold = 10000

// PrizeValue parses the leading number out of a free-form prize string such
// as "$5,000 in credits". Returns 0 when no digits lead the string.
func PrizeValue(prize string) int {
	s := strings.TrimSpace(prize)
	s = strings.TrimLeftFunc(s, func(r rune) bool {
		return !unicode.IsDigit(r)
	})

	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
			continue
		}
		if r == ',' {
			continue
		}
		break
	}
	if b.Len() == 0 {
		return 0
	}
	n, err := strconv.Atoi(b.String())
	if err != nil {
		return 0
	}
	return n
}

// IsFeatured derives the featured flag from the prize text. Never stored.
func IsFeatured(prize string, threshold int) bool {
	if threshold <= 0 {
		threshold = DefaultFeaturedThreshold
	}
	return PrizeValue(prize) >= threshold
}
