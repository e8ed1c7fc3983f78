package pkg

import "testing"

func TestPrizeValue(t *testing.T) {
	tests := []struct {
		prize string
		want  int
	}{
		{"$10,000", 10000},
		{"$5,000 in cloud credits", 5000},
		{"10000 USD", 10000},
		{"Prize pool: $25,000", 25000},
		{"Swag and glory", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := PrizeValue(tt.prize); got != tt.want {
			t.Errorf("PrizeValue(%q) = %d, want %d", tt.prize, got, tt.want)
		}
	}
}

func TestIsFeatured(t *testing.T) {
	if !IsFeatured("$10,000", DefaultFeaturedThreshold) {
		t.Error("$10,000 should be featured at the default threshold")
	}
	if IsFeatured("$9,999", DefaultFeaturedThreshold) {
		t.Error("$9,999 should not be featured at the default threshold")
	}
	if !IsFeatured("$500", 500) {
		t.Error("$500 should be featured at threshold 500")
	}
	if IsFeatured("no cash prize", 0) {
		t.Error("non-numeric prize should never be featured")
	}
}
