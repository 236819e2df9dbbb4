package models

import "testing"

func TestMinimumNextBid(t *testing.T) {
	if got := MinimumNextBid(1000); got != 1020 {
		t.Errorf("MinimumNextBid(1000) = %d, want 1020", got)
	}
	if got := MinimumNextBid(10); got != 11 {
		t.Errorf("MinimumNextBid(10) = %d, want 11 (1-credit floor)", got)
	}
}

func TestListingFeeUsesBuyNowWhenPresent(t *testing.T) {
	buyNow := int64(10000)
	if got := ListingFee(5000, &buyNow); got != 300 {
		t.Errorf("ListingFee with buyNow = %d, want 300", got)
	}
	if got := ListingFee(5000, nil); got != 150 {
		t.Errorf("ListingFee without buyNow = %d, want 150", got)
	}
}

func TestMarketTax(t *testing.T) {
	if got := MarketTax(20000); got != 1000 {
		t.Errorf("MarketTax(20000) = %d, want 1000", got)
	}
}
