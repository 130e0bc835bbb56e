package issuance

import "testing"

func TestBin(t *testing.T) {
	tests := []struct {
		days     int
		expected string
	}{
		{-400, BucketOther},
		{-1, BucketOther},
		{0, BucketOther},
		{1, BucketLT1Month},
		{29, BucketLT1Month},
		{30, Bucket1To3M},
		{45, Bucket1To3M},
		{90, Bucket1To3M},
		{91, Bucket3To12M},
		{364, Bucket3To12M},
		{365, Bucket1To3Y},
		{1094, Bucket1To3Y},
		{1095, Bucket3To10Y},
		{3649, Bucket3To10Y},
		{3650, Bucket10YPlus},
		{10950, Bucket10YPlus},
	}
	for _, tt := range tests {
		if got := Bin(tt.days); got != tt.expected {
			t.Errorf("Bin(%d) = %q, want %q", tt.days, got, tt.expected)
		}
	}
}

func TestBinAlwaysReturnsKnownLabel(t *testing.T) {
	known := make(map[string]bool)
	for _, b := range USBucketOrder {
		known[b] = true
	}
	for d := -500; d < 5000; d += 7 {
		if !known[Bin(d)] {
			t.Fatalf("Bin(%d) = %q, not in the fixed bucket set", d, Bin(d))
		}
	}
}

func TestBinOtherOnlyForNonPositive(t *testing.T) {
	for d := -100; d < 4000; d++ {
		isOther := Bin(d) == BucketOther
		if isOther != (d <= 0) {
			t.Fatalf("Bin(%d) = %q; Other expected iff d <= 0", d, Bin(d))
		}
	}
}

func TestBucketColorsCoverAllBuckets(t *testing.T) {
	for _, b := range USBucketOrder {
		if USBucketColors[b] == "" {
			t.Errorf("missing color for US bucket %q", b)
		}
	}
	for _, tn := range EuroTenorOrder {
		if EuroTenorColors[tn] == "" {
			t.Errorf("missing color for Euro tenor %q", tn)
		}
	}
}
