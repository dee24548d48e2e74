package services

import "testing"

func TestClampedDecrement(t *testing.T) {
	tests := []struct {
		stock, qty, want int
	}{
		{10, 3, 7},
		{10, 10, 0},
		{3, 10, 0},
		{0, 5, 0},
		{1, 1, 0},
		{100, 0, 100},
	}
	for _, tt := range tests {
		got := ClampedDecrement(tt.stock, tt.qty)
		if got != tt.want {
			t.Errorf("ClampedDecrement(%d, %d) = %d, want %d", tt.stock, tt.qty, got, tt.want)
		}
	}
}

func TestAvailableAfter(t *testing.T) {
	if AvailableAfter(0) {
		t.Error("zero stock should not be available")
	}
	if !AvailableAfter(1) {
		t.Error("positive stock should be available")
	}
}
