package services

import (
	"reflect"
	"testing"
)

func TestNormalizeCategories(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"trims and keeps order", []string{" Starters ", "Mains"}, []string{"Starters", "Mains"}},
		{"drops blanks", []string{"", "  ", "Desserts"}, []string{"Desserts"}},
		{"dedupes case-insensitively", []string{"Veg", "veg", "VEG"}, []string{"Veg"}},
		{"empty input", nil, []string{}},
	}
	for _, tt := range tests {
		got := normalizeCategories(tt.in)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("%s: normalizeCategories(%v) = %v, want %v", tt.name, tt.in, got, tt.want)
		}
	}
}
