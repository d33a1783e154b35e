package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestInventoryStatus(t *testing.T) {
	tests := []struct {
		quantity int
		want     string
	}{
		{0, StatusRunningLow},
		{10, StatusRunningLow},
		{11, StatusLow},
		{50, StatusLow},
		{51, StatusInStock},
		{1000, StatusInStock},
	}
	for _, tt := range tests {
		if got := InventoryStatus(tt.quantity); got != tt.want {
			t.Errorf("InventoryStatus(%d) = %q, want %q", tt.quantity, got, tt.want)
		}
	}
}

func TestPremiumSurcharge(t *testing.T) {
	tests := []struct {
		entrees int
		want    string
	}{
		{-1, "0"},
		{0, "0"},
		{1, "1.5"},
		{3, "4.5"},
	}
	for _, tt := range tests {
		got := PremiumSurcharge(tt.entrees)
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("PremiumSurcharge(%d) = %s, want %s", tt.entrees, got, tt.want)
		}
	}
}
