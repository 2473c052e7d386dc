package model

import (
	"errors"
	"testing"
)

func TestParseMetric(t *testing.T) {
	tests := []struct {
		in      string
		want    MetricKind
		wantErr bool
	}{
		{"open_price", MetricOpenPrice, false},
		{"price_pct_change", MetricPriceChange, false},
		{"", "", true},
		{"close_price", "", true},
		{"open_price FROM coin_data; --", "", true},
	}
	for _, tt := range tests {
		got, err := ParseMetric(tt.in)
		if tt.wantErr {
			if !errors.Is(err, ErrUnknownMetric) {
				t.Errorf("ParseMetric(%q): expected ErrUnknownMetric, got %v", tt.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMetric(%q): unexpected error %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMetric(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMetricColumn(t *testing.T) {
	for _, m := range Metrics() {
		col, err := m.Column()
		if err != nil {
			t.Fatalf("Column(%s): %v", m, err)
		}
		if col != string(m) {
			t.Errorf("Column(%s) = %q", m, col)
		}
	}
	if _, err := MetricKind("volume").Column(); !errors.Is(err, ErrUnknownMetric) {
		t.Errorf("expected ErrUnknownMetric for unlisted kind, got %v", err)
	}
}

func TestMetricDisplayName(t *testing.T) {
	if got := MetricOpenPrice.DisplayName(); got != "Open Prices" {
		t.Errorf("open_price display = %q", got)
	}
	if got := MetricPriceChange.DisplayName(); got != "Percent Change" {
		t.Errorf("price_pct_change display = %q", got)
	}
	if MetricKind("x").Valid() {
		t.Error("unexpected valid kind")
	}
}
