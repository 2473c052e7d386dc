package model

import "fmt"

// MetricKind identifies one stored measurement column of coin_data.
type MetricKind string

const (
	MetricOpenPrice   MetricKind = "open_price"
	MetricPriceChange MetricKind = "price_pct_change"
)

// metricCatalogue maps every known kind to its storage column and display name.
// Column names are only ever taken from here when building queries.
var metricCatalogue = map[MetricKind]struct {
	Column  string
	Display string
}{
	MetricOpenPrice:   {Column: "open_price", Display: "Open Prices"},
	MetricPriceChange: {Column: "price_pct_change", Display: "Percent Change"},
}

// Metrics returns all known metric kinds in presentation order.
func Metrics() []MetricKind {
	return []MetricKind{MetricOpenPrice, MetricPriceChange}
}

// ParseMetric resolves a selector string into a MetricKind.
func ParseMetric(s string) (MetricKind, error) {
	m := MetricKind(s)
	if !m.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, s)
	}
	return m, nil
}

// Valid reports whether m is part of the catalogue.
func (m MetricKind) Valid() bool {
	_, ok := metricCatalogue[m]
	return ok
}

// Column returns the storage column for m.
func (m MetricKind) Column() (string, error) {
	e, ok := metricCatalogue[m]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, string(m))
	}
	return e.Column, nil
}

// DisplayName returns the human label, or the raw key for unknown kinds.
func (m MetricKind) DisplayName() string {
	if e, ok := metricCatalogue[m]; ok {
		return e.Display
	}
	return string(m)
}

func (m MetricKind) String() string { return string(m) }
