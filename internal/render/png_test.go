package render

import (
	"bytes"
	"testing"
	"time"

	"CoinCast/internal/model"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestWritePNG(t *testing.T) {
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	hist := model.Trace{Label: "Historical Data"}
	for i := 0; i < 30; i++ {
		hist.Dates = append(hist.Dates, start.AddDate(0, 0, i))
		hist.Values = append(hist.Values, float64(100+i))
	}
	fc := &model.Trace{
		Label:  "Prediction (Curve)",
		Dates:  []time.Time{start.AddDate(0, 0, 29), start.AddDate(0, 0, 60)},
		Values: []float64{129, 160},
	}

	tests := []struct {
		name string
		a    *model.AssembledSeries
	}{
		{"historical", &model.AssembledSeries{Title: "open_price for BTC", XLabel: "Date", YLabel: "Open Prices", Historical: hist}},
		{"projection", &model.AssembledSeries{Title: "Prediction for open_price on 03/02/23 (BTC)", XLabel: "Date", YLabel: "Open Prices", Historical: hist, Forecast: fc}},
		{"empty", &model.AssembledSeries{Title: "open_price for ZZZZ", XLabel: "Date", YLabel: "Open Prices"}},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := WritePNG(&buf, tt.a); err != nil {
			t.Fatalf("%s: WritePNG: %v", tt.name, err)
		}
		if !bytes.HasPrefix(buf.Bytes(), pngMagic) {
			t.Errorf("%s: output is not a PNG", tt.name)
		}
	}
}
