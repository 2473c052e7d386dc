package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"CoinCast/internal/assembler"
	"CoinCast/internal/model"
	"CoinCast/internal/store"
)

func newTestHandler(t *testing.T) (http.Handler, *store.SQLStore) {
	t.Helper()
	s, err := store.NewSQLiteStore(filepath.Join(t.TempDir(), "coin_data.db"), 5*time.Second)
	if err != nil {
		t.Fatalf("NewSQLiteStore: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	var rows []model.CoinRow
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 60; i++ {
		open := 100 + float64(i)
		pct := 1.0
		rows = append(rows, model.CoinRow{
			Ticker:         "BTC",
			Date:           start.AddDate(0, 0, i),
			OpenPrice:      &open,
			PricePctChange: &pct,
		})
	}
	single := 5.0
	rows = append(rows, model.CoinRow{Ticker: "ONE", Date: start, OpenPrice: &single})
	if err := s.UpsertRows(context.Background(), rows); err != nil {
		t.Fatalf("UpsertRows: %v", err)
	}

	h := NewHandler(assembler.NewService(s), s)
	return h.Routes(), s
}

func do(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestTickers(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(h, "/api/tickers")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var got []string
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(got) != 2 || got[0] != "BTC" || got[1] != "ONE" {
		t.Errorf("tickers = %v, want [BTC ONE]", got)
	}
}

func TestHistorical(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(h, "/api/crypto/open_price/BTC")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got model.AssembledSeries
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Title != "open_price for BTC" {
		t.Errorf("title = %q", got.Title)
	}
	if len(got.Historical.Values) != 60 {
		t.Errorf("historical len = %d, want 60", len(got.Historical.Values))
	}
	if got.Forecast != nil {
		t.Error("expected no forecast")
	}
}

func TestProjection(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(h, "/api/crypto/open_price/projection/BTC?date=06/01/23")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}
	var got model.AssembledSeries
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Forecast == nil || len(got.Forecast.Values) != 200 {
		t.Fatalf("forecast = %+v, want 200 points", got.Forecast)
	}
	if got.Title != "Prediction for open_price on 06/01/23 (BTC)" {
		t.Errorf("title = %q", got.Title)
	}
}

func TestErrorStatuses(t *testing.T) {
	h, _ := newTestHandler(t)
	tests := []struct {
		name   string
		target string
		want   int
	}{
		{"unknown metric", "/api/crypto/volume/BTC", http.StatusBadRequest},
		{"missing date", "/api/crypto/open_price/projection/BTC", http.StatusBadRequest},
		{"bad date", "/api/crypto/open_price/projection/BTC?date=2023-06-01", http.StatusBadRequest},
		{"single point", "/api/crypto/open_price/projection/ONE?date=06/01/23", http.StatusUnprocessableEntity},
		{"unknown ticker", "/api/crypto/open_price/projection/NOPE?date=06/01/23", http.StatusUnprocessableEntity},
		{"figure unknown metric", "/fig/volume/BTC", http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if rec := do(h, tt.target); rec.Code != tt.want {
				t.Errorf("%s: status = %d, want %d", tt.target, rec.Code, tt.want)
			}
		})
	}
}

func TestStorageUnavailable(t *testing.T) {
	h, s := newTestHandler(t)
	s.Close()

	if rec := do(h, "/api/tickers"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("tickers status = %d, want 503", rec.Code)
	}
	if rec := do(h, "/health"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("health status = %d, want 503", rec.Code)
	}
}

func TestFigure(t *testing.T) {
	h, _ := newTestHandler(t)
	for _, target := range []string{"/fig/open_price/BTC", "/fig/price_pct_change/BTC?date=03/15/23"} {
		rec := do(h, target)
		if rec.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body %s", target, rec.Code, rec.Body.String())
		}
		if ct := rec.Header().Get("Content-Type"); ct != "image/png" {
			t.Errorf("%s: content type = %q", target, ct)
		}
		if !bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")) {
			t.Errorf("%s: body is not a PNG", target)
		}
	}
}

func TestHomePage(t *testing.T) {
	h, _ := newTestHandler(t)
	rec := do(h, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"Choose a Cryptocurrency", `value="BTC"`, `value="open_price"`, "Percent Change"} {
		if !strings.Contains(body, want) {
			t.Errorf("home page missing %q", want)
		}
	}
}

func TestChartNavigation(t *testing.T) {
	h, _ := newTestHandler(t)

	rec := do(h, "/chart?ticker=BTC&metric=open_price")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/chart/open_price/BTC" {
		t.Errorf("redirect = %d %q", rec.Code, rec.Header().Get("Location"))
	}

	rec = do(h, "/chart/open_price/BTC?date=06/01/23")
	if rec.Code != http.StatusOK {
		t.Fatalf("chart status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "/fig/open_price/BTC?date=06%2F01%2F23") {
		t.Errorf("chart page missing figure url: %s", rec.Body.String())
	}

	rec = do(h, "/no/such/page")
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/" {
		t.Errorf("catch-all = %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestHealth(t *testing.T) {
	h, _ := newTestHandler(t)
	if rec := do(h, "/health"); rec.Code != http.StatusOK {
		t.Errorf("health status = %d", rec.Code)
	}
}
