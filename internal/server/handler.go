package server

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"html/template"
	"log"
	"net/http"
	"net/url"

	"CoinCast/internal/assembler"
	"CoinCast/internal/model"
	"CoinCast/internal/render"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Pinger reports storage health.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Handler serves the chart pages and the series API.
type Handler struct {
	svc    *assembler.Service
	health Pinger
}

// NewHandler creates a new Handler.
func NewHandler(svc *assembler.Service, health Pinger) *Handler {
	return &Handler{svc: svc, health: health}
}

// Routes registers every endpoint on a new mux.
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", h.home)
	mux.HandleFunc("GET /health", h.healthCheck)
	mux.HandleFunc("GET /chart", h.chartRedirect)
	mux.HandleFunc("GET /chart/{metric}/{ticker}", h.chartPage)
	mux.HandleFunc("GET /api/tickers", h.tickers)
	mux.HandleFunc("GET /api/crypto/{metric}/{ticker}", h.historical)
	mux.HandleFunc("GET /api/crypto/{metric}/projection/{ticker}", h.projection)
	mux.HandleFunc("GET /fig/{metric}/{ticker}", h.figure)
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/", http.StatusFound)
	})
	return mux
}

type metricOption struct {
	Key     string
	Display string
}

func (h *Handler) home(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.svc.Tickers(r.Context())
	if err != nil {
		writeError(w, err, "list tickers")
		return
	}
	var options []metricOption
	for _, m := range model.Metrics() {
		options = append(options, metricOption{Key: m.String(), Display: m.DisplayName()})
	}
	writeHTML(w, "home.html", map[string]any{
		"Message": "Choose a Cryptocurrency",
		"Tickers": tickers,
		"Metrics": options,
	})
}

func (h *Handler) healthCheck(w http.ResponseWriter, r *http.Request) {
	if err := h.health.Ping(r.Context()); err != nil {
		writeError(w, err, "health check")
		return
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (h *Handler) chartRedirect(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	ticker, metric := q.Get("ticker"), q.Get("metric")
	if ticker == "" || metric == "" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}
	http.Redirect(w, r, "/chart/"+url.PathEscape(metric)+"/"+url.PathEscape(ticker), http.StatusFound)
}

func (h *Handler) chartPage(w http.ResponseWriter, r *http.Request) {
	metric, ticker := r.PathValue("metric"), r.PathValue("ticker")
	if _, err := model.ParseMetric(metric); err != nil {
		writeError(w, err, "chart page")
		return
	}
	date := r.URL.Query().Get("date")
	fig := "/fig/" + url.PathEscape(metric) + "/" + url.PathEscape(ticker)
	if date != "" {
		fig += "?" + url.Values{"date": {date}}.Encode()
	}
	writeHTML(w, "chart.html", map[string]any{
		"Metric":    metric,
		"Ticker":    ticker,
		"Date":      date,
		"FigureURL": fig,
	})
}

func (h *Handler) tickers(w http.ResponseWriter, r *http.Request) {
	tickers, err := h.svc.Tickers(r.Context())
	if err != nil {
		writeError(w, err, "list tickers")
		return
	}
	writeJSON(w, tickers)
}

func (h *Handler) historical(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Historical(r.Context(), r.PathValue("metric"), r.PathValue("ticker"))
	if err != nil {
		writeError(w, err, "historical series")
		return
	}
	writeJSON(w, out)
}

func (h *Handler) projection(w http.ResponseWriter, r *http.Request) {
	out, err := h.svc.Projection(r.Context(), r.PathValue("metric"), r.PathValue("ticker"), r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, err, "projection")
		return
	}
	writeJSON(w, out)
}

func (h *Handler) figure(w http.ResponseWriter, r *http.Request) {
	var (
		out *model.AssembledSeries
		err error
	)
	metric, ticker := r.PathValue("metric"), r.PathValue("ticker")
	if date := r.URL.Query().Get("date"); date != "" {
		out, err = h.svc.Projection(r.Context(), metric, ticker, date)
	} else {
		out, err = h.svc.Historical(r.Context(), metric, ticker)
	}
	if err != nil {
		writeError(w, err, "figure")
		return
	}

	var buf bytes.Buffer
	if err := render.WritePNG(&buf, out); err != nil {
		writeError(w, err, "render figure")
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("[ERROR] encode response: %v", err)
	}
}

func writeHTML(w http.ResponseWriter, name string, data any) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("[ERROR] render %s: %v", name, err)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}

func writeError(w http.ResponseWriter, err error, op string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		log.Printf("[ERROR] %s: %v", op, err)
	}
	http.Error(w, err.Error(), status)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, model.ErrUnknownMetric), errors.Is(err, model.ErrInvalidDate):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrInsufficientData):
		return http.StatusUnprocessableEntity
	case errors.Is(err, model.ErrStorageUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
