package render

import (
	"fmt"
	"image/color"
	"io"
	"time"

	"CoinCast/internal/model"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

var (
	historicalColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	forecastColor   = color.RGBA{R: 255, G: 127, B: 14, A: 255}
)

// Default figure size.
const (
	Width  = 8 * vg.Inch
	Height = 5 * vg.Inch
)

// WritePNG draws the assembled series as a line chart and encodes it as PNG.
func WritePNG(w io.Writer, a *model.AssembledSeries) error {
	p := plot.New()
	p.Title.Text = a.Title
	p.X.Label.Text = a.XLabel
	p.Y.Label.Text = a.YLabel
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	if err := addTrace(p, a.Historical, historicalColor); err != nil {
		return err
	}
	if a.HasForecast() {
		if err := addTrace(p, *a.Forecast, forecastColor); err != nil {
			return err
		}
	}

	canvas := vgimg.PngCanvas{Canvas: vgimg.New(Width, Height)}
	p.Draw(draw.New(canvas))
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("write png: %w", err)
	}
	return nil
}

func addTrace(p *plot.Plot, tr model.Trace, c color.Color) error {
	if len(tr.Dates) == 0 {
		return nil
	}
	line, err := plotter.NewLine(toXYs(tr.Dates, tr.Values))
	if err != nil {
		return fmt.Errorf("build %q line: %w", tr.Label, err)
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(line)
	p.Legend.Add(tr.Label, line)
	return nil
}

// toXYs maps dates to Unix seconds, the scale plot.TimeTicks expects.
func toXYs(dates []time.Time, values []float64) plotter.XYs {
	xys := make(plotter.XYs, len(dates))
	for i := range dates {
		xys[i].X = float64(dates[i].Unix())
		xys[i].Y = values[i]
	}
	return xys
}
