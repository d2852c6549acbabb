package evdisplay

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
)

const (
	cylinderResolution = 48
	pointSize          = 3
	// Longest side of the grid3D box in echarts units
	boxScale = 200
)

// NewHTMLChart builds the 3D chart of a scene: one scatter series for the
// hits and one line series per shape outline.
func NewHTMLChart(s *Scene) *charts.Scatter3D {
	lo, hi, ok := s.Bounds()
	if !ok {
		lo, hi = Vec3{-1, -1, -1}, Vec3{1, 1, 1}
	}

	scatter := charts.NewScatter3D()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle:       s.Title,
			Width:           fmt.Sprintf("%dpx", s.Width),
			Height:          fmt.Sprintf("%dpx", s.Height),
			BackgroundColor: hexColor(s.Background),
		}),
		charts.WithTitleOpts(opts.Title{Title: s.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithXAxis3DOpts(opts.XAxis3D{Name: "x", Min: lo[0], Max: hi[0]}),
		charts.WithYAxis3DOpts(opts.YAxis3D{Name: "z", Min: lo[1], Max: hi[1]}),
		charts.WithZAxis3DOpts(opts.ZAxis3D{Name: "y", Min: lo[2], Max: hi[2]}),
		charts.WithGrid3DOpts(grid3D(s, lo, hi)),
		charts.WithVisualMapOpts(visualMap(s.ColorMap)),
	)

	data := make([]opts.Chart3DData, len(s.Cloud.Points))
	for i, p := range s.Cloud.Points {
		v := DisplayPoint(p)
		data[i] = opts.Chart3DData{Value: []interface{}{v[0], v[1], v[2], s.ColorMap.Scalar(p.Value), p.Value}}
	}
	scatter.AddSeries(s.Cloud.Field.Name, data,
		charts.WithScatterChartOpts(opts.ScatterChart{SymbolSize: pointSize}),
	)

	lines := charts.NewLine3D()
	for _, shape := range s.Shapes {
		outline := shape.Outline(cylinderResolution)
		data := make([]opts.Chart3DData, len(outline))
		for i, v := range outline {
			data[i] = opts.Chart3DData{Value: []interface{}{v[0], v[1], v[2]}}
		}
		width := float32(1)
		if shape.Representation == Wireframe {
			width = 2
		}
		lines.AddSeries(shape.Name, data,
			charts.WithLineStyleOpts(opts.LineStyle{
				Color:   hexColor(shape.Color),
				Width:   width,
				Opacity: opts.Float(float32(shape.Opacity)),
			}),
		)
	}
	// Chart3D has no Overlap, the series share the grid3D of the scatter
	scatter.MultiSeries = append(scatter.MultiSeries, lines.MultiSeries...)
	return scatter
}

func grid3D(s *Scene, lo, hi Vec3) opts.Grid3D {
	span := Vec3{hi[0] - lo[0], hi[1] - lo[1], hi[2] - lo[2]}
	longest := math.Max(span[0], math.Max(span[1], span[2]))
	if longest <= 0 {
		longest = 1
	}
	size := func(v float64) float32 {
		return float32(math.Max(v/longest*boxScale, 1))
	}
	grid := opts.Grid3D{
		BoxWidth:  size(span[0]),
		BoxDepth:  size(span[1]),
		BoxHeight: size(span[2]),
	}
	if s.Orbit != nil {
		grid.ViewControl = &opts.ViewControl{
			AutoRotate:      opts.Bool(true),
			AutoRotateSpeed: float32(s.Orbit.RotateSpeed()),
		}
	}
	return grid
}

// visualMap colours the scatter by the fourth value of each point.
func visualMap(cm ColorMap) opts.VisualMap {
	if cm.Kind == Categorical {
		codes := ParticleCodes()
		pieces := make([]opts.Piece, len(codes))
		for i, code := range codes {
			pieces[i] = opts.Piece{
				Gte:   float32(code) - 0.5,
				Lte:   float32(code) + 0.5,
				Color: ParticleColor(code).Hex(),
			}
		}
		return opts.VisualMap{
			Type:      "piecewise",
			Dimension: "3",
			Pieces:    pieces,
			Show:      opts.Bool(true),
		}
	}
	return opts.VisualMap{
		Type:       "continuous",
		Calculable: opts.Bool(true),
		Min:        float32(cm.Min),
		Max:        float32(cm.Max),
		Dimension:  "3",
		InRange:    &opts.VisualMapInRange{Color: JetPalette(9)},
		Show:       opts.Bool(true),
	}
}

func hexColor(c Vec3) string {
	var rgb RGB
	for i := range c {
		rgb[i] = uint8(math.Round(255 * clamp(c[i], 0, 1)))
	}
	return rgb.Hex()
}

// RenderHTML writes the scene as a self-contained echarts page.
func RenderHTML(w io.Writer, s *Scene) error {
	return NewHTMLChart(s).Render(w)
}

func RenderHTMLFile(filename string, s *Scene) error {
	f, err := os.Create(filename)
	if err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := RenderHTML(f, s); err != nil {
		f.Close()
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Wrote %s", filename), "html")
	}
	return nil
}
