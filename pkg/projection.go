package evdisplay

import (
	"fmt"
	"image/color"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Projection is a pair of data axes, horizontal first, e.g. "zy".
type Projection string

const DefaultProjection Projection = "zy"

// displayAxis maps a data axis name to its index in display coordinates.
var displayAxis = map[byte]int{'x': 0, 'z': 1, 'y': 2}

func (p Projection) axes() (int, int, error) {
	if len(p) != 2 || p[0] == p[1] {
		return 0, 0, fmt.Errorf("invalid projection %q", string(p))
	}
	h, okH := displayAxis[p[0]]
	v, okV := displayAxis[p[1]]
	if !okH || !okV {
		return 0, 0, fmt.Errorf("invalid projection %q", string(p))
	}
	return h, v, nil
}

func toColor(c RGB) color.Color {
	return color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}
}

// NewProjectionPlot draws the hits and shape outlines of a scene on one
// plane, hits coloured with the scene colour map.
func NewProjectionPlot(s *Scene, projection Projection) (*plot.Plot, error) {
	h, v, err := projection.axes()
	if err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = string(projection[0])
	p.Y.Label.Text = string(projection[1])
	p.BackgroundColor = toColor(RGB{
		uint8(255 * s.Background[0]),
		uint8(255 * s.Background[1]),
		uint8(255 * s.Background[2]),
	})

	var hs, vs []float64
	for _, shape := range s.Shapes {
		outline := shape.Outline(cylinderResolution)
		xys := make(plotter.XYs, len(outline))
		for i, point := range outline {
			xys[i] = plotter.XY{X: point[h], Y: point[v]}
			hs = append(hs, point[h])
			vs = append(vs, point[v])
		}
		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, fmt.Errorf("error drawing shape %s: %w", shape.Name, err)
		}
		line.LineStyle.Color = color.Gray{Y: uint8(255 * shape.Opacity)}
		line.LineStyle.Width = vg.Points(0.5)
		p.Add(line)
	}

	if s.Cloud.Len() > 0 {
		points := s.DisplayPoints()
		xys := make(plotter.XYs, len(points))
		for i, point := range points {
			xys[i] = plotter.XY{X: point[h], Y: point[v]}
			hs = append(hs, point[h])
			vs = append(vs, point[v])
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("error drawing hits: %w", err)
		}
		values := s.Cloud.Values()
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  toColor(s.ColorMap.Color(values[i])),
				Radius: vg.Points(1.5),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(scatter)
	}

	if len(hs) > 0 {
		p.X.Min, p.X.Max = floats.Min(hs), floats.Max(hs)
		p.Y.Min, p.Y.Max = floats.Min(vs), floats.Max(vs)
	}
	return p, nil
}

// RenderProjection saves the projection to filename. The image format
// follows the file extension.
func RenderProjection(filename string, s *Scene, projection Projection) error {
	p, err := NewProjectionPlot(s, projection)
	if err != nil {
		return err
	}
	width := vg.Length(s.Width) * vg.Inch / 96
	height := vg.Length(s.Height) * vg.Inch / 96
	if err := p.Save(width, height, filename); err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Wrote %s projection to %s", projection, filename), "png")
	}
	return nil
}
