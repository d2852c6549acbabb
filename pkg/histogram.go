package evdisplay

import (
	"fmt"
	"image/color"
	"math"

	"go-hep.org/x/hep/hbook"
	"go-hep.org/x/hep/hplot"
	"gonum.org/v1/plot/vg"
)

const histogramBins = 50

// NewValueHistogram fills the colour values of the scene hits, on the
// colour map scale, over the colour map range.
func NewValueHistogram(s *Scene, bins int) *hbook.H1D {
	if bins < 1 {
		bins = histogramBins
	}
	cm := s.ColorMap
	// Upper edge is exclusive, keep the maximum in the last bin
	h := hbook.NewH1D(bins, cm.Min, math.Nextafter(cm.Max, math.Inf(1)))
	for _, p := range s.Cloud.Points {
		h.Fill(cm.Scalar(p.Value), 1)
	}
	return h
}

func NewHistogramPlot(s *Scene) *hplot.Plot {
	h := NewValueHistogram(s, histogramBins)

	p := hplot.New()
	p.Title.Text = s.Title
	p.X.Label.Text = s.Cloud.Field.Name
	if s.ColorMap.LogScale {
		p.X.Label.Text = fmt.Sprintf("log10(%s)", s.Cloud.Field.Name)
	}
	p.Y.Label.Text = "hits"

	hh := hplot.NewH1D(h)
	hh.FillColor = color.NRGBA{R: 102, G: 102, B: 102, A: 128}
	hh.LineStyle.Color = color.Black
	p.Add(hh)
	return p
}

// RenderHistogram writes the colour value histogram, with the image format
// taken from the file extension.
func RenderHistogram(filename string, s *Scene) error {
	p := NewHistogramPlot(s)
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Wrote %s histogram to %s", s.Cloud.Field.Name, filename), "hist")
	}
	return nil
}
