package evdisplay

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func exampleScene(t *testing.T, opts SceneOptions) *Scene {
	t.Helper()
	s := NewScene(exampleCloud(), opts)
	require.NoError(t, s.AddShapes(ArgonCubeGeometry()[:4]))
	return s
}

func TestNewScene(t *testing.T) {
	s := NewScene(exampleCloud(), SceneOptions{})
	assert.Equal(t, 1920, s.Width)
	assert.Equal(t, 1080, s.Height)
	assert.Equal(t, Vec3{0.4, 0.4, 0.4}, s.Background)
	assert.Equal(t, DefaultCamera(), s.Camera)
	assert.Nil(t, s.Orbit)
	assert.Equal(t, "Event 0, q", s.Title)
	assert.Empty(t, s.Shapes)

	animated := NewScene(exampleCloud(), SceneOptions{Animation: true, OrbitDuration: 30, Width: 800, Height: 600})
	require.NotNil(t, animated.Orbit)
	assert.Equal(t, 30.0, animated.Orbit.Duration)
	assert.Equal(t, 800, animated.Width)
}

func TestSceneAddShapeValidates(t *testing.T) {
	s := NewScene(PointCloud{}, SceneOptions{})
	assert.Error(t, s.AddShape(Shape{Name: "bad", Type: ShapeBox}))
	assert.Empty(t, s.Shapes)
	assert.NoError(t, s.AddShape(CryostatShape()))
	assert.Len(t, s.Shapes, 1)
}

func TestDisplayPoint(t *testing.T) {
	assert.Equal(t, Vec3{1, 3, 2}, DisplayPoint(Point{X: 1, Y: 2, Z: 3, Value: 4}))
}

func TestSceneBounds(t *testing.T) {
	_, _, ok := NewScene(PointCloud{}, SceneOptions{}).Bounds()
	assert.False(t, ok)

	s := exampleScene(t, SceneOptions{})
	lo, hi, ok := s.Bounds()
	require.True(t, ok)
	assert.Equal(t, Vec3{-70, -70, -70}, lo)
	assert.Equal(t, Vec3{70, 70, 70}, hi)

	s.Cloud.Points = append(s.Cloud.Points, Point{X: 100, Y: -200, Z: 300})
	lo, hi, _ = s.Bounds()
	assert.Equal(t, Vec3{-70, -70, -200}, lo)
	assert.Equal(t, Vec3{100, 300, 70}, hi)
}

func TestNewHTMLChart(t *testing.T) {
	s := exampleScene(t, SceneOptions{Animation: true})
	chart := NewHTMLChart(s)
	// one scatter series plus one line per shape
	require.Len(t, chart.MultiSeries, 1+len(s.Shapes))
	assert.Equal(t, "scatter3D", chart.MultiSeries[0].Type)
	assert.Equal(t, "line3D", chart.MultiSeries[1].Type)

	var buf bytes.Buffer
	require.NoError(t, RenderHTML(&buf, s))
	html := buf.String()
	assert.Contains(t, html, "scatter3D")
	assert.Contains(t, html, "line3D")
	assert.Contains(t, html, "autoRotate")
}

func TestVisualMap(t *testing.T) {
	pid := visualMap(NewColorMap(ParticleField, false, []float64{13}))
	assert.Equal(t, "piecewise", pid.Type)
	assert.Len(t, pid.Pieces, len(ParticleCodes()))
	assert.Equal(t, "3", pid.Dimension)

	jet := visualMap(NewColorMap("q", false, []float64{1, 5}))
	assert.Equal(t, "continuous", jet.Type)
	assert.Equal(t, float32(1), jet.Min)
	assert.Equal(t, float32(5), jet.Max)
	require.NotNil(t, jet.InRange)
	assert.Len(t, jet.InRange.Color, 9)
}

func TestRenderHTMLFileEmptyEvent(t *testing.T) {
	s := NewScene(PointCloud{Points: []Point{}}, SceneOptions{})
	require.NoError(t, s.AddShapes(ArgonCubeGeometry()))
	filename := filepath.Join(t.TempDir(), "event.html")
	require.NoError(t, RenderHTMLFile(filename, s))

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "echarts"))
}

func TestProjection(t *testing.T) {
	for _, p := range []Projection{"zy", "xz", "yx"} {
		_, _, err := p.axes()
		assert.NoError(t, err, p)
	}
	for _, p := range []Projection{"", "zz", "xyz", "ab"} {
		_, _, err := p.axes()
		assert.Error(t, err, p)
	}

	h, v, err := DefaultProjection.axes()
	require.NoError(t, err)
	assert.Equal(t, 1, h)
	assert.Equal(t, 2, v)
}

func TestNewProjectionPlot(t *testing.T) {
	s := exampleScene(t, SceneOptions{})
	p, err := NewProjectionPlot(s, "zy")
	require.NoError(t, err)
	assert.Equal(t, "z", p.X.Label.Text)
	assert.Equal(t, "y", p.Y.Label.Text)
	assert.Equal(t, -70.0, p.X.Min)
	assert.Equal(t, 70.0, p.X.Max)

	_, err = NewProjectionPlot(s, "qq")
	assert.Error(t, err)
}

func TestRenderProjection(t *testing.T) {
	s := exampleScene(t, SceneOptions{Width: 400, Height: 300})
	filename := filepath.Join(t.TempDir(), "event.png")
	require.NoError(t, RenderProjection(filename, s, DefaultProjection))

	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestNewValueHistogram(t *testing.T) {
	s := exampleScene(t, SceneOptions{})
	h := NewValueHistogram(s, 10)
	assert.Equal(t, int64(2), h.Entries())
	assert.Equal(t, 10, h.Len())
	assert.Equal(t, 0.1, h.XMin())
	// the minimum and the maximum land in the first and last bins
	assert.Equal(t, 1.0, h.Value(0))
	assert.Equal(t, 1.0, h.Value(9))

	logScale := exampleScene(t, SceneOptions{LogScale: true})
	h = NewValueHistogram(logScale, 0)
	assert.Equal(t, histogramBins, h.Len())
	assert.InDelta(t, -1.0, h.XMin(), 1e-12)
	assert.Equal(t, int64(2), h.Entries())

	empty := NewScene(PointCloud{Field: Field{Name: "dq", Kind: PerEvent}}, SceneOptions{})
	assert.Equal(t, int64(0), NewValueHistogram(empty, 5).Entries())
}

func TestRenderHistogram(t *testing.T) {
	s := exampleScene(t, SceneOptions{LogScale: true})
	assert.Equal(t, "log10(q)", NewHistogramPlot(s).X.Label.Text)

	filename := filepath.Join(t.TempDir(), "values.png")
	require.NoError(t, RenderHistogram(filename, s))
	info, err := os.Stat(filename)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestExportScene(t *testing.T) {
	s := exampleScene(t, SceneOptions{Animation: true})
	var buf bytes.Buffer
	require.NoError(t, ExportScene(&buf, s))

	var out map[string]interface{}
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, "q", out["field"])
	assert.Equal(t, "per-hit", out["kind"])
	assert.Equal(t, 1920, out["width"])
	assert.Len(t, out["shapes"], 4)
	assert.Len(t, out["points"], 2)
	assert.Contains(t, out, "orbit")
	assert.Contains(t, out, "camera")

	colorMap, ok := out["color_map"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "continuous", colorMap["kind"])
}
