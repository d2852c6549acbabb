package evdisplay

import "fmt"

// Scene is everything a renderer needs to draw one event. Shapes and the
// camera live in display coordinates, points are stored as read.
type Scene struct {
	Title      string     `yaml:"title"`
	Cloud      PointCloud `yaml:"-"`
	Shapes     []Shape    `yaml:"shapes"`
	ColorMap   ColorMap   `yaml:"color_map"`
	Camera     Camera     `yaml:"camera"`
	Orbit      *Orbit     `yaml:"orbit,omitempty"`
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background Vec3       `yaml:"background,flow"`
}

type SceneOptions struct {
	LogScale      bool
	Animation     bool
	OrbitDuration float64
	Width         int
	Height        int
}

const (
	defaultWidth  = 1920
	defaultHeight = 1080
)

// NewScene builds an empty-geometry scene around a point cloud with the
// default camera.
func NewScene(cloud PointCloud, opts SceneOptions) *Scene {
	s := &Scene{
		Title:      fmt.Sprintf("Event %d, %s", cloud.Event, cloud.Field.Name),
		Cloud:      cloud,
		Shapes:     make([]Shape, 0),
		ColorMap:   NewColorMap(cloud.Field.Name, opts.LogScale, cloud.Values()),
		Camera:     DefaultCamera(),
		Width:      opts.Width,
		Height:     opts.Height,
		Background: Vec3{0.4, 0.4, 0.4},
	}
	if s.Width <= 0 {
		s.Width = defaultWidth
	}
	if s.Height <= 0 {
		s.Height = defaultHeight
	}
	if opts.Animation {
		orbit := DefaultOrbit(opts.OrbitDuration)
		s.Orbit = &orbit
	}
	return s
}

func (s *Scene) AddShape(shape Shape) error {
	if err := shape.Validate(); err != nil {
		return err
	}
	s.Shapes = append(s.Shapes, shape)
	return nil
}

func (s *Scene) AddShapes(shapes []Shape) error {
	for _, shape := range shapes {
		if err := s.AddShape(shape); err != nil {
			return err
		}
	}
	return nil
}

// DisplayPoint maps a hit to display axes: X is x, Y is z (beam), Z is y
// (vertical).
func DisplayPoint(p Point) Vec3 {
	return Vec3{p.X, p.Z, p.Y}
}

// DisplayPoints returns the cloud in display coordinates.
func (s *Scene) DisplayPoints() []Vec3 {
	points := make([]Vec3, len(s.Cloud.Points))
	for i, p := range s.Cloud.Points {
		points[i] = DisplayPoint(p)
	}
	return points
}

// Bounds of all points and shapes in display coordinates. ok is false for
// an empty scene.
func (s *Scene) Bounds() (lo, hi Vec3, ok bool) {
	extend := func(v Vec3) {
		if !ok {
			lo, hi, ok = v, v, true
			return
		}
		for i := range v {
			if v[i] < lo[i] {
				lo[i] = v[i]
			}
			if v[i] > hi[i] {
				hi[i] = v[i]
			}
		}
	}
	for _, p := range s.DisplayPoints() {
		extend(p)
	}
	for _, shape := range s.Shapes {
		shapeLo, shapeHi := shape.Bounds()
		extend(shapeLo)
		extend(shapeHi)
	}
	return lo, hi, ok
}
