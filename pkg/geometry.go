package evdisplay

import (
	"fmt"
	"math"
)

type Vec3 [3]float64

type ShapeType string

const (
	ShapeBox      ShapeType = "box"
	ShapeCylinder ShapeType = "cylinder"
)

type Representation string

const (
	Surface   Representation = "surface"
	Wireframe Representation = "wireframe"
)

// Shape describes one static detector volume in display coordinates.
// Boxes use Size, cylinders use Radius and Height along the display Z axis.
type Shape struct {
	Name           string         `yaml:"name"`
	Layer          string         `yaml:"layer"`
	Type           ShapeType      `yaml:"type"`
	Size           Vec3           `yaml:"size,flow,omitempty"`
	Radius         float64        `yaml:"radius,omitempty"`
	Height         float64        `yaml:"height,omitempty"`
	Center         Vec3           `yaml:"center,flow"`
	Opacity        float64        `yaml:"opacity"`
	Representation Representation `yaml:"representation"`
	Color          Vec3           `yaml:"color,flow"`
}

var white = Vec3{1, 1, 1}

func (s Shape) Validate() error {
	switch s.Type {
	case ShapeBox:
		if s.Size[0] <= 0 || s.Size[1] <= 0 || s.Size[2] <= 0 {
			return fmt.Errorf("shape %q: box size must be positive, got %v", s.Name, s.Size)
		}
	case ShapeCylinder:
		if s.Radius <= 0 || s.Height <= 0 {
			return fmt.Errorf("shape %q: cylinder radius and height must be positive", s.Name)
		}
	default:
		return fmt.Errorf("shape %q: unknown type %q", s.Name, s.Type)
	}
	if s.Opacity < 0 || s.Opacity > 1 {
		return fmt.Errorf("shape %q: opacity %g out of [0, 1]", s.Name, s.Opacity)
	}
	switch s.Representation {
	case Surface, Wireframe:
	default:
		return fmt.Errorf("shape %q: unknown representation %q", s.Name, s.Representation)
	}
	return nil
}

// Bounds returns the axis-aligned bounding box of the shape.
func (s Shape) Bounds() (Vec3, Vec3) {
	half := Vec3{s.Size[0] / 2, s.Size[1] / 2, s.Size[2] / 2}
	if s.Type == ShapeCylinder {
		half = Vec3{s.Radius, s.Radius, s.Height / 2}
	}
	var lo, hi Vec3
	for i := range lo {
		lo[i] = s.Center[i] - half[i]
		hi[i] = s.Center[i] + half[i]
	}
	return lo, hi
}

// Outline returns a polyline that runs over every edge of the shape.
func (s Shape) Outline(resolution int) []Vec3 {
	if s.Type == ShapeCylinder {
		return s.cylinderOutline(resolution)
	}
	lo, hi := s.Bounds()
	corners := [8]Vec3{
		{lo[0], lo[1], lo[2]},
		{hi[0], lo[1], lo[2]},
		{hi[0], hi[1], lo[2]},
		{lo[0], hi[1], lo[2]},
		{lo[0], lo[1], hi[2]},
		{hi[0], lo[1], hi[2]},
		{hi[0], hi[1], hi[2]},
		{lo[0], hi[1], hi[2]},
	}
	// Bottom loop, then the top face with the vertical edges walked twice
	path := []int{0, 1, 2, 3, 0, 4, 5, 1, 5, 6, 2, 6, 7, 3, 7, 4}
	points := make([]Vec3, len(path))
	for i, c := range path {
		points[i] = corners[c]
	}
	return points
}

func (s Shape) cylinderOutline(resolution int) []Vec3 {
	if resolution < 3 {
		resolution = 3
	}
	circle := func(z float64) []Vec3 {
		points := make([]Vec3, resolution+1)
		for i := 0; i <= resolution; i++ {
			phi := 2 * math.Pi * float64(i) / float64(resolution)
			points[i] = Vec3{
				s.Center[0] + s.Radius*math.Cos(phi),
				s.Center[1] + s.Radius*math.Sin(phi),
				z,
			}
		}
		return points
	}
	points := circle(s.Center[2] - s.Height/2)
	return append(points, circle(s.Center[2]+s.Height/2)...)
}

// GeometryOptions selects the optional volumes of the built-in layout.
type GeometryOptions struct {
	Cryostat     bool
	NearDetector bool
	FarDetector  bool
}

func boxLayer(layer string, n int, size Vec3, center func(i int) Vec3, opacity float64, repr Representation) []Shape {
	shapes := make([]Shape, n)
	for i := range shapes {
		shapes[i] = Shape{
			Name:           fmt.Sprintf("%s-%d", layer, i),
			Layer:          layer,
			Type:           ShapeBox,
			Size:           size,
			Center:         center(i),
			Opacity:        opacity,
			Representation: repr,
			Color:          white,
		}
	}
	return shapes
}

// ArgonCubeGeometry is the 2x2 ArgonCube demonstrator with its downstream
// tracker and calorimeters. Lengths in cm.
func ArgonCubeGeometry() []Shape {
	var shapes []Shape

	// Modules
	shapes = append(shapes, boxLayer("module", 4, Vec3{70, 70, 140}, func(i int) Vec3 {
		return Vec3{-35 + float64(i%2)*70, -35 + math.Floor(float64(i)/2)*70, 0}
	}, 1, Wireframe)...)

	// TPCs, two per module
	shapes = append(shapes, boxLayer("tpc", 8, Vec3{33, 68, 138}, func(i int) Vec3 {
		return Vec3{-52.5 + float64(i%4)*35, -35 + math.Floor(float64(i)/4)*70, 0}
	}, 0.2, Surface)...)

	shapes = append(shapes, boxLayer("tracker", 12, Vec3{140, 4, 140}, func(i int) Vec3 {
		return Vec3{0, 117.5 + float64(i)*4, 0}
	}, 0.2, Surface)...)

	shapes = append(shapes, boxLayer("ecal-scintillator", 20, Vec3{140, 0.2, 140}, func(i int) Vec3 {
		return Vec3{0, 163.6 + float64(i)*2.2, 0}
	}, 0.5, Surface)...)
	shapes = append(shapes, boxLayer("ecal-absorber", 20, Vec3{140, 2, 140}, func(i int) Vec3 {
		return Vec3{0, 164.7 + float64(i)*2.2, 0}
	}, 0.2, Surface)...)

	shapes = append(shapes, boxLayer("hcal-scintillator", 20, Vec3{140, 2.54, 140}, func(i int) Vec3 {
		return Vec3{0, 208.77 + float64(i)*4.54, 0}
	}, 0.5, Surface)...)
	shapes = append(shapes, boxLayer("hcal-absorber", 20, Vec3{140, 2, 140}, func(i int) Vec3 {
		return Vec3{0, 211.04 + float64(i)*4.54, 0}
	}, 0.2, Surface)...)

	return shapes
}

func CryostatShape() Shape {
	return Shape{
		Name:           "cryostat-0",
		Layer:          "cryostat",
		Type:           ShapeCylinder,
		Radius:         94,
		Height:         140,
		Opacity:        0.2,
		Representation: Wireframe,
		Color:          white,
	}
}

func NearDetectorShapes() []Shape {
	return boxLayer("dune-nd", 1, Vec3{700, 500, 300}, func(int) Vec3 {
		return Vec3{0, 250 - 70, 0}
	}, 1, Wireframe)
}

func FarDetectorShapes() []Shape {
	centers := []Vec3{
		{-1550, 3100 - 70, 0},
		{1550, 3100 - 70, 0},
		{-1550, 10000, 0},
		{1550, 10000, 0},
	}
	return boxLayer("dune-fd", len(centers), Vec3{1400, 6200, 1400}, func(i int) Vec3 {
		return centers[i]
	}, 1, Wireframe)
}

// OptionalShapes returns the volumes enabled in opts.
func OptionalShapes(opts GeometryOptions) []Shape {
	var shapes []Shape
	if opts.Cryostat {
		shapes = append(shapes, CryostatShape())
	}
	if opts.NearDetector {
		shapes = append(shapes, NearDetectorShapes()...)
	}
	if opts.FarDetector {
		shapes = append(shapes, FarDetectorShapes()...)
	}
	return shapes
}
