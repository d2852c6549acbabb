package evdisplay

import "math"

type Camera struct {
	Position      Vec3    `json:"position" yaml:"position,flow"`
	FocalPoint    Vec3    `json:"focal_point" yaml:"focal_point,flow"`
	ViewUp        Vec3    `json:"view_up" yaml:"view_up,flow"`
	ParallelScale float64 `json:"parallel_scale" yaml:"parallel_scale"`
}

func DefaultCamera() Camera {
	return Camera{
		Position:      Vec3{1500, 250, 0},
		FocalPoint:    Vec3{0, 250, 0},
		ViewUp:        Vec3{0, 0, 1},
		ParallelScale: 1,
	}
}

// Distance between the camera and its focal point.
func (c Camera) Distance() float64 {
	var sum float64
	for i := range c.Position {
		d := c.Position[i] - c.FocalPoint[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

type KeyFrame struct {
	Time     float64 `json:"time" yaml:"time"`
	Position Vec3    `json:"position" yaml:"position,flow"`
}

// Orbit is a camera animation on a closed path around the focal point.
type Orbit struct {
	Duration  float64    `json:"duration" yaml:"duration"`
	PlayMode  string     `json:"play_mode" yaml:"play_mode"`
	Closed    bool       `json:"closed" yaml:"closed"`
	Path      []Vec3     `json:"path" yaml:"path,flow"`
	FocalPath []Vec3     `json:"focal_path" yaml:"focal_path,flow"`
	ViewUp    Vec3       `json:"view_up" yaml:"view_up,flow"`
	KeyFrames []KeyFrame `json:"key_frames" yaml:"key_frames"`
}

const (
	orbitRadius    = 1500
	orbitPoints    = 7
	orbitStep      = 51 // degrees
	orbitDuration  = 20 // seconds
	keyFrameRadius = 2732.0508075688776
)

// OrbitPath returns n points on a horizontal circle of the given radius,
// stepping step degrees from +X.
func OrbitPath(radius float64, n int, step float64) []Vec3 {
	path := make([]Vec3, n)
	for i := range path {
		phi := float64(i) * step * math.Pi / 180
		path[i] = Vec3{radius * math.Cos(phi), radius * math.Sin(phi), 0}
	}
	return path
}

// DefaultOrbit is the real-time orbit used by the animation toggle.
// A non-positive duration selects the default of 20 s.
func DefaultOrbit(duration float64) Orbit {
	if duration <= 0 {
		duration = orbitDuration
	}
	return Orbit{
		Duration:  duration,
		PlayMode:  "real-time",
		Closed:    true,
		Path:      OrbitPath(orbitRadius, orbitPoints, orbitStep),
		FocalPath: []Vec3{{0, 0, 0}},
		ViewUp:    Vec3{0, 0, 1},
		KeyFrames: []KeyFrame{
			{Time: 0, Position: Vec3{keyFrameRadius, 0, 0}},
			{Time: 1, Position: Vec3{keyFrameRadius, 0, 0}},
		},
	}
}

// RotateSpeed is the angular speed in degrees per second for one full
// revolution per Duration.
func (o Orbit) RotateSpeed() float64 {
	if o.Duration <= 0 {
		return 0
	}
	return 360 / o.Duration
}
