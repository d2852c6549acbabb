package evdisplay

import (
	"encoding/json"
	"fmt"
	"math"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type ColorMapKind int

const (
	Continuous ColorMapKind = iota
	Categorical
)

func (k ColorMapKind) String() string {
	switch k {
	case Continuous:
		return "continuous"
	case Categorical:
		return "categorical"
	default:
		return "unknown"
	}
}

func (k ColorMapKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *ColorMapKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	switch s {
	case "continuous":
		*k = Continuous
	case "categorical":
		*k = Categorical
	default:
		return fmt.Errorf("invalid colour map kind %q", s)
	}
	return nil
}

func (k ColorMapKind) MarshalYAML() (interface{}, error) {
	return k.String(), nil
}

type RGB [3]uint8

func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c[0], c[1], c[2])
}

// ParticleField is the hit field holding PDG codes.
const ParticleField = "pidq"

var (
	unknownParticle = RGB{200, 200, 200}

	particleColors = map[int]RGB{
		-321: {0, 0, 255},   // K-
		-211: {0, 255, 255}, // pi-
		-13:  {255, 0, 255}, // mu+
		-11:  {0, 255, 0},   // e+
		11:   {255, 215, 0}, // e-
		13:   {255, 0, 255}, // mu-
		211:  {0, 255, 255}, // pi+
		321:  {0, 0, 255},   // K+
		2212: {255, 0, 0},   // p
		3123: {0, 0, 0},
	}
)

// ParticleColor returns the colour of a PDG code, grey when not listed.
func ParticleColor(pid int) RGB {
	if c, ok := particleColors[pid]; ok {
		return c
	}
	return unknownParticle
}

// ParticleCodes lists the PDG codes with an assigned colour, ascending.
func ParticleCodes() []int {
	codes := maps.Keys(particleColors)
	slices.Sort(codes)
	return codes
}

// Jet maps t in [0, 1] to the classic blue-cyan-yellow-red ramp.
func Jet(t float64) RGB {
	if math.IsNaN(t) {
		t = 0
	}
	t = clamp(t, 0, 1)
	channel := func(offset float64) uint8 {
		return uint8(math.Round(255 * clamp(1.5-math.Abs(4*t-offset), 0, 1)))
	}
	return RGB{channel(3), channel(2), channel(1)}
}

// JetPalette samples Jet at n evenly spaced points.
func JetPalette(n int) []string {
	if n < 2 {
		n = 2
	}
	palette := make([]string, n)
	for i := range palette {
		palette[i] = Jet(float64(i) / float64(n-1)).Hex()
	}
	return palette
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

// ColorMap maps point values to colours. Min and Max are in the scalar
// space, after the log transform when LogScale is set.
type ColorMap struct {
	Field    string       `json:"field" yaml:"field"`
	Kind     ColorMapKind `json:"kind" yaml:"kind"`
	LogScale bool         `json:"log_scale" yaml:"log_scale"`
	Min      float64      `json:"min" yaml:"min"`
	Max      float64      `json:"max" yaml:"max"`

	floor float64
}

// NewColorMap picks the particle table for the PDG field and a jet ramp
// rescaled to the data range otherwise.
func NewColorMap(field string, logScale bool, values []float64) ColorMap {
	cm := ColorMap{Field: field, LogScale: logScale}
	if field == ParticleField {
		cm.Kind = Categorical
		cm.LogScale = false
	}

	cm.floor = math.Inf(1)
	for _, v := range values {
		if v > 0 && v < cm.floor {
			cm.floor = v
		}
	}
	if math.IsInf(cm.floor, 1) {
		cm.floor = 1
	}

	cm.Min, cm.Max = math.Inf(1), math.Inf(-1)
	for _, v := range values {
		s := cm.Scalar(v)
		cm.Min = math.Min(cm.Min, s)
		cm.Max = math.Max(cm.Max, s)
	}
	if len(values) == 0 {
		cm.Min, cm.Max = 0, 1
	}
	if cm.Max == cm.Min {
		cm.Max = cm.Min + 1
	}
	return cm
}

// Scalar is the value the colour is looked up with. In log scale
// non-positive values take the smallest positive value seen.
func (cm ColorMap) Scalar(v float64) float64 {
	if !cm.LogScale || cm.Kind == Categorical {
		return v
	}
	if v <= 0 {
		v = cm.floor
		if v <= 0 {
			v = 1
		}
	}
	return math.Log10(v)
}

func (cm ColorMap) Color(v float64) RGB {
	if cm.Kind == Categorical {
		return ParticleColor(int(math.Round(v)))
	}
	return Jet((cm.Scalar(v) - cm.Min) / (cm.Max - cm.Min))
}
