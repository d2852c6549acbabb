package evdisplay

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJet(t *testing.T) {
	tests := []struct {
		t    float64
		want RGB
	}{
		{0, RGB{0, 0, 128}},
		{0.5, RGB{128, 255, 128}},
		{1, RGB{128, 0, 0}},
		{-1, RGB{0, 0, 128}},
		{2, RGB{128, 0, 0}},
		{math.NaN(), RGB{0, 0, 128}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Jet(tt.t), "t=%v", tt.t)
	}
}

func TestJetPalette(t *testing.T) {
	palette := JetPalette(9)
	require.Len(t, palette, 9)
	assert.Equal(t, "#000080", palette[0])
	assert.Equal(t, "#800000", palette[8])
	assert.Len(t, JetPalette(0), 2)
}

func TestParticleColors(t *testing.T) {
	assert.Equal(t, RGB{255, 0, 0}, ParticleColor(2212))
	assert.Equal(t, ParticleColor(13), ParticleColor(-13))
	assert.Equal(t, ParticleColor(211), ParticleColor(-211))
	assert.Equal(t, RGB{200, 200, 200}, ParticleColor(22))
	assert.Equal(t, []int{-321, -211, -13, -11, 11, 13, 211, 321, 2212, 3123}, ParticleCodes())
}

func TestNewColorMap(t *testing.T) {
	t.Run("continuous", func(t *testing.T) {
		cm := NewColorMap("q", false, []float64{2, 4, 6})
		assert.Equal(t, Continuous, cm.Kind)
		assert.Equal(t, 2.0, cm.Min)
		assert.Equal(t, 6.0, cm.Max)
		assert.Equal(t, Jet(0), cm.Color(2))
		assert.Equal(t, Jet(1), cm.Color(6))
	})

	t.Run("particle table", func(t *testing.T) {
		cm := NewColorMap(ParticleField, true, []float64{13, 2212})
		assert.Equal(t, Categorical, cm.Kind)
		assert.False(t, cm.LogScale)
		assert.Equal(t, ParticleColor(2212), cm.Color(2212))
		assert.Equal(t, ParticleColor(13), cm.Color(13.0000001))
	})

	t.Run("log scale", func(t *testing.T) {
		cm := NewColorMap("dq", true, []float64{0, 10, 1000})
		assert.InDelta(t, 1, cm.Scalar(10), 1e-12)
		// non-positive values take the smallest positive value
		assert.InDelta(t, 1, cm.Scalar(0), 1e-12)
		assert.InDelta(t, 1, cm.Scalar(-5), 1e-12)
		assert.InDelta(t, 1, cm.Min, 1e-12)
		assert.InDelta(t, 3, cm.Max, 1e-12)
	})

	t.Run("degenerate range", func(t *testing.T) {
		cm := NewColorMap("dq", false, []float64{7, 7})
		assert.Equal(t, 7.0, cm.Min)
		assert.Equal(t, 8.0, cm.Max)

		empty := NewColorMap("dq", false, nil)
		assert.Equal(t, 0.0, empty.Min)
		assert.Equal(t, 1.0, empty.Max)
	})
}

func TestColorMapKindJSON(t *testing.T) {
	data, err := json.Marshal(Categorical)
	require.NoError(t, err)
	assert.Equal(t, `"categorical"`, string(data))

	var kind ColorMapKind
	require.NoError(t, json.Unmarshal([]byte(`"continuous"`), &kind))
	assert.Equal(t, Continuous, kind)
	assert.Error(t, json.Unmarshal([]byte(`"rainbow"`), &kind))
}
