package main

import (
	"math"
	"path/filepath"
	"testing"

	evdisplay "github.com/argoncube/evdisplay_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() synthConfig {
	return synthConfig{Events: 4, Tracks: 2, Step: 0.5, Smearing: 0.1, Seed: 7}
}

func TestGenerate(t *testing.T) {
	m := generate(testConfig(), evdisplay.DefaultLayout())
	require.Equal(t, 8, m.NumRecords())

	for i, r := range m.Records {
		assert.Equal(t, i/2, r.Event)
		n := len(r.X)
		assert.Len(t, r.Y, n)
		assert.Len(t, r.Z, n)
		assert.Len(t, r.HitFields["q"], n)
		assert.Len(t, r.HitFields[evdisplay.ParticleField], n)

		var total float64
		for j := 0; j < n; j++ {
			for _, v := range []float64{r.X[j], r.Y[j], r.Z[j]} {
				assert.Less(t, math.Abs(v), float64(activeHalfSize))
			}
			assert.GreaterOrEqual(t, r.HitFields["q"][j], 0.0)
			total += r.HitFields["q"][j]
		}
		assert.InDelta(t, total, r.EventFields["dq"], 1e-9)
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	a := generate(testConfig(), evdisplay.DefaultLayout())
	b := generate(testConfig(), evdisplay.DefaultLayout())
	assert.Equal(t, a, b)

	cfg := testConfig()
	cfg.Seed = 8
	c := generate(cfg, evdisplay.DefaultLayout())
	assert.NotEqual(t, a, c)
}

func TestGenerateDoesNotDependOnWorkers(t *testing.T) {
	cfg := testConfig()
	cfg.Workers = 1
	serial := generate(cfg, evdisplay.DefaultLayout())
	cfg.Workers = 3
	parallel := generate(cfg, evdisplay.DefaultLayout())
	assert.Equal(t, serial, parallel)
}

func TestGenerateNoEvents(t *testing.T) {
	cfg := testConfig()
	cfg.Events = 0
	assert.Equal(t, 0, generate(cfg, evdisplay.DefaultLayout()).NumRecords())
}

func TestGeneratedEventsCanBeExtracted(t *testing.T) {
	m := generate(testConfig(), evdisplay.DefaultLayout())
	cloud, err := evdisplay.ExtractPointCloud(m, evdisplay.Selection{Event: 1, Field: "pidq"})
	require.NoError(t, err)
	assert.Equal(t, len(m.Records[2].X)+len(m.Records[3].X), cloud.Len())
	assert.Equal(t, evdisplay.PerHit, cloud.Field.Kind)
}

func TestGeneratedRootFile(t *testing.T) {
	m := generate(testConfig(), evdisplay.DefaultLayout())
	filename := filepath.Join(t.TempDir(), "synth.root")
	require.NoError(t, evdisplay.CreateSource(filename, m))

	sel := evdisplay.Selection{Event: 2, Field: "dq"}
	fromFile, err := evdisplay.ExtractFromFile(filename, evdisplay.DefaultLayout(), sel)
	require.NoError(t, err)
	fromMemory, err := evdisplay.ExtractPointCloud(m, sel)
	require.NoError(t, err)
	assert.Equal(t, fromMemory, fromFile)
	assert.Equal(t, evdisplay.PerEvent, fromFile.Field.Kind)
}
