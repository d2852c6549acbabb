package main

import (
	"bytes"
	"strings"
	"testing"

	evdisplay "github.com/argoncube/evdisplay_go/pkg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintSource(t *testing.T) {
	m := evdisplay.NewMemoryDataset(evdisplay.DefaultLayout())
	m.Append(evdisplay.MemoryRecord{
		Event:       4,
		X:           []float64{1, 2},
		Y:           []float64{1, 2},
		Z:           []float64{1, 2},
		HitFields:   map[string][]float64{"q": {1, 1}},
		EventFields: map[string]float64{"dq": 2},
	})
	m.Append(evdisplay.MemoryRecord{
		Event:       5,
		X:           []float64{3},
		Y:           []float64{3},
		Z:           []float64{3},
		HitFields:   map[string][]float64{"q": {1}},
		EventFields: map[string]float64{"dq": 1},
	})

	var buf bytes.Buffer
	require.NoError(t, printSource(&buf, m, true))
	out := buf.String()

	assert.Contains(t, out, "Records:")
	assert.Regexp(t, `Field:\s+q\s+per-hit`, out)
	assert.Regexp(t, `Field:\s+dq\s+per-event`, out)
	assert.Regexp(t, `(?m)^0\s+4\s+2\s*$`, out)
	assert.Regexp(t, `(?m)^1\s+5\s+1\s*$`, out)
	assert.Regexp(t, `(?m)^total\s+3\s*$`, out)

	buf.Reset()
	require.NoError(t, printSource(&buf, m, false))
	assert.False(t, strings.Contains(buf.String(), "total"))
}
