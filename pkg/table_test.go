package evdisplay

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seqsense/pcgol/pc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exampleCloud() PointCloud {
	return PointCloud{
		Event: 0,
		Field: Field{Name: "q", Kind: PerHit},
		Points: []Point{
			{X: 1, Y: 3, Z: 5, Value: 10},
			{X: 2.5, Y: -4, Z: 6e-3, Value: 0.1},
		},
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, exampleCloud()))
	assert.Equal(t, "x,y,z,c\n1,3,5,10\n2.5,-4,0.006,0.1\n", buf.String())
}

func TestCSVRoundTrip(t *testing.T) {
	cloud := exampleCloud()
	cloud.Points = append(cloud.Points, Point{X: 1.0 / 3, Y: 2.0 / 3, Z: -1e-12, Value: 123456.789})

	filename := filepath.Join(t.TempDir(), "points.csv")
	require.NoError(t, WriteCSVFile(filename, cloud))

	f, err := os.Open(filename)
	require.NoError(t, err)
	defer f.Close()

	points, err := ReadCSV(f)
	require.NoError(t, err)
	assert.Equal(t, cloud.Points, points)
}

func TestCSVEmptyCloud(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, PointCloud{}))
	assert.Equal(t, "x,y,z,c\n", buf.String())

	points, err := ReadCSV(&buf)
	require.NoError(t, err)
	assert.Empty(t, points)
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"bad header":   "a,b,c,d\n1,2,3,4\n",
		"short row":    "x,y,z,c\n1,2,3\n",
		"not a number": "x,y,z,c\n1,2,three,4\n",
		"empty":        "",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func TestPCDRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePCD(&buf, exampleCloud()))

	pp, err := pc.Unmarshal(&buf)
	require.NoError(t, err)
	assert.Equal(t, []string{"x", "y", "z", "c"}, pp.Fields)
	require.Equal(t, 2, pp.Points)

	it, err := pp.Vec3Iterator()
	require.NoError(t, err)
	first := it.Vec3()
	assert.InDelta(t, 1, first[0], 1e-6)
	assert.InDelta(t, 3, first[1], 1e-6)
	assert.InDelta(t, 5, first[2], 1e-6)
	it.Incr()
	second := it.Vec3()
	assert.InDelta(t, 2.5, second[0], 1e-6)
	assert.InDelta(t, -4, second[1], 1e-6)
}

func TestNewPCDEmpty(t *testing.T) {
	pp, err := NewPCD(PointCloud{})
	require.NoError(t, err)
	assert.Equal(t, 0, pp.Points)
	assert.Empty(t, pp.Data)
}
