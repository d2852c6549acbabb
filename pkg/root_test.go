package evdisplay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/rtree"
)

func writeExampleRootFile(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "events.root")
	require.NoError(t, CreateSource(filename, exampleDataset()))
	return filename
}

func TestRootRoundTrip(t *testing.T) {
	filename := writeExampleRootFile(t)

	src, err := OpenSource(filename, DefaultLayout())
	require.NoError(t, err)
	defer src.Close()
	require.IsType(t, &RootDataset{}, src)

	memory := exampleDataset()
	require.Equal(t, memory.NumRecords(), src.NumRecords())
	assert.Equal(t, memory.Schema(), src.Schema())

	for record := 0; record < src.NumRecords(); record++ {
		event, err := src.EventIndex(record)
		require.NoError(t, err)
		assert.Equal(t, memory.Records[record].Event, event)

		n, err := src.HitCount(record)
		require.NoError(t, err)
		assert.Equal(t, len(memory.Records[record].X), n)

		hits, err := src.ReadHits(record)
		require.NoError(t, err)
		want, err := memory.ReadHits(record)
		require.NoError(t, err)
		if diff := cmp.Diff(want, hits); diff != "" {
			t.Errorf("record %d hits mismatch (-want +got):\n%s", record, diff)
		}
	}

	_, err = src.HitCount(-1)
	assert.Error(t, err)
}

func TestExtractFromRootFileMatchesMemory(t *testing.T) {
	filename := writeExampleRootFile(t)

	for _, field := range []string{"q", "dq", "xq"} {
		t.Run(field, func(t *testing.T) {
			sel := Selection{Event: 0, Field: field}
			fromFile, err := ExtractFromFile(filename, DefaultLayout(), sel)
			require.NoError(t, err)
			fromMemory, err := ExtractPointCloud(exampleDataset(), sel)
			require.NoError(t, err)
			assert.Equal(t, fromMemory, fromFile)
		})
	}

	_, err := ExtractFromFile(filename, DefaultLayout(), Selection{Event: 0, Field: "nope"})
	var notFound *ErrFieldNotFound
	assert.True(t, errors.As(err, &notFound))
}

// The kind of a field follows the branch type: arrays are per hit,
// numeric scalars per event, whatever their names.
func TestRootFieldKindFromBranchType(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "argon.root")
	f, err := groot.Create(filename)
	require.NoError(t, err)

	var (
		ev      int32
		nq      int32
		xq      []float64
		yq      []float64
		zq      []float64
		pidq    []int32
		dq      float32
		ntracks int32
	)
	wvars := []rtree.WriteVar{
		{Name: "ev", Value: &ev},
		{Name: "nq", Value: &nq},
		{Name: "xq", Value: &xq, Count: "nq"},
		{Name: "yq", Value: &yq, Count: "nq"},
		{Name: "zq", Value: &zq, Count: "nq"},
		{Name: "pidq", Value: &pidq, Count: "nq"},
		{Name: "dq", Value: &dq},
		{Name: "ntracks", Value: &ntracks},
	}
	w, err := rtree.NewWriter(f, "argon", wvars)
	require.NoError(t, err)

	ev, nq = 2, 2
	xq, yq, zq = []float64{1, 2}, []float64{3, 4}, []float64{5, 6}
	pidq = []int32{13, -13}
	dq, ntracks = 7, 1
	_, err = w.Write()
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	src, err := OpenRootDataset(filename, DefaultLayout())
	require.NoError(t, err)
	defer src.Close()

	assert.Equal(t, Schema{
		HitFields:   []string{"pidq", "xq", "yq", "zq"},
		EventFields: []string{"dq", "ntracks"},
	}, src.Schema())

	cloud, err := ExtractPointCloud(src, Selection{Event: 2, Field: "pidq"})
	require.NoError(t, err)
	assert.Equal(t, PerHit, cloud.Field.Kind)
	assert.Equal(t, [][]float64{{1, 3, 5, 13}, {2, 4, 6, -13}}, cloud.Matrix())

	cloud, err = ExtractPointCloud(src, Selection{Event: 2, Field: "dq"})
	require.NoError(t, err)
	assert.Equal(t, PerEvent, cloud.Field.Kind)
	assert.Equal(t, [][]float64{{1, 3, 5, 7}, {2, 4, 6, 7}}, cloud.Matrix())
}

func TestOpenRootDatasetErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := OpenSource(filepath.Join(t.TempDir(), "missing.root"), DefaultLayout())
		var openErr *ErrOpenFile
		assert.True(t, errors.As(err, &openErr))
	})

	t.Run("missing tree", func(t *testing.T) {
		layout := DefaultLayout()
		layout.Group = "lar"
		_, err := OpenSource(writeExampleRootFile(t), layout)
		var groupErr *ErrOpenGroup
		assert.True(t, errors.As(err, &groupErr))
	})

	t.Run("missing coordinate", func(t *testing.T) {
		layout := DefaultLayout()
		layout.Coordinates[2] = "wq"
		_, err := OpenSource(writeExampleRootFile(t), layout)
		var readErr *ErrReadDataset
		assert.True(t, errors.As(err, &readErr))
	})
}

func TestIsRootFile(t *testing.T) {
	assert.True(t, IsRootFile("run/events.root"))
	assert.True(t, IsRootFile("EVENTS.ROOT"))
	assert.False(t, IsRootFile("events.h5"))
	assert.False(t, IsRootFile("root"))
}
