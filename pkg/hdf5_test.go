package evdisplay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeExampleFile(t *testing.T) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "events.h5")
	require.NoError(t, CreateDataset(filename, exampleDataset()))
	return filename
}

func TestHDF5RoundTrip(t *testing.T) {
	filename := writeExampleFile(t)

	src, err := OpenDataset(filename, DefaultLayout())
	require.NoError(t, err)
	defer src.Close()

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

	_, err = src.EventIndex(src.NumRecords())
	assert.Error(t, err)
}

func TestExtractFromFileMatchesMemory(t *testing.T) {
	filename := writeExampleFile(t)

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
}

func TestExtractFromFileErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := ExtractFromFile(filepath.Join(t.TempDir(), "missing.h5"), DefaultLayout(), DefaultSelection())
		var openErr *ErrOpenFile
		assert.True(t, errors.As(err, &openErr))
	})

	t.Run("missing group", func(t *testing.T) {
		layout := DefaultLayout()
		layout.Group = "lar"
		_, err := ExtractFromFile(writeExampleFile(t), layout, DefaultSelection())
		var groupErr *ErrOpenGroup
		assert.True(t, errors.As(err, &groupErr))
	})

	t.Run("missing field", func(t *testing.T) {
		_, err := ExtractFromFile(writeExampleFile(t), DefaultLayout(), Selection{Event: 0, Field: "energy"})
		var notFound *ErrFieldNotFound
		assert.True(t, errors.As(err, &notFound))
	})
}

func TestHDF5WithoutEventGroup(t *testing.T) {
	m := NewMemoryDataset(DefaultLayout())
	m.Append(MemoryRecord{
		Event:     3,
		X:         []float64{1},
		Y:         []float64{2},
		Z:         []float64{3},
		HitFields: map[string][]float64{"q": {4}},
	})
	filename := filepath.Join(t.TempDir(), "hits_only.h5")
	require.NoError(t, CreateDataset(filename, m))

	cloud, err := ExtractFromFile(filename, DefaultLayout(), Selection{Event: 3, Field: "q"})
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 2, 3, 4}}, cloud.Matrix())

	_, err = ExtractFromFile(filename, DefaultLayout(), Selection{Event: 3, Field: "dq"})
	assert.Error(t, err)
}

func TestHDF5EmptyRecord(t *testing.T) {
	m := NewMemoryDataset(DefaultLayout())
	m.Append(MemoryRecord{Event: 0, EventFields: map[string]float64{"dq": 1}})
	m.Append(MemoryRecord{
		Event:       0,
		X:           []float64{1},
		Y:           []float64{1},
		Z:           []float64{1},
		EventFields: map[string]float64{"dq": 5},
	})
	filename := filepath.Join(t.TempDir(), "empty_record.h5")
	require.NoError(t, CreateDataset(filename, m))

	cloud, err := ExtractFromFile(filename, DefaultLayout(), DefaultSelection())
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{1, 1, 1, 5}}, cloud.Matrix())
}
