package evdisplay

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

const maxChunk = 32768

// CreateDataset writes a memory dataset with the HDF5Dataset layout.
// Records must all carry the same fields.
func CreateDataset(filename string, m *MemoryDataset) (err error) {
	if err := m.validate(); err != nil {
		return err
	}

	f, err := hdf5.CreateFile(filename, hdf5.F_ACC_TRUNC)
	if err != nil {
		return &ErrOpenFile{Filename: filename, Err: err}
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("error closing file: %w", closeErr))
		}
	}()

	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Creating %s with %d records", filename, m.NumRecords())
		logger.Info(message, "writer")
	}

	layout := m.Layout
	group, err := f.CreateGroup(layout.Group)
	if err != nil {
		return fmt.Errorf("error creating group %q: %w", layout.Group, err)
	}
	defer group.Close()

	events := make([]int32, len(m.Records))
	hitCounts := make([]int32, len(m.Records))
	for i, r := range m.Records {
		events[i] = int32(r.Event)
		hitCounts[i] = int32(len(r.X))
	}
	if err := writeColumn(group, layout.EventIndex, hdf5.T_NATIVE_INT32, events); err != nil {
		return err
	}
	if err := writeColumn(group, layout.HitCount, hdf5.T_NATIVE_INT32, hitCounts); err != nil {
		return err
	}

	schema := m.Schema()

	hits, err := group.CreateGroup(layout.HitsGroup)
	if err != nil {
		return fmt.Errorf("error creating group %q: %w", layout.HitsGroup, err)
	}
	defer hits.Close()
	for _, name := range schema.HitFields {
		field := Field{Name: name, Kind: PerHit}
		column := make([]float64, 0)
		for i := range m.Records {
			values, err := m.ReadField(i, field)
			if err != nil {
				return err
			}
			column = append(column, values...)
		}
		if err := writeColumn(hits, name, hdf5.T_NATIVE_DOUBLE, column); err != nil {
			return err
		}
	}

	if len(schema.EventFields) == 0 {
		return nil
	}
	event, err := group.CreateGroup(layout.EventGroup)
	if err != nil {
		return fmt.Errorf("error creating group %q: %w", layout.EventGroup, err)
	}
	defer event.Close()
	for _, name := range schema.EventFields {
		field := Field{Name: name, Kind: PerEvent}
		column := make([]float64, len(m.Records))
		for i := range m.Records {
			values, err := m.ReadField(i, field)
			if err != nil {
				return err
			}
			column[i] = values[0]
		}
		if err := writeColumn(event, name, hdf5.T_NATIVE_DOUBLE, column); err != nil {
			return err
		}
	}
	return nil
}

func writeColumn[T any](group *hdf5.Group, name string, dtype *hdf5.Datatype, data []T) error {
	dims := []uint{uint(len(data))}
	unlimitedDims := -1 // H5S_UNLIMITED is -1L
	maxDims := []uint{uint(unlimitedDims)}
	filespace, err := hdf5.CreateSimpleDataspace(dims, maxDims)
	if err != nil {
		return fmt.Errorf("error creating dataspace for %q: %w", name, err)
	}
	defer filespace.Close()

	plist, err := hdf5.NewPropList(hdf5.P_DATASET_CREATE)
	if err != nil {
		return fmt.Errorf("error creating property list for %q: %w", name, err)
	}
	defer plist.Close()

	chunk := len(data)
	if chunk < 1 {
		chunk = 1
	}
	if chunk > maxChunk {
		chunk = maxChunk
	}
	if err := plist.SetChunk([]uint{uint(chunk)}); err != nil {
		return fmt.Errorf("error setting chunk for %q: %w", name, err)
	}
	if err := plist.SetDeflate(configuration.CompressionLevel); err != nil {
		return fmt.Errorf("error setting compression for %q: %w", name, err)
	}

	dset, err := group.CreateDatasetWith(name, dtype, filespace, plist)
	if err != nil {
		return fmt.Errorf("error creating dataset %q: %w", name, err)
	}
	defer dset.Close()

	if len(data) == 0 {
		return nil
	}
	if err := dset.Write(&data); err != nil {
		return fmt.Errorf("error writing dataset %q: %w", name, err)
	}
	return nil
}
