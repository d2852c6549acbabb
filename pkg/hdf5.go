package evdisplay

import (
	"errors"
	"fmt"

	"github.com/jmbenlloch/go-hdf5"
)

// HDF5Dataset reads the event table of an HDF5 file:
//
//	/<group>/<event_index>     int32   [records]
//	/<group>/<hit_count>       int32   [records]
//	/<group>/<hits>/<field>    float64 [sum of hit counts]
//	/<group>/<event>/<field>   float64 [records]
//
// Per-hit arrays hold the records back to back in storage order.
type HDF5Dataset struct {
	File       *hdf5.File
	Filename   string
	Layout     Layout
	Group      *hdf5.Group
	HitsGroup  *hdf5.Group
	EventGroup *hdf5.Group
	events     []int32
	hitCounts  []int32
	offsets    []uint
	totalHits  uint
	schema     Schema
	datasets   map[string]*hdf5.Dataset
}

func OpenDataset(filename string, layout Layout) (*HDF5Dataset, error) {
	f, err := hdf5.OpenFile(filename, hdf5.F_ACC_RDONLY)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	d := &HDF5Dataset{
		File:     f,
		Filename: filename,
		Layout:   layout,
		datasets: make(map[string]*hdf5.Dataset),
	}
	if err := d.open(); err != nil {
		d.Close()
		return nil, err
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Opened %s: %d records, %d hits", filename, len(d.events), d.totalHits)
		logger.Info(message, "hdf5")
	}
	return d, nil
}

func (d *HDF5Dataset) open() error {
	var err error
	d.Group, err = d.File.OpenGroup(d.Layout.Group)
	if err != nil {
		return &ErrOpenGroup{GroupName: d.Layout.Group, Err: err}
	}

	d.events, err = readInt32Dataset(d.Group, d.Layout.EventIndex)
	if err != nil {
		return err
	}
	d.hitCounts, err = readInt32Dataset(d.Group, d.Layout.HitCount)
	if err != nil {
		return err
	}
	if len(d.events) != len(d.hitCounts) {
		return &ErrReadDataset{
			DatasetName: d.Layout.HitCount,
			Err:         fmt.Errorf("%d hit counts for %d records", len(d.hitCounts), len(d.events)),
		}
	}

	d.offsets = make([]uint, len(d.hitCounts))
	var offset uint
	for i, n := range d.hitCounts {
		if n < 0 {
			return &ErrReadDataset{DatasetName: d.Layout.HitCount, Err: fmt.Errorf("negative hit count in record %d", i)}
		}
		d.offsets[i] = offset
		offset += uint(n)
	}
	d.totalHits = offset

	members, err := listObjects(d.Group)
	if err != nil {
		return &ErrOpenGroup{GroupName: d.Layout.Group, Err: err}
	}

	hitFields := make(map[string]bool)
	eventFields := make(map[string]bool)
	if !members[d.Layout.HitsGroup] {
		return &ErrOpenGroup{GroupName: d.Layout.HitsGroup, Err: errors.New("group not found")}
	}
	d.HitsGroup, err = d.Group.OpenGroup(d.Layout.HitsGroup)
	if err != nil {
		return &ErrOpenGroup{GroupName: d.Layout.HitsGroup, Err: err}
	}
	names, err := listObjects(d.HitsGroup)
	if err != nil {
		return &ErrOpenGroup{GroupName: d.Layout.HitsGroup, Err: err}
	}
	for name := range names {
		hitFields[name] = true
	}

	// Per-event fields are optional
	if members[d.Layout.EventGroup] {
		d.EventGroup, err = d.Group.OpenGroup(d.Layout.EventGroup)
		if err != nil {
			return &ErrOpenGroup{GroupName: d.Layout.EventGroup, Err: err}
		}
		names, err := listObjects(d.EventGroup)
		if err != nil {
			return &ErrOpenGroup{GroupName: d.Layout.EventGroup, Err: err}
		}
		for name := range names {
			eventFields[name] = true
		}
	}
	d.schema = newSchema(hitFields, eventFields)

	for _, name := range d.Layout.Coordinates {
		if !hitFields[name] {
			return &ErrReadDataset{DatasetName: name, Err: errors.New("coordinate dataset not found")}
		}
	}
	return nil
}

func listObjects(group *hdf5.Group) (map[string]bool, error) {
	n, err := group.NumObjects()
	if err != nil {
		return nil, err
	}
	names := make(map[string]bool, n)
	for i := uint(0); i < n; i++ {
		name, err := group.ObjectNameByIndex(i)
		if err != nil {
			return nil, err
		}
		names[name] = true
	}
	return names, nil
}

func (d *HDF5Dataset) NumRecords() int {
	return len(d.events)
}

func (d *HDF5Dataset) checkRecord(record int) error {
	if record < 0 || record >= len(d.events) {
		return fmt.Errorf("record %d out of range [0, %d)", record, len(d.events))
	}
	return nil
}

func (d *HDF5Dataset) EventIndex(record int) (int, error) {
	if err := d.checkRecord(record); err != nil {
		return 0, err
	}
	return int(d.events[record]), nil
}

func (d *HDF5Dataset) HitCount(record int) (int, error) {
	if err := d.checkRecord(record); err != nil {
		return 0, err
	}
	return int(d.hitCounts[record]), nil
}

func (d *HDF5Dataset) Schema() Schema {
	return d.schema
}

func (d *HDF5Dataset) ReadHits(record int) (Hits, error) {
	var hits Hits
	var axes [3][]float64
	for axis, name := range d.Layout.Coordinates {
		values, err := d.ReadField(record, Field{Name: name, Kind: PerHit})
		if err != nil {
			return hits, err
		}
		axes[axis] = values
	}
	hits.X, hits.Y, hits.Z = axes[0], axes[1], axes[2]
	return hits, nil
}

func (d *HDF5Dataset) ReadField(record int, field Field) ([]float64, error) {
	if err := d.checkRecord(record); err != nil {
		return nil, err
	}
	dset, err := d.dataset(field)
	if err != nil {
		return nil, err
	}
	switch field.Kind {
	case PerHit:
		return readSlice(dset, field.Name, d.offsets[record], uint(d.hitCounts[record]))
	case PerEvent:
		return readSlice(dset, field.Name, uint(record), 1)
	}
	return nil, fmt.Errorf("unknown field kind %v", field.Kind)
}

// dataset opens a field dataset once and checks its length against the
// record table.
func (d *HDF5Dataset) dataset(field Field) (*hdf5.Dataset, error) {
	key := field.Kind.String() + "/" + field.Name
	if dset, ok := d.datasets[key]; ok {
		return dset, nil
	}

	var group *hdf5.Group
	var expected uint
	switch field.Kind {
	case PerHit:
		group, expected = d.HitsGroup, d.totalHits
	case PerEvent:
		group, expected = d.EventGroup, uint(len(d.events))
	}
	if group == nil {
		return nil, &ErrFieldNotFound{FieldName: field.Name}
	}

	dset, err := group.OpenDataset(field.Name)
	if err != nil {
		return nil, &ErrReadDataset{DatasetName: field.Name, Err: err}
	}
	length, err := datasetLength(dset)
	if err != nil {
		dset.Close()
		return nil, &ErrReadDataset{DatasetName: field.Name, Err: err}
	}
	if length != expected {
		dset.Close()
		return nil, &ErrReadDataset{
			DatasetName: field.Name,
			Err:         fmt.Errorf("%d entries, expected %d", length, expected),
		}
	}
	d.datasets[key] = dset
	return dset, nil
}

func datasetLength(dset *hdf5.Dataset) (uint, error) {
	space := dset.Space()
	defer space.Close()
	dims, _, err := space.SimpleExtentDims()
	if err != nil {
		return 0, err
	}
	if len(dims) != 1 {
		return 0, fmt.Errorf("expected a 1-d dataset, got %d dimensions", len(dims))
	}
	return dims[0], nil
}

func readInt32Dataset(group *hdf5.Group, name string) ([]int32, error) {
	dset, err := group.OpenDataset(name)
	if err != nil {
		return nil, &ErrReadDataset{DatasetName: name, Err: err}
	}
	defer dset.Close()

	length, err := datasetLength(dset)
	if err != nil {
		return nil, &ErrReadDataset{DatasetName: name, Err: err}
	}
	data := make([]int32, length)
	if length == 0 {
		return data, nil
	}
	if err := dset.Read(&data); err != nil {
		return nil, &ErrReadDataset{DatasetName: name, Err: err}
	}
	return data, nil
}

func readSlice(dset *hdf5.Dataset, name string, offset uint, count uint) ([]float64, error) {
	data := make([]float64, count)
	if count == 0 {
		return data, nil
	}

	filespace := dset.Space()
	defer filespace.Close()

	start := []uint{offset}
	length := []uint{count}
	if err := filespace.SelectHyperslab(start, nil, length, nil); err != nil {
		return nil, &ErrReadDataset{DatasetName: name, Err: err}
	}

	memspace, err := hdf5.CreateSimpleDataspace(length, nil)
	if err != nil {
		return nil, &ErrReadDataset{DatasetName: name, Err: err}
	}
	defer memspace.Close()

	if err := dset.ReadSubset(&data, memspace, filespace); err != nil {
		return nil, &ErrReadDataset{DatasetName: name, Err: err}
	}
	return data, nil
}

func (d *HDF5Dataset) Close() error {
	var errs []error

	for key, dset := range d.datasets {
		if err := dset.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing dataset %s: %w", key, err))
		}
	}
	d.datasets = make(map[string]*hdf5.Dataset)

	if d.EventGroup != nil {
		if err := d.EventGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing event group: %w", err))
		}
		d.EventGroup = nil
	}
	if d.HitsGroup != nil {
		if err := d.HitsGroup.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing hits group: %w", err))
		}
		d.HitsGroup = nil
	}
	if d.Group != nil {
		if err := d.Group.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing table group: %w", err))
		}
		d.Group = nil
	}
	if d.File != nil {
		if err := d.File.Close(); err != nil {
			errs = append(errs, fmt.Errorf("error closing file: %w", err))
		}
		d.File = nil
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
