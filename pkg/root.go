package evdisplay

import (
	"errors"
	"fmt"
	"path/filepath"
	"reflect"
	"strings"

	"go-hep.org/x/hep/groot"
	"go-hep.org/x/hep/groot/riofs"
	"go-hep.org/x/hep/groot/rtree"
	"golang.org/x/exp/slices"
)

var float64Type = reflect.TypeOf(float64(0))

// RootDataset reads the event table from a ROOT TTree named after the
// layout group. Each tree entry is a record. Slice branches (counted arrays
// or std::vector) are per-hit fields, numeric scalar branches are per-event
// fields.
type RootDataset struct {
	File      *riofs.File
	Filename  string
	Layout    Layout
	Tree      rtree.Tree
	vars      map[string]rtree.ReadVar
	counts    map[string]string
	events    []int
	hitCounts []int
	schema    Schema
}

func OpenRootDataset(filename string, layout Layout) (*RootDataset, error) {
	f, err := groot.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	d := &RootDataset{
		File:     f,
		Filename: filename,
		Layout:   layout,
		vars:     make(map[string]rtree.ReadVar),
		counts:   make(map[string]string),
	}
	if err := d.open(); err != nil {
		d.Close()
		return nil, err
	}
	if configuration.Verbosity > 0 {
		message := fmt.Sprintf("Opened %s: %d records", filename, len(d.events))
		logger.Info(message, "root")
	}
	return d, nil
}

func (d *RootDataset) open() error {
	obj, err := d.File.Get(d.Layout.Group)
	if err != nil {
		return &ErrOpenGroup{GroupName: d.Layout.Group, Err: err}
	}
	tree, ok := obj.(rtree.Tree)
	if !ok {
		return &ErrOpenGroup{
			GroupName: d.Layout.Group,
			Err:       fmt.Errorf("object is a %s, not a tree", obj.Class()),
		}
	}
	d.Tree = tree

	for _, leaf := range tree.Leaves() {
		if count := leaf.LeafCount(); count != nil {
			d.counts[leaf.Name()] = count.Name()
		}
	}

	hitFields := make(map[string]bool)
	eventFields := make(map[string]bool)
	for _, rv := range rtree.NewReadVars(tree) {
		if rv.Leaf != "" && rv.Leaf != rv.Name {
			continue
		}
		d.vars[rv.Name] = rv
		if rv.Name == d.Layout.EventIndex || rv.Name == d.Layout.HitCount {
			continue
		}
		typ := reflect.TypeOf(rv.Value).Elem()
		switch {
		case typ.Kind() == reflect.Slice && typ.Elem().ConvertibleTo(float64Type):
			hitFields[rv.Name] = true
		case isNumber(typ):
			eventFields[rv.Name] = true
		}
	}
	d.schema = newSchema(hitFields, eventFields)

	for _, name := range []string{d.Layout.EventIndex, d.Layout.HitCount} {
		if _, ok := d.vars[name]; !ok {
			return &ErrReadDataset{DatasetName: name, Err: errors.New("branch not found")}
		}
	}
	for _, name := range d.Layout.Coordinates {
		if !hitFields[name] {
			return &ErrReadDataset{DatasetName: name, Err: errors.New("coordinate branch not found")}
		}
	}
	return d.readIndex()
}

// readIndex loads the event index and hit count of every entry.
func (d *RootDataset) readIndex() error {
	rvars := []rtree.ReadVar{
		d.newReadVar(d.Layout.EventIndex),
		d.newReadVar(d.Layout.HitCount),
	}
	r, err := rtree.NewReader(d.Tree, rvars)
	if err != nil {
		return &ErrReadDataset{DatasetName: d.Layout.Group, Err: err}
	}
	defer r.Close()

	err = r.Read(func(ctx rtree.RCtx) error {
		event, err := scalarValue(rvars[0].Value)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Layout.EventIndex, err)
		}
		hits, err := scalarValue(rvars[1].Value)
		if err != nil {
			return fmt.Errorf("%s: %w", d.Layout.HitCount, err)
		}
		if hits < 0 {
			return fmt.Errorf("negative hit count in record %d", ctx.Entry)
		}
		d.events = append(d.events, int(event))
		d.hitCounts = append(d.hitCounts, int(hits))
		return nil
	})
	if err != nil {
		return &ErrReadDataset{DatasetName: d.Layout.Group, Err: err}
	}
	return nil
}

func (d *RootDataset) newReadVar(name string) rtree.ReadVar {
	rv := d.vars[name]
	return rtree.ReadVar{
		Name:  rv.Name,
		Leaf:  rv.Leaf,
		Value: reflect.New(reflect.TypeOf(rv.Value).Elem()).Interface(),
	}
}

func (d *RootDataset) NumRecords() int {
	return len(d.events)
}

func (d *RootDataset) checkRecord(record int) error {
	if record < 0 || record >= len(d.events) {
		return fmt.Errorf("record %d out of range [0, %d)", record, len(d.events))
	}
	return nil
}

func (d *RootDataset) EventIndex(record int) (int, error) {
	if err := d.checkRecord(record); err != nil {
		return 0, err
	}
	return d.events[record], nil
}

func (d *RootDataset) HitCount(record int) (int, error) {
	if err := d.checkRecord(record); err != nil {
		return 0, err
	}
	return d.hitCounts[record], nil
}

func (d *RootDataset) Schema() Schema {
	return d.schema
}

func (d *RootDataset) ReadHits(record int) (Hits, error) {
	coords := d.Layout.Coordinates
	values, err := d.readEntry(record, coords[:])
	if err != nil {
		return Hits{}, err
	}
	for axis, name := range coords {
		if len(values[axis]) != d.hitCounts[record] {
			return Hits{}, &ErrReadDataset{
				DatasetName: name,
				Err:         fmt.Errorf("record %d has %d values for %d hits", record, len(values[axis]), d.hitCounts[record]),
			}
		}
	}
	return Hits{X: values[0], Y: values[1], Z: values[2]}, nil
}

func (d *RootDataset) ReadField(record int, field Field) ([]float64, error) {
	switch field.Kind {
	case PerHit:
		if !slices.Contains(d.schema.HitFields, field.Name) {
			return nil, &ErrFieldNotFound{FieldName: field.Name}
		}
	case PerEvent:
		if !slices.Contains(d.schema.EventFields, field.Name) {
			return nil, &ErrFieldNotFound{FieldName: field.Name}
		}
	default:
		return nil, fmt.Errorf("unknown field kind %v", field.Kind)
	}
	values, err := d.readEntry(record, []string{field.Name})
	if err != nil {
		return nil, err
	}
	return values[0], nil
}

// readEntry reads the named branches of one entry. Count branches of
// counted arrays are read along with them.
func (d *RootDataset) readEntry(record int, names []string) ([][]float64, error) {
	if err := d.checkRecord(record); err != nil {
		return nil, err
	}

	index := make(map[string]int)
	var rvars []rtree.ReadVar
	add := func(name string) {
		if _, ok := index[name]; ok {
			return
		}
		if _, ok := d.vars[name]; !ok {
			return
		}
		index[name] = len(rvars)
		rvars = append(rvars, d.newReadVar(name))
	}
	for _, name := range names {
		if count, ok := d.counts[name]; ok {
			add(count)
		}
		add(name)
	}

	entry := int64(record)
	r, err := rtree.NewReader(d.Tree, rvars, rtree.WithRange(entry, entry+1))
	if err != nil {
		return nil, &ErrReadDataset{DatasetName: strings.Join(names, ","), Err: err}
	}
	defer r.Close()
	if err := r.Read(func(rtree.RCtx) error { return nil }); err != nil {
		return nil, &ErrReadDataset{DatasetName: strings.Join(names, ","), Err: err}
	}

	values := make([][]float64, len(names))
	for i, name := range names {
		values[i], err = float64Values(rvars[index[name]].Value)
		if err != nil {
			return nil, &ErrReadDataset{DatasetName: name, Err: err}
		}
	}
	return values, nil
}

func (d *RootDataset) Close() error {
	if d.File == nil {
		return nil
	}
	err := d.File.Close()
	d.File = nil
	d.Tree = nil
	if err != nil {
		return fmt.Errorf("error closing file: %w", err)
	}
	return nil
}

func isNumber(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.Bool, reflect.String:
		return false
	}
	return typ.ConvertibleTo(float64Type)
}

// float64Values converts a pointer to a numeric scalar or slice.
func float64Values(ptr any) ([]float64, error) {
	v := reflect.ValueOf(ptr).Elem()
	if v.Kind() != reflect.Slice {
		value, err := scalarValue(ptr)
		if err != nil {
			return nil, err
		}
		return []float64{value}, nil
	}
	values := make([]float64, v.Len())
	for i := range values {
		e := v.Index(i)
		if !isNumber(e.Type()) {
			return nil, fmt.Errorf("cannot convert %s to float64", e.Type())
		}
		values[i] = e.Convert(float64Type).Float()
	}
	return values, nil
}

func scalarValue(ptr any) (float64, error) {
	v := reflect.ValueOf(ptr).Elem()
	if !isNumber(v.Type()) {
		return 0, fmt.Errorf("cannot convert %s to float64", v.Type())
	}
	return v.Convert(float64Type).Float(), nil
}

// CreateRootDataset writes a memory dataset as a ROOT tree: event index
// and hit count as int32 branches, per-hit fields as float64 arrays counted
// by the hit count, per-event fields as float64 scalars.
func CreateRootDataset(filename string, m *MemoryDataset) (err error) {
	if err := m.validate(); err != nil {
		return err
	}

	f, err := groot.Create(filename)
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
		logger.Info(message, "root")
	}

	layout := m.Layout
	schema := m.Schema()
	var (
		event     int32
		hitCount  int32
		hitVals   = make([][]float64, len(schema.HitFields))
		eventVals = make([]float64, len(schema.EventFields))
	)
	wvars := []rtree.WriteVar{
		{Name: layout.EventIndex, Value: &event},
		{Name: layout.HitCount, Value: &hitCount},
	}
	for i, name := range schema.HitFields {
		wvars = append(wvars, rtree.WriteVar{Name: name, Value: &hitVals[i], Count: layout.HitCount})
	}
	for i, name := range schema.EventFields {
		wvars = append(wvars, rtree.WriteVar{Name: name, Value: &eventVals[i]})
	}

	w, err := rtree.NewWriter(f, layout.Group, wvars)
	if err != nil {
		return fmt.Errorf("error creating tree %q: %w", layout.Group, err)
	}
	defer func() {
		if closeErr := w.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("error closing tree: %w", closeErr))
		}
	}()

	for record := range m.Records {
		r := &m.Records[record]
		event = int32(r.Event)
		hitCount = int32(len(r.X))
		for i, name := range schema.HitFields {
			hitVals[i], err = m.ReadField(record, Field{Name: name, Kind: PerHit})
			if err != nil {
				return err
			}
		}
		for i, name := range schema.EventFields {
			values, err := m.ReadField(record, Field{Name: name, Kind: PerEvent})
			if err != nil {
				return err
			}
			eventVals[i] = values[0]
		}
		if _, err := w.Write(); err != nil {
			return &ErrWriteOutput{Filename: filename, Err: err}
		}
	}
	return nil
}

// IsRootFile tells whether a file name has the ROOT extension.
func IsRootFile(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".root")
}

// OpenSource opens a ROOT or HDF5 event file, chosen by extension.
func OpenSource(filename string, layout Layout) (Source, error) {
	if IsRootFile(filename) {
		d, err := OpenRootDataset(filename, layout)
		if err != nil {
			return nil, err
		}
		return d, nil
	}
	d, err := OpenDataset(filename, layout)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// CreateSource writes a memory dataset as ROOT or HDF5, chosen by extension.
func CreateSource(filename string, m *MemoryDataset) error {
	if IsRootFile(filename) {
		return CreateRootDataset(filename, m)
	}
	return CreateDataset(filename, m)
}
