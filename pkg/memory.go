package evdisplay

import (
	"fmt"
	"math"
)

type MemoryRecord struct {
	Event       int
	X           []float64
	Y           []float64
	Z           []float64
	HitFields   map[string][]float64
	EventFields map[string]float64
}

// MemoryDataset is an event table held in memory. It is the input of
// CreateDataset and a Source on its own.
type MemoryDataset struct {
	Layout  Layout
	Records []MemoryRecord
}

func NewMemoryDataset(layout Layout) *MemoryDataset {
	return &MemoryDataset{Layout: layout}
}

func (m *MemoryDataset) Append(record MemoryRecord) {
	m.Records = append(m.Records, record)
}

func (m *MemoryDataset) NumRecords() int {
	return len(m.Records)
}

func (m *MemoryDataset) record(i int) (*MemoryRecord, error) {
	if i < 0 || i >= len(m.Records) {
		return nil, fmt.Errorf("record %d out of range [0, %d)", i, len(m.Records))
	}
	return &m.Records[i], nil
}

func (m *MemoryDataset) EventIndex(i int) (int, error) {
	r, err := m.record(i)
	if err != nil {
		return 0, err
	}
	return r.Event, nil
}

func (m *MemoryDataset) HitCount(i int) (int, error) {
	r, err := m.record(i)
	if err != nil {
		return 0, err
	}
	return len(r.X), nil
}

func (m *MemoryDataset) Schema() Schema {
	hitFields := make(map[string]bool)
	eventFields := make(map[string]bool)
	for _, name := range m.Layout.Coordinates {
		hitFields[name] = true
	}
	for _, r := range m.Records {
		for name := range r.HitFields {
			hitFields[name] = true
		}
		for name := range r.EventFields {
			eventFields[name] = true
		}
	}
	return newSchema(hitFields, eventFields)
}

func (m *MemoryDataset) ReadHits(i int) (Hits, error) {
	r, err := m.record(i)
	if err != nil {
		return Hits{}, err
	}
	return Hits{X: r.X, Y: r.Y, Z: r.Z}, nil
}

func (m *MemoryDataset) ReadField(i int, field Field) ([]float64, error) {
	r, err := m.record(i)
	if err != nil {
		return nil, err
	}
	switch field.Kind {
	case PerHit:
		for axis, name := range m.Layout.Coordinates {
			if name == field.Name {
				return [][]float64{r.X, r.Y, r.Z}[axis], nil
			}
		}
		values, ok := r.HitFields[field.Name]
		if !ok {
			return nil, fmt.Errorf("record %d has no per-hit field %q", i, field.Name)
		}
		return values, nil
	case PerEvent:
		value, ok := r.EventFields[field.Name]
		if !ok {
			return nil, fmt.Errorf("record %d has no per-event field %q", i, field.Name)
		}
		return []float64{value}, nil
	}
	return nil, fmt.Errorf("unknown field kind %v", field.Kind)
}

func (m *MemoryDataset) Close() error {
	return nil
}

// validate checks that every record carries every schema field with the
// right number of values, as required by the columnar file layout.
func (m *MemoryDataset) validate() error {
	schema := m.Schema()
	for i, r := range m.Records {
		if r.Event < math.MinInt32 || r.Event > math.MaxInt32 {
			return fmt.Errorf("record %d: event index %d does not fit in int32", i, r.Event)
		}
		n := len(r.X)
		if n > math.MaxInt32 {
			return fmt.Errorf("record %d: %d hits do not fit in int32", i, n)
		}
		if len(r.Y) != n || len(r.Z) != n {
			return fmt.Errorf("record %d: coordinate arrays differ in length", i)
		}
		for _, f := range schema.Fields() {
			values, err := m.ReadField(i, f)
			if err != nil {
				return err
			}
			if f.Kind == PerHit && len(values) != n {
				return fmt.Errorf("record %d: field %q has %d values for %d hits", i, f.Name, len(values), n)
			}
		}
	}
	return nil
}
