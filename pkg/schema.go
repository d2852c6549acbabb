package evdisplay

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Source is a readable event table: records in storage order, each with an
// event index, the hit coordinates and the values of the schema fields.
type Source interface {
	NumRecords() int
	EventIndex(record int) (int, error)
	HitCount(record int) (int, error)
	Schema() Schema
	ReadHits(record int) (Hits, error)
	// ReadField returns one value per hit for PerHit fields and a single
	// value for PerEvent fields.
	ReadField(record int, field Field) ([]float64, error)
	Close() error
}

type Schema struct {
	HitFields   []string
	EventFields []string
}

func newSchema(hitFields, eventFields map[string]bool) Schema {
	schema := Schema{
		HitFields:   maps.Keys(hitFields),
		EventFields: maps.Keys(eventFields),
	}
	slices.Sort(schema.HitFields)
	slices.Sort(schema.EventFields)
	return schema
}

// Resolve finds the kind of a field. Per-hit fields shadow per-event fields
// with the same name.
func (s Schema) Resolve(name string) (Field, error) {
	if slices.Contains(s.HitFields, name) {
		return Field{Name: name, Kind: PerHit}, nil
	}
	if slices.Contains(s.EventFields, name) {
		return Field{Name: name, Kind: PerEvent}, nil
	}
	return Field{}, &ErrFieldNotFound{FieldName: name}
}

// ResolveField resolves a field name against the schema of a source.
func ResolveField(src Source, name string) (Field, error) {
	return src.Schema().Resolve(name)
}

func (s Schema) Fields() []Field {
	fields := make([]Field, 0, len(s.HitFields)+len(s.EventFields))
	for _, name := range s.HitFields {
		fields = append(fields, Field{Name: name, Kind: PerHit})
	}
	for _, name := range s.EventFields {
		fields = append(fields, Field{Name: name, Kind: PerEvent})
	}
	return fields
}

func (s Schema) String() string {
	return fmt.Sprintf("per-hit %v, per-event %v", s.HitFields, s.EventFields)
}
