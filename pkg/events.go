package evdisplay

import (
	"encoding/json"
	"fmt"
)

// FieldKind tells whether a field holds one value per hit or one per record.
type FieldKind int

const (
	PerHit FieldKind = iota
	PerEvent
)

var fieldKindStrings = []string{
	"per-hit",
	"per-event",
}

func (k FieldKind) String() string {
	if k < PerHit || k > PerEvent {
		return "UNKNOWN"
	}
	return fieldKindStrings[k]
}

func (k FieldKind) MarshalJSON() ([]byte, error) {
	return json.Marshal(k.String())
}

func (k *FieldKind) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	for i, v := range fieldKindStrings {
		if v == s {
			*k = FieldKind(i)
			return nil
		}
	}
	return fmt.Errorf("invalid FieldKind: %s", s)
}

type Field struct {
	Name string
	Kind FieldKind
}

type Selection struct {
	Event int
	Field string
}

func DefaultSelection() Selection {
	return Selection{Event: 0, Field: "dq"}
}

// Hits are the coordinates of one record, aligned by position.
type Hits struct {
	X []float64
	Y []float64
	Z []float64
}

func (h Hits) Len() int {
	return len(h.X)
}

type Point struct {
	X     float64
	Y     float64
	Z     float64
	Value float64
}

type PointCloud struct {
	Event  int
	Field  Field
	Points []Point
}

const PointColumns = 4

func (pc PointCloud) Len() int {
	return len(pc.Points)
}

// Matrix returns the cloud as rows of (x, y, z, value).
func (pc PointCloud) Matrix() [][]float64 {
	rows := make([][]float64, len(pc.Points))
	for i, p := range pc.Points {
		rows[i] = []float64{p.X, p.Y, p.Z, p.Value}
	}
	return rows
}

func (pc PointCloud) Values() []float64 {
	values := make([]float64, len(pc.Points))
	for i, p := range pc.Points {
		values[i] = p.Value
	}
	return values
}
