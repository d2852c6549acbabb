package evdisplay

import (
	"errors"
	"fmt"
)

// ExtractPointCloud gathers the (x, y, z, value) rows of every record whose
// event index matches the selection, in storage order. An event that is not
// in the source gives an empty cloud, not an error.
func ExtractPointCloud(src Source, sel Selection) (PointCloud, error) {
	field, err := ResolveField(src, sel.Field)
	if err != nil {
		return PointCloud{}, err
	}
	if configuration.Verbosity > 1 {
		message := fmt.Sprintf("Field %s resolved as %v", field.Name, field.Kind)
		logger.Info(message, "extractor")
	}

	cloud := PointCloud{
		Event:  sel.Event,
		Field:  field,
		Points: make([]Point, 0),
	}

	for record := 0; record < src.NumRecords(); record++ {
		event, err := src.EventIndex(record)
		if err != nil {
			return PointCloud{}, err
		}
		if event != sel.Event {
			continue
		}

		hits, err := src.ReadHits(record)
		if err != nil {
			return PointCloud{}, err
		}
		values, err := src.ReadField(record, field)
		if err != nil {
			return PointCloud{}, err
		}
		points, err := stackRecord(hits, values, field.Kind)
		if err != nil {
			return PointCloud{}, fmt.Errorf("record %d: %w", record, err)
		}
		if configuration.Verbosity > 0 {
			message := fmt.Sprintf("Record %d: event %d with %d hits", record, event, len(points))
			logger.Info(message, "extractor")
		}
		cloud.Points = append(cloud.Points, points...)
	}
	return cloud, nil
}

func stackRecord(hits Hits, values []float64, kind FieldKind) ([]Point, error) {
	nHits := hits.Len()
	if len(hits.Y) != nHits || len(hits.Z) != nHits {
		return nil, fmt.Errorf("coordinate arrays differ in length: %d, %d, %d",
			len(hits.X), len(hits.Y), len(hits.Z))
	}

	points := make([]Point, nHits)
	switch kind {
	case PerHit:
		if len(values) != nHits {
			return nil, fmt.Errorf("per-hit field has %d values for %d hits", len(values), nHits)
		}
		for i := range points {
			points[i] = Point{X: hits.X[i], Y: hits.Y[i], Z: hits.Z[i], Value: values[i]}
		}
	case PerEvent:
		if len(values) != 1 {
			return nil, fmt.Errorf("per-event field has %d values", len(values))
		}
		// Broadcast the record scalar to every hit
		for i := range points {
			points[i] = Point{X: hits.X[i], Y: hits.Y[i], Z: hits.Z[i], Value: values[0]}
		}
	default:
		return nil, fmt.Errorf("unknown field kind %v", kind)
	}
	return points, nil
}

// ExtractFromFile opens a ROOT or HDF5 event file, extracts the selection
// and closes the file on every path.
func ExtractFromFile(filename string, layout Layout, sel Selection) (cloud PointCloud, err error) {
	src, err := OpenSource(filename, layout)
	if err != nil {
		return PointCloud{}, err
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			err = errors.Join(err, fmt.Errorf("error closing dataset: %w", closeErr))
		}
	}()
	return ExtractPointCloud(src, sel)
}
