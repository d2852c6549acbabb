package evdisplay

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
)

var csvHeader = []string{"x", "y", "z", "c"}

// WriteCSV writes the cloud as a delimited table with header x,y,z,c.
func WriteCSV(w io.Writer, cloud PointCloud) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}
	row := make([]string, PointColumns)
	for _, p := range cloud.Points {
		row[0] = formatValue(p.X)
		row[1] = formatValue(p.Y)
		row[2] = formatValue(p.Z)
		row[3] = formatValue(p.Value)
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func WriteCSVFile(filename string, cloud PointCloud) error {
	f, err := os.Create(filename)
	if err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := WriteCSV(f, cloud); err != nil {
		f.Close()
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	return nil
}

// ReadCSV reads back a table written by WriteCSV.
func ReadCSV(r io.Reader) ([]Point, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = PointColumns
	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("error reading header: %w", err)
	}
	for i, name := range csvHeader {
		if header[i] != name {
			return nil, fmt.Errorf("unexpected header %v", header)
		}
	}

	points := make([]Point, 0)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		var values [PointColumns]float64
		for i, s := range row {
			values[i], err = strconv.ParseFloat(s, 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", len(points)+2, err)
			}
		}
		points = append(points, Point{X: values[0], Y: values[1], Z: values[2], Value: values[3]})
	}
	return points, nil
}
