package evdisplay

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

type geometryFile struct {
	Detector string  `yaml:"detector,omitempty"`
	Shapes   []Shape `yaml:"shapes"`
}

// ReadGeometry decodes a shape list and validates every shape.
func ReadGeometry(r io.Reader) ([]Shape, error) {
	var g geometryFile
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	if err := decoder.Decode(&g); err != nil {
		return nil, fmt.Errorf("error decoding geometry: %w", err)
	}
	for _, s := range g.Shapes {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return g.Shapes, nil
}

func LoadGeometryFile(filename string) ([]Shape, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, &ErrOpenFile{Filename: filename, Err: err}
	}
	defer f.Close()

	shapes, err := ReadGeometry(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	if configuration.Verbosity > 0 {
		logger.Info(fmt.Sprintf("Read %d shapes from %s", len(shapes), filename), "geometry")
	}
	return shapes, nil
}

func WriteGeometry(w io.Writer, detector string, shapes []Shape) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(geometryFile{Detector: detector, Shapes: shapes}); err != nil {
		return err
	}
	return encoder.Close()
}

// sceneFile is the exported form of a scene. Points are kept in data
// coordinates next to the display axis mapping.
type sceneFile struct {
	*Scene `yaml:",inline"`
	Event  int         `yaml:"event"`
	Field  string      `yaml:"field"`
	Kind   string      `yaml:"kind"`
	Axes   [3]string   `yaml:"display_axes,flow"`
	Points [][]float64 `yaml:"points,flow"`
}

func ExportScene(w io.Writer, s *Scene) error {
	out := sceneFile{
		Scene:  s,
		Event:  s.Cloud.Event,
		Field:  s.Cloud.Field.Name,
		Kind:   s.Cloud.Field.Kind.String(),
		Axes:   [3]string{"x", "z", "y"},
		Points: s.Cloud.Matrix(),
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return err
	}
	return encoder.Close()
}

func ExportSceneFile(filename string, s *Scene) error {
	f, err := os.Create(filename)
	if err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := ExportScene(f, s); err != nil {
		f.Close()
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	if err := f.Close(); err != nil {
		return &ErrWriteOutput{Filename: filename, Err: err}
	}
	return nil
}
