package evdisplay

import (
	"errors"
	"fmt"
)

// DetectorGeometry returns the static shapes for the active configuration.
// A geometry file wins over the database, which wins over the built-in
// ArgonCube layout. A geometry file without shapes is an error; an empty
// database result falls back to the built-in layout. The optional volumes are added on top of any source.
func DetectorGeometry() (shapes []Shape, err error) {
	config := configuration

	switch {
	case config.GeometryFile != "":
		shapes, err = LoadGeometryFile(config.GeometryFile)
		if err != nil {
			return nil, err
		}
		if len(shapes) == 0 {
			return nil, fmt.Errorf("geometry file %s has no shapes", config.GeometryFile)
		}
	case !config.NoDB && config.DBName != "":
		shapes, err = geometryFromDB(config)
		if err != nil {
			return nil, err
		}
	}

	if len(shapes) == 0 {
		if config.Verbosity > 0 {
			logger.Info("Using built-in ArgonCube geometry", "geometry")
		}
		shapes = ArgonCubeGeometry()
	}

	opts := GeometryOptions{
		Cryostat:     config.Cryostat,
		NearDetector: config.NearDetector,
		FarDetector:  config.FarDetector,
	}
	return append(shapes, OptionalShapes(opts)...), nil
}

func geometryFromDB(config Configuration) (shapes []Shape, err error) {
	db, err := ConnectToDatabase(config.DBDriver, config.User, config.Passwd, config.Host, config.DBName)
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			err = errors.Join(err, closeErr)
		}
	}()

	shapes, err = GetGeometryFromDB(db, config.Detector, config.Run)
	if err != nil {
		return nil, err
	}
	for _, s := range shapes {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	if len(shapes) == 0 && config.Verbosity > 0 {
		message := fmt.Sprintf("No shapes for detector %s run %d in database", config.Detector, config.Run)
		logger.Info(message, "geometry")
	}
	return shapes, nil
}
