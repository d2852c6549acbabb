package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/argoncube/evdisplay_go/logging"
	evdisplay "github.com/argoncube/evdisplay_go/pkg"
)

var logger = logging.New(os.Stdout, os.Stderr)

func main() {
	fileOut := flag.String("o", "", "Output file, ROOT if it ends in .root, HDF5 otherwise")
	events := flag.Int("n", 10, "Number of events")
	tracks := flag.Int("tracks", 3, "Tracks per event")
	step := flag.Float64("step", 0.4, "Distance between hits in cm")
	smearing := flag.Float64("smear", 0.1, "Hit position smearing in cm")
	seed := flag.Uint64("seed", 1, "Random seed")
	workers := flag.Int("workers", 0, "Generator goroutines, 0 for one per CPU")
	compression := flag.Int("compression", 4, "Deflate level")
	geometryDB := flag.String("geometry-db", "", "Also store the built-in geometry in this sqlite file")
	geometryYAML := flag.String("geometry-yaml", "", "Also write the built-in geometry to this YAML file")
	detector := flag.String("detector", "ArgonCube2x2", "Detector name for the stored geometry")
	verbosity := flag.Int("v", 0, "Verbosity level")
	flag.Parse()

	config := evdisplay.GetConfiguration()
	config.Verbosity = *verbosity
	config.CompressionLevel = *compression
	evdisplay.SetConfiguration(config)
	evdisplay.SetLogger(logger)

	if *fileOut == "" {
		logger.Error("Usage: evsynth -o <file> [flags]")
		os.Exit(2)
	}
	if *step <= 0 {
		logger.Error("step must be positive")
		os.Exit(2)
	}

	cfg := synthConfig{
		Events:   *events,
		Tracks:   *tracks,
		Step:     *step,
		Smearing: *smearing,
		Seed:     *seed,
		Workers:  *workers,
	}
	m := generate(cfg, config.Layout)
	if err := evdisplay.CreateSource(*fileOut, m); err != nil {
		logger.Error(fmt.Errorf("error writing %s: %w", *fileOut, err).Error())
		os.Exit(1)
	}
	message := fmt.Sprintf("Wrote %d events (%d records) to %s", cfg.Events, m.NumRecords(), *fileOut)
	logger.Info(message, "main")

	if *geometryDB != "" {
		if err := storeGeometry(*geometryDB, *detector); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}
	if *geometryYAML != "" {
		if err := writeGeometry(*geometryYAML, *detector); err != nil {
			logger.Error(err.Error())
			os.Exit(1)
		}
	}
}

// storeGeometry seeds a sqlite geometry catalogue valid for every run.
func storeGeometry(filename string, detector string) (err error) {
	db, err := evdisplay.ConnectToDatabase("sqlite", "", "", "", filename)
	if err != nil {
		return fmt.Errorf("error connecting to database: %w", err)
	}
	defer func() {
		err = errors.Join(err, db.Close())
	}()

	if err := evdisplay.CreateGeometryTable(db); err != nil {
		return err
	}
	return evdisplay.StoreGeometry(db, detector, 0, 1<<31-1, evdisplay.ArgonCubeGeometry())
}

func writeGeometry(filename string, detector string) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	if err := evdisplay.WriteGeometry(f, detector, evdisplay.ArgonCubeGeometry()); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
