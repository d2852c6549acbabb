package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/argoncube/evdisplay_go/logging"
	evdisplay "github.com/argoncube/evdisplay_go/pkg"
)

var logger = logging.New(os.Stdout, os.Stderr)

func main() {
	configuration, configFilename, err := configure(os.Args[1:])
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		message := fmt.Errorf("Error reading configuration: %w", err)
		logger.Error(message.Error())
		os.Exit(2)
	}
	evdisplay.SetConfiguration(configuration)
	evdisplay.SetLogger(logger)

	if configuration.Verbosity > 0 {
		if configFilename != "" {
			message := fmt.Sprintf("Reading configuration file: %s", configFilename)
			logger.Info(message, "main")
		}
		printConfiguration(configuration, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, configuration); err != nil {
		logger.Error(err.Error())
		stop()
		os.Exit(1)
	}
}

// configure loads the configuration file and applies the flags that were
// given on top of it. The input file may come before or after the flags.
func configure(args []string) (evdisplay.Configuration, string, error) {
	fs := flag.NewFlagSet("evdisplay", flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: evdisplay [flags] <file>\n")
		fs.PrintDefaults()
	}

	configFilename := fs.String("config", "", "Configuration file path")
	var event int
	fs.IntVar(&event, "e", 0, "Event index to display")
	fs.IntVar(&event, "event", 0, "Event index to display")
	var color string
	fs.StringVar(&color, "c", "dq", "Field used to colour the hits")
	fs.StringVar(&color, "color", "dq", "Field used to colour the hits")
	var logScale bool
	fs.BoolVar(&logScale, "l", false, "Colour in log scale")
	fs.BoolVar(&logScale, "logscale", false, "Colour in log scale")
	var animation bool
	fs.BoolVar(&animation, "a", false, "Orbit the camera around the detector")
	fs.BoolVar(&animation, "animation", false, "Orbit the camera around the detector")
	nearDetector := fs.Bool("ND", false, "Show the DUNE near detector hall")
	farDetector := fs.Bool("FD", false, "Show the DUNE far detector modules")
	cryostat := fs.Bool("cryostat", false, "Show the ArgonCube cryostat")
	html := fs.String("html", "", "Write the 3D display to this HTML file")
	png := fs.String("png", "", "Write a 2D projection to this image file")
	projection := fs.String("projection", "", "Projection plane of the image, e.g. zy")
	hist := fs.String("hist", "", "Write a histogram of the colour values to this image file")
	pcd := fs.String("pcd", "", "Write the point cloud to this PCD file")
	csv := fs.String("csv", "", "Write the point table to this CSV file")
	scene := fs.String("scene", "", "Export the scene to this YAML file")
	viewer := fs.String("viewer", "", "Viewer command run on a temporary CSV table")
	geometry := fs.String("geometry", "", "Detector geometry YAML file")
	verbosity := fs.Int("v", 0, "Verbosity level")

	var positional []string
	rest := args
	for {
		if err := fs.Parse(rest); err != nil {
			return evdisplay.Configuration{}, "", err
		}
		if fs.NArg() == 0 {
			break
		}
		positional = append(positional, fs.Arg(0))
		rest = fs.Args()[1:]
	}

	config, err := LoadConfiguration(*configFilename)
	if err != nil {
		return config, *configFilename, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "e", "event":
			config.Event = event
		case "c", "color":
			config.Field = color
		case "l", "logscale":
			config.LogScale = logScale
		case "a", "animation":
			config.Animation = animation
		case "ND":
			config.NearDetector = *nearDetector
		case "FD":
			config.FarDetector = *farDetector
		case "cryostat":
			config.Cryostat = *cryostat
		case "html":
			config.OutputHTML = *html
		case "png":
			config.OutputPNG = *png
		case "hist":
			config.OutputHist = *hist
		case "projection":
			config.Projection = *projection
		case "pcd":
			config.OutputPCD = *pcd
		case "csv":
			config.OutputCSV = *csv
		case "scene":
			config.OutputScene = *scene
		case "viewer":
			config.Viewer = *viewer
		case "geometry":
			config.GeometryFile = *geometry
		case "v":
			config.Verbosity = *verbosity
		}
	})

	switch len(positional) {
	case 0:
	case 1:
		config.FileIn = positional[0]
	default:
		return config, *configFilename, fmt.Errorf("expected one input file, got %d", len(positional))
	}
	if config.FileIn == "" {
		return config, *configFilename, errors.New("no input file")
	}
	return config, *configFilename, nil
}

func run(ctx context.Context, config evdisplay.Configuration) error {
	selection := evdisplay.Selection{Event: config.Event, Field: config.Field}
	cloud, err := evdisplay.ExtractFromFile(config.FileIn, config.Layout, selection)
	if err != nil {
		return fmt.Errorf("error extracting event %d: %w", config.Event, err)
	}
	if cloud.Len() == 0 {
		message := fmt.Sprintf("Event %d not found in %s, displaying the detector only", config.Event, config.FileIn)
		logger.Info(message, "main")
	} else if config.Verbosity > 0 {
		message := fmt.Sprintf("Event %d: %d hits coloured by %s (%v)", config.Event, cloud.Len(), cloud.Field.Name, cloud.Field.Kind)
		logger.Info(message, "main")
	}

	shapes, err := evdisplay.DetectorGeometry()
	if err != nil {
		return fmt.Errorf("error loading detector geometry: %w", err)
	}
	scene := evdisplay.NewScene(cloud, evdisplay.SceneOptions{
		LogScale:      config.LogScale,
		Animation:     config.Animation,
		OrbitDuration: float64(config.OrbitDuration),
		Width:         config.ViewWidth,
		Height:        config.ViewHeight,
	})
	if err := scene.AddShapes(shapes); err != nil {
		return fmt.Errorf("error building scene: %w", err)
	}

	if config.OutputCSV != "" {
		if err := evdisplay.WriteCSVFile(config.OutputCSV, cloud); err != nil {
			return err
		}
	}
	if config.OutputPCD != "" {
		if err := evdisplay.WritePCDFile(config.OutputPCD, cloud); err != nil {
			return err
		}
	}
	if config.OutputScene != "" {
		if err := evdisplay.ExportSceneFile(config.OutputScene, scene); err != nil {
			return err
		}
	}
	if config.OutputPNG != "" {
		projection := evdisplay.Projection(config.Projection)
		if err := evdisplay.RenderProjection(config.OutputPNG, scene, projection); err != nil {
			return err
		}
	}
	if config.OutputHist != "" {
		if err := evdisplay.RenderHistogram(config.OutputHist, scene); err != nil {
			return err
		}
	}
	if config.OutputHTML != "" {
		if err := evdisplay.RenderHTMLFile(config.OutputHTML, scene); err != nil {
			return err
		}
	}
	if config.Viewer != "" {
		if err := evdisplay.ShowInViewer(ctx, config.Viewer, cloud); err != nil {
			return err
		}
	}
	return nil
}
