package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/argoncube/evdisplay_go/logging"
	evdisplay "github.com/argoncube/evdisplay_go/pkg"
)

func defaultConfiguration() evdisplay.Configuration {
	var config evdisplay.Configuration

	// Set default values
	config.Event = 0
	config.Field = "dq"
	config.LogScale = false
	config.Animation = false
	config.NearDetector = false
	config.FarDetector = false
	config.Cryostat = false
	config.Verbosity = 0
	config.Layout = evdisplay.DefaultLayout()
	config.OutputHTML = "evdisplay.html"
	config.Projection = string(evdisplay.DefaultProjection)
	config.NoDB = true
	config.DBDriver = "mysql"
	config.Host = "localhost"
	config.User = "reader"
	config.Passwd = "readonly"
	config.Detector = "ArgonCube2x2"
	config.ViewWidth = 1920
	config.ViewHeight = 1080
	config.OrbitDuration = 20
	config.CompressionLevel = 4
	return config
}

// LoadConfiguration reads a JSON configuration on top of the defaults. An
// empty filename gives the defaults.
func LoadConfiguration(filename string) (evdisplay.Configuration, error) {
	config := defaultConfiguration()
	if filename == "" {
		return config, nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}
	err = json.Unmarshal(data, &config)
	if err != nil {
		return config, err
	}
	return config, nil
}

func printConfiguration(config evdisplay.Configuration, logger logging.Logger) {
	logger.Info(fmt.Sprintf("File in: %s", config.FileIn), "config")
	logger.Info(fmt.Sprintf("Event: %d", config.Event), "config")
	logger.Info(fmt.Sprintf("Colour field: %s", config.Field), "config")
	logger.Info(fmt.Sprintf("Log scale: %t", config.LogScale), "config")
	logger.Info(fmt.Sprintf("Animation: %t", config.Animation), "config")
	logger.Info(fmt.Sprintf("Near detector: %t", config.NearDetector), "config")
	logger.Info(fmt.Sprintf("Far detector: %t", config.FarDetector), "config")
	logger.Info(fmt.Sprintf("Cryostat: %t", config.Cryostat), "config")
	logger.Info(fmt.Sprintf("Table group: %s", config.Layout.Group), "config")
	logger.Info(fmt.Sprintf("Coordinates: %v", config.Layout.Coordinates), "config")
	logger.Info(fmt.Sprintf("Output HTML: %s", config.OutputHTML), "config")
	logger.Info(fmt.Sprintf("Output PNG: %s", config.OutputPNG), "config")
	logger.Info(fmt.Sprintf("Output histogram: %s", config.OutputHist), "config")
	logger.Info(fmt.Sprintf("Output PCD: %s", config.OutputPCD), "config")
	logger.Info(fmt.Sprintf("Output CSV: %s", config.OutputCSV), "config")
	logger.Info(fmt.Sprintf("Output scene: %s", config.OutputScene), "config")
	logger.Info(fmt.Sprintf("Projection: %s", config.Projection), "config")
	logger.Info(fmt.Sprintf("Viewer: %s", config.Viewer), "config")
	logger.Info(fmt.Sprintf("Geometry file: %s", config.GeometryFile), "config")
	logger.Info(fmt.Sprintf("No DB: %t", config.NoDB), "config")
	logger.Info(fmt.Sprintf("DB driver: %s", config.DBDriver), "config")
	logger.Info(fmt.Sprintf("Host: %s", config.Host), "config")
	logger.Info(fmt.Sprintf("DB name: %s", config.DBName), "config")
	logger.Info(fmt.Sprintf("Detector: %s", config.Detector), "config")
	logger.Info(fmt.Sprintf("Run: %d", config.Run), "config")
	logger.Info(fmt.Sprintf("View size: %dx%d", config.ViewWidth, config.ViewHeight), "config")
	logger.Info(fmt.Sprintf("Orbit duration: %d s", config.OrbitDuration), "config")
	logger.Info(fmt.Sprintf("Verbosity: %d", config.Verbosity), "config")
}
